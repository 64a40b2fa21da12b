package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fairyhunter13/hireflow/internal/config"
	"github.com/fairyhunter13/hireflow/internal/domain"
	"github.com/fairyhunter13/hireflow/internal/usecase"
)

// Server bundles the use case services behind the HTTP handlers.
type Server struct {
	Cfg         config.Config
	Sessions    *SessionManager
	Candidates  usecase.CandidateService
	Offers      usecase.OfferService
	Tests       usecase.TestService
	Flows       usecase.FlowService
	Invites     usecase.InviteService
	Submissions usecase.SubmissionService
	Reviews     usecase.ReviewService
	Orgs        usecase.OrgService
}

// NewServer constructs a Server.
func NewServer(cfg config.Config, sessions *SessionManager,
	candidates usecase.CandidateService, offers usecase.OfferService,
	tests usecase.TestService, flows usecase.FlowService,
	invites usecase.InviteService, submissions usecase.SubmissionService,
	reviews usecase.ReviewService, orgs usecase.OrgService) *Server {
	return &Server{
		Cfg:         cfg,
		Sessions:    sessions,
		Candidates:  candidates,
		Offers:      offers,
		Tests:       tests,
		Flows:       flows,
		Invites:     invites,
		Submissions: submissions,
		Reviews:     reviews,
		Orgs:        orgs,
	}
}

func orgIDParam(r *http.Request) string { return chi.URLParam(r, "orgID") }

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates the configured admin user and sets a session cookie.
// The stored password is an Argon2id hash unless it was provided in clear,
// in which case a constant-time comparison still applies via hashing.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if details, err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, details)
		return
	}
	if !s.Cfg.AdminEnabled() || req.Username != s.Cfg.AdminUsername || !s.passwordMatches(req.Password) {
		writeError(w, r, domain.ErrUnauthenticated, nil)
		return
	}
	session, err := s.Sessions.CreateSession(req.Username)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	s.Sessions.SetSessionCookie(w, session)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) passwordMatches(password string) bool {
	stored := s.Cfg.AdminPassword
	if isArgon2Hash(stored) {
		return VerifyPassword(password, stored)
	}
	// Plain-text fallback for local development setups.
	return password == stored
}

func isArgon2Hash(v string) bool {
	return len(v) > 9 && v[:9] == "argon2id$"
}

// Logout clears the session cookie.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.Sessions.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
