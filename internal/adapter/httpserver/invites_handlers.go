package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fairyhunter13/hireflow/internal/domain"
	"github.com/fairyhunter13/hireflow/internal/usecase"
)

type sendInviteRequest struct {
	TestID         string  `json:"testId" validate:"required,uuid4"`
	ExpiresInHours int     `json:"expiresInHours" validate:"omitempty,min=1,max=8760"`
	FlowItemID     *string `json:"flowItemId" validate:"omitempty,uuid4"`
}

type inviteResponse struct {
	ID           string    `json:"id"`
	OrgID        string    `json:"orgId"`
	CandidateID  string    `json:"candidateId"`
	TestID       string    `json:"testId"`
	FlowItemID   *string   `json:"flowItemId,omitempty"`
	Token        string    `json:"token"`
	Status       string    `json:"status"`
	ExpiresAt    time.Time `json:"expiresAt"`
	SubmissionID *string   `json:"submissionId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toInviteResponse(inv domain.TestInvite) inviteResponse {
	return inviteResponse{
		ID: inv.ID, OrgID: inv.OrgID, CandidateID: inv.CandidateID,
		TestID: inv.TestID, FlowItemID: inv.FlowItemID, Token: inv.Token,
		Status: string(inv.Status), ExpiresAt: inv.ExpiresAt,
		SubmissionID: inv.SubmissionID, CreatedAt: inv.CreatedAt,
	}
}

// SendInvite issues (or reuses) a test invite for a candidate.
func (s *Server) SendInvite(w http.ResponseWriter, r *http.Request) {
	var req sendInviteRequest
	if details, err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, details)
		return
	}
	expires := req.ExpiresInHours
	if expires == 0 {
		expires = s.Cfg.InviteDefaultExpiryHours
	}
	inv, err := s.Invites.SendForCandidate(r.Context(), usecase.SendInviteInput{
		OrgID:          orgIDParam(r),
		CandidateID:    chi.URLParam(r, "candidateID"),
		TestID:         req.TestID,
		ExpiresInHours: expires,
		FlowItemID:     req.FlowItemID,
	})
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, toInviteResponse(inv))
}

func (s *Server) ListInvites(w http.ResponseWriter, r *http.Request) {
	list, err := s.Invites.ListForCandidate(r.Context(), orgIDParam(r), chi.URLParam(r, "candidateID"))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	out := make([]inviteResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInviteResponse(inv))
	}
	writeJSON(w, http.StatusOK, map[string]any{"invites": out})
}

func (s *Server) RevokeInvite(w http.ResponseWriter, r *http.Request) {
	err := s.Invites.Revoke(r.Context(), orgIDParam(r), chi.URLParam(r, "candidateID"), chi.URLParam(r, "inviteID"))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "revoked"})
}
