package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/hireflow/internal/adapter/events"
	"github.com/fairyhunter13/hireflow/internal/config"
	"github.com/fairyhunter13/hireflow/internal/domain"
	"github.com/fairyhunter13/hireflow/internal/domain/mocks"
	"github.com/fairyhunter13/hireflow/internal/usecase"
)

func publicRouter(srv *Server) http.Handler {
	r := chi.NewRouter()
	r.Post("/v1/public/orgs/{orgID}/invites/{token}/start", srv.StartSubmission)
	r.Post("/v1/public/orgs/{orgID}/submissions/answers", srv.SubmitAnswers)
	return r
}

func TestStartSubmission_HappyPath(t *testing.T) {
	invites := &mocks.MockTestInviteRepository{}
	tests := &mocks.MockTestRepository{}

	invite := domain.TestInvite{
		ID: "inv-1", OrgID: "org-1", CandidateID: "cand-1", TestID: "test-1",
		Token: "tok-abc", Status: domain.InvitePending,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	invites.On("GetByToken", mock.Anything, "tok-abc").Return(invite, nil)
	invites.On("LinkSubmission", mock.Anything, "inv-1", "sub-1").Return(nil)

	tests.On("GetTestWithQuestions", mock.Anything, "org-1", "test-1").Return(domain.TestWithQuestions{
		Test: domain.Test{ID: "test-1", OrgID: "org-1", Type: domain.TestTypeMotivations, IsActive: true},
		Questions: []domain.TestQuestion{
			{ID: "q1", TestID: "test-1", Kind: domain.QuestionYesNo, OrderIndex: 1},
			{ID: "q2", TestID: "test-1", Kind: domain.QuestionYesNo, OrderIndex: 2},
		},
	}, nil)
	tests.On("StartSubmission", mock.Anything, mock.Anything).Return("sub-1", nil)
	tests.On("CreateSubmissionItems", mock.Anything, "sub-1", mock.Anything).Return(nil)

	srv := &Server{
		Cfg:         config.Config{},
		Submissions: usecase.NewSubmissionService(tests, invites, events.NopPublisher{}, false),
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/public/orgs/org-1/invites/tok-abc/start", nil)
	rw := httptest.NewRecorder()
	publicRouter(srv).ServeHTTP(rw, req)

	require.Equal(t, http.StatusCreated, rw.Code, rw.Body.String())
	var body struct {
		Submission struct {
			ID string `json:"id"`
		} `json:"submission"`
		Items []struct {
			QuestionID   string `json:"questionId"`
			DisplayIndex int    `json:"displayIndex"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
	assert.Equal(t, "sub-1", body.Submission.ID)
	assert.Len(t, body.Items, 2)
}

func TestStartSubmission_UnknownToken(t *testing.T) {
	invites := &mocks.MockTestInviteRepository{}
	tests := &mocks.MockTestRepository{}
	invites.On("GetByToken", mock.Anything, "nope").Return(domain.TestInvite{}, domain.ErrNotFound)

	srv := &Server{
		Submissions: usecase.NewSubmissionService(tests, invites, events.NopPublisher{}, false),
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/public/orgs/org-1/invites/nope/start", nil)
	rw := httptest.NewRecorder()
	publicRouter(srv).ServeHTTP(rw, req)

	require.Equal(t, http.StatusNotFound, rw.Code)
	var e respErr
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &e))
	assert.Equal(t, domain.CodeInviteNotFound, e.Error.Code)
}

func TestSubmitAnswers_MalformedBody(t *testing.T) {
	srv := &Server{}
	req := httptest.NewRequest(http.MethodPost, "/v1/public/orgs/org-1/submissions/answers", strings.NewReader("{"))
	rw := httptest.NewRecorder()
	publicRouter(srv).ServeHTTP(rw, req)
	require.Equal(t, http.StatusBadRequest, rw.Code)
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	cfg := config.Config{
		AppEnv:             "test",
		AdminUsername:      "admin",
		AdminPassword:      "pw",
		AdminSessionSecret: "secret",
	}
	srv := &Server{Cfg: cfg, Sessions: NewSessionManager(cfg)}

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"username":"admin","password":"pw"}`))
	rw := httptest.NewRecorder()
	srv.Login(rw, req)

	require.Equal(t, http.StatusOK, rw.Code, rw.Body.String())
	cookies := rw.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "session", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestLogin_BadCredentials(t *testing.T) {
	cfg := config.Config{
		AdminUsername:      "admin",
		AdminPassword:      "pw",
		AdminSessionSecret: "secret",
	}
	srv := &Server{Cfg: cfg, Sessions: NewSessionManager(cfg)}

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"username":"admin","password":"nope"}`))
	rw := httptest.NewRecorder()
	srv.Login(rw, req)

	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestLogin_Argon2StoredHash(t *testing.T) {
	hash, err := HashPassword("pw", defaultArgon2Params)
	require.NoError(t, err)
	cfg := config.Config{
		AdminUsername:      "admin",
		AdminPassword:      hash,
		AdminSessionSecret: "secret",
	}
	srv := &Server{Cfg: cfg, Sessions: NewSessionManager(cfg)}

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"username":"admin","password":"pw"}`))
	rw := httptest.NewRecorder()
	srv.Login(rw, req)

	require.Equal(t, http.StatusOK, rw.Code, rw.Body.String())
}
