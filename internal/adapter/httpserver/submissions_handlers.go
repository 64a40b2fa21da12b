package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fairyhunter13/hireflow/internal/domain"
	"github.com/fairyhunter13/hireflow/internal/usecase"
)

type submissionResponse struct {
	ID           string    `json:"id"`
	OrgID        string    `json:"orgId"`
	TestID       string    `json:"testId"`
	CandidateID  string    `json:"candidateId"`
	OfferID      *string   `json:"offerId,omitempty"`
	NumericScore *int      `json:"numericScore"`
	MaxScore     *int      `json:"maxScore"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toSubmissionResponse(s domain.TestSubmission) submissionResponse {
	return submissionResponse{
		ID: s.ID, OrgID: s.OrgID, TestID: s.TestID, CandidateID: s.CandidateID,
		OfferID: s.OfferID, NumericScore: s.NumericScore, MaxScore: s.MaxScore,
		CreatedAt: s.CreatedAt,
	}
}

type submissionItemResponse struct {
	QuestionID   string `json:"questionId"`
	DisplayIndex int    `json:"displayIndex"`
}

// StartSubmission is the public entry point: the invite token is the only
// credential. It opens a submission with a fresh random question order.
func (s *Server) StartSubmission(w http.ResponseWriter, r *http.Request) {
	res, err := s.Submissions.StartFromInvite(r.Context(), orgIDParam(r), chi.URLParam(r, "token"), nil)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	items := make([]submissionItemResponse, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, submissionItemResponse{QuestionID: it.QuestionID, DisplayIndex: it.DisplayIndex})
	}
	questions := make([]questionResponse, 0, len(res.Questions))
	for _, q := range res.Questions {
		questions = append(questions, toQuestionResponse(q))
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"invite":     toInviteResponse(res.Invite),
		"test":       toTestResponse(res.Test),
		"submission": toSubmissionResponse(res.Submission),
		"questions":  questions,
		"items":      items,
	})
}

type answerRequest struct {
	QuestionID  string   `json:"questionId" validate:"required"`
	ValueText   string   `json:"valueText" validate:"omitempty,max=10000"`
	ValueNumber *float64 `json:"valueNumber"`
}

type submitAnswersRequest struct {
	SubmissionID string          `json:"submissionId" validate:"required,uuid4"`
	InviteID     string          `json:"inviteId" validate:"omitempty,uuid4"`
	Answers      []answerRequest `json:"answers" validate:"required,min=1,dive"`
}

type scoreResponse struct {
	NumericScore *int `json:"numericScore"`
	MaxScore     *int `json:"maxScore"`
}

// SubmitAnswers is the public completion endpoint. It persists the full
// answer set, computes the motivation score when applicable and completes
// the originating invite.
func (s *Server) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	var req submitAnswersRequest
	if details, err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, details)
		return
	}
	answers := make([]domain.TestAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, domain.TestAnswer{QuestionID: a.QuestionID, ValueText: a.ValueText, ValueNumber: a.ValueNumber})
	}
	score, err := s.Submissions.SubmitAnswers(r.Context(), usecase.SubmitAnswersInput{
		OrgID:        orgIDParam(r),
		SubmissionID: req.SubmissionID,
		Answers:      answers,
		InviteID:     req.InviteID,
	})
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{NumericScore: score.NumericScore, MaxScore: score.MaxScore})
}

type answerResponse struct {
	QuestionID  string   `json:"questionId"`
	ValueText   string   `json:"valueText,omitempty"`
	ValueNumber *float64 `json:"valueNumber,omitempty"`
}

// GetSubmission returns the submission aggregate for recruiters.
func (s *Server) GetSubmission(w http.ResponseWriter, r *http.Request) {
	agg, err := s.Submissions.Get(r.Context(), orgIDParam(r), chi.URLParam(r, "submissionID"))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	questions := make([]questionResponse, 0, len(agg.Questions))
	for _, q := range agg.Questions {
		questions = append(questions, toQuestionResponse(q))
	}
	answers := make([]answerResponse, 0, len(agg.Answers))
	for _, a := range agg.Answers {
		answers = append(answers, answerResponse{QuestionID: a.QuestionID, ValueText: a.ValueText, ValueNumber: a.ValueNumber})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"submission": toSubmissionResponse(agg.Submission),
		"test":       toTestResponse(agg.Test),
		"questions":  questions,
		"answers":    answers,
	})
}

type axisCommentRequest struct {
	AxisCode string `json:"axisCode" validate:"required,max=50"`
	Comment  string `json:"comment" validate:"required,max=5000"`
}

type addReviewRequest struct {
	OverallComment string               `json:"overallComment" validate:"omitempty,max=10000"`
	AxisComments   []axisCommentRequest `json:"axisComments" validate:"omitempty,dive"`
}

type reviewResponse struct {
	ID             string               `json:"id"`
	SubmissionID   string               `json:"submissionId"`
	ReviewerID     string               `json:"reviewerId"`
	OverallComment string               `json:"overallComment,omitempty"`
	AxisComments   []domain.AxisComment `json:"axisComments,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
}

func toReviewResponse(rv domain.TestReview) reviewResponse {
	return reviewResponse{
		ID: rv.ID, SubmissionID: rv.SubmissionID, ReviewerID: rv.ReviewerID,
		OverallComment: rv.OverallComment, AxisComments: rv.AxisComments,
		CreatedAt: rv.CreatedAt,
	}
}

// AddReview records the single human review of a submission.
func (s *Server) AddReview(w http.ResponseWriter, r *http.Request) {
	var req addReviewRequest
	if details, err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, details)
		return
	}
	userID, err := ContextSessionReader{}.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	axes := make([]domain.AxisComment, 0, len(req.AxisComments))
	for _, ax := range req.AxisComments {
		axes = append(axes, domain.AxisComment{AxisCode: ax.AxisCode, Comment: ax.Comment})
	}
	rv, err := s.Reviews.Add(r.Context(), usecase.AddReviewInput{
		OrgID:          orgIDParam(r),
		SubmissionID:   chi.URLParam(r, "submissionID"),
		ReviewerID:     userID,
		OverallComment: req.OverallComment,
		AxisComments:   axes,
	})
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, toReviewResponse(rv))
}

func (s *Server) GetReview(w http.ResponseWriter, r *http.Request) {
	rv, err := s.Reviews.GetBySubmission(r.Context(), chi.URLParam(r, "submissionID"))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, toReviewResponse(rv))
}
