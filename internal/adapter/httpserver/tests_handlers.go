package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fairyhunter13/hireflow/internal/domain"
	"github.com/fairyhunter13/hireflow/internal/usecase"
)

type createTestRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Type        string `json:"type" validate:"required,oneof=motivations scenario"`
	Description string `json:"description" validate:"omitempty,max=5000"`
}

type updateTestRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Type        string `json:"type" validate:"required,oneof=motivations scenario"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	IsActive    bool   `json:"isActive"`
}

type questionRequest struct {
	Label         string   `json:"label" validate:"required,max=1000"`
	Kind          string   `json:"kind" validate:"required,oneof=yes_no scale choice long_text"`
	MinValue      *int     `json:"minValue"`
	MaxValue      *int     `json:"maxValue"`
	Options       []string `json:"options" validate:"omitempty,dive,max=200"`
	IsRequired    bool     `json:"isRequired"`
	OrderIndex    int      `json:"orderIndex" validate:"min=0"`
	DimensionCode string   `json:"dimensionCode" validate:"omitempty,max=20"`
	BusinessCode  string   `json:"businessCode" validate:"omitempty,max=50"`
	IsReversed    bool     `json:"isReversed"`
}

type reorderRequest struct {
	Orders []orderPairRequest `json:"orders" validate:"required,min=1,dive"`
}

type orderPairRequest struct {
	ID         string `json:"id" validate:"required"`
	OrderIndex int    `json:"orderIndex" validate:"min=0"`
}

func toOrderPairs(in []orderPairRequest) []domain.OrderPair {
	out := make([]domain.OrderPair, 0, len(in))
	for _, p := range in {
		out = append(out, domain.OrderPair{ID: p.ID, OrderIndex: p.OrderIndex})
	}
	return out
}

type testResponse struct {
	ID          string    `json:"id"`
	OrgID       string    `json:"orgId"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

type questionResponse struct {
	ID            string   `json:"id"`
	TestID        string   `json:"testId"`
	Label         string   `json:"label"`
	Kind          string   `json:"kind"`
	MinValue      *int     `json:"minValue,omitempty"`
	MaxValue      *int     `json:"maxValue,omitempty"`
	Options       []string `json:"options,omitempty"`
	IsRequired    bool     `json:"isRequired"`
	OrderIndex    int      `json:"orderIndex"`
	DimensionCode string   `json:"dimensionCode,omitempty"`
	BusinessCode  string   `json:"businessCode,omitempty"`
	IsReversed    bool     `json:"isReversed"`
}

func toTestResponse(t domain.Test) testResponse {
	return testResponse{
		ID: t.ID, OrgID: t.OrgID, Name: t.Name, Type: t.Type,
		Description: t.Description, IsActive: t.IsActive,
		CreatedBy: t.CreatedBy, CreatedAt: t.CreatedAt,
	}
}

func toQuestionResponse(q domain.TestQuestion) questionResponse {
	return questionResponse{
		ID: q.ID, TestID: q.TestID, Label: q.Label, Kind: q.Kind,
		MinValue: q.MinValue, MaxValue: q.MaxValue, Options: q.Options,
		IsRequired: q.IsRequired, OrderIndex: q.OrderIndex,
		DimensionCode: q.DimensionCode, BusinessCode: q.BusinessCode,
		IsReversed: q.IsReversed,
	}
}

func (s *Server) CreateTest(w http.ResponseWriter, r *http.Request) {
	var req createTestRequest
	if details, err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, details)
		return
	}
	userID, err := ContextSessionReader{}.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	t, err := s.Tests.Create(r.Context(), usecase.CreateTestInput{
		OrgID:       orgIDParam(r),
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		CreatedBy:   userID,
	})
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, toTestResponse(t))
}

func (s *Server) GetTest(w http.ResponseWriter, r *http.Request) {
	tw, err := s.Tests.Get(r.Context(), orgIDParam(r), chi.URLParam(r, "testID"))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	qs := make([]questionResponse, 0, len(tw.Questions))
	for _, q := range tw.Questions {
		qs = append(qs, toQuestionResponse(q))
	}
	writeJSON(w, http.StatusOK, map[string]any{"test": toTestResponse(tw.Test), "questions": qs})
}

func (s *Server) UpdateTest(w http.ResponseWriter, r *http.Request) {
	var req updateTestRequest
	if details, err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, details)
		return
	}
	err := s.Tests.Update(r.Context(), domain.Test{
		ID:          chi.URLParam(r, "testID"),
		OrgID:       orgIDParam(r),
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) DuplicateTest(w http.ResponseWriter, r *http.Request) {
	userID, err := ContextSessionReader{}.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	t, err := s.Tests.Duplicate(r.Context(), orgIDParam(r), chi.URLParam(r, "testID"), userID)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, toTestResponse(t))
}

func (s *Server) ArchiveTest(w http.ResponseWriter, r *http.Request) {
	if err := s.Tests.Archive(r.Context(), orgIDParam(r), chi.URLParam(r, "testID")); err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "archived"})
}

// DeleteTest returns a result object rather than a bare status: clients
// branch on code for user messaging (IN_USE carries the referencing count).
func (s *Server) DeleteTest(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role == "" {
		role = domain.RoleAdmin
	}
	res := s.Tests.Delete(r.Context(), orgIDParam(r), chi.URLParam(r, "testID"), role)
	status := http.StatusOK
	switch res.Code {
	case usecase.DeleteForbidden:
		status = http.StatusForbidden
	case usecase.DeleteNotFound:
		status = http.StatusNotFound
	case usecase.DeleteInUse:
		status = http.StatusConflict
	case usecase.DeleteUnknown:
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, map[string]any{
		"ok":             res.OK,
		"code":           res.Code,
		"flowItemsCount": res.FlowItemsCount,
	})
}

func (s *Server) AddQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if details, err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, details)
		return
	}
	id, err := s.Tests.AddQuestion(r.Context(), domain.TestQuestion{
		TestID:        chi.URLParam(r, "testID"),
		Label:         req.Label,
		Kind:          req.Kind,
		MinValue:      req.MinValue,
		MaxValue:      req.MaxValue,
		Options:       req.Options,
		IsRequired:    req.IsRequired,
		OrderIndex:    req.OrderIndex,
		DimensionCode: req.DimensionCode,
		BusinessCode:  req.BusinessCode,
		IsReversed:    req.IsReversed,
	})
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if details, err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, details)
		return
	}
	err := s.Tests.UpdateQuestion(r.Context(), domain.TestQuestion{
		ID:            chi.URLParam(r, "questionID"),
		TestID:        chi.URLParam(r, "testID"),
		Label:         req.Label,
		Kind:          req.Kind,
		MinValue:      req.MinValue,
		MaxValue:      req.MaxValue,
		Options:       req.Options,
		IsRequired:    req.IsRequired,
		OrderIndex:    req.OrderIndex,
		DimensionCode: req.DimensionCode,
		BusinessCode:  req.BusinessCode,
		IsReversed:    req.IsReversed,
	})
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) ReorderQuestions(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if details, err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, details)
		return
	}
	err := s.Tests.ReorderQuestions(r.Context(), orgIDParam(r), chi.URLParam(r, "testID"), toOrderPairs(req.Orders))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
