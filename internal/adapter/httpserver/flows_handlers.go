package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

type createFlowRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type flowItemRequest struct {
	OrderIndex  int    `json:"orderIndex" validate:"min=0"`
	Kind        string `json:"kind" validate:"required,oneof=video test"`
	Title       string `json:"title" validate:"omitempty,max=200"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	VideoURL    string `json:"videoUrl" validate:"omitempty,url,max=2000"`
	TestID      string `json:"testId" validate:"omitempty,uuid4"`
	IsRequired  bool   `json:"isRequired"`
}

type flowResponse struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"orgId"`
	OfferID   string    `json:"offerId"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

type flowItemResponse struct {
	ID          string `json:"id"`
	FlowID      string `json:"flowId"`
	OrderIndex  int    `json:"orderIndex"`
	Kind        string `json:"kind"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
	TestID      string `json:"testId,omitempty"`
	IsRequired  bool   `json:"isRequired"`
}

func toFlowResponse(f domain.TestFlow) flowResponse {
	return flowResponse{
		ID: f.ID, OrgID: f.OrgID, OfferID: f.OfferID, Name: f.Name,
		IsActive: f.IsActive, CreatedBy: f.CreatedBy, CreatedAt: f.CreatedAt,
	}
}

func toFlowItemResponse(it domain.TestFlowItem) flowItemResponse {
	return flowItemResponse{
		ID: it.ID, FlowID: it.FlowID, OrderIndex: it.OrderIndex, Kind: it.Kind,
		Title: it.Title, Description: it.Description, VideoURL: it.VideoURL,
		TestID: it.TestID, IsRequired: it.IsRequired,
	}
}

func (s *Server) GetOfferFlow(w http.ResponseWriter, r *http.Request) {
	fw, err := s.Flows.GetByOffer(r.Context(), orgIDParam(r), chi.URLParam(r, "offerID"))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	items := make([]flowItemResponse, 0, len(fw.Items))
	for _, it := range fw.Items {
		items = append(items, toFlowItemResponse(it))
	}
	writeJSON(w, http.StatusOK, map[string]any{"flow": toFlowResponse(fw.Flow), "items": items})
}

func (s *Server) CreateOfferFlow(w http.ResponseWriter, r *http.Request) {
	var req createFlowRequest
	if details, err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, details)
		return
	}
	userID, err := ContextSessionReader{}.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	f, err := s.Flows.Create(r.Context(), orgIDParam(r), chi.URLParam(r, "offerID"), req.Name, userID)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, toFlowResponse(f))
}

func (s *Server) AddFlowItem(w http.ResponseWriter, r *http.Request) {
	var req flowItemRequest
	if details, err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, details)
		return
	}
	id, err := s.Flows.AddItem(r.Context(), domain.TestFlowItem{
		FlowID:      chi.URLParam(r, "flowID"),
		OrderIndex:  req.OrderIndex,
		Kind:        req.Kind,
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		TestID:      req.TestID,
		IsRequired:  req.IsRequired,
	})
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) ReorderFlowItems(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if details, err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, details)
		return
	}
	if err := s.Flows.ReorderItems(r.Context(), chi.URLParam(r, "flowID"), toOrderPairs(req.Orders)); err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) DeleteFlowItem(w http.ResponseWriter, r *http.Request) {
	if err := s.Flows.DeleteItem(r.Context(), chi.URLParam(r, "flowID"), chi.URLParam(r, "itemID")); err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
