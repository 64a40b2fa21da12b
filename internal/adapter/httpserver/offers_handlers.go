package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

type offerRequest struct {
	Title             string `json:"title" validate:"required,max=200"`
	Description       string `json:"description" validate:"omitempty,max=10000"`
	Status            string `json:"status" validate:"omitempty,oneof=draft published archived"`
	Location          string `json:"location" validate:"omitempty,max=200"`
	ContractType      string `json:"contractType" validate:"omitempty,max=50"`
	SalaryMin         *int   `json:"salaryMin" validate:"omitempty,min=0"`
	SalaryMax         *int   `json:"salaryMax" validate:"omitempty,min=0"`
	ResponsibleUserID string `json:"responsibleUserId" validate:"omitempty,max=100"`
}

type offerResponse struct {
	ID                string    `json:"id"`
	OrgID             string    `json:"orgId"`
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	Status            string    `json:"status"`
	Location          string    `json:"location,omitempty"`
	ContractType      string    `json:"contractType,omitempty"`
	SalaryMin         *int      `json:"salaryMin,omitempty"`
	SalaryMax         *int      `json:"salaryMax,omitempty"`
	CreatedBy         string    `json:"createdBy"`
	ResponsibleUserID string    `json:"responsibleUserId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func toOfferResponse(o domain.Offer) offerResponse {
	return offerResponse{
		ID: o.ID, OrgID: o.OrgID, Title: o.Title, Description: o.Description,
		Status: string(o.Status), Location: o.Location, ContractType: o.ContractType,
		SalaryMin: o.SalaryMin, SalaryMax: o.SalaryMax,
		CreatedBy: o.CreatedBy, ResponsibleUserID: o.ResponsibleUserID,
		CreatedAt: o.CreatedAt, UpdatedAt: o.UpdatedAt,
	}
}

func (s *Server) ListOffers(w http.ResponseWriter, r *http.Request) {
	list, err := s.Offers.List(r.Context(), orgIDParam(r))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	out := make([]offerResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOfferResponse(o))
	}
	writeJSON(w, http.StatusOK, map[string]any{"offers": out})
}

func (s *Server) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var req offerRequest
	if details, err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, details)
		return
	}
	userID, err := ContextSessionReader{}.CurrentUserID(r.Context())
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	o, err := s.Offers.Create(r.Context(), domain.Offer{
		OrgID:             orgIDParam(r),
		Title:             req.Title,
		Description:       req.Description,
		Location:          req.Location,
		ContractType:      req.ContractType,
		SalaryMin:         req.SalaryMin,
		SalaryMax:         req.SalaryMax,
		CreatedBy:         userID,
		ResponsibleUserID: req.ResponsibleUserID,
	})
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, toOfferResponse(o))
}

func (s *Server) GetOffer(w http.ResponseWriter, r *http.Request) {
	o, err := s.Offers.Get(r.Context(), orgIDParam(r), chi.URLParam(r, "offerID"))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, toOfferResponse(o))
}

func (s *Server) UpdateOffer(w http.ResponseWriter, r *http.Request) {
	var req offerRequest
	if details, err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, details)
		return
	}
	status := domain.OfferStatus(req.Status)
	if req.Status == "" {
		status = domain.OfferDraft
	}
	err := s.Offers.Update(r.Context(), domain.Offer{
		ID:                chi.URLParam(r, "offerID"),
		OrgID:             orgIDParam(r),
		Title:             req.Title,
		Description:       req.Description,
		Status:            status,
		Location:          req.Location,
		ContractType:      req.ContractType,
		SalaryMin:         req.SalaryMin,
		SalaryMax:         req.SalaryMax,
		ResponsibleUserID: req.ResponsibleUserID,
	})
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	if err := s.Offers.Delete(r.Context(), orgIDParam(r), chi.URLParam(r, "offerID")); err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
