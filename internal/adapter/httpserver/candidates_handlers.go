package httpserver

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

type candidateRequest struct {
	FullName string   `json:"fullName" validate:"required,max=200"`
	Email    string   `json:"email" validate:"omitempty,email"`
	Phone    string   `json:"phone" validate:"omitempty,max=40"`
	Location string   `json:"location" validate:"omitempty,max=200"`
	Status   string   `json:"status" validate:"omitempty,max=20"`
	Source   string   `json:"source" validate:"omitempty,max=100"`
	Tags     []string `json:"tags" validate:"omitempty,dive,max=50"`
	Note     string   `json:"note" validate:"omitempty,max=5000"`
	OfferID  *string  `json:"offerId" validate:"omitempty,uuid4"`
}

type cvMetaResponse struct {
	FileName   string    `json:"fileName"`
	MIME       string    `json:"mime"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type candidateResponse struct {
	ID        string          `json:"id"`
	OrgID     string          `json:"orgId"`
	FullName  string          `json:"fullName"`
	Email     string          `json:"email,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Location  string          `json:"location,omitempty"`
	Status    string          `json:"status"`
	Source    string          `json:"source,omitempty"`
	Tags      []string        `json:"tags,omitempty"`
	Note      string          `json:"note,omitempty"`
	OfferID   *string         `json:"offerId,omitempty"`
	CV        *cvMetaResponse `json:"cv,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func toCandidateResponse(c domain.Candidate) candidateResponse {
	resp := candidateResponse{
		ID: c.ID, OrgID: c.OrgID, FullName: c.FullName, Email: c.Email,
		Phone: c.Phone, Location: c.Location, Status: string(c.Status),
		Source: c.Source, Tags: c.Tags, Note: c.Note, OfferID: c.OfferID,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
	if c.CV != nil {
		resp.CV = &cvMetaResponse{FileName: c.CV.FileName, MIME: c.CV.MIME, Size: c.CV.Size, UploadedAt: c.CV.UploadedAt}
	}
	return resp
}

func (s *Server) ListCandidates(w http.ResponseWriter, r *http.Request) {
	list, err := s.Candidates.List(r.Context(), orgIDParam(r))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	out := make([]candidateResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCandidateResponse(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"candidates": out})
}

func (s *Server) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req candidateRequest
	if details, err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, details)
		return
	}
	c, err := s.Candidates.Create(r.Context(), domain.Candidate{
		OrgID:    orgIDParam(r),
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Location: req.Location,
		Source:   req.Source,
		Tags:     req.Tags,
		Note:     req.Note,
		OfferID:  req.OfferID,
	})
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, toCandidateResponse(c))
}

func (s *Server) GetCandidate(w http.ResponseWriter, r *http.Request) {
	c, err := s.Candidates.Get(r.Context(), orgIDParam(r), chi.URLParam(r, "candidateID"))
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, toCandidateResponse(c))
}

func (s *Server) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	var req candidateRequest
	if details, err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, details)
		return
	}
	err := s.Candidates.Update(r.Context(), domain.Candidate{
		ID:       chi.URLParam(r, "candidateID"),
		OrgID:    orgIDParam(r),
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Location: req.Location,
		Status:   domain.CandidateStatus(req.Status),
		Source:   req.Source,
		Tags:     req.Tags,
		Note:     req.Note,
		OfferID:  req.OfferID,
	})
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type noteRequest struct {
	Note string `json:"note" validate:"max=5000"`
}

func (s *Server) UpdateCandidateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if details, err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err, details)
		return
	}
	if err := s.Candidates.UpdateNote(r.Context(), orgIDParam(r), chi.URLParam(r, "candidateID"), req.Note); err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// UploadCandidateCV accepts a multipart "cv" file and records its metadata.
func (s *Server) UploadCandidateCV(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.Cfg.MaxCVUploadMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, r, fmt.Errorf("%w: multipart body too large or malformed", domain.ErrInvalidArgument), nil)
		return
	}
	file, header, err := r.FormFile("cv")
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: cv file required", domain.ErrInvalidArgument), nil)
		return
	}
	defer func() { _ = file.Close() }()
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, fmt.Errorf("read cv: %w", err), nil)
		return
	}
	meta, err := s.Candidates.AttachCV(r.Context(), orgIDParam(r), chi.URLParam(r, "candidateID"), header.Filename, data)
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, cvMetaResponse{FileName: meta.FileName, MIME: meta.MIME, Size: meta.Size, UploadedAt: meta.UploadedAt})
}

func (s *Server) ArchiveCandidate(w http.ResponseWriter, r *http.Request) {
	if err := s.Candidates.Archive(r.Context(), orgIDParam(r), chi.URLParam(r, "candidateID")); err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "archived"})
}

func (s *Server) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	if err := s.Candidates.Delete(r.Context(), orgIDParam(r), chi.URLParam(r, "candidateID")); err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
