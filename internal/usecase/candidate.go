package usecase

import (
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

// CandidateService covers the candidate pipeline CRUD.
type CandidateService struct {
	Candidates domain.CandidateRepository
}

// NewCandidateService constructs a CandidateService.
func NewCandidateService(c domain.CandidateRepository) CandidateService {
	return CandidateService{Candidates: c}
}

// List returns all candidates of an organization.
func (s CandidateService) List(ctx domain.Context, orgID string) ([]domain.Candidate, error) {
	return s.Candidates.ListByOrg(ctx, orgID)
}

// Create registers a candidate from the intake form; candidates start in "new".
func (s CandidateService) Create(ctx domain.Context, c domain.Candidate) (domain.Candidate, error) {
	if c.OrgID == "" || c.FullName == "" {
		return domain.Candidate{}, fmt.Errorf("%w: org and fullName required", domain.ErrInvalidArgument)
	}
	c.Status = domain.CandidateNew
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	id, err := s.Candidates.Create(ctx, c)
	if err != nil {
		return domain.Candidate{}, err
	}
	c.ID = id
	return c, nil
}

// Get loads a candidate.
func (s CandidateService) Get(ctx domain.Context, orgID, id string) (domain.Candidate, error) {
	return s.Candidates.GetByID(ctx, orgID, id)
}

// Update persists recruiter edits as a full-record write.
func (s CandidateService) Update(ctx domain.Context, c domain.Candidate) error {
	if c.ID == "" || c.OrgID == "" {
		return fmt.Errorf("%w: id and org required", domain.ErrInvalidArgument)
	}
	if !validCandidateStatus(c.Status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidArgument, c.Status)
	}
	c.UpdatedAt = time.Now().UTC()
	return s.Candidates.Update(ctx, c)
}

// UpdateNote replaces the free-form recruiter note.
func (s CandidateService) UpdateNote(ctx domain.Context, orgID, id, note string) error {
	return s.Candidates.UpdateNote(ctx, orgID, id, note)
}

// AttachCV records résumé metadata; the MIME type is sniffed from content
// rather than trusted from the upload.
func (s CandidateService) AttachCV(ctx domain.Context, orgID, id, fileName string, data []byte) (domain.CVMeta, error) {
	if len(data) == 0 {
		return domain.CVMeta{}, fmt.Errorf("%w: empty cv upload", domain.ErrInvalidArgument)
	}
	meta := domain.CVMeta{
		FileName:   fileName,
		MIME:       mimetype.Detect(data).String(),
		Size:       int64(len(data)),
		UploadedAt: time.Now().UTC(),
	}
	if err := s.Candidates.AttachCV(ctx, orgID, id, meta); err != nil {
		return domain.CVMeta{}, err
	}
	return meta, nil
}

// Archive soft-removes a candidate by forcing the archived status.
func (s CandidateService) Archive(ctx domain.Context, orgID, id string) error {
	cand, err := s.Candidates.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}
	if cand.Status == domain.CandidateArchived {
		return nil
	}
	cand.Status = domain.CandidateArchived
	cand.UpdatedAt = time.Now().UTC()
	return s.Candidates.Update(ctx, cand)
}

// Delete hard-removes a candidate. CV blob removal cascades in external storage.
func (s CandidateService) Delete(ctx domain.Context, orgID, id string) error {
	return s.Candidates.DeleteByID(ctx, orgID, id)
}

func validCandidateStatus(st domain.CandidateStatus) bool {
	switch st {
	case domain.CandidateNew, domain.CandidateScreening, domain.CandidateTest,
		domain.CandidateInterview, domain.CandidateOffer, domain.CandidateHired,
		domain.CandidateArchived, domain.CandidateRejected:
		return true
	}
	return false
}
