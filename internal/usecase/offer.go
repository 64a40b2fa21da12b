package usecase

import (
	"fmt"
	"time"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

// OfferService covers job offer CRUD.
type OfferService struct {
	Offers domain.OfferRepository
}

// NewOfferService constructs an OfferService.
func NewOfferService(o domain.OfferRepository) OfferService { return OfferService{Offers: o} }

// List returns all offers of an organization.
func (s OfferService) List(ctx domain.Context, orgID string) ([]domain.Offer, error) {
	return s.Offers.ListByOrg(ctx, orgID)
}

// Get loads an offer.
func (s OfferService) Get(ctx domain.Context, orgID, id string) (domain.Offer, error) {
	return s.Offers.GetByID(ctx, orgID, id)
}

// Create persists a new offer in draft; CreatedBy is immutable audit data.
func (s OfferService) Create(ctx domain.Context, o domain.Offer) (domain.Offer, error) {
	if o.OrgID == "" || o.Title == "" || o.CreatedBy == "" {
		return domain.Offer{}, fmt.Errorf("%w: org, title and creator required", domain.ErrInvalidArgument)
	}
	o.Status = domain.OfferDraft
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	id, err := s.Offers.Create(ctx, o)
	if err != nil {
		return domain.Offer{}, err
	}
	o.ID = id
	return o, nil
}

// Update persists offer edits. The stored CreatedBy wins over whatever the
// caller sends; ResponsibleUserID is the mutable assignment.
func (s OfferService) Update(ctx domain.Context, o domain.Offer) error {
	if o.ID == "" || o.OrgID == "" {
		return fmt.Errorf("%w: id and org required", domain.ErrInvalidArgument)
	}
	switch o.Status {
	case domain.OfferDraft, domain.OfferPublished, domain.OfferArchived:
	default:
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidArgument, o.Status)
	}
	stored, err := s.Offers.GetByID(ctx, o.OrgID, o.ID)
	if err != nil {
		return err
	}
	o.CreatedBy = stored.CreatedBy
	o.CreatedAt = stored.CreatedAt
	o.UpdatedAt = time.Now().UTC()
	return s.Offers.Update(ctx, o)
}

// Delete removes an offer.
func (s OfferService) Delete(ctx domain.Context, orgID, id string) error {
	return s.Offers.DeleteByID(ctx, orgID, id)
}
