package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/hireflow/internal/domain"
	"github.com/fairyhunter13/hireflow/internal/domain/mocks"
	"github.com/fairyhunter13/hireflow/internal/usecase"
)

func TestOfferCreate_StartsDraft(t *testing.T) {
	t.Parallel()
	repo := &mocks.MockOfferRepository{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(o domain.Offer) bool {
		return o.Status == domain.OfferDraft && o.CreatedBy == "user-1"
	})).Return("offer-1", nil)

	svc := usecase.NewOfferService(repo)
	o, err := svc.Create(context.Background(), domain.Offer{
		OrgID: "org-1", Title: "Backend Engineer", CreatedBy: "user-1", Status: domain.OfferPublished,
	})
	require.NoError(t, err)
	assert.Equal(t, "offer-1", o.ID)
	assert.Equal(t, domain.OfferDraft, o.Status)
}

func TestOfferUpdate_CreatedByImmutable(t *testing.T) {
	t.Parallel()
	repo := &mocks.MockOfferRepository{}
	repo.On("GetByID", mock.Anything, "org-1", "offer-1").
		Return(domain.Offer{ID: "offer-1", OrgID: "org-1", CreatedBy: "founder"}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o domain.Offer) bool {
		return o.CreatedBy == "founder" && o.ResponsibleUserID == "user-9"
	})).Return(nil)

	svc := usecase.NewOfferService(repo)
	err := svc.Update(context.Background(), domain.Offer{
		ID: "offer-1", OrgID: "org-1", Title: "Backend Engineer",
		Status: domain.OfferPublished, CreatedBy: "intruder", ResponsibleUserID: "user-9",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestOfferUpdate_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()
	svc := usecase.NewOfferService(&mocks.MockOfferRepository{})
	err := svc.Update(context.Background(), domain.Offer{ID: "offer-1", OrgID: "org-1", Status: "open"})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}
