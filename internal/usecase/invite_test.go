package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/hireflow/internal/domain"
	"github.com/fairyhunter13/hireflow/internal/domain/mocks"
	"github.com/fairyhunter13/hireflow/internal/usecase"
)

func sendInput() usecase.SendInviteInput {
	return usecase.SendInviteInput{
		OrgID:          "org-1",
		CandidateID:    "cand-1",
		TestID:         "test-1",
		ExpiresInHours: 72,
	}
}

func TestSendForCandidate_CreatesInviteAndForcesStatus(t *testing.T) {
	t.Parallel()
	invites := &mocks.MockTestInviteRepository{}
	candidates := &mocks.MockCandidateRepository{}
	events := &mocks.MockEventPublisher{}

	invites.On("ListByCandidate", mock.Anything, "org-1", "cand-1").Return([]domain.TestInvite{}, nil)
	invites.On("CreateInvite", mock.Anything, mock.MatchedBy(func(inv domain.TestInvite) bool {
		return inv.Status == domain.InvitePending &&
			inv.TestID == "test-1" &&
			len(inv.Token) >= 43 && // 32 bytes base64url
			inv.ExpiresAt.After(time.Now().Add(71*time.Hour))
	})).Return("inv-1", nil)
	candidates.On("GetByID", mock.Anything, "org-1", "cand-1").
		Return(domain.Candidate{ID: "cand-1", OrgID: "org-1", FullName: "Jo", Status: domain.CandidateScreening}, nil)
	candidates.On("Update", mock.Anything, mock.MatchedBy(func(c domain.Candidate) bool {
		return c.Status == domain.CandidateTest && c.FullName == "Jo"
	})).Return(nil)
	events.On("Publish", mock.Anything, mock.MatchedBy(func(ev domain.Event) bool {
		return ev.Kind == domain.EventInviteSent && ev.InviteID == "inv-1"
	})).Return(nil)

	svc := usecase.NewInviteService(invites, candidates, events)
	inv, err := svc.SendForCandidate(context.Background(), sendInput())
	require.NoError(t, err)
	assert.Equal(t, "inv-1", inv.ID)

	invites.AssertExpectations(t)
	candidates.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestSendForCandidate_ReusesActiveInvite_StatusWriteOnce(t *testing.T) {
	t.Parallel()
	invites := &mocks.MockTestInviteRepository{}
	candidates := &mocks.MockCandidateRepository{}

	active := domain.TestInvite{
		ID:          "inv-1",
		OrgID:       "org-1",
		CandidateID: "cand-1",
		TestID:      "test-1",
		Status:      domain.InvitePending,
		ExpiresAt:   time.Now().UTC().Add(48 * time.Hour),
	}

	// First call: no invite yet, candidate still in screening.
	invites.On("ListByCandidate", mock.Anything, "org-1", "cand-1").Return([]domain.TestInvite{}, nil).Once()
	invites.On("CreateInvite", mock.Anything, mock.Anything).Return("inv-1", nil).Once()
	candidates.On("GetByID", mock.Anything, "org-1", "cand-1").
		Return(domain.Candidate{ID: "cand-1", OrgID: "org-1", Status: domain.CandidateScreening}, nil).Once()
	candidates.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	// Second call: active invite exists, candidate already in test. No create, no update.
	invites.On("ListByCandidate", mock.Anything, "org-1", "cand-1").Return([]domain.TestInvite{active}, nil).Once()
	candidates.On("GetByID", mock.Anything, "org-1", "cand-1").
		Return(domain.Candidate{ID: "cand-1", OrgID: "org-1", Status: domain.CandidateTest}, nil).Once()

	svc := usecase.NewInviteService(invites, candidates, nil)
	first, err := svc.SendForCandidate(context.Background(), sendInput())
	require.NoError(t, err)
	second, err := svc.SendForCandidate(context.Background(), sendInput())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	invites.AssertExpectations(t)
	candidates.AssertExpectations(t)
	candidates.AssertNumberOfCalls(t, "Update", 1)
	invites.AssertNumberOfCalls(t, "CreateInvite", 1)
}

func TestSendForCandidate_DifferentFlowItemCreatesNewInvite(t *testing.T) {
	t.Parallel()
	invites := &mocks.MockTestInviteRepository{}
	candidates := &mocks.MockCandidateRepository{}

	otherItem := "item-A"
	existing := domain.TestInvite{
		ID:         "inv-1",
		OrgID:      "org-1",
		TestID:     "test-1",
		FlowItemID: &otherItem,
		Status:     domain.InvitePending,
		ExpiresAt:  time.Now().UTC().Add(time.Hour),
	}
	invites.On("ListByCandidate", mock.Anything, "org-1", "cand-1").Return([]domain.TestInvite{existing}, nil)
	invites.On("CreateInvite", mock.Anything, mock.MatchedBy(func(inv domain.TestInvite) bool {
		return inv.FlowItemID != nil && *inv.FlowItemID == "item-B"
	})).Return("inv-2", nil)
	candidates.On("GetByID", mock.Anything, "org-1", "cand-1").
		Return(domain.Candidate{ID: "cand-1", OrgID: "org-1", Status: domain.CandidateTest}, nil)

	in := sendInput()
	item := "item-B"
	in.FlowItemID = &item

	svc := usecase.NewInviteService(invites, candidates, nil)
	inv, err := svc.SendForCandidate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "inv-2", inv.ID)
	invites.AssertExpectations(t)
}

func TestSendForCandidate_ExpiredInviteNotReused(t *testing.T) {
	t.Parallel()
	invites := &mocks.MockTestInviteRepository{}
	candidates := &mocks.MockCandidateRepository{}

	expired := domain.TestInvite{
		ID:        "inv-old",
		OrgID:     "org-1",
		TestID:    "test-1",
		Status:    domain.InvitePending,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}
	invites.On("ListByCandidate", mock.Anything, "org-1", "cand-1").Return([]domain.TestInvite{expired}, nil)
	invites.On("CreateInvite", mock.Anything, mock.Anything).Return("inv-new", nil)
	candidates.On("GetByID", mock.Anything, "org-1", "cand-1").
		Return(domain.Candidate{ID: "cand-1", OrgID: "org-1", Status: domain.CandidateTest}, nil)

	svc := usecase.NewInviteService(invites, candidates, nil)
	inv, err := svc.SendForCandidate(context.Background(), sendInput())
	require.NoError(t, err)
	assert.Equal(t, "inv-new", inv.ID)
}

func TestSendForCandidate_InvalidInput(t *testing.T) {
	t.Parallel()
	svc := usecase.NewInviteService(&mocks.MockTestInviteRepository{}, &mocks.MockCandidateRepository{}, nil)

	_, err := svc.SendForCandidate(context.Background(), usecase.SendInviteInput{OrgID: "org-1"})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	in := sendInput()
	in.ExpiresInHours = 0
	_, err = svc.SendForCandidate(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestRevoke_CompletedInviteIsConflict(t *testing.T) {
	t.Parallel()
	invites := &mocks.MockTestInviteRepository{}
	done := domain.TestInvite{ID: "inv-1", Status: domain.InviteCompleted}
	invites.On("ListByCandidate", mock.Anything, "org-1", "cand-1").Return([]domain.TestInvite{done}, nil)

	svc := usecase.NewInviteService(invites, &mocks.MockCandidateRepository{}, nil)
	err := svc.Revoke(context.Background(), "org-1", "cand-1", "inv-1")
	require.ErrorIs(t, err, domain.ErrConflict)
}
