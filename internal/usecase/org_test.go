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

func orgMocks(userID string) (*mocks.MockOrgRepository, *mocks.MockMembershipRepository, *mocks.MockSessionReader) {
	orgs := &mocks.MockOrgRepository{}
	memberships := &mocks.MockMembershipRepository{}
	session := &mocks.MockSessionReader{}
	session.On("CurrentUserID", mock.Anything).Return(userID, nil)
	return orgs, memberships, session
}

func TestEnsureOnFirstLogin_CreatesOrgAndOwnerMembership(t *testing.T) {
	t.Parallel()
	orgs, memberships, session := orgMocks("user-12345678-abc")
	memberships.On("ListByUser", mock.Anything, "user-12345678-abc").Return([]domain.Membership{}, nil)
	orgs.On("Create", mock.Anything, mock.MatchedBy(func(o domain.Organization) bool {
		return o.Name == "Acme Corp" && o.Slug == "acme-corp-user-123" && o.CreatedBy == "user-12345678-abc"
	})).Return("org-1", nil)
	memberships.On("Create", mock.Anything, mock.MatchedBy(func(m domain.Membership) bool {
		return m.OrgID == "org-1" && m.Role == domain.RoleOwner
	})).Return(nil)

	svc := usecase.NewOrgService(orgs, memberships, session)
	res, err := svc.EnsureOnFirstLogin(context.Background(), "Acme Corp")
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "org-1", res.OrgID)
	assert.Equal(t, "acme-corp-user-123", res.Slug)
	orgs.AssertExpectations(t)
	memberships.AssertExpectations(t)
}

func TestEnsureOnFirstLogin_ShortCircuitsForExistingMember(t *testing.T) {
	t.Parallel()
	orgs, memberships, session := orgMocks("user-1")
	memberships.On("ListByUser", mock.Anything, "user-1").
		Return([]domain.Membership{{UserID: "user-1", OrgID: "org-9", Role: domain.RoleOwner}}, nil)

	svc := usecase.NewOrgService(orgs, memberships, session)
	for range 2 {
		res, err := svc.EnsureOnFirstLogin(context.Background(), "whatever")
		require.NoError(t, err)
		assert.False(t, res.Created)
	}
	orgs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEnsureOnFirstLogin_FallbackNameWhenTooShort(t *testing.T) {
	t.Parallel()
	orgs, memberships, session := orgMocks("user-1")
	memberships.On("ListByUser", mock.Anything, "user-1").Return([]domain.Membership{}, nil)
	orgs.On("Create", mock.Anything, mock.MatchedBy(func(o domain.Organization) bool {
		return o.Name == usecase.FallbackOrgName
	})).Return("org-1", nil)
	memberships.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := usecase.NewOrgService(orgs, memberships, session)
	res, err := svc.EnsureOnFirstLogin(context.Background(), " ab ")
	require.NoError(t, err)
	assert.True(t, res.Created)
}

func TestEnsureOnFirstLogin_SlugCollisionRetriesOnce(t *testing.T) {
	t.Parallel()
	orgs, memberships, session := orgMocks("user-12345678")
	memberships.On("ListByUser", mock.Anything, "user-12345678").Return([]domain.Membership{}, nil)

	orgs.On("Create", mock.Anything, mock.MatchedBy(func(o domain.Organization) bool {
		return o.Slug == "acme-user-123"
	})).Return("", domain.ErrConflict).Once()
	orgs.On("Create", mock.Anything, mock.MatchedBy(func(o domain.Organization) bool {
		return len(o.Slug) == len("acme-user-123")+5 // "-" + 4 hex chars
	})).Return("org-1", nil).Once()
	memberships.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := usecase.NewOrgService(orgs, memberships, session)
	res, err := svc.EnsureOnFirstLogin(context.Background(), "Acme")
	require.NoError(t, err)
	assert.True(t, res.Created)
	orgs.AssertExpectations(t)
}

func TestEnsureOnFirstLogin_SecondCollisionPropagates(t *testing.T) {
	t.Parallel()
	orgs, memberships, session := orgMocks("user-1")
	memberships.On("ListByUser", mock.Anything, "user-1").Return([]domain.Membership{}, nil)
	orgs.On("Create", mock.Anything, mock.Anything).Return("", domain.ErrConflict).Twice()

	svc := usecase.NewOrgService(orgs, memberships, session)
	_, err := svc.EnsureOnFirstLogin(context.Background(), "Acme")
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestEnsureOnFirstLogin_Unauthenticated(t *testing.T) {
	t.Parallel()
	orgs := &mocks.MockOrgRepository{}
	memberships := &mocks.MockMembershipRepository{}
	session := &mocks.MockSessionReader{}
	session.On("CurrentUserID", mock.Anything).Return("", domain.ErrUnauthenticated)

	svc := usecase.NewOrgService(orgs, memberships, session)
	_, err := svc.EnsureOnFirstLogin(context.Background(), "Acme")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}
