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

func TestAddReview_NormalizesAndPersists(t *testing.T) {
	t.Parallel()
	tests := &mocks.MockTestRepository{}
	tests.On("GetReviewBySubmissionID", mock.Anything, "sub-1").Return(domain.TestReview{}, domain.ErrNotFound)
	tests.On("AddReview", mock.Anything, mock.MatchedBy(func(r domain.TestReview) bool {
		return r.OverallComment == "solid profile" &&
			len(r.AxisComments) == 1 &&
			r.AxisComments[0].AxisCode == "D1" &&
			r.AxisComments[0].Comment == "strong"
	})).Return("rev-1", nil)

	svc := usecase.NewReviewService(tests)
	rev, err := svc.Add(context.Background(), usecase.AddReviewInput{
		OrgID:          "org-1",
		SubmissionID:   "sub-1",
		ReviewerID:     "user-1",
		OverallComment: "  solid profile  ",
		AxisComments:   []domain.AxisComment{{AxisCode: " D1 ", Comment: " strong "}},
	})
	require.NoError(t, err)
	assert.Equal(t, "rev-1", rev.ID)
	tests.AssertExpectations(t)
}

func TestAddReview_SecondReviewIsConflict(t *testing.T) {
	t.Parallel()
	tests := &mocks.MockTestRepository{}
	tests.On("GetReviewBySubmissionID", mock.Anything, "sub-1").Return(domain.TestReview{ID: "rev-1"}, nil)

	svc := usecase.NewReviewService(tests)
	_, err := svc.Add(context.Background(), usecase.AddReviewInput{
		OrgID: "org-1", SubmissionID: "sub-1", ReviewerID: "user-2",
	})
	require.ErrorIs(t, err, domain.ErrConflict)
	tests.AssertNotCalled(t, "AddReview", mock.Anything, mock.Anything)
}

func TestAddReview_AxisPairRequiresBothFields(t *testing.T) {
	t.Parallel()
	svc := usecase.NewReviewService(&mocks.MockTestRepository{})
	_, err := svc.Add(context.Background(), usecase.AddReviewInput{
		OrgID: "org-1", SubmissionID: "sub-1", ReviewerID: "user-1",
		AxisComments: []domain.AxisComment{{AxisCode: "D1", Comment: "  "}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestAddReview_MissingIdentifiers(t *testing.T) {
	t.Parallel()
	svc := usecase.NewReviewService(&mocks.MockTestRepository{})
	_, err := svc.Add(context.Background(), usecase.AddReviewInput{SubmissionID: "sub-1"})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}
