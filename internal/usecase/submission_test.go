package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/hireflow/internal/domain"
	"github.com/fairyhunter13/hireflow/internal/domain/mocks"
	"github.com/fairyhunter13/hireflow/internal/usecase"
)

func pendingInvite() domain.TestInvite {
	return domain.TestInvite{
		ID:          "inv-1",
		OrgID:       "org-1",
		CandidateID: "cand-1",
		TestID:      "test-1",
		Token:       "tok",
		Status:      domain.InvitePending,
		ExpiresAt:   time.Now().UTC().Add(time.Hour),
	}
}

func activeTest(n int) domain.TestWithQuestions {
	qs := make([]domain.TestQuestion, n)
	for i := range qs {
		qs[i] = domain.TestQuestion{ID: fmt.Sprintf("q%d", i+1), TestID: "test-1", Kind: domain.QuestionYesNo, OrderIndex: i + 1}
	}
	return domain.TestWithQuestions{
		Test:      domain.Test{ID: "test-1", OrgID: "org-1", Type: domain.TestTypeMotivations, IsActive: true},
		Questions: qs,
	}
}

func TestStartFromInvite_DisplayIndexIsPermutation(t *testing.T) {
	t.Parallel()
	tests := &mocks.MockTestRepository{}
	invites := &mocks.MockTestInviteRepository{}

	const n = 12
	invites.On("GetByToken", mock.Anything, "tok").Return(pendingInvite(), nil)
	tests.On("GetTestWithQuestions", mock.Anything, "org-1", "test-1").Return(activeTest(n), nil)
	tests.On("StartSubmission", mock.Anything, mock.Anything).Return("sub-1", nil)
	tests.On("CreateSubmissionItems", mock.Anything, "sub-1", mock.Anything).Return(nil)
	invites.On("LinkSubmission", mock.Anything, "inv-1", "sub-1").Return(nil)

	svc := usecase.NewSubmissionService(tests, invites, nil, false)
	res, err := svc.StartFromInvite(context.Background(), "org-1", "tok", nil)
	require.NoError(t, err)
	require.Len(t, res.Items, n)
	require.Len(t, res.Questions, n)

	// displayIndex is exactly 1..N with no gaps or repeats.
	seenIdx := map[int]bool{}
	seenIDs := map[string]bool{}
	for i, it := range res.Items {
		assert.Equal(t, i+1, it.DisplayIndex)
		seenIdx[it.DisplayIndex] = true
		seenIDs[it.QuestionID] = true
		assert.Equal(t, res.Questions[i].ID, it.QuestionID)
	}
	assert.Len(t, seenIdx, n)

	// the presented questions are a permutation of the authored set.
	for _, q := range activeTest(n).Questions {
		assert.True(t, seenIDs[q.ID], "question %s missing from items", q.ID)
	}
	tests.AssertExpectations(t)
	invites.AssertExpectations(t)
}

func TestStartFromInvite_ValidationChain(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		invite   domain.TestInvite
		inviteErr error
		orgID    string
		test     domain.TestWithQuestions
		testErr  error
		wantCode string
	}{
		{
			name:      "unknown token",
			inviteErr: domain.ErrNotFound,
			orgID:     "org-1",
			wantCode:  domain.CodeInviteNotFound,
		},
		{
			name:     "org mismatch",
			invite:   pendingInvite(),
			orgID:    "org-2",
			wantCode: domain.CodeInviteOrgMismatch,
		},
		{
			name: "revoked",
			invite: func() domain.TestInvite {
				i := pendingInvite()
				i.Status = domain.InviteRevoked
				return i
			}(),
			orgID:    "org-1",
			wantCode: domain.CodeInviteRevoked,
		},
		{
			name: "completed",
			invite: func() domain.TestInvite {
				i := pendingInvite()
				i.Status = domain.InviteCompleted
				return i
			}(),
			orgID:    "org-1",
			wantCode: domain.CodeInviteCompleted,
		},
		{
			name: "expired",
			invite: func() domain.TestInvite {
				i := pendingInvite()
				i.ExpiresAt = time.Now().UTC().Add(-time.Second)
				return i
			}(),
			orgID:    "org-1",
			wantCode: domain.CodeInviteExpired,
		},
		{
			name:     "test missing",
			invite:   pendingInvite(),
			orgID:    "org-1",
			testErr:  domain.ErrNotFound,
			wantCode: domain.CodeTestNotFound,
		},
		{
			name:   "test inactive",
			invite: pendingInvite(),
			orgID:  "org-1",
			test: domain.TestWithQuestions{
				Test: domain.Test{ID: "test-1", OrgID: "org-1", IsActive: false},
			},
			wantCode: domain.CodeTestInactive,
		},
		{
			name:   "zero questions",
			invite: pendingInvite(),
			orgID:  "org-1",
			test: domain.TestWithQuestions{
				Test: domain.Test{ID: "test-1", OrgID: "org-1", IsActive: true},
			},
			wantCode: domain.CodeNoQuestions,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tests := &mocks.MockTestRepository{}
			invites := &mocks.MockTestInviteRepository{}
			if tc.inviteErr != nil {
				invites.On("GetByToken", mock.Anything, "tok").Return(domain.TestInvite{}, tc.inviteErr)
			} else {
				invites.On("GetByToken", mock.Anything, "tok").Return(tc.invite, nil)
			}
			if tc.testErr != nil {
				tests.On("GetTestWithQuestions", mock.Anything, mock.Anything, mock.Anything).Return(domain.TestWithQuestions{}, tc.testErr)
			} else {
				tests.On("GetTestWithQuestions", mock.Anything, mock.Anything, mock.Anything).Return(tc.test, nil)
			}

			svc := usecase.NewSubmissionService(tests, invites, nil, false)
			_, err := svc.StartFromInvite(context.Background(), tc.orgID, "tok", nil)
			require.Error(t, err)
			assert.Equal(t, tc.wantCode, domain.FlowCode(err))
		})
	}
}

func TestSubmitAnswers_EmptySet(t *testing.T) {
	t.Parallel()
	svc := usecase.NewSubmissionService(&mocks.MockTestRepository{}, &mocks.MockTestInviteRepository{}, nil, false)
	_, err := svc.SubmitAnswers(context.Background(), usecase.SubmitAnswersInput{OrgID: "org-1", SubmissionID: "sub-1"})
	assert.Equal(t, domain.CodeNoAnswers, domain.FlowCode(err))
}

func TestSubmitAnswers_NotFound(t *testing.T) {
	t.Parallel()
	tests := &mocks.MockTestRepository{}
	tests.On("GetSubmissionWithAnswers", mock.Anything, "org-1", "sub-x").Return(domain.SubmissionAggregate{}, domain.ErrNotFound)
	svc := usecase.NewSubmissionService(tests, &mocks.MockTestInviteRepository{}, nil, false)
	_, err := svc.SubmitAnswers(context.Background(), usecase.SubmitAnswersInput{
		OrgID: "org-1", SubmissionID: "sub-x",
		Answers: []domain.TestAnswer{{QuestionID: "q1", ValueText: "yes"}},
	})
	assert.Equal(t, domain.CodeSubmissionNotFound, domain.FlowCode(err))
}

func TestSubmitAnswers_ScoresMotivationsAndCompletesInvite(t *testing.T) {
	t.Parallel()
	tests := &mocks.MockTestRepository{}
	invites := &mocks.MockTestInviteRepository{}

	agg := domain.SubmissionAggregate{
		Submission: domain.TestSubmission{ID: "sub-1", OrgID: "org-1", CandidateID: "cand-1"},
		Test:       domain.Test{ID: "test-1", Type: domain.TestTypeMotivations},
		Questions:  activeTest(3).Questions,
	}
	tests.On("GetSubmissionWithAnswers", mock.Anything, "org-1", "sub-1").Return(agg, nil)
	tests.On("SubmitAnswers", mock.Anything, "sub-1", mock.Anything, mock.MatchedBy(func(score *int) bool {
		return score != nil && *score == 2
	}), mock.MatchedBy(func(max *int) bool {
		return max != nil && *max == 3
	})).Return(nil)
	invites.On("MarkCompleted", mock.Anything, "inv-1").Return(nil)

	svc := usecase.NewSubmissionService(tests, invites, nil, false)
	score, err := svc.SubmitAnswers(context.Background(), usecase.SubmitAnswersInput{
		OrgID:        "org-1",
		SubmissionID: "sub-1",
		InviteID:     "inv-1",
		Answers: []domain.TestAnswer{
			{QuestionID: "q1", ValueText: "yes"},
			{QuestionID: "q2", ValueText: "oui"},
			{QuestionID: "q3", ValueText: "no"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, score.NumericScore)
	assert.Equal(t, 2, *score.NumericScore)
	tests.AssertExpectations(t)
	invites.AssertExpectations(t)
}

func TestSubmitAnswers_ScenarioTestLeavesScoreUnset(t *testing.T) {
	t.Parallel()
	tests := &mocks.MockTestRepository{}
	agg := domain.SubmissionAggregate{
		Submission: domain.TestSubmission{ID: "sub-1", OrgID: "org-1"},
		Test:       domain.Test{ID: "test-1", Type: domain.TestTypeScenario},
		Questions:  []domain.TestQuestion{{ID: "q1", Kind: domain.QuestionLongText}},
	}
	tests.On("GetSubmissionWithAnswers", mock.Anything, "org-1", "sub-1").Return(agg, nil)
	tests.On("SubmitAnswers", mock.Anything, "sub-1", mock.Anything, (*int)(nil), (*int)(nil)).Return(nil)

	svc := usecase.NewSubmissionService(tests, &mocks.MockTestInviteRepository{}, nil, false)
	score, err := svc.SubmitAnswers(context.Background(), usecase.SubmitAnswersInput{
		OrgID: "org-1", SubmissionID: "sub-1",
		Answers: []domain.TestAnswer{{QuestionID: "q1", ValueText: "free text"}},
	})
	require.NoError(t, err)
	assert.Nil(t, score.NumericScore)
	tests.AssertExpectations(t)
}

func TestSubmitAnswers_AlreadyAnswered(t *testing.T) {
	t.Parallel()
	tests := &mocks.MockTestRepository{}
	agg := domain.SubmissionAggregate{
		Submission: domain.TestSubmission{ID: "sub-1", OrgID: "org-1"},
		Test:       domain.Test{ID: "test-1", Type: domain.TestTypeMotivations},
		Answers:    []domain.TestAnswer{{QuestionID: "q1", ValueText: "yes"}},
	}
	tests.On("GetSubmissionWithAnswers", mock.Anything, "org-1", "sub-1").Return(agg, nil)

	svc := usecase.NewSubmissionService(tests, &mocks.MockTestInviteRepository{}, nil, false)
	_, err := svc.SubmitAnswers(context.Background(), usecase.SubmitAnswersInput{
		OrgID: "org-1", SubmissionID: "sub-1",
		Answers: []domain.TestAnswer{{QuestionID: "q1", ValueText: "yes"}},
	})
	assert.Equal(t, domain.CodeSubmissionCompleted, domain.FlowCode(err))
}
