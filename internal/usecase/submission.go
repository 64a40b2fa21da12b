package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/fairyhunter13/hireflow/internal/adapter/observability"
	"github.com/fairyhunter13/hireflow/internal/domain"
)

// SubmissionService orchestrates the submission lifecycle: start from an
// invite with a randomized question order, then record answers and score.
type SubmissionService struct {
	Tests   domain.TestRepository
	Invites domain.TestInviteRepository
	Events  domain.EventPublisher
	// ApplyReversed opts reversed-question handling into motivation scoring.
	ApplyReversed bool
	now           func() time.Time
}

// NewSubmissionService constructs a SubmissionService with its dependencies.
func NewSubmissionService(tests domain.TestRepository, invites domain.TestInviteRepository, ev domain.EventPublisher, applyReversed bool) SubmissionService {
	return SubmissionService{
		Tests:         tests,
		Invites:       invites,
		Events:        ev,
		ApplyReversed: applyReversed,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// StartResult is returned by StartFromInvite. Questions are in presented
// order; DisplayIndex on Items runs 1..N in the same order.
type StartResult struct {
	Invite     domain.TestInvite
	Test       domain.Test
	Submission domain.TestSubmission
	Questions  []domain.TestQuestion
	Items      []domain.TestSubmissionItem
}

// StartFromInvite validates an invite token and opens a submission with a
// per-submission random permutation of the test's questions.
//
// Validation is fail-fast; each failure carries a distinct workflow code:
// INVITE_NOT_FOUND, INVITE_ORG_MISMATCH, INVITE_REVOKED, INVITE_COMPLETED,
// INVITE_EXPIRED, TEST_NOT_FOUND, TEST_INACTIVE, NO_QUESTIONS.
//
// The shuffle is an unseeded Fisher–Yates pass: uniform over permutations and
// independent per call, deliberately not reproducible. Linking the invite to
// the new submission does not change the invite status.
func (s SubmissionService) StartFromInvite(ctx domain.Context, orgID, inviteToken string, startedBy *string) (StartResult, error) {
	inv, err := s.Invites.GetByToken(ctx, inviteToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return StartResult{}, domain.NewFlowError(domain.CodeInviteNotFound)
		}
		return StartResult{}, err
	}
	switch {
	case inv.OrgID != orgID:
		return StartResult{}, domain.NewFlowError(domain.CodeInviteOrgMismatch)
	case inv.Status == domain.InviteRevoked:
		return StartResult{}, domain.NewFlowError(domain.CodeInviteRevoked)
	case inv.Status == domain.InviteCompleted:
		return StartResult{}, domain.NewFlowError(domain.CodeInviteCompleted)
	case inv.ExpiresAt.Before(s.now()):
		return StartResult{}, domain.NewFlowError(domain.CodeInviteExpired)
	}

	tq, err := s.Tests.GetTestWithQuestions(ctx, inv.OrgID, inv.TestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return StartResult{}, domain.NewFlowError(domain.CodeTestNotFound)
		}
		return StartResult{}, err
	}
	if !tq.Test.IsActive {
		return StartResult{}, domain.NewFlowError(domain.CodeTestInactive)
	}
	if len(tq.Questions) == 0 {
		return StartResult{}, domain.NewFlowError(domain.CodeNoQuestions)
	}

	shuffled := shuffleQuestions(tq.Questions)
	items := make([]domain.TestSubmissionItem, len(shuffled))
	for i, q := range shuffled {
		items[i] = domain.TestSubmissionItem{QuestionID: q.ID, DisplayIndex: i + 1}
	}

	sub := domain.TestSubmission{
		OrgID:       inv.OrgID,
		TestID:      inv.TestID,
		CandidateID: inv.CandidateID,
		SubmittedBy: startedBy,
		CreatedAt:   s.now(),
	}
	subID, err := s.Tests.StartSubmission(ctx, sub)
	if err != nil {
		return StartResult{}, err
	}
	sub.ID = subID
	if err := s.Tests.CreateSubmissionItems(ctx, subID, items); err != nil {
		return StartResult{}, err
	}
	if err := s.Invites.LinkSubmission(ctx, inv.ID, subID); err != nil {
		return StartResult{}, err
	}
	observability.SubmissionsStartedTotal.Inc()
	return StartResult{Invite: inv, Test: tq.Test, Submission: sub, Questions: shuffled, Items: items}, nil
}

// SubmitAnswersInput carries the pre-validated answer set.
type SubmitAnswersInput struct {
	OrgID        string
	SubmissionID string
	Answers      []domain.TestAnswer
	InviteID     string
}

// SubmitAnswers persists a submission's answers in one repository call,
// computing the motivation score when the test type warrants it, and marks
// the originating invite completed when one is supplied.
//
// A submission that already has answers is terminal: re-submission fails
// with SUBMISSION_COMPLETED.
func (s SubmissionService) SubmitAnswers(ctx domain.Context, in SubmitAnswersInput) (MotivationScore, error) {
	if len(in.Answers) == 0 {
		return MotivationScore{}, domain.NewFlowError(domain.CodeNoAnswers)
	}
	agg, err := s.Tests.GetSubmissionWithAnswers(ctx, in.OrgID, in.SubmissionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return MotivationScore{}, domain.NewFlowError(domain.CodeSubmissionNotFound)
		}
		return MotivationScore{}, err
	}
	if len(agg.Answers) > 0 {
		return MotivationScore{}, domain.NewFlowError(domain.CodeSubmissionCompleted)
	}

	var score MotivationScore
	if agg.Test.Type == domain.TestTypeMotivations {
		score = ComputeMotivationScore(agg.Questions, in.Answers, s.ApplyReversed)
	}
	if err := s.Tests.SubmitAnswers(ctx, in.SubmissionID, in.Answers, score.NumericScore, score.MaxScore); err != nil {
		return MotivationScore{}, err
	}
	if in.InviteID != "" {
		if err := s.Invites.MarkCompleted(ctx, in.InviteID); err != nil {
			return MotivationScore{}, err
		}
	}
	observability.SubmissionsCompletedTotal.WithLabelValues(agg.Test.Type).Inc()
	s.publish(ctx, domain.Event{
		Kind:         domain.EventSubmissionCompleted,
		OrgID:        in.OrgID,
		TestID:       agg.Test.ID,
		CandidateID:  agg.Submission.CandidateID,
		InviteID:     in.InviteID,
		SubmissionID: in.SubmissionID,
		OccurredAt:   s.now(),
	})
	return score, nil
}

// Get loads a submission aggregate for review screens.
func (s SubmissionService) Get(ctx domain.Context, orgID, submissionID string) (domain.SubmissionAggregate, error) {
	agg, err := s.Tests.GetSubmissionWithAnswers(ctx, orgID, submissionID)
	if err != nil {
		return domain.SubmissionAggregate{}, fmt.Errorf("op=submission.get: %w", err)
	}
	return agg, nil
}

func (s SubmissionService) publish(ctx domain.Context, ev domain.Event) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, ev); err != nil {
		slog.Warn("event publish failed", slog.String("kind", ev.Kind), slog.Any("error", err))
	}
}

// shuffleQuestions returns a fresh slice holding an unbiased permutation of
// qs (Fisher–Yates from the last index down, swapping with a uniformly
// chosen earlier-or-equal index).
func shuffleQuestions(qs []domain.TestQuestion) []domain.TestQuestion {
	out := make([]domain.TestQuestion, len(qs))
	copy(out, qs)
	for i := len(out) - 1; i >= 1; i-- {
		j := rand.Intn(i + 1) //nolint:gosec // presentation order does not need crypto randomness
		out[i], out[j] = out[j], out[i]
	}
	return out
}
