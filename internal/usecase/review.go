package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

// ReviewService attaches reviewer feedback to submissions.
type ReviewService struct {
	Tests domain.TestRepository
}

// NewReviewService constructs a ReviewService.
func NewReviewService(tests domain.TestRepository) ReviewService {
	return ReviewService{Tests: tests}
}

// AddReviewInput carries a review to attach. OverallComment is optional and
// normalized (trimmed, empty dropped); axis comment pairs require both
// fields non-empty once present.
type AddReviewInput struct {
	OrgID          string
	SubmissionID   string
	ReviewerID     string
	OverallComment string
	AxisComments   []domain.AxisComment
}

// Add validates and persists a review. A submission holds at most one
// review: a second insert fails with ErrConflict.
func (s ReviewService) Add(ctx domain.Context, in AddReviewInput) (domain.TestReview, error) {
	if in.OrgID == "" || in.SubmissionID == "" || in.ReviewerID == "" {
		return domain.TestReview{}, fmt.Errorf("%w: org, submission and reviewer ids required", domain.ErrInvalidArgument)
	}
	overall := strings.TrimSpace(in.OverallComment)
	axes := make([]domain.AxisComment, 0, len(in.AxisComments))
	for _, ac := range in.AxisComments {
		code := strings.TrimSpace(ac.AxisCode)
		comment := strings.TrimSpace(ac.Comment)
		if code == "" || comment == "" {
			return domain.TestReview{}, fmt.Errorf("%w: axis comments require both axisCode and comment", domain.ErrInvalidArgument)
		}
		axes = append(axes, domain.AxisComment{AxisCode: code, Comment: comment})
	}
	if len(axes) == 0 {
		axes = nil
	}

	if _, err := s.Tests.GetReviewBySubmissionID(ctx, in.SubmissionID); err == nil {
		return domain.TestReview{}, fmt.Errorf("%w: submission already reviewed", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.TestReview{}, err
	}

	r := domain.TestReview{
		SubmissionID:   in.SubmissionID,
		ReviewerID:     in.ReviewerID,
		OverallComment: overall,
		AxisComments:   axes,
	}
	id, err := s.Tests.AddReview(ctx, r)
	if err != nil {
		return domain.TestReview{}, err
	}
	r.ID = id
	return r, nil
}

// GetBySubmission loads the review attached to a submission, if any.
func (s ReviewService) GetBySubmission(ctx domain.Context, submissionID string) (domain.TestReview, error) {
	return s.Tests.GetReviewBySubmissionID(ctx, submissionID)
}
