package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

// TestService covers the test authoring lifecycle: create, update, duplicate,
// archive, delete, question management and reordering.
type TestService struct {
	Tests domain.TestRepository
	Flows domain.TestFlowRepository
}

// NewTestService constructs a TestService with its dependencies.
func NewTestService(tests domain.TestRepository, flows domain.TestFlowRepository) TestService {
	return TestService{Tests: tests, Flows: flows}
}

// CreateTestInput carries a pre-validated create request.
type CreateTestInput struct {
	OrgID       string
	Name        string
	Type        string
	Description string
	CreatedBy   string
}

// Create persists a new test; tests always start active.
func (s TestService) Create(ctx domain.Context, in CreateTestInput) (domain.Test, error) {
	if in.OrgID == "" || in.Name == "" || in.CreatedBy == "" {
		return domain.Test{}, fmt.Errorf("%w: org, name and creator required", domain.ErrInvalidArgument)
	}
	if in.Type != domain.TestTypeMotivations && in.Type != domain.TestTypeScenario {
		return domain.Test{}, fmt.Errorf("%w: unknown test type %q", domain.ErrInvalidArgument, in.Type)
	}
	t := domain.Test{
		OrgID:       in.OrgID,
		Name:        in.Name,
		Type:        in.Type,
		Description: in.Description,
		IsActive:    true,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   time.Now().UTC(),
	}
	id, err := s.Tests.CreateTest(ctx, t)
	if err != nil {
		return domain.Test{}, err
	}
	t.ID = id
	return t, nil
}

// Update persists test-level edits.
func (s TestService) Update(ctx domain.Context, t domain.Test) error {
	if t.ID == "" || t.OrgID == "" {
		return fmt.Errorf("%w: id and org required", domain.ErrInvalidArgument)
	}
	return s.Tests.UpdateTest(ctx, t)
}

// Get loads a test with its questions in authoring order.
func (s TestService) Get(ctx domain.Context, orgID, id string) (domain.TestWithQuestions, error) {
	return s.Tests.GetTestWithQuestions(ctx, orgID, id)
}

// Duplicate copies a test and all its questions. The copy is named
// "{original} (copie)" and every question gets a fresh id while keeping
// label, kind, orderIndex and the scale/choice specific fields.
func (s TestService) Duplicate(ctx domain.Context, orgID, testID, createdBy string) (domain.Test, error) {
	src, err := s.Tests.GetTestWithQuestions(ctx, orgID, testID)
	if err != nil {
		return domain.Test{}, err
	}
	dup := domain.Test{
		OrgID:       orgID,
		Name:        src.Test.Name + " (copie)",
		Type:        src.Test.Type,
		Description: src.Test.Description,
		IsActive:    true,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}
	dupID, err := s.Tests.CreateTest(ctx, dup)
	if err != nil {
		return domain.Test{}, err
	}
	dup.ID = dupID
	for _, q := range src.Questions {
		q.ID = ""
		q.TestID = dupID
		if _, err := s.Tests.AddQuestion(ctx, q); err != nil {
			return domain.Test{}, fmt.Errorf("op=test.duplicate question: %w", err)
		}
	}
	return dup, nil
}

// Archive deactivates a test without deleting history.
func (s TestService) Archive(ctx domain.Context, orgID, id string) error {
	return s.Tests.ArchiveByID(ctx, orgID, id)
}

// Delete outcome codes.
const (
	DeleteForbidden = "FORBIDDEN"
	DeleteNotFound  = "NOT_FOUND"
	DeleteInUse     = "IN_USE"
	DeleteUnknown   = "UNKNOWN"
)

// DeleteTestResult is a result object rather than an error: callers branch
// on Code for user messaging. FlowItemsCount accompanies IN_USE.
type DeleteTestResult struct {
	OK             bool
	Code           string
	FlowItemsCount int
}

// Delete removes a test when the caller's role allows it, the test exists,
// and no flow item still references it. Unexpected repository failures during
// the actual delete come back as UNKNOWN rather than propagating.
func (s TestService) Delete(ctx domain.Context, orgID, testID, role string) DeleteTestResult {
	if role != domain.RoleAdmin && role != domain.RoleOwner {
		return DeleteTestResult{Code: DeleteForbidden}
	}
	if _, err := s.Tests.GetTestByID(ctx, orgID, testID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return DeleteTestResult{Code: DeleteNotFound}
		}
		return DeleteTestResult{Code: DeleteUnknown}
	}
	n, err := s.Flows.CountItemsUsingTest(ctx, testID)
	if err != nil {
		return DeleteTestResult{Code: DeleteUnknown}
	}
	if n > 0 {
		return DeleteTestResult{Code: DeleteInUse, FlowItemsCount: n}
	}
	if err := s.Tests.DeleteTest(ctx, orgID, testID); err != nil {
		return DeleteTestResult{Code: DeleteUnknown}
	}
	return DeleteTestResult{OK: true}
}

// AddQuestion appends a question to a test.
func (s TestService) AddQuestion(ctx domain.Context, q domain.TestQuestion) (string, error) {
	if q.TestID == "" || q.Label == "" {
		return "", fmt.Errorf("%w: testId and label required", domain.ErrInvalidArgument)
	}
	switch q.Kind {
	case domain.QuestionYesNo, domain.QuestionScale, domain.QuestionChoice, domain.QuestionLongText:
	default:
		return "", fmt.Errorf("%w: unknown question kind %q", domain.ErrInvalidArgument, q.Kind)
	}
	return s.Tests.AddQuestion(ctx, q)
}

// UpdateQuestion persists question edits.
func (s TestService) UpdateQuestion(ctx domain.Context, q domain.TestQuestion) error {
	if q.ID == "" || q.TestID == "" {
		return fmt.Errorf("%w: id and testId required", domain.ErrInvalidArgument)
	}
	return s.Tests.UpdateQuestion(ctx, q)
}

// ReorderQuestions persists an explicit order assignment. The submitted id
// set must equal the test's current question id set; a partial or foreign
// set would silently drop or orphan questions.
func (s TestService) ReorderQuestions(ctx domain.Context, orgID, testID string, orders []domain.OrderPair) error {
	tq, err := s.Tests.GetTestWithQuestions(ctx, orgID, testID)
	if err != nil {
		return err
	}
	existing := make([]string, len(tq.Questions))
	for i, q := range tq.Questions {
		existing[i] = q.ID
	}
	if err := checkCompleteIDSet(existing, orders); err != nil {
		return err
	}
	return s.Tests.ReorderQuestions(ctx, testID, orders)
}

// checkCompleteIDSet verifies that orders covers exactly the existing ids.
func checkCompleteIDSet(existing []string, orders []domain.OrderPair) error {
	if len(orders) != len(existing) {
		return fmt.Errorf("%w: reorder must cover all %d items, got %d", domain.ErrInvalidArgument, len(existing), len(orders))
	}
	want := make(map[string]bool, len(existing))
	for _, id := range existing {
		want[id] = true
	}
	for _, o := range orders {
		if !want[o.ID] {
			return fmt.Errorf("%w: unknown or duplicate id %q in reorder", domain.ErrInvalidArgument, o.ID)
		}
		delete(want, o.ID)
	}
	return nil
}
