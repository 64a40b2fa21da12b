package postgres

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

// TestRepo persists tests, questions, submissions, answers and reviews. It is
// the widest repo because the submission aggregate spans all of those tables.
type TestRepo struct{ Pool PgxPool }

func NewTestRepo(p PgxPool) *TestRepo { return &TestRepo{Pool: p} }

const questionColumns = `id, test_id, label, kind, min_value, max_value, options, is_required, order_index,
	dimension_code, business_code, is_reversed`

func (r *TestRepo) CreateTest(ctx domain.Context, t domain.Test) (string, error) {
	ctx, span := otel.Tracer("repo.tests").Start(ctx, "tests.CreateTest")
	defer span.End()
	id := t.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO tests (id, org_id, name, type, description, is_active, created_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.Pool.Exec(ctx, q, id, t.OrgID, t.Name, t.Type, t.Description, t.IsActive, t.CreatedBy, t.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("op=test.create: %w", mapPgError(err))
	}
	return id, nil
}

func (r *TestRepo) UpdateTest(ctx domain.Context, t domain.Test) error {
	ctx, span := otel.Tracer("repo.tests").Start(ctx, "tests.UpdateTest")
	defer span.End()
	q := `UPDATE tests SET name=$3, type=$4, description=$5, is_active=$6 WHERE org_id=$1 AND id=$2`
	tag, err := r.Pool.Exec(ctx, q, t.OrgID, t.ID, t.Name, t.Type, t.Description, t.IsActive)
	if err != nil {
		return fmt.Errorf("op=test.update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=test.update: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *TestRepo) DeleteTest(ctx domain.Context, orgID, id string) error {
	ctx, span := otel.Tracer("repo.tests").Start(ctx, "tests.DeleteTest")
	defer span.End()
	tag, err := r.Pool.Exec(ctx, `DELETE FROM tests WHERE org_id=$1 AND id=$2`, orgID, id)
	if err != nil {
		return fmt.Errorf("op=test.delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=test.delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *TestRepo) ArchiveByID(ctx domain.Context, orgID, id string) error {
	ctx, span := otel.Tracer("repo.tests").Start(ctx, "tests.ArchiveByID")
	defer span.End()
	tag, err := r.Pool.Exec(ctx, `UPDATE tests SET is_active=FALSE WHERE org_id=$1 AND id=$2`, orgID, id)
	if err != nil {
		return fmt.Errorf("op=test.archive: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=test.archive: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *TestRepo) GetTestByID(ctx domain.Context, orgID, id string) (domain.Test, error) {
	ctx, span := otel.Tracer("repo.tests").Start(ctx, "tests.GetTestByID")
	defer span.End()
	t, err := r.getTest(ctx, orgID, id)
	if err != nil {
		return domain.Test{}, err
	}
	return t, nil
}

func (r *TestRepo) getTest(ctx domain.Context, orgID, id string) (domain.Test, error) {
	var t domain.Test
	err := r.Pool.QueryRow(ctx, `SELECT id, org_id, name, type, description, is_active, created_by, created_at
		FROM tests WHERE org_id=$1 AND id=$2`, orgID, id).
		Scan(&t.ID, &t.OrgID, &t.Name, &t.Type, &t.Description, &t.IsActive, &t.CreatedBy, &t.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Test{}, fmt.Errorf("op=test.get: %w", domain.ErrNotFound)
		}
		return domain.Test{}, fmt.Errorf("op=test.get: %w", err)
	}
	return t, nil
}

func (r *TestRepo) GetTestWithQuestions(ctx domain.Context, orgID, id string) (domain.TestWithQuestions, error) {
	ctx, span := otel.Tracer("repo.tests").Start(ctx, "tests.GetTestWithQuestions")
	defer span.End()
	t, err := r.getTest(ctx, orgID, id)
	if err != nil {
		return domain.TestWithQuestions{}, err
	}
	qs, err := r.listQuestions(ctx, t.ID)
	if err != nil {
		return domain.TestWithQuestions{}, err
	}
	return domain.TestWithQuestions{Test: t, Questions: qs}, nil
}

func (r *TestRepo) listQuestions(ctx domain.Context, testID string) ([]domain.TestQuestion, error) {
	q := `SELECT ` + questionColumns + ` FROM test_questions WHERE test_id=$1 ORDER BY order_index ASC`
	rows, err := r.Pool.Query(ctx, q, testID)
	if err != nil {
		return nil, fmt.Errorf("op=test.list_questions: %w", err)
	}
	defer rows.Close()
	var out []domain.TestQuestion
	for rows.Next() {
		tq, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("op=test.list_questions scan: %w", err)
		}
		out = append(out, tq)
	}
	return out, rows.Err()
}

func (r *TestRepo) AddQuestion(ctx domain.Context, tq domain.TestQuestion) (string, error) {
	ctx, span := otel.Tracer("repo.tests").Start(ctx, "tests.AddQuestion")
	defer span.End()
	id := tq.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO test_questions (id, test_id, label, kind, min_value, max_value, options, is_required, order_index, dimension_code, business_code, is_reversed)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`
	_, err := r.Pool.Exec(ctx, q, id, tq.TestID, tq.Label, tq.Kind, tq.MinValue, tq.MaxValue, tq.Options, tq.IsRequired, tq.OrderIndex, tq.DimensionCode, tq.BusinessCode, tq.IsReversed)
	if err != nil {
		return "", fmt.Errorf("op=question.add: %w", mapPgError(err))
	}
	return id, nil
}

func (r *TestRepo) UpdateQuestion(ctx domain.Context, tq domain.TestQuestion) error {
	ctx, span := otel.Tracer("repo.tests").Start(ctx, "tests.UpdateQuestion")
	defer span.End()
	q := `UPDATE test_questions SET label=$3, kind=$4, min_value=$5, max_value=$6, options=$7, is_required=$8, order_index=$9, dimension_code=$10, business_code=$11, is_reversed=$12
		WHERE test_id=$1 AND id=$2`
	tag, err := r.Pool.Exec(ctx, q, tq.TestID, tq.ID, tq.Label, tq.Kind, tq.MinValue, tq.MaxValue, tq.Options, tq.IsRequired, tq.OrderIndex, tq.DimensionCode, tq.BusinessCode, tq.IsReversed)
	if err != nil {
		return fmt.Errorf("op=question.update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=question.update: %w", domain.ErrNotFound)
	}
	return nil
}

// ReorderQuestions writes all order assignments in one transaction.
func (r *TestRepo) ReorderQuestions(ctx domain.Context, testID string, orders []domain.OrderPair) error {
	ctx, span := otel.Tracer("repo.tests").Start(ctx, "tests.ReorderQuestions")
	defer span.End()
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("op=question.reorder begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	for _, p := range orders {
		if _, err := tx.Exec(ctx, `UPDATE test_questions SET order_index=$3 WHERE test_id=$1 AND id=$2`, testID, p.ID, p.OrderIndex); err != nil {
			return fmt.Errorf("op=question.reorder: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("op=question.reorder commit: %w", err)
	}
	return nil
}

func (r *TestRepo) StartSubmission(ctx domain.Context, s domain.TestSubmission) (string, error) {
	ctx, span := otel.Tracer("repo.tests").Start(ctx, "tests.StartSubmission")
	defer span.End()
	id := s.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO test_submissions (id, org_id, test_id, candidate_id, offer_id, submitted_by, numeric_score, max_score, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.Pool.Exec(ctx, q, id, s.OrgID, s.TestID, s.CandidateID, s.OfferID, s.SubmittedBy, s.NumericScore, s.MaxScore, s.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("op=submission.start: %w", mapPgError(err))
	}
	return id, nil
}

// CreateSubmissionItems freezes the presented question order for a submission.
func (r *TestRepo) CreateSubmissionItems(ctx domain.Context, submissionID string, items []domain.TestSubmissionItem) error {
	ctx, span := otel.Tracer("repo.tests").Start(ctx, "tests.CreateSubmissionItems")
	defer span.End()
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("op=submission.items begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	for _, it := range items {
		q := `INSERT INTO test_submission_items (submission_id, question_id, display_index) VALUES ($1,$2,$3)`
		if _, err := tx.Exec(ctx, q, submissionID, it.QuestionID, it.DisplayIndex); err != nil {
			return fmt.Errorf("op=submission.items: %w", mapPgError(err))
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("op=submission.items commit: %w", err)
	}
	return nil
}

func (r *TestRepo) GetSubmissionWithAnswers(ctx domain.Context, orgID, submissionID string) (domain.SubmissionAggregate, error) {
	ctx, span := otel.Tracer("repo.tests").Start(ctx, "tests.GetSubmissionWithAnswers")
	defer span.End()
	var s domain.TestSubmission
	err := r.Pool.QueryRow(ctx, `SELECT id, org_id, test_id, candidate_id, offer_id, submitted_by, numeric_score, max_score, created_at
		FROM test_submissions WHERE org_id=$1 AND id=$2`, orgID, submissionID).
		Scan(&s.ID, &s.OrgID, &s.TestID, &s.CandidateID, &s.OfferID, &s.SubmittedBy, &s.NumericScore, &s.MaxScore, &s.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.SubmissionAggregate{}, fmt.Errorf("op=submission.get: %w", domain.ErrNotFound)
		}
		return domain.SubmissionAggregate{}, fmt.Errorf("op=submission.get: %w", err)
	}
	t, err := r.getTest(ctx, s.OrgID, s.TestID)
	if err != nil {
		return domain.SubmissionAggregate{}, err
	}
	qs, err := r.listQuestions(ctx, s.TestID)
	if err != nil {
		return domain.SubmissionAggregate{}, err
	}
	answers, err := r.listAnswers(ctx, submissionID)
	if err != nil {
		return domain.SubmissionAggregate{}, err
	}
	return domain.SubmissionAggregate{Submission: s, Test: t, Questions: qs, Answers: answers}, nil
}

func (r *TestRepo) listAnswers(ctx domain.Context, submissionID string) ([]domain.TestAnswer, error) {
	rows, err := r.Pool.Query(ctx, `SELECT question_id, value_text, value_number FROM test_answers WHERE submission_id=$1`, submissionID)
	if err != nil {
		return nil, fmt.Errorf("op=submission.list_answers: %w", err)
	}
	defer rows.Close()
	var out []domain.TestAnswer
	for rows.Next() {
		var a domain.TestAnswer
		if err := rows.Scan(&a.QuestionID, &a.ValueText, &a.ValueNumber); err != nil {
			return nil, fmt.Errorf("op=submission.list_answers scan: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SubmitAnswers stores all answers and the computed score in one transaction.
func (r *TestRepo) SubmitAnswers(ctx domain.Context, submissionID string, answers []domain.TestAnswer, numericScore, maxScore *int) error {
	ctx, span := otel.Tracer("repo.tests").Start(ctx, "tests.SubmitAnswers")
	defer span.End()
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("op=submission.answers begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	for _, a := range answers {
		q := `INSERT INTO test_answers (submission_id, question_id, value_text, value_number) VALUES ($1,$2,$3,$4)`
		if _, err := tx.Exec(ctx, q, submissionID, a.QuestionID, a.ValueText, a.ValueNumber); err != nil {
			return fmt.Errorf("op=submission.answers: %w", mapPgError(err))
		}
	}
	tag, err := tx.Exec(ctx, `UPDATE test_submissions SET numeric_score=$2, max_score=$3 WHERE id=$1`, submissionID, numericScore, maxScore)
	if err != nil {
		return fmt.Errorf("op=submission.answers score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=submission.answers score: %w", domain.ErrNotFound)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("op=submission.answers commit: %w", err)
	}
	return nil
}

func (r *TestRepo) AddReview(ctx domain.Context, rv domain.TestReview) (string, error) {
	ctx, span := otel.Tracer("repo.tests").Start(ctx, "tests.AddReview")
	defer span.End()
	id := rv.ID
	if id == "" {
		id = uuid.New().String()
	}
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", fmt.Errorf("op=review.add begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	q := `INSERT INTO test_reviews (id, submission_id, reviewer_id, overall_comment, created_at) VALUES ($1,$2,$3,$4,$5)`
	if _, err := tx.Exec(ctx, q, id, rv.SubmissionID, rv.ReviewerID, rv.OverallComment, rv.CreatedAt); err != nil {
		return "", fmt.Errorf("op=review.add: %w", mapPgError(err))
	}
	for _, ax := range rv.AxisComments {
		if _, err := tx.Exec(ctx, `INSERT INTO test_review_axes (review_id, axis_code, comment) VALUES ($1,$2,$3)`, id, ax.AxisCode, ax.Comment); err != nil {
			return "", fmt.Errorf("op=review.add axis: %w", mapPgError(err))
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("op=review.add commit: %w", err)
	}
	return id, nil
}

func (r *TestRepo) GetReviewBySubmissionID(ctx domain.Context, submissionID string) (domain.TestReview, error) {
	ctx, span := otel.Tracer("repo.tests").Start(ctx, "tests.GetReviewBySubmissionID")
	defer span.End()
	var rv domain.TestReview
	err := r.Pool.QueryRow(ctx, `SELECT id, submission_id, reviewer_id, overall_comment, created_at
		FROM test_reviews WHERE submission_id=$1`, submissionID).
		Scan(&rv.ID, &rv.SubmissionID, &rv.ReviewerID, &rv.OverallComment, &rv.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.TestReview{}, fmt.Errorf("op=review.get: %w", domain.ErrNotFound)
		}
		return domain.TestReview{}, fmt.Errorf("op=review.get: %w", err)
	}
	rows, err := r.Pool.Query(ctx, `SELECT axis_code, comment FROM test_review_axes WHERE review_id=$1 ORDER BY axis_code ASC`, rv.ID)
	if err != nil {
		return domain.TestReview{}, fmt.Errorf("op=review.get axes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ax domain.AxisComment
		if err := rows.Scan(&ax.AxisCode, &ax.Comment); err != nil {
			return domain.TestReview{}, fmt.Errorf("op=review.get axes scan: %w", err)
		}
		rv.AxisComments = append(rv.AxisComments, ax)
	}
	return rv, rows.Err()
}

func scanQuestion(row pgx.Row) (domain.TestQuestion, error) {
	var tq domain.TestQuestion
	err := row.Scan(&tq.ID, &tq.TestID, &tq.Label, &tq.Kind, &tq.MinValue, &tq.MaxValue, &tq.Options, &tq.IsRequired, &tq.OrderIndex,
		&tq.DimensionCode, &tq.BusinessCode, &tq.IsReversed)
	return tq, err
}
