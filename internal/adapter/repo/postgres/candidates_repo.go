package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

// PgxPool is a minimal subset of pgxpool used by the repos for easy testing.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// CandidateRepo persists and loads candidates using a minimal pgx pool.
type CandidateRepo struct{ Pool PgxPool }

// NewCandidateRepo constructs a CandidateRepo with the given pool.
func NewCandidateRepo(p PgxPool) *CandidateRepo { return &CandidateRepo{Pool: p} }

const candidateColumns = `id, org_id, full_name, email, phone, location, status, source, tags, note, offer_id,
	cv_file_name, cv_mime, cv_size, cv_uploaded_at, created_at, updated_at`

// ListByOrg loads all candidates of an organization, newest first.
func (r *CandidateRepo) ListByOrg(ctx domain.Context, orgID string) ([]domain.Candidate, error) {
	ctx, span := otel.Tracer("repo.candidates").Start(ctx, "candidates.ListByOrg")
	defer span.End()
	q := `SELECT ` + candidateColumns + ` FROM candidates WHERE org_id=$1 ORDER BY created_at DESC`
	rows, err := r.Pool.Query(ctx, q, orgID)
	if err != nil {
		return nil, fmt.Errorf("op=candidate.list: %w", err)
	}
	defer rows.Close()
	var out []domain.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("op=candidate.list scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Create inserts a new candidate and returns its id.
func (r *CandidateRepo) Create(ctx domain.Context, c domain.Candidate) (string, error) {
	ctx, span := otel.Tracer("repo.candidates").Start(ctx, "candidates.Create")
	defer span.End()
	id := c.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO candidates (id, org_id, full_name, email, phone, location, status, source, tags, note, offer_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`
	_, err := r.Pool.Exec(ctx, q, id, c.OrgID, c.FullName, c.Email, c.Phone, c.Location, c.Status, c.Source, c.Tags, c.Note, c.OfferID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("op=candidate.create: %w", mapPgError(err))
	}
	return id, nil
}

// GetByID loads a candidate scoped to an organization.
func (r *CandidateRepo) GetByID(ctx domain.Context, orgID, id string) (domain.Candidate, error) {
	ctx, span := otel.Tracer("repo.candidates").Start(ctx, "candidates.GetByID")
	defer span.End()
	q := `SELECT ` + candidateColumns + ` FROM candidates WHERE org_id=$1 AND id=$2`
	c, err := scanCandidate(r.Pool.QueryRow(ctx, q, orgID, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Candidate{}, fmt.Errorf("op=candidate.get: %w", domain.ErrNotFound)
		}
		return domain.Candidate{}, fmt.Errorf("op=candidate.get: %w", err)
	}
	return c, nil
}

// Update writes the full candidate record.
func (r *CandidateRepo) Update(ctx domain.Context, c domain.Candidate) error {
	ctx, span := otel.Tracer("repo.candidates").Start(ctx, "candidates.Update")
	defer span.End()
	q := `UPDATE candidates SET full_name=$3, email=$4, phone=$5, location=$6, status=$7, source=$8, tags=$9, note=$10, offer_id=$11, updated_at=$12
		WHERE org_id=$1 AND id=$2`
	tag, err := r.Pool.Exec(ctx, q, c.OrgID, c.ID, c.FullName, c.Email, c.Phone, c.Location, c.Status, c.Source, c.Tags, c.Note, c.OfferID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("op=candidate.update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=candidate.update: %w", domain.ErrNotFound)
	}
	return nil
}

// DeleteByID removes a candidate row.
func (r *CandidateRepo) DeleteByID(ctx domain.Context, orgID, id string) error {
	ctx, span := otel.Tracer("repo.candidates").Start(ctx, "candidates.DeleteByID")
	defer span.End()
	tag, err := r.Pool.Exec(ctx, `DELETE FROM candidates WHERE org_id=$1 AND id=$2`, orgID, id)
	if err != nil {
		return fmt.Errorf("op=candidate.delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=candidate.delete: %w", domain.ErrNotFound)
	}
	return nil
}

// UpdateNote replaces the recruiter note only.
func (r *CandidateRepo) UpdateNote(ctx domain.Context, orgID, id, note string) error {
	ctx, span := otel.Tracer("repo.candidates").Start(ctx, "candidates.UpdateNote")
	defer span.End()
	tag, err := r.Pool.Exec(ctx, `UPDATE candidates SET note=$3, updated_at=$4 WHERE org_id=$1 AND id=$2`, orgID, id, note, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("op=candidate.update_note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=candidate.update_note: %w", domain.ErrNotFound)
	}
	return nil
}

// AttachCV records résumé metadata on the candidate row.
func (r *CandidateRepo) AttachCV(ctx domain.Context, orgID, id string, cv domain.CVMeta) error {
	ctx, span := otel.Tracer("repo.candidates").Start(ctx, "candidates.AttachCV")
	defer span.End()
	q := `UPDATE candidates SET cv_file_name=$3, cv_mime=$4, cv_size=$5, cv_uploaded_at=$6, updated_at=$7 WHERE org_id=$1 AND id=$2`
	tag, err := r.Pool.Exec(ctx, q, orgID, id, cv.FileName, cv.MIME, cv.Size, cv.UploadedAt, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("op=candidate.attach_cv: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=candidate.attach_cv: %w", domain.ErrNotFound)
	}
	return nil
}

func scanCandidate(row pgx.Row) (domain.Candidate, error) {
	var c domain.Candidate
	var cvName, cvMIME *string
	var cvSize *int64
	var cvAt *time.Time
	err := row.Scan(&c.ID, &c.OrgID, &c.FullName, &c.Email, &c.Phone, &c.Location, &c.Status, &c.Source, &c.Tags, &c.Note, &c.OfferID,
		&cvName, &cvMIME, &cvSize, &cvAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Candidate{}, err
	}
	if cvName != nil {
		cv := domain.CVMeta{FileName: *cvName}
		if cvMIME != nil {
			cv.MIME = *cvMIME
		}
		if cvSize != nil {
			cv.Size = *cvSize
		}
		if cvAt != nil {
			cv.UploadedAt = *cvAt
		}
		c.CV = &cv
	}
	return c, nil
}
