package postgres

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

// InviteRepo persists test invites and their lifecycle transitions.
type InviteRepo struct{ Pool PgxPool }

func NewInviteRepo(p PgxPool) *InviteRepo { return &InviteRepo{Pool: p} }

const inviteColumns = `id, org_id, candidate_id, test_id, flow_item_id, token, status, expires_at, submission_id, created_at`

func (r *InviteRepo) ListByCandidate(ctx domain.Context, orgID, candidateID string) ([]domain.TestInvite, error) {
	ctx, span := otel.Tracer("repo.invites").Start(ctx, "invites.ListByCandidate")
	defer span.End()
	q := `SELECT ` + inviteColumns + ` FROM test_invites WHERE org_id=$1 AND candidate_id=$2 ORDER BY created_at DESC`
	rows, err := r.Pool.Query(ctx, q, orgID, candidateID)
	if err != nil {
		return nil, fmt.Errorf("op=invite.list: %w", err)
	}
	defer rows.Close()
	var out []domain.TestInvite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, fmt.Errorf("op=invite.list scan: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *InviteRepo) CreateInvite(ctx domain.Context, inv domain.TestInvite) (string, error) {
	ctx, span := otel.Tracer("repo.invites").Start(ctx, "invites.CreateInvite")
	defer span.End()
	id := inv.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO test_invites (id, org_id, candidate_id, test_id, flow_item_id, token, status, expires_at, submission_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err := r.Pool.Exec(ctx, q, id, inv.OrgID, inv.CandidateID, inv.TestID, inv.FlowItemID, inv.Token, inv.Status, inv.ExpiresAt, inv.SubmissionID, inv.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("op=invite.create: %w", mapPgError(err))
	}
	return id, nil
}

// GetByToken is the public lookup path; the token is the only credential.
func (r *InviteRepo) GetByToken(ctx domain.Context, token string) (domain.TestInvite, error) {
	ctx, span := otel.Tracer("repo.invites").Start(ctx, "invites.GetByToken")
	defer span.End()
	inv, err := scanInvite(r.Pool.QueryRow(ctx, `SELECT `+inviteColumns+` FROM test_invites WHERE token=$1`, token))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.TestInvite{}, fmt.Errorf("op=invite.get_by_token: %w", domain.ErrNotFound)
		}
		return domain.TestInvite{}, fmt.Errorf("op=invite.get_by_token: %w", err)
	}
	return inv, nil
}

func (r *InviteRepo) MarkCompleted(ctx domain.Context, id string) error {
	return r.setStatus(ctx, "invites.MarkCompleted", id, domain.InviteCompleted)
}

func (r *InviteRepo) MarkRevoked(ctx domain.Context, id string) error {
	return r.setStatus(ctx, "invites.MarkRevoked", id, domain.InviteRevoked)
}

func (r *InviteRepo) setStatus(ctx domain.Context, spanName, id string, st domain.InviteStatus) error {
	ctx, span := otel.Tracer("repo.invites").Start(ctx, spanName)
	defer span.End()
	tag, err := r.Pool.Exec(ctx, `UPDATE test_invites SET status=$2 WHERE id=$1`, id, st)
	if err != nil {
		return fmt.Errorf("op=invite.set_status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=invite.set_status: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *InviteRepo) LinkSubmission(ctx domain.Context, id, submissionID string) error {
	ctx, span := otel.Tracer("repo.invites").Start(ctx, "invites.LinkSubmission")
	defer span.End()
	tag, err := r.Pool.Exec(ctx, `UPDATE test_invites SET submission_id=$2 WHERE id=$1`, id, submissionID)
	if err != nil {
		return fmt.Errorf("op=invite.link_submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=invite.link_submission: %w", domain.ErrNotFound)
	}
	return nil
}

func scanInvite(row pgx.Row) (domain.TestInvite, error) {
	var inv domain.TestInvite
	err := row.Scan(&inv.ID, &inv.OrgID, &inv.CandidateID, &inv.TestID, &inv.FlowItemID, &inv.Token, &inv.Status, &inv.ExpiresAt, &inv.SubmissionID, &inv.CreatedAt)
	return inv, err
}
