package postgres

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

// OrgRepo persists organizations.
type OrgRepo struct{ Pool PgxPool }

func NewOrgRepo(p PgxPool) *OrgRepo { return &OrgRepo{Pool: p} }

func (r *OrgRepo) Create(ctx domain.Context, o domain.Organization) (string, error) {
	ctx, span := otel.Tracer("repo.orgs").Start(ctx, "orgs.Create")
	defer span.End()
	id := o.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO organizations (id, name, slug, created_by, created_at) VALUES ($1,$2,$3,$4,$5)`
	_, err := r.Pool.Exec(ctx, q, id, o.Name, o.Slug, o.CreatedBy, o.CreatedAt)
	if err != nil {
		// slug carries the only unique constraint here
		return "", fmt.Errorf("op=org.create: %w", mapPgError(err))
	}
	return id, nil
}

func (r *OrgRepo) GetByID(ctx domain.Context, id string) (domain.Organization, error) {
	ctx, span := otel.Tracer("repo.orgs").Start(ctx, "orgs.GetByID")
	defer span.End()
	var o domain.Organization
	err := r.Pool.QueryRow(ctx, `SELECT id, name, slug, created_by, created_at FROM organizations WHERE id=$1`, id).
		Scan(&o.ID, &o.Name, &o.Slug, &o.CreatedBy, &o.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Organization{}, fmt.Errorf("op=org.get: %w", domain.ErrNotFound)
		}
		return domain.Organization{}, fmt.Errorf("op=org.get: %w", err)
	}
	return o, nil
}

// MembershipRepo persists user-to-organization memberships.
type MembershipRepo struct{ Pool PgxPool }

func NewMembershipRepo(p PgxPool) *MembershipRepo { return &MembershipRepo{Pool: p} }

func (r *MembershipRepo) ListByUser(ctx domain.Context, userID string) ([]domain.Membership, error) {
	ctx, span := otel.Tracer("repo.memberships").Start(ctx, "memberships.ListByUser")
	defer span.End()
	rows, err := r.Pool.Query(ctx, `SELECT user_id, org_id, role, created_at FROM memberships WHERE user_id=$1 ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("op=membership.list: %w", err)
	}
	defer rows.Close()
	var out []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.UserID, &m.OrgID, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("op=membership.list scan: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MembershipRepo) Create(ctx domain.Context, m domain.Membership) error {
	ctx, span := otel.Tracer("repo.memberships").Start(ctx, "memberships.Create")
	defer span.End()
	q := `INSERT INTO memberships (user_id, org_id, role, created_at) VALUES ($1,$2,$3,$4)`
	if _, err := r.Pool.Exec(ctx, q, m.UserID, m.OrgID, m.Role, m.CreatedAt); err != nil {
		return fmt.Errorf("op=membership.create: %w", mapPgError(err))
	}
	return nil
}
