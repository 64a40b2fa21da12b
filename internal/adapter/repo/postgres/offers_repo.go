package postgres

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

// OfferRepo persists and loads job offers.
type OfferRepo struct{ Pool PgxPool }

func NewOfferRepo(p PgxPool) *OfferRepo { return &OfferRepo{Pool: p} }

const offerColumns = `id, org_id, title, description, status, location, contract_type, salary_min, salary_max,
	created_by, responsible_user_id, created_at, updated_at`

func (r *OfferRepo) ListByOrg(ctx domain.Context, orgID string) ([]domain.Offer, error) {
	ctx, span := otel.Tracer("repo.offers").Start(ctx, "offers.ListByOrg")
	defer span.End()
	rows, err := r.Pool.Query(ctx, `SELECT `+offerColumns+` FROM offers WHERE org_id=$1 ORDER BY created_at DESC`, orgID)
	if err != nil {
		return nil, fmt.Errorf("op=offer.list: %w", err)
	}
	defer rows.Close()
	var out []domain.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("op=offer.list scan: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OfferRepo) GetByID(ctx domain.Context, orgID, id string) (domain.Offer, error) {
	ctx, span := otel.Tracer("repo.offers").Start(ctx, "offers.GetByID")
	defer span.End()
	o, err := scanOffer(r.Pool.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE org_id=$1 AND id=$2`, orgID, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Offer{}, fmt.Errorf("op=offer.get: %w", domain.ErrNotFound)
		}
		return domain.Offer{}, fmt.Errorf("op=offer.get: %w", err)
	}
	return o, nil
}

func (r *OfferRepo) Create(ctx domain.Context, o domain.Offer) (string, error) {
	ctx, span := otel.Tracer("repo.offers").Start(ctx, "offers.Create")
	defer span.End()
	id := o.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO offers (id, org_id, title, description, status, location, contract_type, salary_min, salary_max, created_by, responsible_user_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`
	_, err := r.Pool.Exec(ctx, q, id, o.OrgID, o.Title, o.Description, o.Status, o.Location, o.ContractType, o.SalaryMin, o.SalaryMax, o.CreatedBy, o.ResponsibleUserID, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("op=offer.create: %w", mapPgError(err))
	}
	return id, nil
}

func (r *OfferRepo) Update(ctx domain.Context, o domain.Offer) error {
	ctx, span := otel.Tracer("repo.offers").Start(ctx, "offers.Update")
	defer span.End()
	q := `UPDATE offers SET title=$3, description=$4, status=$5, location=$6, contract_type=$7, salary_min=$8, salary_max=$9, responsible_user_id=$10, updated_at=$11
		WHERE org_id=$1 AND id=$2`
	tag, err := r.Pool.Exec(ctx, q, o.OrgID, o.ID, o.Title, o.Description, o.Status, o.Location, o.ContractType, o.SalaryMin, o.SalaryMax, o.ResponsibleUserID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("op=offer.update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=offer.update: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *OfferRepo) DeleteByID(ctx domain.Context, orgID, id string) error {
	ctx, span := otel.Tracer("repo.offers").Start(ctx, "offers.DeleteByID")
	defer span.End()
	tag, err := r.Pool.Exec(ctx, `DELETE FROM offers WHERE org_id=$1 AND id=$2`, orgID, id)
	if err != nil {
		return fmt.Errorf("op=offer.delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=offer.delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanOffer(row pgx.Row) (domain.Offer, error) {
	var o domain.Offer
	err := row.Scan(&o.ID, &o.OrgID, &o.Title, &o.Description, &o.Status, &o.Location, &o.ContractType, &o.SalaryMin, &o.SalaryMax,
		&o.CreatedBy, &o.ResponsibleUserID, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}
