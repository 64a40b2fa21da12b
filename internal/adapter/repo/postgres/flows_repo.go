package postgres

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

// FlowRepo persists per-offer test flows and their ordered items.
type FlowRepo struct{ Pool PgxPool }

func NewFlowRepo(p PgxPool) *FlowRepo { return &FlowRepo{Pool: p} }

func (r *FlowRepo) GetFlowByOffer(ctx domain.Context, orgID, offerID string) (domain.FlowWithItems, error) {
	ctx, span := otel.Tracer("repo.flows").Start(ctx, "flows.GetFlowByOffer")
	defer span.End()
	var f domain.TestFlow
	err := r.Pool.QueryRow(ctx, `SELECT id, org_id, offer_id, name, is_active, created_by, created_at
		FROM test_flows WHERE org_id=$1 AND offer_id=$2`, orgID, offerID).
		Scan(&f.ID, &f.OrgID, &f.OfferID, &f.Name, &f.IsActive, &f.CreatedBy, &f.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.FlowWithItems{}, fmt.Errorf("op=flow.get_by_offer: %w", domain.ErrNotFound)
		}
		return domain.FlowWithItems{}, fmt.Errorf("op=flow.get_by_offer: %w", err)
	}
	items, err := r.listItems(ctx, f.ID)
	if err != nil {
		return domain.FlowWithItems{}, err
	}
	return domain.FlowWithItems{Flow: f, Items: items}, nil
}

func (r *FlowRepo) listItems(ctx domain.Context, flowID string) ([]domain.TestFlowItem, error) {
	q := `SELECT id, flow_id, order_index, kind, title, description, video_url, COALESCE(test_id::text, ''), is_required
		FROM test_flow_items WHERE flow_id=$1 ORDER BY order_index ASC`
	rows, err := r.Pool.Query(ctx, q, flowID)
	if err != nil {
		return nil, fmt.Errorf("op=flow.list_items: %w", err)
	}
	defer rows.Close()
	var out []domain.TestFlowItem
	for rows.Next() {
		var it domain.TestFlowItem
		if err := rows.Scan(&it.ID, &it.FlowID, &it.OrderIndex, &it.Kind, &it.Title, &it.Description, &it.VideoURL, &it.TestID, &it.IsRequired); err != nil {
			return nil, fmt.Errorf("op=flow.list_items scan: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *FlowRepo) CreateFlow(ctx domain.Context, f domain.TestFlow) (string, error) {
	ctx, span := otel.Tracer("repo.flows").Start(ctx, "flows.CreateFlow")
	defer span.End()
	id := f.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO test_flows (id, org_id, offer_id, name, is_active, created_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.Pool.Exec(ctx, q, id, f.OrgID, f.OfferID, f.Name, f.IsActive, f.CreatedBy, f.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("op=flow.create: %w", mapPgError(err))
	}
	return id, nil
}

func (r *FlowRepo) AddItem(ctx domain.Context, it domain.TestFlowItem) (string, error) {
	ctx, span := otel.Tracer("repo.flows").Start(ctx, "flows.AddItem")
	defer span.End()
	id := it.ID
	if id == "" {
		id = uuid.New().String()
	}
	var testID *string
	if it.TestID != "" {
		testID = &it.TestID
	}
	q := `INSERT INTO test_flow_items (id, flow_id, order_index, kind, title, description, video_url, test_id, is_required)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.Pool.Exec(ctx, q, id, it.FlowID, it.OrderIndex, it.Kind, it.Title, it.Description, it.VideoURL, testID, it.IsRequired)
	if err != nil {
		return "", fmt.Errorf("op=flow.add_item: %w", mapPgError(err))
	}
	return id, nil
}

// ReorderItems applies all (id, orderIndex) assignments in one transaction so
// a partial reorder is never observable.
func (r *FlowRepo) ReorderItems(ctx domain.Context, flowID string, orders []domain.OrderPair) error {
	ctx, span := otel.Tracer("repo.flows").Start(ctx, "flows.ReorderItems")
	defer span.End()
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("op=flow.reorder begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	for _, p := range orders {
		if _, err := tx.Exec(ctx, `UPDATE test_flow_items SET order_index=$3 WHERE flow_id=$1 AND id=$2`, flowID, p.ID, p.OrderIndex); err != nil {
			return fmt.Errorf("op=flow.reorder: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("op=flow.reorder commit: %w", err)
	}
	return nil
}

func (r *FlowRepo) ListItemIDs(ctx domain.Context, flowID string) ([]string, error) {
	ctx, span := otel.Tracer("repo.flows").Start(ctx, "flows.ListItemIDs")
	defer span.End()
	rows, err := r.Pool.Query(ctx, `SELECT id FROM test_flow_items WHERE flow_id=$1`, flowID)
	if err != nil {
		return nil, fmt.Errorf("op=flow.list_item_ids: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("op=flow.list_item_ids scan: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *FlowRepo) DeleteItem(ctx domain.Context, flowID, itemID string) error {
	ctx, span := otel.Tracer("repo.flows").Start(ctx, "flows.DeleteItem")
	defer span.End()
	tag, err := r.Pool.Exec(ctx, `DELETE FROM test_flow_items WHERE flow_id=$1 AND id=$2`, flowID, itemID)
	if err != nil {
		return fmt.Errorf("op=flow.delete_item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=flow.delete_item: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *FlowRepo) CountItemsUsingTest(ctx domain.Context, testID string) (int, error) {
	ctx, span := otel.Tracer("repo.flows").Start(ctx, "flows.CountItemsUsingTest")
	defer span.End()
	var n int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM test_flow_items WHERE test_id=$1`, testID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("op=flow.count_items_using_test: %w", err)
	}
	return n, nil
}
