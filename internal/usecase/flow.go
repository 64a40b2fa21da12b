package usecase

import (
	"fmt"
	"time"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

// FlowService manages per-offer test flows and their ordered items.
type FlowService struct {
	Flows domain.TestFlowRepository
	Tests domain.TestRepository
}

// NewFlowService constructs a FlowService with its dependencies.
func NewFlowService(flows domain.TestFlowRepository, tests domain.TestRepository) FlowService {
	return FlowService{Flows: flows, Tests: tests}
}

// GetByOffer loads the flow attached to an offer, items in order.
func (s FlowService) GetByOffer(ctx domain.Context, orgID, offerID string) (domain.FlowWithItems, error) {
	return s.Flows.GetFlowByOffer(ctx, orgID, offerID)
}

// Create opens a flow for an offer. One flow per offer; the unique index on
// offer_id turns a second create into ErrConflict.
func (s FlowService) Create(ctx domain.Context, orgID, offerID, name, createdBy string) (domain.TestFlow, error) {
	if orgID == "" || offerID == "" || name == "" {
		return domain.TestFlow{}, fmt.Errorf("%w: org, offer and name required", domain.ErrInvalidArgument)
	}
	f := domain.TestFlow{
		OrgID:     orgID,
		OfferID:   offerID,
		Name:      name,
		IsActive:  true,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.Flows.CreateFlow(ctx, f)
	if err != nil {
		return domain.TestFlow{}, err
	}
	f.ID = id
	return f, nil
}

// AddItem appends an item to a flow. The video/test variants are disjoint:
// a video item must carry a videoUrl and no testId, a test item the reverse.
func (s FlowService) AddItem(ctx domain.Context, it domain.TestFlowItem) (string, error) {
	if it.FlowID == "" {
		return "", fmt.Errorf("%w: flowId required", domain.ErrInvalidArgument)
	}
	switch it.Kind {
	case domain.FlowItemVideo:
		if it.VideoURL == "" || it.TestID != "" {
			return "", fmt.Errorf("%w: video items require videoUrl and no testId", domain.ErrInvalidArgument)
		}
	case domain.FlowItemTest:
		if it.TestID == "" || it.VideoURL != "" {
			return "", fmt.Errorf("%w: test items require testId and no videoUrl", domain.ErrInvalidArgument)
		}
	default:
		return "", fmt.Errorf("%w: unknown flow item kind %q", domain.ErrInvalidArgument, it.Kind)
	}
	return s.Flows.AddItem(ctx, it)
}

// ReorderItems persists an explicit order assignment over a flow's items,
// requiring the submitted id set to equal the stored one.
func (s FlowService) ReorderItems(ctx domain.Context, flowID string, orders []domain.OrderPair) error {
	existing, err := s.Flows.ListItemIDs(ctx, flowID)
	if err != nil {
		return err
	}
	if err := checkCompleteIDSet(existing, orders); err != nil {
		return err
	}
	return s.Flows.ReorderItems(ctx, flowID, orders)
}

// DeleteItem removes a flow item.
func (s FlowService) DeleteItem(ctx domain.Context, flowID, itemID string) error {
	if flowID == "" || itemID == "" {
		return fmt.Errorf("%w: flowId and itemId required", domain.ErrInvalidArgument)
	}
	return s.Flows.DeleteItem(ctx, flowID, itemID)
}
