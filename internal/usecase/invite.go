// Package usecase contains application business logic services.
package usecase

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/fairyhunter13/hireflow/internal/adapter/observability"
	"github.com/fairyhunter13/hireflow/internal/domain"
)

// InviteService orchestrates the test invite lifecycle.
type InviteService struct {
	Invites    domain.TestInviteRepository
	Candidates domain.CandidateRepository
	Events     domain.EventPublisher
	now        func() time.Time
}

// NewInviteService constructs an InviteService with its dependencies.
func NewInviteService(inv domain.TestInviteRepository, cand domain.CandidateRepository, ev domain.EventPublisher) InviteService {
	return InviteService{Invites: inv, Candidates: cand, Events: ev, now: func() time.Time { return time.Now().UTC() }}
}

// SendInviteInput carries the pre-validated issuance request.
type SendInviteInput struct {
	OrgID          string
	CandidateID    string
	TestID         string
	ExpiresInHours int
	FlowItemID     *string
}

// SendForCandidate issues (or reuses) a test invite for a candidate.
//
// An existing invite is reused when it targets the same test, is still
// active, and its flow item matches the requested one (both nil or both
// equal). A differing flow item gets its own invite: multiple flow contexts
// can each need their own invite for the same test. Either way the candidate
// status is forced to "test"; the write is skipped when already there.
func (s InviteService) SendForCandidate(ctx domain.Context, in SendInviteInput) (domain.TestInvite, error) {
	if in.OrgID == "" || in.CandidateID == "" || in.TestID == "" {
		return domain.TestInvite{}, fmt.Errorf("%w: org, candidate and test ids required", domain.ErrInvalidArgument)
	}
	if in.ExpiresInHours <= 0 {
		return domain.TestInvite{}, fmt.Errorf("%w: expiresInHours must be positive", domain.ErrInvalidArgument)
	}
	now := s.now()
	expiresAt := now.Add(time.Duration(in.ExpiresInHours) * time.Hour)

	existing, err := s.Invites.ListByCandidate(ctx, in.OrgID, in.CandidateID)
	if err != nil {
		return domain.TestInvite{}, err
	}
	for _, inv := range existing {
		if inv.TestID != in.TestID || !inv.Active(now) {
			continue
		}
		if !sameFlowItem(inv.FlowItemID, in.FlowItemID) {
			continue
		}
		if err := s.ensureCandidateInTest(ctx, in.OrgID, in.CandidateID); err != nil {
			return domain.TestInvite{}, err
		}
		observability.InvitesIssuedTotal.WithLabelValues("reused").Inc()
		return inv, nil
	}

	token, err := newInviteToken()
	if err != nil {
		return domain.TestInvite{}, fmt.Errorf("op=invite.token: %w", err)
	}
	inv := domain.TestInvite{
		OrgID:       in.OrgID,
		CandidateID: in.CandidateID,
		TestID:      in.TestID,
		FlowItemID:  in.FlowItemID,
		Token:       token,
		Status:      domain.InvitePending,
		ExpiresAt:   expiresAt,
		CreatedAt:   now,
	}
	id, err := s.Invites.CreateInvite(ctx, inv)
	if err != nil {
		return domain.TestInvite{}, err
	}
	inv.ID = id
	if err := s.ensureCandidateInTest(ctx, in.OrgID, in.CandidateID); err != nil {
		return domain.TestInvite{}, err
	}
	observability.InvitesIssuedTotal.WithLabelValues("created").Inc()
	s.publish(ctx, domain.Event{
		Kind:        domain.EventInviteSent,
		OrgID:       in.OrgID,
		CandidateID: in.CandidateID,
		TestID:      in.TestID,
		InviteID:    id,
		OccurredAt:  now,
	})
	return inv, nil
}

// Revoke marks an invite revoked. Terminal states stay terminal: revoking a
// completed invite is a conflict.
func (s InviteService) Revoke(ctx domain.Context, orgID, candidateID, inviteID string) error {
	invites, err := s.Invites.ListByCandidate(ctx, orgID, candidateID)
	if err != nil {
		return err
	}
	for _, inv := range invites {
		if inv.ID != inviteID {
			continue
		}
		if inv.Status == domain.InviteCompleted {
			return fmt.Errorf("%w: invite already completed", domain.ErrConflict)
		}
		return s.Invites.MarkRevoked(ctx, inviteID)
	}
	return fmt.Errorf("op=invite.revoke: %w", domain.ErrNotFound)
}

// ListForCandidate returns all invites of a candidate, newest first as
// ordered by the repository.
func (s InviteService) ListForCandidate(ctx domain.Context, orgID, candidateID string) ([]domain.TestInvite, error) {
	return s.Invites.ListByCandidate(ctx, orgID, candidateID)
}

// ensureCandidateInTest forces the candidate status to "test" with a
// full-record update, round-tripping every other field unchanged. Idempotent:
// no write when the candidate is already in "test".
func (s InviteService) ensureCandidateInTest(ctx domain.Context, orgID, candidateID string) error {
	cand, err := s.Candidates.GetByID(ctx, orgID, candidateID)
	if err != nil {
		return err
	}
	if cand.Status == domain.CandidateTest {
		return nil
	}
	cand.Status = domain.CandidateTest
	return s.Candidates.Update(ctx, cand)
}

func (s InviteService) publish(ctx domain.Context, ev domain.Event) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, ev); err != nil {
		slog.Warn("event publish failed", slog.String("kind", ev.Kind), slog.Any("error", err))
	}
}

func sameFlowItem(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// newInviteToken returns a URL-safe token with 256 bits of entropy. Token
// uniqueness is additionally enforced by the store's unique index.
func newInviteToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
