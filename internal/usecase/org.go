package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fairyhunter13/hireflow/internal/domain"
	"github.com/fairyhunter13/hireflow/pkg/slugx"
)

// FallbackOrgName is used when the candidate name fails length constraints.
const FallbackOrgName = "My Organization"

// OrgService provisions an organization on a user's first login.
type OrgService struct {
	Orgs        domain.OrgRepository
	Memberships domain.MembershipRepository
	Session     domain.SessionReader
}

// NewOrgService constructs an OrgService with its dependencies.
func NewOrgService(orgs domain.OrgRepository, memberships domain.MembershipRepository, session domain.SessionReader) OrgService {
	return OrgService{Orgs: orgs, Memberships: memberships, Session: session}
}

// EnsureOrgResult reports whether a new organization was provisioned.
type EnsureOrgResult struct {
	Created bool
	OrgID   string
	Slug    string
}

// EnsureOnFirstLogin provisions an organization and owner membership for the
// current user unless they already belong to one.
//
// The slug derives from the sanitized name plus the first 8 characters of the
// user id. A uniqueness violation on the slug gets exactly one retry with an
// extra random suffix; any other failure propagates unchanged.
func (s OrgService) EnsureOnFirstLogin(ctx domain.Context, candidateName string) (EnsureOrgResult, error) {
	userID, err := s.Session.CurrentUserID(ctx)
	if err != nil || userID == "" {
		return EnsureOrgResult{}, fmt.Errorf("op=org.ensure: %w", domain.ErrUnauthenticated)
	}
	existing, err := s.Memberships.ListByUser(ctx, userID)
	if err != nil {
		return EnsureOrgResult{}, err
	}
	if len(existing) > 0 {
		return EnsureOrgResult{Created: false}, nil
	}

	name := sanitizeOrgName(candidateName)
	slug := slugx.Derive(name) + "-" + userIDPrefix(userID)

	orgID, err := s.createOrg(ctx, name, slug, userID)
	if errors.Is(err, domain.ErrConflict) {
		slug = slug + "-" + slugx.RandomSuffix(2)
		orgID, err = s.createOrg(ctx, name, slug, userID)
	}
	if err != nil {
		return EnsureOrgResult{}, err
	}

	m := domain.Membership{UserID: userID, OrgID: orgID, Role: domain.RoleOwner, CreatedAt: time.Now().UTC()}
	if err := s.Memberships.Create(ctx, m); err != nil {
		return EnsureOrgResult{}, err
	}
	return EnsureOrgResult{Created: true, OrgID: orgID, Slug: slug}, nil
}

func (s OrgService) createOrg(ctx domain.Context, name, slug, userID string) (string, error) {
	o := domain.Organization{Name: name, Slug: slug, CreatedBy: userID, CreatedAt: time.Now().UTC()}
	return s.Orgs.Create(ctx, o)
}

// sanitizeOrgName trims the candidate name and requires a length in [3,80];
// anything else falls back to FallbackOrgName.
func sanitizeOrgName(name string) string {
	name = strings.TrimSpace(name)
	if n := len([]rune(name)); n < 3 || n > 80 {
		return FallbackOrgName
	}
	return name
}

func userIDPrefix(userID string) string {
	if len(userID) > 8 {
		return userID[:8]
	}
	return userID
}
