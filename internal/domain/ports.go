package domain

// Repository ports. Concrete implementations live in internal/adapter/repo.

type CandidateRepository interface {
	ListByOrg(ctx Context, orgID string) ([]Candidate, error)
	Create(ctx Context, c Candidate) (string, error)
	GetByID(ctx Context, orgID, id string) (Candidate, error)
	// Update is a full-record write; fields not owned by the caller must be
	// round-tripped unchanged from the just-read record.
	Update(ctx Context, c Candidate) error
	DeleteByID(ctx Context, orgID, id string) error
	UpdateNote(ctx Context, orgID, id, note string) error
	AttachCV(ctx Context, orgID, id string, cv CVMeta) error
}

type OfferRepository interface {
	ListByOrg(ctx Context, orgID string) ([]Offer, error)
	GetByID(ctx Context, orgID, id string) (Offer, error)
	Create(ctx Context, o Offer) (string, error)
	Update(ctx Context, o Offer) error
	DeleteByID(ctx Context, orgID, id string) error
}

type TestRepository interface {
	CreateTest(ctx Context, t Test) (string, error)
	UpdateTest(ctx Context, t Test) error
	DeleteTest(ctx Context, orgID, id string) error
	ArchiveByID(ctx Context, orgID, id string) error
	GetTestByID(ctx Context, orgID, id string) (Test, error)
	GetTestWithQuestions(ctx Context, orgID, id string) (TestWithQuestions, error)
	AddQuestion(ctx Context, q TestQuestion) (string, error)
	UpdateQuestion(ctx Context, q TestQuestion) error
	ReorderQuestions(ctx Context, testID string, orders []OrderPair) error
	StartSubmission(ctx Context, s TestSubmission) (string, error)
	CreateSubmissionItems(ctx Context, submissionID string, items []TestSubmissionItem) error
	GetSubmissionWithAnswers(ctx Context, orgID, submissionID string) (SubmissionAggregate, error)
	SubmitAnswers(ctx Context, submissionID string, answers []TestAnswer, numericScore, maxScore *int) error
	AddReview(ctx Context, r TestReview) (string, error)
	GetReviewBySubmissionID(ctx Context, submissionID string) (TestReview, error)
}

// OrderPair is an explicit (id, orderIndex) assignment used by reorder operations.
type OrderPair struct {
	ID         string
	OrderIndex int
}

type TestFlowRepository interface {
	GetFlowByOffer(ctx Context, orgID, offerID string) (FlowWithItems, error)
	CreateFlow(ctx Context, f TestFlow) (string, error)
	AddItem(ctx Context, it TestFlowItem) (string, error)
	ReorderItems(ctx Context, flowID string, orders []OrderPair) error
	ListItemIDs(ctx Context, flowID string) ([]string, error)
	DeleteItem(ctx Context, flowID, itemID string) error
	CountItemsUsingTest(ctx Context, testID string) (int, error)
}

type TestInviteRepository interface {
	ListByCandidate(ctx Context, orgID, candidateID string) ([]TestInvite, error)
	CreateInvite(ctx Context, inv TestInvite) (string, error)
	GetByToken(ctx Context, token string) (TestInvite, error)
	MarkCompleted(ctx Context, id string) error
	MarkRevoked(ctx Context, id string) error
	LinkSubmission(ctx Context, id, submissionID string) error
}

type OrgRepository interface {
	Create(ctx Context, o Organization) (string, error)
	GetByID(ctx Context, id string) (Organization, error)
}

type MembershipRepository interface {
	ListByUser(ctx Context, userID string) ([]Membership, error)
	Create(ctx Context, m Membership) error
}

// SessionReader resolves the authenticated user of the current request.
// The concrete session provider is an external collaborator.
type SessionReader interface {
	CurrentUserID(ctx Context) (string, error)
}

// EventPublisher emits best-effort domain events. Implementations must not
// block the caller beyond the context deadline; errors are logged, not returned
// to end users.
type EventPublisher interface {
	Publish(ctx Context, ev Event) error
}
