// Package domain defines the core entities, error taxonomy and repository
// ports of the applicant-tracking service. It stays free of transport and
// storage concerns; adapters depend on it, never the other way around.
package domain

import (
	"context"
	"time"
)

// Context is an alias so ports read uniformly; adapters pass context.Context through.
type Context = context.Context

// Membership roles
const (
	RoleOwner     = "owner"
	RoleAdmin     = "admin"
	RoleRecruiter = "recruiter"
	RoleViewer    = "viewer"
)

// CandidateStatus enumerates the pipeline stages of a candidate.
type CandidateStatus string

const (
	CandidateNew       CandidateStatus = "new"
	CandidateScreening CandidateStatus = "screening"
	CandidateTest      CandidateStatus = "test"
	CandidateInterview CandidateStatus = "interview"
	CandidateOffer     CandidateStatus = "offer"
	CandidateHired     CandidateStatus = "hired"
	CandidateArchived  CandidateStatus = "archived"
	CandidateRejected  CandidateStatus = "rejected"
)

// OfferStatus enumerates offer lifecycle states.
type OfferStatus string

const (
	OfferDraft     OfferStatus = "draft"
	OfferPublished OfferStatus = "published"
	OfferArchived  OfferStatus = "archived"
)

// Test types
const (
	TestTypeMotivations = "motivations"
	TestTypeScenario    = "scenario"
)

// Question kinds
const (
	QuestionYesNo    = "yes_no"
	QuestionScale    = "scale"
	QuestionChoice   = "choice"
	QuestionLongText = "long_text"
)

// Flow item kinds
const (
	FlowItemVideo = "video"
	FlowItemTest  = "test"
)

// InviteStatus enumerates invite lifecycle states; completed and revoked are terminal.
type InviteStatus string

const (
	InvitePending   InviteStatus = "pending"
	InviteCompleted InviteStatus = "completed"
	InviteRevoked   InviteStatus = "revoked"
)

// Organization is created once at first login and immutable afterwards
// except for the slug collision retry at creation time.
type Organization struct {
	ID        string
	Name      string
	Slug      string
	CreatedBy string
	CreatedAt time.Time
}

// Membership ties a user to an organization with a role.
// (UserID, OrgID) is unique; rows are never updated in this scope.
type Membership struct {
	UserID    string
	OrgID     string
	Role      string
	CreatedAt time.Time
}

// CVMeta carries résumé blob metadata; the blob itself lives in external storage.
type CVMeta struct {
	FileName   string
	MIME       string
	Size       int64
	UploadedAt time.Time
}

type Candidate struct {
	ID        string
	OrgID     string
	FullName  string
	Email     string
	Phone     string
	Location  string
	Status    CandidateStatus
	Source    string
	Tags      []string
	Note      string
	OfferID   *string
	CV        *CVMeta
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Offer struct {
	ID                string
	OrgID             string
	Title             string
	Description       string
	Status            OfferStatus
	Location          string
	ContractType      string
	SalaryMin         *int
	SalaryMax         *int
	CreatedBy         string // immutable audit data
	ResponsibleUserID string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Test struct {
	ID          string
	OrgID       string
	Name        string
	Type        string
	Description string
	IsActive    bool
	CreatedBy   string
	CreatedAt   time.Time
}

// TestQuestion belongs to a test; OrderIndex is the canonical authoring
// order (unique per test, dense not required).
type TestQuestion struct {
	ID            string
	TestID        string
	Label         string
	Kind          string
	MinValue      *int
	MaxValue      *int
	Options       []string
	IsRequired    bool
	OrderIndex    int
	DimensionCode string
	BusinessCode  string
	IsReversed    bool
}

// TestWithQuestions is the test aggregate with questions in authoring order.
type TestWithQuestions struct {
	Test      Test
	Questions []TestQuestion
}

type TestFlow struct {
	ID        string
	OrgID     string
	OfferID   string
	Name      string
	IsActive  bool
	CreatedBy string
	CreatedAt time.Time
}

// TestFlowItem is a tagged union over Kind: video items carry VideoURL,
// test items carry TestID. AddItem validation keeps the two shapes disjoint.
type TestFlowItem struct {
	ID          string
	FlowID      string
	OrderIndex  int
	Kind        string
	Title       string
	Description string
	VideoURL    string
	TestID      string
	IsRequired  bool
}

type FlowWithItems struct {
	Flow  TestFlow
	Items []TestFlowItem
}

// TestInvite grants one candidate access to one test instance via an
// unguessable token. At most one active (pending, unexpired) invite may
// exist per (candidate, test, flow item) combination.
type TestInvite struct {
	ID           string
	OrgID        string
	CandidateID  string
	TestID       string
	FlowItemID   *string
	Token        string
	Status       InviteStatus
	ExpiresAt    time.Time
	SubmissionID *string
	CreatedAt    time.Time
}

// Active reports whether the invite can still be started: not terminal and not expired.
func (i TestInvite) Active(now time.Time) bool {
	return i.Status == InvitePending && i.ExpiresAt.After(now)
}

type TestSubmission struct {
	ID           string
	OrgID        string
	TestID       string
	CandidateID  string
	OfferID      *string
	SubmittedBy  *string
	NumericScore *int
	MaxScore     *int
	CreatedAt    time.Time
}

// TestSubmissionItem fixes the presented order of one question for one
// submission. DisplayIndex is 1-based and assigned once at submission start.
type TestSubmissionItem struct {
	QuestionID   string
	DisplayIndex int
}

type TestAnswer struct {
	QuestionID  string
	ValueText   string
	ValueNumber *float64
}

// SubmissionAggregate bundles a submission with its test, questions and any
// answers recorded so far.
type SubmissionAggregate struct {
	Submission TestSubmission
	Test       Test
	Questions  []TestQuestion
	Answers    []TestAnswer
}

type AxisComment struct {
	AxisCode string
	Comment  string
}

type TestReview struct {
	ID             string
	SubmissionID   string
	ReviewerID     string
	OverallComment string
	AxisComments   []AxisComment
	CreatedAt      time.Time
}

// Event is a best-effort domain notification; publishing failures never
// fail the originating use case.
type Event struct {
	Kind         string
	OrgID        string
	CandidateID  string
	TestID       string
	InviteID     string
	SubmissionID string
	OccurredAt   time.Time
}

// Event kinds
const (
	EventInviteSent          = "invite.sent"
	EventSubmissionCompleted = "submission.completed"
)
