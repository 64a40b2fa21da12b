// Package mocks provides testify mocks for the domain ports.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

// MockCandidateRepository is a mock for domain.CandidateRepository.
type MockCandidateRepository struct{ mock.Mock }

func (m *MockCandidateRepository) ListByOrg(ctx domain.Context, orgID string) ([]domain.Candidate, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) Create(ctx domain.Context, c domain.Candidate) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}

func (m *MockCandidateRepository) GetByID(ctx domain.Context, orgID, id string) (domain.Candidate, error) {
	args := m.Called(ctx, orgID, id)
	return args.Get(0).(domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) Update(ctx domain.Context, c domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepository) DeleteByID(ctx domain.Context, orgID, id string) error {
	return m.Called(ctx, orgID, id).Error(0)
}

func (m *MockCandidateRepository) UpdateNote(ctx domain.Context, orgID, id, note string) error {
	return m.Called(ctx, orgID, id, note).Error(0)
}

func (m *MockCandidateRepository) AttachCV(ctx domain.Context, orgID, id string, cv domain.CVMeta) error {
	return m.Called(ctx, orgID, id, cv).Error(0)
}

// MockOfferRepository is a mock for domain.OfferRepository.
type MockOfferRepository struct{ mock.Mock }

func (m *MockOfferRepository) ListByOrg(ctx domain.Context, orgID string) ([]domain.Offer, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Offer), args.Error(1)
}

func (m *MockOfferRepository) GetByID(ctx domain.Context, orgID, id string) (domain.Offer, error) {
	args := m.Called(ctx, orgID, id)
	return args.Get(0).(domain.Offer), args.Error(1)
}

func (m *MockOfferRepository) Create(ctx domain.Context, o domain.Offer) (string, error) {
	args := m.Called(ctx, o)
	return args.String(0), args.Error(1)
}

func (m *MockOfferRepository) Update(ctx domain.Context, o domain.Offer) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOfferRepository) DeleteByID(ctx domain.Context, orgID, id string) error {
	return m.Called(ctx, orgID, id).Error(0)
}

// MockTestRepository is a mock for domain.TestRepository.
type MockTestRepository struct{ mock.Mock }

func (m *MockTestRepository) CreateTest(ctx domain.Context, t domain.Test) (string, error) {
	args := m.Called(ctx, t)
	return args.String(0), args.Error(1)
}

func (m *MockTestRepository) UpdateTest(ctx domain.Context, t domain.Test) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTestRepository) DeleteTest(ctx domain.Context, orgID, id string) error {
	return m.Called(ctx, orgID, id).Error(0)
}

func (m *MockTestRepository) ArchiveByID(ctx domain.Context, orgID, id string) error {
	return m.Called(ctx, orgID, id).Error(0)
}

func (m *MockTestRepository) GetTestByID(ctx domain.Context, orgID, id string) (domain.Test, error) {
	args := m.Called(ctx, orgID, id)
	return args.Get(0).(domain.Test), args.Error(1)
}

func (m *MockTestRepository) GetTestWithQuestions(ctx domain.Context, orgID, id string) (domain.TestWithQuestions, error) {
	args := m.Called(ctx, orgID, id)
	return args.Get(0).(domain.TestWithQuestions), args.Error(1)
}

func (m *MockTestRepository) AddQuestion(ctx domain.Context, q domain.TestQuestion) (string, error) {
	args := m.Called(ctx, q)
	return args.String(0), args.Error(1)
}

func (m *MockTestRepository) UpdateQuestion(ctx domain.Context, q domain.TestQuestion) error {
	return m.Called(ctx, q).Error(0)
}

func (m *MockTestRepository) ReorderQuestions(ctx domain.Context, testID string, orders []domain.OrderPair) error {
	return m.Called(ctx, testID, orders).Error(0)
}

func (m *MockTestRepository) StartSubmission(ctx domain.Context, s domain.TestSubmission) (string, error) {
	args := m.Called(ctx, s)
	return args.String(0), args.Error(1)
}

func (m *MockTestRepository) CreateSubmissionItems(ctx domain.Context, submissionID string, items []domain.TestSubmissionItem) error {
	return m.Called(ctx, submissionID, items).Error(0)
}

func (m *MockTestRepository) GetSubmissionWithAnswers(ctx domain.Context, orgID, submissionID string) (domain.SubmissionAggregate, error) {
	args := m.Called(ctx, orgID, submissionID)
	return args.Get(0).(domain.SubmissionAggregate), args.Error(1)
}

func (m *MockTestRepository) SubmitAnswers(ctx domain.Context, submissionID string, answers []domain.TestAnswer, numericScore, maxScore *int) error {
	return m.Called(ctx, submissionID, answers, numericScore, maxScore).Error(0)
}

func (m *MockTestRepository) AddReview(ctx domain.Context, r domain.TestReview) (string, error) {
	args := m.Called(ctx, r)
	return args.String(0), args.Error(1)
}

func (m *MockTestRepository) GetReviewBySubmissionID(ctx domain.Context, submissionID string) (domain.TestReview, error) {
	args := m.Called(ctx, submissionID)
	return args.Get(0).(domain.TestReview), args.Error(1)
}

// MockTestFlowRepository is a mock for domain.TestFlowRepository.
type MockTestFlowRepository struct{ mock.Mock }

func (m *MockTestFlowRepository) GetFlowByOffer(ctx domain.Context, orgID, offerID string) (domain.FlowWithItems, error) {
	args := m.Called(ctx, orgID, offerID)
	return args.Get(0).(domain.FlowWithItems), args.Error(1)
}

func (m *MockTestFlowRepository) CreateFlow(ctx domain.Context, f domain.TestFlow) (string, error) {
	args := m.Called(ctx, f)
	return args.String(0), args.Error(1)
}

func (m *MockTestFlowRepository) AddItem(ctx domain.Context, it domain.TestFlowItem) (string, error) {
	args := m.Called(ctx, it)
	return args.String(0), args.Error(1)
}

func (m *MockTestFlowRepository) ReorderItems(ctx domain.Context, flowID string, orders []domain.OrderPair) error {
	return m.Called(ctx, flowID, orders).Error(0)
}

func (m *MockTestFlowRepository) ListItemIDs(ctx domain.Context, flowID string) ([]string, error) {
	args := m.Called(ctx, flowID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTestFlowRepository) DeleteItem(ctx domain.Context, flowID, itemID string) error {
	return m.Called(ctx, flowID, itemID).Error(0)
}

func (m *MockTestFlowRepository) CountItemsUsingTest(ctx domain.Context, testID string) (int, error) {
	args := m.Called(ctx, testID)
	return args.Int(0), args.Error(1)
}

// MockTestInviteRepository is a mock for domain.TestInviteRepository.
type MockTestInviteRepository struct{ mock.Mock }

func (m *MockTestInviteRepository) ListByCandidate(ctx domain.Context, orgID, candidateID string) ([]domain.TestInvite, error) {
	args := m.Called(ctx, orgID, candidateID)
	return args.Get(0).([]domain.TestInvite), args.Error(1)
}

func (m *MockTestInviteRepository) CreateInvite(ctx domain.Context, inv domain.TestInvite) (string, error) {
	args := m.Called(ctx, inv)
	return args.String(0), args.Error(1)
}

func (m *MockTestInviteRepository) GetByToken(ctx domain.Context, token string) (domain.TestInvite, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.TestInvite), args.Error(1)
}

func (m *MockTestInviteRepository) MarkCompleted(ctx domain.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTestInviteRepository) MarkRevoked(ctx domain.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTestInviteRepository) LinkSubmission(ctx domain.Context, id, submissionID string) error {
	return m.Called(ctx, id, submissionID).Error(0)
}

// MockOrgRepository is a mock for domain.OrgRepository.
type MockOrgRepository struct{ mock.Mock }

func (m *MockOrgRepository) Create(ctx domain.Context, o domain.Organization) (string, error) {
	args := m.Called(ctx, o)
	return args.String(0), args.Error(1)
}

func (m *MockOrgRepository) GetByID(ctx domain.Context, id string) (domain.Organization, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Organization), args.Error(1)
}

// MockMembershipRepository is a mock for domain.MembershipRepository.
type MockMembershipRepository struct{ mock.Mock }

func (m *MockMembershipRepository) ListByUser(ctx domain.Context, userID string) ([]domain.Membership, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) Create(ctx domain.Context, ms domain.Membership) error {
	return m.Called(ctx, ms).Error(0)
}

// MockSessionReader is a mock for domain.SessionReader.
type MockSessionReader struct{ mock.Mock }

func (m *MockSessionReader) CurrentUserID(ctx domain.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockEventPublisher is a mock for domain.EventPublisher.
type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx domain.Context, ev domain.Event) error {
	return m.Called(ctx, ev).Error(0)
}
