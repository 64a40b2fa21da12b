package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/hireflow/internal/domain"
	"github.com/fairyhunter13/hireflow/internal/domain/mocks"
	"github.com/fairyhunter13/hireflow/internal/usecase"
)

func TestCandidateCreate_StartsInNew(t *testing.T) {
	t.Parallel()
	repo := &mocks.MockCandidateRepository{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c domain.Candidate) bool {
		return c.Status == domain.CandidateNew && c.FullName == "Ada Lovelace"
	})).Return("cand-1", nil)

	svc := usecase.NewCandidateService(repo)
	c, err := svc.Create(context.Background(), domain.Candidate{
		OrgID: "org-1", FullName: "Ada Lovelace", Status: domain.CandidateHired, // caller-sent status is ignored
	})
	require.NoError(t, err)
	assert.Equal(t, "cand-1", c.ID)
	assert.Equal(t, domain.CandidateNew, c.Status)
}

func TestCandidateUpdate_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()
	svc := usecase.NewCandidateService(&mocks.MockCandidateRepository{})
	err := svc.Update(context.Background(), domain.Candidate{ID: "cand-1", OrgID: "org-1", Status: "limbo"})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestCandidateAttachCV_SniffsMIME(t *testing.T) {
	t.Parallel()
	repo := &mocks.MockCandidateRepository{}
	repo.On("AttachCV", mock.Anything, "org-1", "cand-1", mock.MatchedBy(func(cv domain.CVMeta) bool {
		return cv.FileName == "cv.pdf" && cv.MIME == "application/pdf" && cv.Size == 8
	})).Return(nil)

	svc := usecase.NewCandidateService(repo)
	meta, err := svc.AttachCV(context.Background(), "org-1", "cand-1", "cv.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", meta.MIME)
	repo.AssertExpectations(t)
}

func TestCandidateAttachCV_EmptyUpload(t *testing.T) {
	t.Parallel()
	svc := usecase.NewCandidateService(&mocks.MockCandidateRepository{})
	_, err := svc.AttachCV(context.Background(), "org-1", "cand-1", "cv.pdf", nil)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestCandidateArchive_Idempotent(t *testing.T) {
	t.Parallel()
	repo := &mocks.MockCandidateRepository{}
	repo.On("GetByID", mock.Anything, "org-1", "cand-1").
		Return(domain.Candidate{ID: "cand-1", OrgID: "org-1", Status: domain.CandidateArchived}, nil)

	svc := usecase.NewCandidateService(repo)
	require.NoError(t, svc.Archive(context.Background(), "org-1", "cand-1"))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
