package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrRateLimited     = errors.New("rate limited")
	ErrInternal        = errors.New("internal error")
)

// Workflow discriminant codes used by the invite/submission pipeline.
// Callers branch on these to produce user-facing messages.
const (
	CodeInviteNotFound      = "INVITE_NOT_FOUND"
	CodeInviteOrgMismatch   = "INVITE_ORG_MISMATCH"
	CodeInviteRevoked       = "INVITE_REVOKED"
	CodeInviteCompleted     = "INVITE_COMPLETED"
	CodeInviteExpired       = "INVITE_EXPIRED"
	CodeTestNotFound        = "TEST_NOT_FOUND"
	CodeTestInactive        = "TEST_INACTIVE"
	CodeNoQuestions         = "NO_QUESTIONS"
	CodeNoAnswers           = "NO_ANSWERS"
	CodeSubmissionNotFound  = "SUBMISSION_NOT_FOUND"
	CodeSubmissionCompleted = "SUBMISSION_COMPLETED"
)

// FlowError is a typed domain error carrying a workflow discriminant code.
type FlowError struct {
	Code string
}

func (e *FlowError) Error() string { return fmt.Sprintf("workflow error: %s", e.Code) }

// NewFlowError constructs a FlowError for the given discriminant code.
func NewFlowError(code string) *FlowError { return &FlowError{Code: code} }

// FlowCode extracts the workflow discriminant code from err, or "" when err
// is not a FlowError.
func FlowCode(err error) string {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}
