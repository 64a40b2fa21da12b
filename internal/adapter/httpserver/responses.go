// Package httpserver contains HTTP handlers and middleware.
//
// It exposes the recruiter REST API, the public candidate test endpoints and
// the org bootstrap route, keeping HTTP concerns out of the use case layer.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, _ *http.Request, err error, details interface{}) {
	if code := domain.FlowCode(err); code != "" {
		writeJSON(w, flowStatus(code), errorEnvelope{Error: apiError{Code: code, Message: err.Error(), Details: details}})
		return
	}
	code := http.StatusInternalServerError
	codeStr := "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		code = http.StatusBadRequest
		codeStr = "INVALID_ARGUMENT"
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
		codeStr = "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		code = http.StatusConflict
		codeStr = "CONFLICT"
	case errors.Is(err, domain.ErrForbidden):
		code = http.StatusForbidden
		codeStr = "FORBIDDEN"
	case errors.Is(err, domain.ErrUnauthenticated):
		code = http.StatusUnauthorized
		codeStr = "UNAUTHENTICATED"
	case errors.Is(err, domain.ErrRateLimited):
		code = http.StatusTooManyRequests
		codeStr = "RATE_LIMITED"
	}
	writeJSON(w, code, errorEnvelope{Error: apiError{Code: codeStr, Message: err.Error(), Details: details}})
}

// flowStatus maps workflow discriminant codes onto HTTP statuses. Terminal
// invite states are 410 so clients can distinguish "gone" from "never
// existed".
func flowStatus(code string) int {
	switch code {
	case domain.CodeInviteNotFound, domain.CodeInviteOrgMismatch,
		domain.CodeTestNotFound, domain.CodeSubmissionNotFound:
		return http.StatusNotFound
	case domain.CodeInviteRevoked, domain.CodeInviteCompleted, domain.CodeInviteExpired:
		return http.StatusGone
	case domain.CodeTestInactive, domain.CodeNoQuestions, domain.CodeSubmissionCompleted:
		return http.StatusConflict
	case domain.CodeNoAnswers:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
