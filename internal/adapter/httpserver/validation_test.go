package httpserver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fairyhunter13/hireflow/internal/domain"
)

func Test_decodeAndValidate_OK(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"a","password":"b"}`))
	var req loginRequest
	details, err := decodeAndValidate(r, &req)
	if err != nil {
		t.Fatalf("unexpected error: %v (%v)", err, details)
	}
	if req.Username != "a" || req.Password != "b" {
		t.Fatalf("decoded: %+v", req)
	}
}

func Test_decodeAndValidate_MissingField(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"a"}`))
	var req loginRequest
	details, err := decodeAndValidate(r, &req)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
	if len(details) != 1 || details[0].Field != "Password" {
		t.Fatalf("details: %+v", details)
	}
}

func Test_decodeAndValidate_UnknownField(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"a","password":"b","extra":1}`))
	var req loginRequest
	_, err := decodeAndValidate(r, &req)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}

func Test_decodeAndValidate_MalformedJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	var req loginRequest
	_, err := decodeAndValidate(r, &req)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}
