package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fairyhunter13/hireflow/internal/config"
	"github.com/fairyhunter13/hireflow/internal/domain"
)

func Test_HashPassword_VerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", defaultArgon2Params)
	if err != nil {
		t.Fatalf("hash err: %v", err)
	}
	if !VerifyPassword("s3cret", hash) {
		t.Fatalf("verify failed")
	}
	if VerifyPassword("wrong", hash) {
		t.Fatalf("verify should fail for wrong password")
	}
}

func Test_SessionRoundTrip(t *testing.T) {
	sm := NewSessionManager(config.Config{AdminSessionSecret: "test-secret"})
	val, err := sm.CreateSession("alex")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	sd, err := sm.ValidateSession(val)
	if err != nil {
		t.Fatalf("validate session: %v", err)
	}
	if sd.Username != "alex" {
		t.Fatalf("username: got %s", sd.Username)
	}
	if _, err := sm.ValidateSession(val + "tamper"); err == nil {
		t.Fatalf("tampered session should fail")
	}
}

func Test_AuthRequired_NoCookie(t *testing.T) {
	sm := NewSessionManager(config.Config{AdminSessionSecret: "test-secret"})
	h := sm.AuthRequired(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/v1/orgs/x/candidates", nil))
	if rw.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want 401", rw.Code)
	}
}

func Test_AuthRequired_ValidCookie(t *testing.T) {
	sm := NewSessionManager(config.Config{AdminSessionSecret: "test-secret"})
	val, _ := sm.CreateSession("alex")
	var gotUser string
	h := sm.AuthRequired(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = ContextSessionReader{}.CurrentUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/v1/orgs/x/candidates", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: val})
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	if rw.Code != http.StatusOK {
		t.Fatalf("status: got %d want 200", rw.Code)
	}
	if gotUser != "alex" {
		t.Fatalf("user: got %s want alex", gotUser)
	}
}

func Test_ContextSessionReader_Unauthenticated(t *testing.T) {
	_, err := ContextSessionReader{}.CurrentUserID(context.Background())
	if err == nil {
		t.Fatalf("expected error without session")
	}
	if err != domain.ErrUnauthenticated {
		t.Fatalf("got %v want ErrUnauthenticated", err)
	}
}

func Test_parseInt64(t *testing.T) {
	if parseInt64("123") != 123 {
		t.Fatalf("parse 123")
	}
	if parseInt64("x") != 0 {
		t.Fatalf("parse invalid should be 0")
	}
}
