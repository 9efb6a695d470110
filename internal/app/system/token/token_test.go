package token_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/shoplist/internal/app/system/token"
	"github.com/dalemusser/shoplist/internal/domain/apperr"
	"go.uber.org/zap"
)

func TestIssuer_RoundTrip(t *testing.T) {
	iss := token.NewIssuer("test-secret", time.Hour, zap.NewNop())

	signed, err := iss.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	userID, err := iss.Parse(signed)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("subject: got %q, want %q", userID, "user-123")
	}
}

func TestIssuer_WrongSecret(t *testing.T) {
	iss := token.NewIssuer("test-secret", time.Hour, zap.NewNop())
	other := token.NewIssuer("different-secret", time.Hour, zap.NewNop())

	signed, err := iss.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = other.Parse(signed)
	if !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestIssuer_Expired(t *testing.T) {
	iss := token.NewIssuer("test-secret", -time.Minute, zap.NewNop())

	// A non-positive expiry falls back to the default, so build one with a
	// tiny window instead.
	short := token.NewIssuer("test-secret", time.Nanosecond, zap.NewNop())
	signed, err := short.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, err := short.Parse(signed); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for expired token, got %v", err)
	}

	// And the default-expiry issuer still accepts its own fresh tokens.
	signed, err = iss.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := iss.Parse(signed); err != nil {
		t.Errorf("fresh default-expiry token rejected: %v", err)
	}
}

func TestIssuer_ParseGarbage(t *testing.T) {
	iss := token.NewIssuer("test-secret", time.Hour, zap.NewNop())
	if _, err := iss.Parse("not-a-token"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRequireAuth(t *testing.T) {
	iss := token.NewIssuer("test-secret", time.Hour, zap.NewNop())

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = token.UserID(r)
		w.WriteHeader(http.StatusOK)
	})
	handler := iss.RequireAuth(next)

	// No header.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing token: got %d, want 401", rec.Code)
	}

	// Bad token.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: got %d, want 401", rec.Code)
	}

	// Valid token.
	signed, err := iss.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid token: got %d, want 200", rec.Code)
	}
	if gotUserID != "user-42" {
		t.Errorf("context user id: got %q, want %q", gotUserID, "user-42")
	}
}
