// Package token issues and verifies the signed session tokens returned by
// the authenticate endpoint. Tokens are HS256 JWTs carrying the user's
// identifier as the subject claim and expiring after a configurable window
// (seven days unless overridden).
package token

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/shoplist/internal/domain/apperr"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// DefaultExpiry is the token lifetime when none is configured.
const DefaultExpiry = 7 * 24 * time.Hour

// Issuer signs and verifies tokens with a shared symmetric secret.
type Issuer struct {
	secret []byte
	expiry time.Duration
	log    *zap.Logger
}

// NewIssuer constructs an Issuer. A non-positive expiry falls back to
// DefaultExpiry.
func NewIssuer(secret string, expiry time.Duration, logger *zap.Logger) *Issuer {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Issuer{secret: []byte(secret), expiry: expiry, log: logger}
}

// Issue returns a signed token whose subject is userID.
func (i *Issuer) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry of tokenString and returns the
// user identifier it carries. Any verification failure is reported as
// apperr.ErrUnauthorized.
func (i *Issuer) Parse(tokenString string) (string, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", apperr.ErrUnauthorized
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperr.ErrUnauthorized
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", apperr.ErrUnauthorized
	}
	return sub, nil
}

type ctxKey string

// userIDKey carries the verified subject through the request context.
const userIDKey ctxKey = "token_user_id"

// UserID returns the verified user identifier set by RequireAuth.
func UserID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(userIDKey).(string)
	return id, ok
}

// RequireAuth rejects requests without a valid Bearer token. The verified
// subject is placed in the request context for handlers that want it.
func (i *Issuer) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		userID, err := i.Parse(raw)
		if err != nil {
			if i.log != nil {
				i.log.Debug("rejected bearer token", zap.Error(err))
			}
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		ctx := contextWithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func contextWithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}
