// Package passhash computes and verifies keyed password hashes.
//
// Each password is hashed with HMAC-SHA512 using a fresh random 128-byte
// key, and that key is stored alongside the digest as the salt. The stored
// layout is therefore a 64-byte hash plus a 128-byte salt per account.
package passhash

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"strings"

	"github.com/dalemusser/shoplist/internal/domain/apperr"
)

const (
	// HashLen is the length of an HMAC-SHA512 digest.
	HashLen = 64
	// SaltLen is the length of the random HMAC key used as the salt.
	SaltLen = 128
)

// Hash derives a keyed hash of password with a freshly generated salt.
// Two calls with the same password produce different salts and therefore
// different hashes. Empty or whitespace-only passwords are rejected.
func Hash(password string) (hash, salt []byte, err error) {
	if strings.TrimSpace(password) == "" {
		return nil, nil, fmt.Errorf("%w: password must not be empty or whitespace", apperr.ErrInvalidArgument)
	}

	salt = make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}

	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return mac.Sum(nil), salt, nil
}

// Verify recomputes the keyed hash of password with storedSalt and reports
// whether it matches storedHash. The comparison is constant-time. Inputs
// with the wrong shape (blank password, hash not 64 bytes, salt not 128
// bytes) are rejected rather than reported as a mismatch.
func Verify(password string, storedHash, storedSalt []byte) (bool, error) {
	if strings.TrimSpace(password) == "" {
		return false, fmt.Errorf("%w: password must not be empty or whitespace", apperr.ErrInvalidArgument)
	}
	if len(storedHash) != HashLen {
		return false, fmt.Errorf("%w: password hash must be %d bytes, got %d", apperr.ErrInvalidArgument, HashLen, len(storedHash))
	}
	if len(storedSalt) != SaltLen {
		return false, fmt.Errorf("%w: password salt must be %d bytes, got %d", apperr.ErrInvalidArgument, SaltLen, len(storedSalt))
	}

	mac := hmac.New(sha512.New, storedSalt)
	mac.Write([]byte(password))
	return hmac.Equal(mac.Sum(nil), storedHash), nil
}
