// Package auth holds the account service: registration, credential
// verification, and profile updates against the user store.
package auth

import (
	"context"
	"fmt"
	"time"

	userstore "github.com/dalemusser/shoplist/internal/app/store/users"
	"github.com/dalemusser/shoplist/internal/app/system/passhash"
	"github.com/dalemusser/shoplist/internal/domain/apperr"
	"github.com/dalemusser/shoplist/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service orchestrates the user store and password hashing.
type Service struct {
	users *userstore.Store
	log   *zap.Logger
}

func NewService(users *userstore.Store, logger *zap.Logger) *Service {
	return &Service{users: users, log: logger}
}

// Register creates a new account from the supplied profile and plaintext
// password.
//
// The email pre-check and the insert are separate store operations with no
// transaction between them, so two concurrent registrations for the same
// email can both pass the check and both insert. The window is known and
// left in place; see the package tests.
func (s *Service) Register(ctx context.Context, user models.User, password string) (models.User, error) {
	existing, err := s.users.GetByEmail(ctx, user.Email)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return models.User{}, fmt.Errorf("%w: email %s is already taken", apperr.ErrConflict, user.Email)
	}

	hash, salt, err := passhash.Hash(password)
	if err != nil {
		return models.User{}, err
	}

	user.ID = uuid.NewString()
	user.PasswordHash = hash
	user.PasswordSalt = salt
	user.CreatedOn = time.Now().UTC()

	if err := s.users.Insert(ctx, user); err != nil {
		return models.User{}, err
	}

	s.log.Info("registered user", zap.String("user_id", user.ID))
	return user, nil
}

// Authenticate verifies the credentials and returns the matching user.
// It returns (nil, nil) rather than an error when either input is empty, when
// no account has the email, or when the password does not verify. The
// store is never touched for empty inputs.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, nil
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	ok, err := passhash.Verify(password, user.PasswordHash, user.PasswordSalt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return user, nil
}

// Update mutates an existing account's profile. A non-blank password also
// rehashes the stored credentials. The full document is persisted with an
// upsert replace, preserving identity and creation timestamp.
func (s *Service) Update(ctx context.Context, user models.User, password string) (models.User, error) {
	existing, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return models.User{}, err
	}
	if existing == nil {
		return models.User{}, fmt.Errorf("%w: user %s", apperr.ErrNotFound, user.ID)
	}

	if user.Email != existing.Email {
		other, err := s.users.GetByEmail(ctx, user.Email)
		if err != nil {
			return models.User{}, err
		}
		if other != nil && other.ID != user.ID {
			return models.User{}, fmt.Errorf("%w: email %s is already taken", apperr.ErrConflict, user.Email)
		}
	}

	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.Email = user.Email
	existing.UpdatedOn = time.Now().UTC()

	if password != "" {
		hash, salt, err := passhash.Hash(password)
		if err != nil {
			return models.User{}, err
		}
		existing.PasswordHash = hash
		existing.PasswordSalt = salt
	}

	if err := s.users.Replace(ctx, existing.ID, *existing); err != nil {
		return models.User{}, err
	}

	s.log.Info("updated user", zap.String("user_id", existing.ID))
	return *existing, nil
}

// All returns every account.
func (s *Service) All(ctx context.Context) ([]models.User, error) {
	return s.users.GetAll(ctx)
}

// ByID returns the account with the given identifier, or nil.
func (s *Service) ByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// Remove hard-deletes the account. There is no soft-delete for users.
func (s *Service) Remove(ctx context.Context, id string) (bool, error) {
	return s.users.Delete(ctx, id)
}
