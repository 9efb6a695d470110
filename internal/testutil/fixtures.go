package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/shoplist/internal/app/system/passhash"
	"github.com/dalemusser/shoplist/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given names, email, and password and
// returns it with its generated identifier and credential fields set.
func (f *Fixtures) CreateUser(ctx context.Context, firstName, lastName, email, password string) models.User {
	f.t.Helper()

	hash, salt, err := passhash.Hash(password)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		PasswordSalt: salt,
		CreatedOn:    time.Now().UTC(),
	}

	_, err = f.db.Collection("User").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateItem inserts a shopping item owned by the given user.
func (f *Fixtures) CreateItem(ctx context.Context, ownerID, description string, completed bool) models.ShoppingItem {
	f.t.Helper()

	item := models.ShoppingItem{
		ID:        uuid.NewString(),
		Item:      description,
		OwnerID:   ownerID,
		Completed: completed,
		CreatedOn: time.Now().UTC(),
	}

	_, err := f.db.Collection("ShoppingItem").InsertOne(ctx, item)
	if err != nil {
		f.t.Fatalf("failed to create test item: %v", err)
	}

	return item
}
