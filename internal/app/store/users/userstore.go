package userstore

import (
	"context"
	"errors"

	"github.com/dalemusser/shoplist/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the document collection backing the store.
const Collection = "User"

// Store provides CRUD access to the User collection. Documents are keyed
// by the generated string identifier in _id. The store carries no business
// rules; email uniqueness and password handling live in the account
// service.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// GetAll returns every user document.
func (s *Store) GetAll(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID loads a user by identifier. Returns (nil, nil) when no document
// matches.
func (s *Store) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail loads a user by email. Returns (nil, nil) when no document
// matches.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Insert writes a new user document. The caller must have assigned the
// identifier and timestamps already.
func (s *Store) Insert(ctx context.Context, u models.User) error {
	_, err := s.c.InsertOne(ctx, u)
	return err
}

// Replace swaps the full document matching id for u, inserting it fresh
// when no document matches (upsert).
func (s *Store) Replace(ctx context.Context, id string, u models.User) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": id}, u, opts)
	return err
}

// Delete removes the user with the given identifier. Returns true iff the
// write was acknowledged and exactly one document was removed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}
