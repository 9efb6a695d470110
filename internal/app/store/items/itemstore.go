package itemstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/shoplist/internal/domain/apperr"
	"github.com/dalemusser/shoplist/internal/domain/models"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the document collection backing the store.
const Collection = "ShoppingItem"

// descPolicy strips markup from item descriptions before they are stored.
// Descriptions are free-form user text that list clients render directly.
var descPolicy = bluemonday.StrictPolicy()

// Store provides access to the ShoppingItem collection. Each document
// references its owning user by identifier in owner_id.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// GetAll returns every item document.
func (s *Store) GetAll(ctx context.Context) ([]models.ShoppingItem, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var items []models.ShoppingItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByOwnerID returns the items owned by the given user, in no
// guaranteed order.
func (s *Store) GetByOwnerID(ctx context.Context, ownerID string) ([]models.ShoppingItem, error) {
	cur, err := s.c.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, err
	}
	var items []models.ShoppingItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID loads an item by identifier. Returns (nil, nil) when no
// document matches.
func (s *Store) GetByID(ctx context.Context, id string) (*models.ShoppingItem, error) {
	var item models.ShoppingItem
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Insert writes an item document as-is.
func (s *Store) Insert(ctx context.Context, item models.ShoppingItem) error {
	_, err := s.c.InsertOne(ctx, item)
	return err
}

// Replace swaps the full document matching id for item, inserting it
// fresh when no document matches (upsert).
func (s *Store) Replace(ctx context.Context, id string, item models.ShoppingItem) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": id}, item, opts)
	return err
}

// Delete removes the item with the given identifier. Returns true iff the
// write was acknowledged and exactly one document was removed. There is no
// ownership check.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}

// Create assigns a fresh identifier and creation timestamp, sanitizes the
// description, inserts the item, and returns it with the assigned fields.
func (s *Store) Create(ctx context.Context, item models.ShoppingItem) (models.ShoppingItem, error) {
	if strings.TrimSpace(item.Item) == "" {
		return models.ShoppingItem{}, fmt.Errorf("%w: item description is required", apperr.ErrInvalidArgument)
	}
	if item.OwnerID == "" {
		return models.ShoppingItem{}, fmt.Errorf("%w: item owner is required", apperr.ErrInvalidArgument)
	}

	item.ID = uuid.NewString()
	item.Item = descPolicy.Sanitize(item.Item)
	item.CreatedOn = time.Now().UTC()

	if err := s.Insert(ctx, item); err != nil {
		return models.ShoppingItem{}, err
	}
	return item, nil
}

// Update loads the existing item, mutates description, completed flag,
// and update timestamp while preserving identity and owner, then persists
// via upsert replace. Returns ErrNotFound when the identifier is unknown.
//
// The existence check and the replace are separate operations; a
// concurrent delete between them reinserts the item. That mirrors the
// store's other check-then-act writes and is accepted here.
func (s *Store) Update(ctx context.Context, item models.ShoppingItem) (models.ShoppingItem, error) {
	existing, err := s.GetByID(ctx, item.ID)
	if err != nil {
		return models.ShoppingItem{}, err
	}
	if existing == nil {
		return models.ShoppingItem{}, fmt.Errorf("%w: shopping item %s", apperr.ErrNotFound, item.ID)
	}

	existing.Item = descPolicy.Sanitize(item.Item)
	existing.Completed = item.Completed
	existing.UpdatedOn = time.Now().UTC()

	if err := s.Replace(ctx, existing.ID, *existing); err != nil {
		return models.ShoppingItem{}, err
	}
	return *existing, nil
}
