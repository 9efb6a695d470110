// internal/domain/models/shoppingitem.go
package models

import "time"

// ShoppingItem is a single entry on a user's list. OwnerID references the
// owning User by identifier; the owner's profile is joined at the API
// layer rather than embedded in the document.
type ShoppingItem struct {
	ID        string    `bson:"_id" json:"id"`
	Item      string    `bson:"item" json:"item"`
	OwnerID   string    `bson:"owner_id" json:"ownerId"`
	Completed bool      `bson:"completed" json:"completed"`
	CreatedOn time.Time `bson:"created_on" json:"createdOn"`
	UpdatedOn time.Time `bson:"updated_on,omitempty" json:"updatedOn,omitempty"`

	// Deleted is persisted for forward compatibility with a soft-delete
	// scheme. Nothing sets or filters on it yet; Delete removes documents
	// outright.
	Deleted bool `bson:"deleted" json:"-"`
}
