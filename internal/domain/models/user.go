// internal/domain/models/user.go
package models

import "time"

// User is an account that owns shopping items.
//
// The identifier is a generated string assigned at registration and never
// changes afterward. Email is expected to be unique across accounts, but
// uniqueness is enforced by a pre-check in the account service rather than
// by the store (see auth.Service.Register).
//
// PasswordHash is the 64-byte HMAC-SHA512 digest of the password keyed by
// PasswordSalt, a random 128-byte key generated per account. Neither field
// is ever serialized to JSON.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	FirstName    string    `bson:"first_name" json:"firstName"`
	LastName     string    `bson:"last_name" json:"lastName"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash []byte    `bson:"password_hash" json:"-"`
	PasswordSalt []byte    `bson:"password_salt" json:"-"`
	CreatedOn    time.Time `bson:"created_on" json:"createdOn"`
	UpdatedOn    time.Time `bson:"updated_on,omitempty" json:"updatedOn,omitempty"`
}
