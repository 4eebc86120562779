// internal/domain/models/apikey.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// APIKey is an inbound service credential. Only the bcrypt hash of the key
// material is stored; the plaintext is shown once at creation time.
type APIKey struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Hash      []byte             `bson:"hash" json:"-"`
	Disabled  bool               `bson:"disabled" json:"disabled"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	LastUsed  time.Time          `bson:"last_used,omitempty" json:"last_used,omitempty"`
}
