// internal/app/store/apikeys/apikeystore.go
package apikeystore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/vectorhealth/planhub/internal/domain/models"
)

// Store holds inbound API credentials. Key material is bcrypt-hashed; the
// plaintext exists only in the Create return value.
type Store struct {
	c *mongo.Collection
}

var ErrInvalidKey = errors.New("invalid API key")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("api_keys")}
}

// Create stores a new named key and returns its record. The caller supplies
// the plaintext (typically a generated uuid) and shows it to the operator
// once.
func (s *Store) Create(ctx context.Context, name, plaintext string) (models.APIKey, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return models.APIKey{}, err
	}
	key := models.APIKey{
		Name:      name,
		Hash:      hash,
		CreatedAt: time.Now().UTC(),
	}
	res, err := s.c.InsertOne(ctx, key)
	if err != nil {
		return models.APIKey{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		key.ID = oid
	}
	return key, nil
}

// Verify checks the plaintext against every enabled key and returns the
// matching record. Bcrypt hashes cannot be looked up directly, so this scans;
// the key set is operator-managed and tiny.
func (s *Store) Verify(ctx context.Context, plaintext string) (models.APIKey, error) {
	cur, err := s.c.Find(ctx, bson.M{"disabled": false})
	if err != nil {
		return models.APIKey{}, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var key models.APIKey
		if err := cur.Decode(&key); err != nil {
			return models.APIKey{}, err
		}
		if bcrypt.CompareHashAndPassword(key.Hash, []byte(plaintext)) == nil {
			return key, nil
		}
	}
	if err := cur.Err(); err != nil {
		return models.APIKey{}, err
	}
	return models.APIKey{}, ErrInvalidKey
}

// Touch records when a key was last used. Failures are non-fatal bookkeeping
// and are ignored by callers.
func (s *Store) Touch(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_used": time.Now().UTC()}})
	return err
}

// Disable revokes a key without deleting its audit trail.
func (s *Store) Disable(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"disabled": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CountByName reports how many keys exist with the given name, used by the
// startup bootstrap to avoid re-creating the seed key.
func (s *Store) CountByName(ctx context.Context, name string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"name": name})
}
