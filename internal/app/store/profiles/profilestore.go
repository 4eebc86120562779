// internal/app/store/profiles/profilestore.go
package profilestore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vectorhealth/planhub/internal/domain/models"
)

// Store is the local cache of the upstream profile catalog, keyed by the
// platform user id.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("profiles")}
}

// ReplaceAll upserts synced profiles and drops profiles upstream no longer
// reports.
func (s *Store) ReplaceAll(ctx context.Context, rows []models.Profile, cutoff time.Time) error {
	if len(rows) > 0 {
		writes := make([]mongo.WriteModel, 0, len(rows))
		for _, p := range rows {
			writes = append(writes, mongo.NewReplaceOneModel().
				SetFilter(bson.M{"_id": p.UserID}).
				SetReplacement(p).
				SetUpsert(true))
		}
		if _, err := s.c.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
			return err
		}
	}
	_, err := s.c.DeleteMany(ctx, bson.M{"synced_at": bson.M{"$lt": cutoff}})
	return err
}

// All returns the full cached catalog in stable user-id order.
func (s *Store) All(ctx context.Context) ([]models.Profile, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Profile
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByUserID returns a single profile.
func (s *Store) GetByUserID(ctx context.Context, userID int64) (models.Profile, error) {
	var p models.Profile
	err := s.c.FindOne(ctx, bson.M{"_id": userID}).Decode(&p)
	return p, err
}

// SetColor updates a profile's display color locally.
func (s *Store) SetColor(ctx context.Context, userID int64, color string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{"color": color}})
	return err
}
