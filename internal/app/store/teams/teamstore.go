// internal/app/store/teams/teamstore.go
package teamstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vectorhealth/planhub/internal/domain/models"
)

// Store is the local cache of the upstream team catalog.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teams")}
}

// ReplaceAll upserts synced teams and drops teams upstream no longer reports.
func (s *Store) ReplaceAll(ctx context.Context, rows []models.Team, cutoff time.Time) error {
	if len(rows) > 0 {
		writes := make([]mongo.WriteModel, 0, len(rows))
		for _, t := range rows {
			writes = append(writes, mongo.NewReplaceOneModel().
				SetFilter(bson.M{"_id": t.ID}).
				SetReplacement(t).
				SetUpsert(true))
		}
		if _, err := s.c.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
			return err
		}
	}
	_, err := s.c.DeleteMany(ctx, bson.M{"synced_at": bson.M{"$lt": cutoff}})
	return err
}

// All returns the full cached catalog in stable id order.
func (s *Store) All(ctx context.Context) ([]models.Team, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Team
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns a single team.
func (s *Store) GetByID(ctx context.Context, id int64) (models.Team, error) {
	var t models.Team
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	return t, err
}

// SetColor updates a team's display color locally (the upstream write is a
// separate call owned by the caller).
func (s *Store) SetColor(ctx context.Context, id int64, color string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"color": color}})
	return err
}
