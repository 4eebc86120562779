// internal/app/store/syncruns/syncrunstore.go
package syncrunstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vectorhealth/planhub/internal/domain/models"
)

// Store records catalog sync runs.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("sync_runs")}
}

// Insert records a completed (or failed) run.
func (s *Store) Insert(ctx context.Context, run models.SyncRun) error {
	_, err := s.c.InsertOne(ctx, run)
	return err
}

// Latest returns the most recently started run.
func (s *Store) Latest(ctx context.Context) (models.SyncRun, error) {
	var run models.SyncRun
	err := s.c.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "started_at", Value: -1}})).Decode(&run)
	return run, err
}

// LatestSuccessful returns the most recent run that completed cleanly.
func (s *Store) LatestSuccessful(ctx context.Context) (models.SyncRun, error) {
	var run models.SyncRun
	err := s.c.FindOne(ctx,
		bson.M{"error": bson.M{"$in": bson.A{nil, ""}}, "finished_at": bson.M{"$ne": nil}},
		options.FindOne().SetSort(bson.D{{Key: "started_at", Value: -1}})).Decode(&run)
	return run, err
}

// Prune removes all but the most recent keep runs.
func (s *Store) Prune(ctx context.Context, keep int64) (int64, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}}).SetSkip(keep))
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var stale []string
	for cur.Next(ctx) {
		var run models.SyncRun
		if err := cur.Decode(&run); err != nil {
			return 0, err
		}
		stale = append(stale, run.ID)
	}
	if err := cur.Err(); err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": stale}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
