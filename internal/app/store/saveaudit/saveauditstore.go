// internal/app/store/saveaudit/saveauditstore.go
package saveauditstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vectorhealth/planhub/internal/domain/models"
)

// Store records every assignment mutation forwarded upstream.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("save_audit")}
}

// Insert records one save. If At is zero it is set to now (UTC).
func (s *Store) Insert(ctx context.Context, rec models.SaveAudit) (models.SaveAudit, error) {
	if rec.At.IsZero() {
		rec.At = time.Now().UTC()
	}
	res, err := s.c.InsertOne(ctx, rec)
	if err != nil {
		return rec, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rec.ID = oid
	}
	return rec, nil
}

// ByPlanning lists saves for one planning, newest first.
func (s *Store) ByPlanning(ctx context.Context, planningID int64, limit int64) ([]models.SaveAudit, error) {
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{"planning_id": planningID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.SaveAudit
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ByRequest lists every record sharing a bulk request id.
func (s *Store) ByRequest(ctx context.Context, requestID string) ([]models.SaveAudit, error) {
	cur, err := s.c.Find(ctx, bson.M{"request_id": requestID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.SaveAudit
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
