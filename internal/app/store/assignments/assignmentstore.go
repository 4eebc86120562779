// internal/app/store/assignments/assignmentstore.go
package assignmentstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vectorhealth/planhub/internal/domain/models"
)

// Store is the local cache of upstream assignment rows, keyed by the
// upstream row id.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("assignments")}
}

// ReplaceAll upserts the freshly synced rows and removes rows upstream no
// longer reports. cutoff is the sync start time; anything last synced before
// it is stale.
func (s *Store) ReplaceAll(ctx context.Context, rows []models.Assignment, cutoff time.Time) error {
	if len(rows) > 0 {
		writes := make([]mongo.WriteModel, 0, len(rows))
		for _, a := range rows {
			writes = append(writes, mongo.NewReplaceOneModel().
				SetFilter(bson.M{"_id": a.ID}).
				SetReplacement(a).
				SetUpsert(true))
		}
		if _, err := s.c.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
			return err
		}
	}
	_, err := s.c.DeleteMany(ctx, bson.M{"synced_at": bson.M{"$lt": cutoff}})
	return err
}

// Upsert refreshes a single row, used after a save is forwarded upstream so
// the cache reflects the write without waiting for the next sync.
func (s *Store) Upsert(ctx context.Context, a models.Assignment) error {
	if a.SyncedAt.IsZero() {
		a.SyncedAt = time.Now().UTC()
	}
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": a.ID}, a, options.Replace().SetUpsert(true))
	return err
}

// All returns the unscoped assignment list (used for other-assignation
// resolution).
func (s *Store) All(ctx context.Context) ([]models.Assignment, error) {
	return s.find(ctx, bson.M{})
}

// ByPlanning returns rows scoped to one planning.
func (s *Store) ByPlanning(ctx context.Context, planningID int64) ([]models.Assignment, error) {
	return s.find(ctx, bson.M{"planning_id": planningID})
}

// GetByID returns a single row by upstream id.
func (s *Store) GetByID(ctx context.Context, id int64) (models.Assignment, error) {
	var a models.Assignment
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	return a, err
}

// GetByOrgUnit returns the row for a (planning, org unit) pair, honoring the
// single-assignment-per-org-unit invariant within a planning.
func (s *Store) GetByOrgUnit(ctx context.Context, planningID, orgUnitID int64) (models.Assignment, error) {
	var a models.Assignment
	err := s.c.FindOne(ctx, bson.M{"planning_id": planningID, "org_unit_id": orgUnitID}).Decode(&a)
	return a, err
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Assignment, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
