// internal/app/store/orgunits/orgunitstore.go
package orgunitstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vectorhealth/planhub/internal/domain/models"
)

// Store is the local cache of the upstream org-unit catalog. Parent pointers
// are not persisted; Hydrate rebuilds a chain from parent_id links on read.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("orgunits")}
}

// ReplaceAll upserts synced units and drops units upstream no longer reports.
func (s *Store) ReplaceAll(ctx context.Context, rows []models.OrgUnit, cutoff time.Time) error {
	if len(rows) > 0 {
		writes := make([]mongo.WriteModel, 0, len(rows))
		for _, ou := range rows {
			ou.Parent = nil // chain is rebuilt on read
			writes = append(writes, mongo.NewReplaceOneModel().
				SetFilter(bson.M{"_id": ou.ID}).
				SetReplacement(ou).
				SetUpsert(true))
		}
		if _, err := s.c.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
			return err
		}
	}
	_, err := s.c.DeleteMany(ctx, bson.M{"synced_at": bson.M{"$lt": cutoff}})
	return err
}

// GetByID returns a single org unit without its parent chain.
func (s *Store) GetByID(ctx context.Context, id int64) (models.OrgUnit, error) {
	var ou models.OrgUnit
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ou)
	return ou, err
}

// Hydrate loads the unit and follows parent_id links, wiring Parent pointers
// up to the root. A broken link (missing parent) terminates the chain
// quietly; a cycle terminates it as well.
func (s *Store) Hydrate(ctx context.Context, id int64) (models.OrgUnit, error) {
	ou, err := s.GetByID(ctx, id)
	if err != nil {
		return models.OrgUnit{}, err
	}

	seen := map[int64]struct{}{ou.ID: {}}
	node := &ou
	for node.ParentID != nil {
		pid := *node.ParentID
		if _, dup := seen[pid]; dup {
			break
		}
		parent, err := s.GetByID(ctx, pid)
		if err == mongo.ErrNoDocuments {
			break
		}
		if err != nil {
			return models.OrgUnit{}, err
		}
		seen[pid] = struct{}{}
		node.Parent = &parent
		node = node.Parent
	}
	return ou, nil
}

// ByType returns every unit of the given org-unit type, in stable id order.
func (s *Store) ByType(ctx context.Context, typeID int64) ([]models.OrgUnit, error) {
	return s.find(ctx, bson.M{"org_unit_type_id": typeID})
}

// ByParents returns every unit whose parent is in parentIDs.
func (s *Store) ByParents(ctx context.Context, parentIDs []int64) ([]models.OrgUnit, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	return s.find(ctx, bson.M{"parent_id": bson.M{"$in": parentIDs}})
}

// DescendantsOfType walks the parent_id tree breadth-first from root and
// returns every descendant of the given type. The root itself is never
// included, mirroring how a clicked parent must not be classified as one of
// its own children.
func (s *Store) DescendantsOfType(ctx context.Context, rootID, typeID int64) ([]models.OrgUnit, error) {
	var out []models.OrgUnit
	seen := map[int64]struct{}{rootID: {}}
	frontier := []int64{rootID}

	for len(frontier) > 0 {
		level, err := s.ByParents(ctx, frontier)
		if err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, ou := range level {
			if _, dup := seen[ou.ID]; dup {
				continue
			}
			seen[ou.ID] = struct{}{}
			frontier = append(frontier, ou.ID)
			if ou.OrgUnitTypeID == typeID {
				out = append(out, ou)
			}
		}
	}
	return out, nil
}

// List applies the catalog filters with an int64-keyset look-ahead: callers
// pass limit+1 and trim, the same way list pages work elsewhere.
func (s *Store) List(ctx context.Context, typeID int64, validationStatus string, afterID int64, limit int64) ([]models.OrgUnit, error) {
	filter := bson.M{}
	if typeID != 0 {
		filter["org_unit_type_id"] = typeID
	}
	if validationStatus != "" {
		filter["validation_status"] = validationStatus
	}
	if afterID != 0 {
		filter["_id"] = bson.M{"$gt": afterID}
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.OrgUnit
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of cached units.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.OrgUnit, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.OrgUnit
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
