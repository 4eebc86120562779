// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureAssignments(ctx, db); err != nil {
		problems = append(problems, "assignments: "+err.Error())
	}
	if err := ensureOrgUnits(ctx, db); err != nil {
		problems = append(problems, "orgunits: "+err.Error())
	}
	if err := ensureTeams(ctx, db); err != nil {
		problems = append(problems, "teams: "+err.Error())
	}
	if err := ensureProfiles(ctx, db); err != nil {
		problems = append(problems, "profiles: "+err.Error())
	}
	if err := ensureAPIKeys(ctx, db); err != nil {
		problems = append(problems, "api_keys: "+err.Error())
	}
	if err := ensureSyncRuns(ctx, db); err != nil {
		problems = append(problems, "sync_runs: "+err.Error())
	}
	if err := ensureSaveAudit(ctx, db); err != nil {
		problems = append(problems, "save_audit: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func uniqueOf(opts *options.IndexOptions) bool {
	return opts != nil && opts.Unique != nil && *opts.Unique
}

// ensureIndexSet creates each desired index unless one with the same key
// pattern and uniqueness already exists. An existing index with matching
// keys but different options is dropped and recreated.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, desired []mongo.IndexModel) error {
	existing := map[string]existingIndex{} // key signature -> index
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		existing[keySig(idx.Key)] = idx
	}

	var errs []string
	for _, m := range desired {
		sig := keySig(m.Keys.(bson.D))

		if ex, ok := existing[sig]; ok {
			exUnique := ex.Unique != nil && *ex.Unique
			if exUnique == uniqueOf(m.Options) {
				continue // reuse
			}
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), sig, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), sig, err))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Per-collection index sets                                                  */
/* -------------------------------------------------------------------------- */

func ensureAssignments(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("assignments")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Save and map lookups hit {planning, org unit} directly.
		{
			Keys:    bson.D{{Key: "planning_id", Value: 1}, {Key: "org_unit_id", Value: 1}},
			Options: options.Index().SetName("idx_assignments_planning_orgunit"),
		},
		// ReplaceAll prunes rows older than the sync cutoff.
		{
			Keys:    bson.D{{Key: "synced_at", Value: 1}},
			Options: options.Index().SetName("idx_assignments_syncedat"),
		},
	})
}

func ensureOrgUnits(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("orgunits")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "org_unit_type_id", Value: 1}},
			Options: options.Index().SetName("idx_orgunits_type"),
		},
		// The descendant walk queries children by parent id level by level.
		{
			Keys:    bson.D{{Key: "parent_id", Value: 1}},
			Options: options.Index().SetName("idx_orgunits_parent"),
		},
		{
			Keys:    bson.D{{Key: "synced_at", Value: 1}},
			Options: options.Index().SetName("idx_orgunits_syncedat"),
		},
	})
}

func ensureTeams(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("teams")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "synced_at", Value: 1}},
			Options: options.Index().SetName("idx_teams_syncedat"),
		},
	})
}

func ensureProfiles(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("profiles")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "synced_at", Value: 1}},
			Options: options.Index().SetName("idx_profiles_syncedat"),
		},
	})
}

func ensureAPIKeys(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("api_keys")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("idx_apikeys_name"),
		},
	})
}

func ensureSyncRuns(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("sync_runs")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Latest / Prune read newest first.
		{
			Keys:    bson.D{{Key: "started_at", Value: -1}},
			Options: options.Index().SetName("idx_syncruns_startedat"),
		},
	})
}

func ensureSaveAudit(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("save_audit")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "planning_id", Value: 1}, {Key: "at", Value: -1}},
			Options: options.Index().SetName("idx_saveaudit_planning_at"),
		},
		// Bulk saves share a request id; the audit endpoint groups by it.
		{
			Keys:    bson.D{{Key: "request_id", Value: 1}},
			Options: options.Index().SetName("idx_saveaudit_request"),
		},
	})
}
