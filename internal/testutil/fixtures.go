// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vectorhealth/planhub/internal/domain/models"
)

// Fixtures provides helper methods for seeding cached catalog data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateOrgUnit inserts an org unit with the given id, type and parent.
// Pass parentID 0 for a root unit.
func (f *Fixtures) CreateOrgUnit(ctx context.Context, id, typeID, parentID int64, name string) models.OrgUnit {
	f.t.Helper()

	ou := models.OrgUnit{
		ID:            id,
		Name:          name,
		OrgUnitTypeID: typeID,
		SyncedAt:      time.Now().UTC(),
	}
	if parentID != 0 {
		ou.ParentID = &parentID
	}

	if _, err := f.db.Collection("orgunits").InsertOne(ctx, ou); err != nil {
		f.t.Fatalf("failed to create test org unit: %v", err)
	}
	return ou
}

// CreateAssignment inserts an assignment row. Pass nil for the unassigned
// side; pass nil for both to create a cleared row.
func (f *Fixtures) CreateAssignment(ctx context.Context, id, planningID, orgUnitID int64, teamID, userID *int64) models.Assignment {
	f.t.Helper()

	a := models.Assignment{
		ID:         id,
		PlanningID: planningID,
		OrgUnitID:  orgUnitID,
		TeamID:     teamID,
		UserID:     userID,
		SyncedAt:   time.Now().UTC(),
	}

	if _, err := f.db.Collection("assignments").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test assignment: %v", err)
	}
	return a
}

// CreateTeam inserts a team with the given type and color.
func (f *Fixtures) CreateTeam(ctx context.Context, id int64, name string, teamType models.TeamType, color string) models.Team {
	f.t.Helper()

	team := models.Team{
		ID:       id,
		Name:     name,
		Type:     teamType,
		Color:    color,
		SyncedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("teams").InsertOne(ctx, team); err != nil {
		f.t.Fatalf("failed to create test team: %v", err)
	}
	return team
}

// CreateProfile inserts a user profile keyed by user id.
func (f *Fixtures) CreateProfile(ctx context.Context, userID int64, displayName, color string) models.Profile {
	f.t.Helper()

	p := models.Profile{
		UserID:      userID,
		DisplayName: displayName,
		Color:       color,
		SyncedAt:    time.Now().UTC(),
	}

	if _, err := f.db.Collection("profiles").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test profile: %v", err)
	}
	return p
}
