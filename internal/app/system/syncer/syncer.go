// internal/app/system/syncer/syncer.go
package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vectorhealth/planhub/internal/app/assign"
	"github.com/vectorhealth/planhub/internal/app/geo"
	"github.com/vectorhealth/planhub/internal/app/iaso"
	assignmentstore "github.com/vectorhealth/planhub/internal/app/store/assignments"
	orgunitstore "github.com/vectorhealth/planhub/internal/app/store/orgunits"
	profilestore "github.com/vectorhealth/planhub/internal/app/store/profiles"
	syncrunstore "github.com/vectorhealth/planhub/internal/app/store/syncruns"
	teamstore "github.com/vectorhealth/planhub/internal/app/store/teams"
	"github.com/vectorhealth/planhub/internal/app/system/timeouts"
	"github.com/vectorhealth/planhub/internal/domain/models"
)

// keepRuns is how much sync history Prune retains.
const keepRuns = 50

// Stores bundles the cache stores the syncer writes.
type Stores struct {
	Assignments *assignmentstore.Store
	OrgUnits    *orgunitstore.Store
	Teams       *teamstore.Store
	Profiles    *profilestore.Store
	Runs        *syncrunstore.Store
}

// Syncer is a background worker that mirrors the upstream catalogs into the
// local cache on a fixed interval.
type Syncer struct {
	client   *iaso.Client
	stores   Stores
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(client *iaso.Client, stores Stores, logger *zap.Logger, interval time.Duration) *Syncer {
	return &Syncer{
		client:   client,
		stores:   stores,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the refresh loop. The first refresh runs immediately so the
// cache is usable soon after boot.
func (s *Syncer) Start() {
	s.wg.Add(1)
	go s.run()
	s.log.Info("catalog sync worker started", zap.Duration("interval", s.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (s *Syncer) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	s.log.Info("catalog sync worker stopped")
}

func (s *Syncer) run() {
	defer s.wg.Done()

	s.refresh()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.refresh()
		}
	}
}

func (s *Syncer) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Sync())
	defer cancel()

	run, err := s.RunOnce(ctx)
	if err != nil {
		s.log.Error("catalog sync failed", zap.String("run_id", run.ID), zap.Error(err))
		return
	}
	s.log.Info("catalog sync complete",
		zap.String("run_id", run.ID),
		zap.Int("org_units", run.OrgUnits),
		zap.Int("assignments", run.Assignments),
		zap.Int("teams", run.Teams),
		zap.Int("profiles", run.Profiles))
}

// RunOnce performs one full catalog refresh and records the run. The
// returned SyncRun carries the failure message when err is non-nil.
func (s *Syncer) RunOnce(ctx context.Context) (models.SyncRun, error) {
	run := models.SyncRun{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	err := s.sync(ctx, &run)
	if err != nil {
		run.Error = err.Error()
	}
	run.FinishedAt = time.Now().UTC()

	if insErr := s.stores.Runs.Insert(ctx, run); insErr != nil {
		s.log.Error("recording sync run failed", zap.Error(insErr))
	}
	if _, pruneErr := s.stores.Runs.Prune(ctx, keepRuns); pruneErr != nil {
		s.log.Warn("pruning sync history failed", zap.Error(pruneErr))
	}
	return run, err
}

func (s *Syncer) sync(ctx context.Context, run *models.SyncRun) error {
	cutoff := run.StartedAt

	orgUnits, err := s.client.AllOrgUnits(ctx, iaso.OrgUnitFilter{})
	if err != nil {
		return err
	}
	s.checkGeometry(orgUnits)
	if err := s.stores.OrgUnits.ReplaceAll(ctx, orgUnits, cutoff); err != nil {
		return err
	}
	run.OrgUnits = len(orgUnits)

	assignments, err := s.client.Assignments(ctx, iaso.AssignmentFilter{})
	if err != nil {
		return err
	}
	if err := s.stores.Assignments.ReplaceAll(ctx, assignments, cutoff); err != nil {
		return err
	}
	run.Assignments = len(assignments)

	teams, err := s.client.Teams(ctx)
	if err != nil {
		return err
	}
	fillTeamColors(teams)
	if err := s.stores.Teams.ReplaceAll(ctx, teams, cutoff); err != nil {
		return err
	}
	run.Teams = len(teams)

	profiles, err := s.client.Profiles(ctx)
	if err != nil {
		return err
	}
	fillProfileColors(profiles)
	if err := s.stores.Profiles.ReplaceAll(ctx, profiles, cutoff); err != nil {
		return err
	}
	run.Profiles = len(profiles)

	return nil
}

// checkGeometry logs shapes whose geo_json does not decode. Bad geometry is
// an upstream data-quality issue; the unit still syncs.
func (s *Syncer) checkGeometry(orgUnits []models.OrgUnit) {
	for i := range orgUnits {
		if err := geo.Check(&orgUnits[i]); err != nil {
			s.log.Warn("org unit has undecodable geometry",
				zap.Int64("org_unit_id", orgUnits[i].ID),
				zap.Error(err))
		}
	}
}

// fillTeamColors assigns palette defaults by catalog index to teams without
// a persisted color. Persisted colors are canonical and left untouched.
func fillTeamColors(teams []models.Team) {
	for i := range teams {
		if teams[i].Color == "" {
			teams[i].Color = assign.ColorByIndex(i)
		}
	}
}

func fillProfileColors(profiles []models.Profile) {
	for i := range profiles {
		if profiles[i].Color == "" {
			profiles[i].Color = assign.ColorByIndex(i)
		}
	}
}
