// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/vectorhealth/planhub/internal/app/iaso"
	assignmentstore "github.com/vectorhealth/planhub/internal/app/store/assignments"
	orgunitstore "github.com/vectorhealth/planhub/internal/app/store/orgunits"
	profilestore "github.com/vectorhealth/planhub/internal/app/store/profiles"
	syncrunstore "github.com/vectorhealth/planhub/internal/app/store/syncruns"
	teamstore "github.com/vectorhealth/planhub/internal/app/store/teams"
	"github.com/vectorhealth/planhub/internal/app/system/indexes"
	"github.com/vectorhealth/planhub/internal/app/system/syncer"
)

// ConnectDB establishes the MongoDB connection and builds the upstream
// client and sync worker on top of it.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return DBDeps{}, err
	}
	db := client.Database(appCfg.MongoDatabase)
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	upstream, err := iaso.New(iaso.Config{
		BaseURL:      appCfg.IasoBaseURL,
		Token:        appCfg.IasoToken,
		TokenURL:     appCfg.IasoTokenURL,
		ClientID:     appCfg.IasoClientID,
		ClientSecret: appCfg.IasoClientSecret,
		Timeout:      appCfg.IasoTimeout,
		RetryMax:     appCfg.IasoRetryMax,
	}, logger)
	if err != nil {
		return DBDeps{}, err
	}

	worker := syncer.New(upstream, syncer.Stores{
		Assignments: assignmentstore.New(db),
		OrgUnits:    orgunitstore.New(db),
		Teams:       teamstore.New(db),
		Profiles:    profilestore.New(db),
		Runs:        syncrunstore.New(db),
	}, logger, appCfg.SyncInterval)

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		Upstream:      upstream,
		Syncer:        worker,
	}, nil
}

// EnsureSchema creates the indexes the stores rely on.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return indexes.EnsureAll(ctx, deps.MongoDatabase)
}
