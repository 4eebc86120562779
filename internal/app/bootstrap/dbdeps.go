// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vectorhealth/planhub/internal/app/iaso"
	"github.com/vectorhealth/planhub/internal/app/system/syncer"
)

// DBDeps holds database and backend dependencies for the app. The upstream
// client and the sync worker are built alongside the Mongo connection so
// every later hook (Startup, BuildHandler, Shutdown) sees the same
// instances.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Upstream *iaso.Client
	Syncer   *syncer.Syncer
}
