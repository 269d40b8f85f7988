// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/voluntree/voluntree/internal/app/system/dbconn"
	"github.com/voluntree/voluntree/internal/app/system/indexes"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection using the retry loop in
// dbconn, so a slow-starting database does not take the app down with it.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	mgr := dbconn.New(dbconn.Config{
		URI:         appCfg.MongoURI,
		MaxPoolSize: appCfg.MongoMaxPoolSize,
		MinPoolSize: appCfg.MongoMinPoolSize,
		MaxAttempts: appCfg.DBConnectMaxAttempts,
		Backoff:     appCfg.DBConnectBackoff,
	}, logger)

	client, err := mgr.Connect(ctx)
	if err != nil {
		return DBDeps{}, err
	}
	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the indexes the queries rely on: the unique email
// constraint, the thread and conversation lookups, and the unique
// mentor-assignment pair.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("index creation failed", zap.Error(err))
		return err
	}
	return nil
}
