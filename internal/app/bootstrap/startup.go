// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/dalemusser/volunteerhub/internal/app/system/reconcile"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It wires
// the session store and token signer, and optionally sweeps the denormalized
// counters so the app starts from a consistent state.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		return err
	}
	if err := auth.InitTokens(appCfg.TokenSecret, appCfg.TokenExpiry); err != nil {
		return err
	}

	timeouts.Configure(timeouts.Config{})

	if appCfg.ReconcileOnStart {
		if err := repairCounters(ctx, deps, logger); err != nil {
			// A failed sweep is not fatal; mirrors self-heal on the next one.
			logger.Warn("startup counter repair failed", zap.Error(err))
		}
	}
	if appCfg.ReconcileInterval > 0 {
		go repairLoop(ctx, deps, appCfg, logger)
	}

	return nil
}

// repairCounters runs one full reconciliation sweep over every collection.
func repairCounters(ctx context.Context, deps DBDeps, logger *zap.Logger) error {
	sweepCtx, cancel := context.WithTimeout(ctx, timeouts.Batch())
	defer cancel()

	rec := reconcile.New(deps.MongoDatabase, logger)
	repaired, err := rec.RepairAll(sweepCtx)
	if err != nil {
		return err
	}
	logger.Info("counter reconciliation sweep complete",
		zap.Int("repaired", repaired))
	return nil
}

// repairLoop periodically re-runs the sweep until the context is cancelled.
func repairLoop(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) {
	ticker := time.NewTicker(appCfg.ReconcileInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repairCounters(ctx, deps, logger); err != nil {
				logger.Warn("periodic counter repair failed", zap.Error(err))
			}
		}
	}
}
