package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/simcore/internal/ctxlog"
)

// Run builds the object graph, optionally restores a checkpoint, runs the
// configured entry points, then dumps and stores as configured. When a
// metrics address is set, Run keeps serving until ctx is cancelled. The
// simulator is finalised before Run returns.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	defer func() {
		err = errors.Join(err, a.sim.Finalise(ctx))
	}()

	if a.config.MetricsAddr != "" {
		if _, err := a.startHealthcheckServer(ctx, a.config.MetricsAddr); err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, a.closeHealthcheckServer(ctx))
		}()
	}

	if err := a.build(ctx); err != nil {
		return fmt.Errorf("failed to build object graph: %w", err)
	}

	dir := a.model.Storage.Dir
	if a.config.RestoreFile != "" {
		if err := a.sim.Restore(ctx, dir, a.config.RestoreFile); err != nil {
			return fmt.Errorf("failed to restore checkpoint: %w", err)
		}
	}

	if err := a.execute(ctx); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	if a.config.Dump {
		if err := a.sim.Dump(a.outW); err != nil {
			return err
		}
	}
	if a.config.StoreFile != "" {
		if err := a.sim.Store(ctx, dir, a.config.StoreFile); err != nil {
			return fmt.Errorf("failed to store checkpoint: %w", err)
		}
	}

	if a.httpServer != nil {
		a.logger.Info("Serving metrics until interrupted.")
		<-ctx.Done()
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
