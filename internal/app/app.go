package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/simcore/internal/config"
	"github.com/specialistvlad/simcore/internal/ctxlog"
	"github.com/specialistvlad/simcore/internal/plugin"
	"github.com/specialistvlad/simcore/internal/sim"
	"github.com/specialistvlad/simcore/internal/storage"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	model      *config.Model
	converter  config.Converter
	sim        *sim.Simulator
	httpServer *http.Server
}

// NewApp loads the configuration and creates the simulator with the given
// modules linked in. Without modules, the core modules are used. Logs go to
// logW; dumps go to outW.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, modules map[string]plugin.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, converter, err := loader.Load(ctx, cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded and translated into unified model.")

	compression, err := storage.ParseCompression(model.Storage.Compression)
	if err != nil {
		return nil, fmt.Errorf("invalid storage configuration: %w", err)
	}
	s, err := sim.New(sim.Options{
		Name:        model.Runtime.Name,
		Description: model.Runtime.Description,
		PluginDir:   model.Runtime.PluginDir,
		ABI:         model.Runtime.ABI,
		Storage:     storage.Options{Compression: compression},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create simulator: %w", err)
	}

	if modules == nil {
		modules = coreModules
	}
	for name, mod := range modules {
		s.RegisterModule(name, mod)
	}
	logger.Debug("Linked modules registered.", "count", len(modules))

	return &App{
		outW:      outW,
		logger:    logger,
		config:    cfg,
		model:     model,
		converter: converter,
		sim:       s,
	}, nil
}

// Simulator returns the application's simulator. This is primarily for testing.
func (a *App) Simulator() *sim.Simulator {
	return a.sim
}
