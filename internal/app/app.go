package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/trane-courses/internal/builder"
	"github.com/specialistvlad/trane-courses/internal/courses/fretboard"
	"github.com/specialistvlad/trane-courses/internal/ctxlog"
	"github.com/specialistvlad/trane-courses/internal/hcl_adapter"
	"github.com/specialistvlad/trane-courses/internal/json_adapter"
	"github.com/specialistvlad/trane-courses/internal/yaml_adapter"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	builder *builder.Builder
}

// NewApp is the constructor for the main application. Reports go to outW and
// logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	b := builder.New(
		builder.Options{AllowExternalDependencies: cfg.AllowExternalDependencies},
		json_adapter.NewLoader(),
		yaml_adapter.NewLoader(),
		hcl_adapter.NewLoader(),
	)
	logger.Debug("Manifest loaders registered.", "extensions", b.Extensions())

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		builder: b,
	}
}

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command)

	switch a.config.Command {
	case CommandGenerate:
		return a.Generate(ctx)
	default:
		return a.Build(ctx)
	}
}

// Build validates the course library and writes the output. A library with
// violations leaves the output directory untouched.
func (a *App) Build(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Building course library.", "courses_path", a.config.CoursesPath, "out_path", a.config.OutPath)

	res, err := a.builder.Build(ctx, a.config.CoursesPath)
	if err != nil {
		var verr *builder.ValidationError
		if errors.As(err, &verr) {
			if reportErr := a.report(failedReport(verr.Violations)); reportErr != nil {
				logger.Error("Failed to write report.", "error", reportErr)
			}
		}
		return err
	}

	if err := builder.Write(ctx, res, a.config.OutPath); err != nil {
		return err
	}
	return a.report(successReport(res, a.config.OutPath))
}

// Generate writes every generated course into the courses directory.
func (a *App) Generate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Generating courses.", "courses_path", a.config.CoursesPath)

	builders, err := fretboard.All()
	if err != nil {
		return fmt.Errorf("failed to prepare course generators: %w", err)
	}
	for _, cb := range builders {
		if err := cb.Build(ctx, a.config.CoursesPath); err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "Built %s course\n", cb.Manifest.Name)
	}
	logger.Info("Course generation finished.", "courses", len(builders))
	return nil
}
