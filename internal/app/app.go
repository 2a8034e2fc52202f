package app

import (
	"context"
	"fmt"

	"elb-stats/internal/analyzers"
	"elb-stats/internal/downloaders"
	"elb-stats/internal/models"
	"elb-stats/internal/objectstore"
	"elb-stats/internal/parsers"
	"elb-stats/internal/shared/configs"
	"elb-stats/internal/shared/filestorages"
	"elb-stats/internal/shared/loggers"
	"elb-stats/internal/shared/metrics"
	"elb-stats/internal/shared/progress"
	"elb-stats/internal/shared/ulid"
	"elb-stats/internal/stores"
)

// RunOptions selects what one pipeline run covers.
type RunOptions struct {
	Window        models.TimeWindow
	External      bool
	Internal      bool
	ForceDownload bool
}

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger

	downloadService downloaders.DownloadService
	parseService    parsers.ParseService
	analysisService analyzers.AnalysisService
	reportStore     stores.StatsReportStore
}

// New creates and initializes a new App instance.
func New(ctx context.Context, config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "elb-stats").
		Str(loggers.FieldRunID, ulid.NewRunID()).
		Logger()

	objectStore, err := objectstore.NewS3(ctx, config.S3, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object store: %w", err)
	}

	return newApp(config, appLogger, objectStore)
}

func newApp(config *configs.Config, appLogger loggers.Logger, objectStore objectstore.ObjectStore) (*App, error) {
	stagingStorage, err := filestorages.NewFileStorage(config.Staging.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize staging storage: %w", err)
	}
	reportStorage, err := filestorages.NewFileStorage(config.Report.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize report storage: %w", err)
	}

	reporter := progress.NewReporter(appLogger)

	return &App{
		config:          config,
		appLogger:       appLogger,
		downloadService: downloaders.NewDownloadService(objectStore, stagingStorage, reporter, config.S3),
		parseService:    parsers.NewParseService(stagingStorage, reporter),
		analysisService: analyzers.NewAnalysisService(reporter),
		reportStore:     stores.NewStatsReportStore(reportStorage),
	}, nil
}

// OutputExists reports whether a report for this window was already written.
// The caller decides what to do about it, typically by prompting.
func (app *App) OutputExists(ctx context.Context, window models.TimeWindow) (bool, error) {
	return app.reportStore.Exists(ctx, window)
}

// Run executes the pipeline for one window and returns the path of the
// written report. Stages run strictly in order and the first failure stops
// the run.
func (app *App) Run(ctx context.Context, opts RunOptions) (string, error) {
	ctx = app.appLogger.WithContext(ctx)
	sources := app.sources(opts)

	app.appLogger.Info().
		Stringer("window", opts.Window).
		Int("sources", len(sources)).
		Bool("force_download", opts.ForceDownload).
		Msg("Starting pipeline run")

	if err := app.downloadService.Download(ctx, opts.Window, sources, opts.ForceDownload); err != nil {
		return "", err
	}

	stream, err := app.parseService.Parse(ctx, opts.Window, sources)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := stream.Close(); closeErr != nil {
			app.appLogger.Warn().Err(closeErr).Msg("Failed to close record stream")
		}
	}()

	report, err := app.analysisService.Analyze(ctx, opts.Window, stream)
	if err != nil {
		return "", err
	}

	path, err := app.reportStore.Write(ctx, report)
	if err != nil {
		return "", err
	}

	app.logRunTotals()
	app.appLogger.Info().Str("report", path).Msg("Pipeline run finished")
	return path, nil
}

func (app *App) sources(opts RunOptions) []models.Source {
	var sources []models.Source
	if opts.External {
		sources = append(sources, models.NewExternalSource(app.config.S3.ExternalPrefix))
	}
	if opts.Internal {
		sources = append(sources, models.NewInternalSource(app.config.S3.InternalPrefix))
	}
	return sources
}

// logRunTotals dumps the run's counters. A one-shot batch process has no
// scrape endpoint, so the final values go to the log instead.
func (app *App) logRunTotals() {
	totals, err := metrics.GatherTotals()
	if err != nil {
		app.appLogger.Warn().Err(err).Msg("Failed to gather run metrics")
		return
	}
	event := app.appLogger.Info()
	for _, total := range totals {
		event = event.Float64(total.Name, total.Value)
	}
	event.Msg("Run totals")
}
