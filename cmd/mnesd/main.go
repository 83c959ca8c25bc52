// Command mnesd serves the name encoding API over HTTP.
//
// Configuration comes from the environment; see internal/config.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/mnes"
	"github.com/dmitrymomot/mnes/internal"
	"github.com/dmitrymomot/mnes/internal/api"
	"github.com/dmitrymomot/mnes/internal/config"
	"github.com/dmitrymomot/mnes/middlewares"
	"github.com/dmitrymomot/mnes/pkg/db"
	"github.com/dmitrymomot/mnes/pkg/history"
	"github.com/dmitrymomot/mnes/pkg/job"
	"github.com/dmitrymomot/mnes/pkg/logger"
	"github.com/dmitrymomot/mnes/pkg/redis"
	"github.com/dmitrymomot/mnes/pkg/storage"
	"github.com/dmitrymomot/mnes/pkg/syllable"
)

const startupTimeout = time.Minute

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "mnesd:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.FromConfig(cfg.Logger, middlewares.RequestIDExtractor())
	if err != nil {
		return err
	}
	log = log.With(slog.String("service", "mnesd"))

	dict, err := loadDictionary(cfg.DictionaryDir)
	if err != nil {
		return err
	}
	log.Info("dictionary loaded", slog.Int("syllables", dict.Len()), slog.String("dir", cfg.DictionaryDir))

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	var (
		runOpts = []internal.RunOption{
			internal.Logger(log),
			internal.ShutdownTimeout(cfg.ShutdownTimeout),
		}
		healthOpts []internal.HealthOption
		pool       *pgxpool.Pool
	)

	if cfg.Database.Enabled() {
		pool, err = db.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		runOpts = append(runOpts, internal.ShutdownHook(db.Shutdown(pool)))
		healthOpts = append(healthOpts, internal.WithReadinessCheck("postgres", db.Healthcheck(pool)))
	}

	var store history.Store
	switch cfg.HistoryBackend {
	case config.BackendFile:
		if store, err = history.OpenFile(cfg.HistoryPath()); err != nil {
			return err
		}
	case config.BackendPostgres:
		if err := history.Migrate(ctx, pool, log); err != nil {
			return err
		}
		store = history.NewPostgresStore(pool)
	case config.BackendRedis:
		client, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		store = history.NewRedisStore(client, history.WithRedisCap(cfg.HistoryCap))
		runOpts = append(runOpts, internal.ShutdownHook(redis.Shutdown(client)))
		healthOpts = append(healthOpts, internal.WithReadinessCheck("redis", redis.Healthcheck(client)))
	default:
		store = history.NewLog(cfg.HistoryCap)
	}
	if cfg.HistoryMirror != "" {
		mirror, err := history.OpenFile(cfg.HistoryMirror)
		if err != nil {
			return err
		}
		store = history.NewMulti(store, mirror)
	}
	if cfg.HistoryImport != "" {
		if err := importHistory(ctx, store, cfg.HistoryImport, log); err != nil {
			return err
		}
	}

	encOpts := []mnes.Option{
		mnes.WithHistory(store),
		mnes.WithLogger(log.With(slog.String("component", "encoder"))),
		mnes.WithMaxLength(cfg.MaxNameLength),
	}
	if cfg.StrictScript {
		encOpts = append(encOpts, mnes.WithStrictScript())
	}
	enc := mnes.New(dict, encOpts...)

	appOpts := []internal.Option{
		internal.WithCustomLogger(log.With(slog.String("component", "http"))),
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.RequestLogger(),
			middlewares.Recover(),
			middlewares.Timeout(cfg.RequestTimeout),
		),
		internal.WithErrorHandler(api.ErrorHandler),
		internal.WithNotFoundHandler(api.NotFound),
		internal.WithMethodNotAllowedHandler(api.MethodNotAllowed),
		internal.WithMaxBodyBytes(cfg.MaxBodyBytes),
		internal.WithHandlers(api.NewEncodeHandler(enc)),
	}

	if cfg.ExportEnabled() {
		manager, st, err := setupExport(ctx, cfg, pool, store, log)
		if err != nil {
			return err
		}
		appOpts = append(appOpts, internal.WithJobs(manager), internal.WithStorage(st))
		healthOpts = append(healthOpts, internal.WithReadinessCheck("jobs", job.Healthcheck(manager)))
	} else {
		log.Info("history export disabled, set S3_BUCKET and DATABASE_URL to enable it")
	}

	appOpts = append(appOpts, internal.WithHealthChecks(healthOpts...))

	log.Info("starting server",
		slog.String("addr", cfg.Addr),
		slog.String("history", cfg.HistoryBackend),
		slog.Bool("strict", cfg.StrictScript),
	)
	return internal.New(appOpts...).Run(cfg.Addr, runOpts...)
}

func loadDictionary(dir string) (*syllable.Dictionary, error) {
	opts := []syllable.Option{syllable.WithBuiltin()}
	if dir != "" {
		opts = append(opts, syllable.WithLoader(syllable.NewFSLoader(os.DirFS(dir))))
	}
	dict, err := syllable.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	return dict, nil
}

// importHistory loads a saved history file into store. Postgres takes the
// whole file in one transaction; records already present are skipped there.
func importHistory(ctx context.Context, store history.Store, path string, log *slog.Logger) error {
	records, err := history.LoadFile(path)
	if err != nil {
		return err
	}
	if err := history.Import(ctx, store, records); err != nil && !errors.Is(err, history.ErrNothingToStore) {
		return fmt.Errorf("import history: %w", err)
	}
	log.Info("history imported", slog.String("file", path), slog.Int("records", len(records)))
	return nil
}

// setupExport migrates the job queue and registers the export task.
// Migrations run here, not as startup hooks, because the manager starts first.
func setupExport(ctx context.Context, cfg config.Config, pool *pgxpool.Pool, store history.Store, log *slog.Logger) (*job.Manager, storage.Storage, error) {
	st, err := storage.New(cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	if err := job.Migrate(ctx, pool); err != nil {
		return nil, nil, err
	}

	exportOpts := []api.ExportOption{
		api.WithExportLogger(log.With(slog.String("component", "export"))),
	}
	if cfg.ExportSchedule != "" {
		exportOpts = append(exportOpts, api.WithSchedule(cfg.ExportSchedule))
	}
	if cfg.ExportCSV {
		exportOpts = append(exportOpts, api.WithCSV())
	}
	if cfg.ExportKeep > 0 {
		exportOpts = append(exportOpts, api.WithRetain(cfg.ExportKeep))
	}
	task := api.NewExportTask(store, st, exportOpts...)

	jobOpts := append(task.JobOptions(),
		job.WithLogger(log.With(slog.String("component", "jobs"))),
		job.WithMaxWorkers(cfg.JobWorkers),
	)
	manager, err := job.NewManager(pool, jobOpts...)
	if err != nil {
		return nil, nil, err
	}
	return manager, st, nil
}
