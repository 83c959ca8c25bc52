// Package config loads mnesd settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/mnes/pkg/db"
	"github.com/dmitrymomot/mnes/pkg/history"
	"github.com/dmitrymomot/mnes/pkg/job"
	"github.com/dmitrymomot/mnes/pkg/logger"
	"github.com/dmitrymomot/mnes/pkg/redis"
	"github.com/dmitrymomot/mnes/pkg/storage"
)

// History backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

var (
	ErrParse   = errors.New("config: failed to parse environment")
	ErrInvalid = errors.New("config: invalid configuration")
)

// Config is the complete mnesd configuration.
type Config struct {
	Addr string `env:"MNES_ADDR" envDefault:":8080"`

	// DictionaryDir holds extra *.yaml/*.json syllable files added to the
	// builtin table. Empty means builtin only.
	DictionaryDir string `env:"MNES_DICTIONARY_DIR"`
	MaxNameLength int    `env:"MNES_MAX_NAME_LENGTH" envDefault:"50"`
	StrictScript  bool   `env:"MNES_STRICT_SCRIPT" envDefault:"false"`

	HistoryBackend string `env:"MNES_HISTORY_BACKEND" envDefault:"memory"`
	HistoryFile    string `env:"MNES_HISTORY_FILE" envDefault:"encoding_history.json"`
	HistoryCap     int    `env:"MNES_HISTORY_CAP" envDefault:"1000"`
	// HistoryMirror is an optional JSON file every record is also written to.
	HistoryMirror string `env:"MNES_HISTORY_MIRROR"`
	// HistoryImport is an optional JSON history file loaded into the store at
	// startup, e.g. a CLI export being moved into postgres. Only postgres
	// skips records it already holds; other backends append them again on
	// every start.
	HistoryImport string `env:"MNES_HISTORY_IMPORT"`

	// ExportSchedule is a 5-field cron expression. Empty disables periodic export.
	ExportSchedule string `env:"MNES_EXPORT_SCHEDULE"`
	ExportCSV      bool   `env:"MNES_EXPORT_CSV" envDefault:"false"`
	// ExportKeep bounds how many uploads of this process stay in storage.
	// Zero keeps all of them.
	ExportKeep int `env:"MNES_EXPORT_KEEP" envDefault:"0"`
	JobWorkers     int    `env:"MNES_JOB_WORKERS" envDefault:"4"`

	RequestTimeout  time.Duration `env:"MNES_REQUEST_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"MNES_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	MaxBodyBytes    int64         `env:"MNES_MAX_BODY_BYTES" envDefault:"65536"`

	Logger   logger.Config
	Database db.Config
	Redis    redis.Config
	Storage  storage.Config
}

// Load reads the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, errors.Join(ErrParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c Config) Validate() error {
	var errs []error

	switch c.HistoryBackend {
	case BackendMemory, BackendFile:
	case BackendPostgres:
		if !c.Database.Enabled() {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
		}
	case BackendRedis:
		if !c.Redis.Enabled() {
			errs = append(errs, errors.New("REDIS_URL is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown history backend %q", c.HistoryBackend))
	}

	if c.MaxNameLength < 0 {
		errs = append(errs, errors.New("MNES_MAX_NAME_LENGTH must not be negative"))
	}
	if c.HistoryCap < 0 {
		errs = append(errs, errors.New("MNES_HISTORY_CAP must not be negative"))
	}
	if c.ExportKeep < 0 {
		errs = append(errs, errors.New("MNES_EXPORT_KEEP must not be negative"))
	}
	if c.ExportSchedule != "" {
		if _, err := job.ParseSchedule(c.ExportSchedule); err != nil {
			errs = append(errs, fmt.Errorf("MNES_EXPORT_SCHEDULE: %w", err))
		}
	}
	if _, err := logger.ParseLevel(c.Logger.Level); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalid}, errs...)...)
	}
	return nil
}

// ExportEnabled reports whether history exports can run: they need both a
// bucket and a database for the job queue.
func (c Config) ExportEnabled() bool {
	return c.Storage.Enabled() && c.Database.Enabled()
}

// HistoryPath is the file backend location, defaulting to history.DefaultFileName.
func (c Config) HistoryPath() string {
	if c.HistoryFile == "" {
		return history.DefaultFileName
	}
	return c.HistoryFile
}
