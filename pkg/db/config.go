package db

import "time"

// Config holds PostgreSQL connection parameters.
// An empty URL means no database is configured.
type Config struct {
	URL string `env:"DATABASE_URL"`

	// Pool sizing.
	MaxConns int32 `env:"DATABASE_MAX_CONNS" envDefault:"10"`
	MinConns int32 `env:"DATABASE_MIN_CONNS" envDefault:"2"`

	// Connection recycling keeps pools healthy behind PgBouncer and across failovers.
	HealthCheckPeriod time.Duration `env:"DATABASE_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"DATABASE_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"DATABASE_MAX_CONN_LIFETIME" envDefault:"30m"`

	// Startup retries; attempt i waits i*RetryInterval.
	RetryAttempts int           `env:"DATABASE_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"DATABASE_RETRY_INTERVAL" envDefault:"5s"`
}

// Enabled reports whether a connection URL is set.
func (c Config) Enabled() bool {
	return c.URL != ""
}
