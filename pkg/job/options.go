package job

import (
	"log/slog"

	"github.com/dmitrymomot/mnes/pkg/logger"
)

const defaultMaxWorkers = 10

type config struct {
	registry   *registry
	schedules  []ScheduledTask
	logger     *slog.Logger
	maxWorkers int
}

// Option configures a Manager.
type Option func(*config)

// WithTask registers a task that can be enqueued by name.
func WithTask[P any](task Task[P]) Option {
	return func(c *config) {
		c.registry.register(task.Name(), typed[P]{task: task})
	}
}

// WithScheduledTask registers a periodic task. It is also enqueueable by name.
func WithScheduledTask(task ScheduledTask) Option {
	return func(c *config) {
		c.schedules = append(c.schedules, task)
		c.registry.register(task.Name(), scheduled{task: task})
	}
}

// WithLogger sets the logger used by the manager and River.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxWorkers bounds concurrent jobs on the default queue. Default: 10.
func WithMaxWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}

func newConfig(opts ...Option) *config {
	c := &config{
		registry:   newRegistry(),
		logger:     logger.NewNope(),
		maxWorkers: defaultMaxWorkers,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
