package api

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/mnes/pkg/history"
	"github.com/dmitrymomot/mnes/pkg/job"
	"github.com/dmitrymomot/mnes/pkg/logger"
	"github.com/dmitrymomot/mnes/pkg/storage"
)

// ExportTaskName is the job name for history exports.
const ExportTaskName = "export_history"

// ExportRequest is the job payload. Zero values mean "all records, task format".
type ExportRequest struct {
	Limit int  `json:"limit,omitempty"`
	CSV   bool `json:"csv,omitempty"`
}

// ExportTask uploads stored history to object storage.
type ExportTask struct {
	store    history.Store
	storage  storage.Storage
	logger   *slog.Logger
	schedule string
	csv      bool
	keep     int

	mu   sync.Mutex
	keys []string
}

// ExportOption configures an ExportTask.
type ExportOption func(*ExportTask)

// WithSchedule runs the export periodically on a 5-field cron expression.
func WithSchedule(expr string) ExportOption {
	return func(t *ExportTask) {
		t.schedule = expr
	}
}

// WithCSV makes scheduled exports write CSV instead of JSON.
func WithCSV() ExportOption {
	return func(t *ExportTask) {
		t.csv = true
	}
}

// WithRetain keeps only the n most recent uploads made by this task and
// deletes older ones from storage. Uploads from earlier runs of the process
// are not tracked. Zero keeps everything.
func WithRetain(n int) ExportOption {
	return func(t *ExportTask) {
		t.keep = max(n, 0)
	}
}

// WithExportLogger sets the task logger.
func WithExportLogger(l *slog.Logger) ExportOption {
	return func(t *ExportTask) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewExportTask builds the export task reading from store and writing to st.
func NewExportTask(store history.Store, st storage.Storage, opts ...ExportOption) *ExportTask {
	t := &ExportTask{
		store:   store,
		storage: st,
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *ExportTask) Name() string     { return ExportTaskName }
func (t *ExportTask) Schedule() string { return t.schedule }

// Handle runs a scheduled export with the task's defaults.
func (t *ExportTask) Handle(ctx context.Context) error {
	_, err := t.Run(ctx, ExportRequest{CSV: t.csv})
	return err
}

// Run exports up to req.Limit records (all when 0). An empty history is not
// an error: nothing is uploaded and the returned info is nil.
func (t *ExportTask) Run(ctx context.Context, req ExportRequest) (*storage.FileInfo, error) {
	if t.storage == nil {
		return nil, storage.ErrNotConfigured
	}

	records, err := t.store.List(ctx, req.Limit)
	if err != nil {
		return nil, err
	}

	var opts []history.ExportOption
	if req.CSV {
		opts = append(opts, history.AsCSV())
	}

	info, err := history.Export(ctx, t.storage, records, opts...)
	if errors.Is(err, history.ErrNothingToStore) {
		t.logger.InfoContext(ctx, "history export skipped, no records")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	t.logger.InfoContext(ctx, "history exported",
		slog.String("key", info.Key),
		slog.Int("records", len(records)),
		slog.Int64("size", info.Size),
	)
	t.prune(ctx, info.Key)
	return info, nil
}

// prune records key and deletes the uploads that fall outside the retention
// window. Failed deletes are logged and forgotten.
func (t *ExportTask) prune(ctx context.Context, key string) {
	if t.keep == 0 {
		return
	}

	t.mu.Lock()
	t.keys = append(t.keys, key)
	var stale []string
	if n := len(t.keys) - t.keep; n > 0 {
		stale = t.keys[:n:n]
		t.keys = append([]string(nil), t.keys[n:]...)
	}
	t.mu.Unlock()

	for _, k := range stale {
		if err := t.storage.Delete(ctx, k); err != nil && !errors.Is(err, storage.ErrNotFound) {
			t.logger.WarnContext(ctx, "old export not deleted", slog.String("key", k), slog.Any("error", err))
			continue
		}
		t.logger.InfoContext(ctx, "old export deleted", slog.String("key", k))
	}
}

// JobOptions registers the task with a job manager. With a schedule it is
// also a periodic job; either way it stays enqueueable by name with an
// ExportRequest payload.
func (t *ExportTask) JobOptions() []job.Option {
	var opts []job.Option
	if t.schedule != "" {
		opts = append(opts, job.WithScheduledTask(t))
	}
	// Registered last so enqueued payloads reach Run; periodic runs carry
	// no payload and get the zero ExportRequest.
	return append(opts, job.WithTask[ExportRequest](onDemandExport{t}))
}

type onDemandExport struct {
	t *ExportTask
}

func (o onDemandExport) Name() string { return ExportTaskName }

func (o onDemandExport) Handle(ctx context.Context, req ExportRequest) error {
	if !req.CSV {
		req.CSV = o.t.csv
	}
	_, err := o.t.Run(ctx, req)
	return err
}
