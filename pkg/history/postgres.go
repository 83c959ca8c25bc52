package history

import (
	"context"
	"embed"
	"errors"
	"log/slog"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/mnes/pkg/db"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MigrationsTable is the goose version table used for the history schema.
const MigrationsTable = "mnes_schema_migrations"

// Migrate applies the history schema to the database behind pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	return db.Migrate(ctx, pool, migrations, "migrations", MigrationsTable, log)
}

const (
	insertRecordSQL = `INSERT INTO encoding_history
		(id, created_at, original, encoded, format, syllable_count, mapped_count, compression_ratio, processing_time_ms, warnings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING`

	listRecordsSQL = `SELECT id, created_at, original, encoded, format, syllable_count, mapped_count, compression_ratio, processing_time_ms, warnings
		FROM encoding_history
		ORDER BY created_at DESC, id DESC
		LIMIT $1`
)

// PostgresStore keeps records in the encoding_history table.
// Run Migrate before first use.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore returns a store using pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Append inserts rec. Re-inserting an existing ID is a no-op.
func (s *PostgresStore) Append(ctx context.Context, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, insertRecordSQL, insertArgs(rec)...); err != nil {
		return errors.Join(ErrAppendFailed, err)
	}
	return nil
}

// AppendBatch inserts all records in a single transaction.
func (s *PostgresStore) AppendBatch(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return ErrNothingToStore
	}
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return err
		}
	}

	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, rec := range records {
			batch.Queue(insertRecordSQL, insertArgs(rec)...)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return errors.Join(ErrAppendFailed, err)
	}
	return nil
}

// List implements Store.
func (s *PostgresStore) List(ctx context.Context, limit int) ([]Record, error) {
	// LIMIT NULL means no limit in PostgreSQL.
	var lim *int
	if limit > 0 {
		lim = &limit
	}

	rows, err := s.pool.Query(ctx, listRecordsSQL, lim)
	if err != nil {
		return nil, errors.Join(ErrListFailed, err)
	}

	records, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, errors.Join(ErrListFailed, err)
	}

	slices.Reverse(records)
	return records, nil
}

func insertArgs(rec Record) []any {
	warnings := rec.Stats.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return []any{
		rec.ID,
		rec.Timestamp,
		rec.Original,
		rec.Encoded,
		rec.Format,
		rec.Stats.SyllableCount,
		rec.Stats.MappedCount,
		rec.Stats.CompressionRatio,
		rec.Stats.ProcessingTimeMS,
		warnings,
	}
}

func scanRecord(row pgx.CollectableRow) (Record, error) {
	var rec Record
	err := row.Scan(
		&rec.ID,
		&rec.Timestamp,
		&rec.Original,
		&rec.Encoded,
		&rec.Format,
		&rec.Stats.SyllableCount,
		&rec.Stats.MappedCount,
		&rec.Stats.CompressionRatio,
		&rec.Stats.ProcessingTimeMS,
		&rec.Stats.Warnings,
	)
	return rec, err
}

var (
	_ Store         = (*PostgresStore)(nil)
	_ BatchAppender = (*PostgresStore)(nil)
)
