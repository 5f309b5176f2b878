package ingest

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/coursework/internal/dbx"
	"github.com/dmitrijs2005/coursework/internal/logging"
)

// BatchResult is the outcome of one flushed batch.
type BatchResult struct {
	Inserted   int
	Duplicates int
	// CountDelta is the table row count after the flush minus the count before.
	CountDelta int64
}

// Store persists batches of rows.
type Store interface {
	FlushBatch(ctx context.Context, rows []Row) (BatchResult, error)
}

const (
	lockQuery = `LOCK TABLE ransomware_overview IN SHARE ROW EXCLUSIVE MODE`

	countQuery = `SELECT COUNT(*) FROM ransomware_overview`

	insertQuery = `INSERT INTO ransomware_overview (
    canonical_name, name_json, extensions, extension_pattern, ransom_note_filenames,
    comment, encryption_algorithm, decryptor, resources_json, screenshots,
    microsoft_detection_name, microsoft_info, sandbox, iocs, snort, raw_json
)
SELECT $1::text, $2::text, $3::text, $4::text, $5::text,
       $6::text, $7::text, $8::text, $9::text, $10::text,
       $11::text, $12::text, $13::text, $14::text, $15::text, $16::text
WHERE NOT EXISTS (
    SELECT 1 FROM ransomware_overview WHERE canonical_name = $1::text
)`
)

// PostgresStore writes rows to the ransomware_overview table.
type PostgresStore struct {
	db     *sql.DB
	logger logging.Logger
}

func NewPostgresStore(db *sql.DB, logger logging.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger.With("module", "ingest_store")}
}

// FlushBatch inserts rows in one transaction, skipping every row whose
// canonical name is already present, including names inserted earlier in the
// same batch. The table lock keeps other writers out until commit.
func (s *PostgresStore) FlushBatch(ctx context.Context, rows []Row) (BatchResult, error) {
	if len(rows) == 0 {
		return BatchResult{}, nil
	}

	var res BatchResult

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, lockQuery); err != nil {
			return fmt.Errorf("lock table: %w", err)
		}

		before, err := countRows(ctx, tx)
		if err != nil {
			return err
		}

		for i := range rows {
			r, err := tx.ExecContext(ctx, insertQuery, rows[i].args()...)
			if err != nil {
				return fmt.Errorf("insert %q: %w", rows[i].CanonicalName, err)
			}
			n, err := r.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected: %w", err)
			}
			if n > 0 {
				res.Inserted++
			} else {
				res.Duplicates++
			}
		}

		after, err := countRows(ctx, tx)
		if err != nil {
			return err
		}
		res.CountDelta = after - before
		return nil
	})
	if err != nil {
		return BatchResult{}, fmt.Errorf("flush batch: %w", err)
	}

	if res.CountDelta != int64(res.Inserted) {
		s.logger.Warn(ctx, "row count delta differs from inserted rows, table has another writer",
			"inserted", res.Inserted, "delta", res.CountDelta)
	}

	return res, nil
}

func countRows(ctx context.Context, tx dbx.DBTX) (int64, error) {
	var n int64
	if err := tx.QueryRowContext(ctx, countQuery).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
