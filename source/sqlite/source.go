// Package sqlite provides a record source backed by a SQLite database. It
// materializes a finite set of rows into in-memory records before any
// processing begins; the processing engine itself never performs I/O.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asaidimu/go-sift/core/record"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Open opens a SQLite database at the given path. Use ":memory:" for an
// in-memory database.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return db, nil
}

// Source loads flat records out of a SQLite database.
type Source struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSource creates a Source over an open database handle.
func NewSource(db *sql.DB, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{db: db, logger: logger}
}

// Load materializes every row of a table into records.
func (s *Source) Load(ctx context.Context, table string) ([]record.Record, error) {
	return s.LoadQuery(ctx, fmt.Sprintf(`SELECT * FROM %q`, table))
}

// LoadQuery materializes the result set of an arbitrary query into records.
func (s *Source) LoadQuery(ctx context.Context, query string, args ...any) ([]record.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	records, err := readRows(rows)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("materialized records from sqlite", zap.Int("count", len(records)))
	return records, nil
}

// readRows reads all rows from a *sql.Rows object and converts them into
// flat records, normalizing driver types to the engine's scalar set: []byte
// becomes string, integers stay int64, floats stay float64, NULL stays nil.
func readRows(rows *sql.Rows) ([]record.Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var results []record.Record
	for rows.Next() {
		rec := make(record.Record, len(columns))
		values := make([]any, len(columns))
		scanArgs := make([]any, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}

		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		for i, col := range columns {
			switch val := values[i].(type) {
			case nil:
				rec[col] = nil
			case []byte:
				rec[col] = string(val)
			default:
				rec[col] = val
			}
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return results, nil
}
