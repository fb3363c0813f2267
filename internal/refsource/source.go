package refsource

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"

	"slipflow/internal/config"
)

// partQuery is the bounded reference read against the PART table. ID doubles
// as the stock code; the ERP schema has no separate long description column,
// so DESCRIPTION feeds both mirrored fields.
const partQuery = "SELECT ID, DESCRIPTION FROM PART"

// PartRow is one reference row read from the source.
type PartRow struct {
	StockCode   string
	Description string
}

// Source is a per-invocation connection to the relational system of record.
type Source struct {
	db      *sql.DB
	driver  string
	timeout time.Duration
}

// Open acquires a connection for one invocation. Callers must Close on every
// exit path.
func Open(cfg *config.Config) (*Source, error) {
	if strings.TrimSpace(cfg.RefSource.DSN) == "" {
		return nil, fmt.Errorf("refsource: no DSN configured")
	}
	db, err := sql.Open(cfg.RefSource.Driver, cfg.RefSource.DSN)
	if err != nil {
		return nil, fmt.Errorf("open relational source: %w", err)
	}
	return &Source{
		db:      db,
		driver:  cfg.RefSource.Driver,
		timeout: cfg.QueryTimeout(),
	}, nil
}

// Close releases the underlying connection.
func (s *Source) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Parts executes the reference read and returns every part row. A query or
// scan failure aborts the read; callers treat that as a failed run, not a
// per-row error.
func (s *Source) Parts(ctx context.Context) ([]PartRow, error) {
	queryCtx, cancel := s.bound(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(queryCtx, partQuery)
	if err != nil {
		return nil, fmt.Errorf("query parts: %w", err)
	}
	defer rows.Close()

	var parts []PartRow
	for rows.Next() {
		var row PartRow
		if err := rows.Scan(&row.StockCode, &row.Description); err != nil {
			return nil, fmt.Errorf("scan part row: %w", err)
		}
		row.StockCode = strings.TrimSpace(row.StockCode)
		row.Description = strings.TrimSpace(row.Description)
		parts = append(parts, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate parts: %w", err)
	}
	return parts, nil
}

func (s *Source) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Source) placeholder(n int) string {
	if s.driver == "sqlserver" {
		return fmt.Sprintf("@p%d", n)
	}
	return "?"
}
