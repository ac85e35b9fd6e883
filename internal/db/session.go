// Package db provides query execution, result formatting, and schema
// introspection over the postgres and sqlite backends.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/sift-db/sift/internal/config"
)

// Outcome is the result of executing one statement. Statements that
// return rows fill Headers/Rows; write statements fill Affected.
type Outcome struct {
	Kind     QueryType
	Headers  []string
	Rows     [][]string
	Affected int64
	Elapsed  time.Duration
}

// ColumnMeta describes one column of a table.
type ColumnMeta struct {
	Name     string
	DataType string
	Nullable bool
}

// TableMeta describes one table or view for the schema sidebar.
type TableMeta struct {
	Name      string
	Kind      string // "table" or "view"
	RowCount  int64
	SizeBytes int64
	Columns   []ColumnMeta
}

// Session executes statements against one database connection.
type Session interface {
	// Execute runs a single statement. Statements that are not
	// SELECT/INSERT/UPDATE/DELETE are rejected with an error.
	Execute(ctx context.Context, sql string) (*Outcome, error)
	// Tables lists tables and views with their columns.
	Tables(ctx context.Context) ([]TableMeta, error)
	// Target names the connected database for display.
	Target() string
	// Close releases the connection.
	Close()
}

// Open connects to the backend named in cfg.
func Open(ctx context.Context, cfg *config.ConnectionConfig) (Session, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		return openPostgres(ctx, cfg)
	case config.BackendSQLite:
		return openSQLite(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
