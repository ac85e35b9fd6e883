package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sift-db/sift/internal/config"
	"github.com/sift-db/sift/internal/logger"
)

// sqliteSession runs statements over a file-backed sqlite database.
type sqliteSession struct {
	db     *sql.DB
	target string
	strf   RowStringifier
}

func openSQLite(ctx context.Context, cfg *config.ConnectionConfig) (Session, error) {
	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", cfg.Path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening %s: %w", cfg.Path, err)
	}

	logger.Info("connected", "backend", "sqlite", "path", cfg.Path)
	return &sqliteSession{db: db, target: cfg.Path, strf: sqliteStringifier{}}, nil
}

func (s *sqliteSession) Target() string { return s.target }

func (s *sqliteSession) Close() {
	if err := s.db.Close(); err != nil {
		logger.Warn("closing sqlite database", "error", err)
	}
}

func (s *sqliteSession) Execute(ctx context.Context, query string) (*Outcome, error) {
	kind := Classify(query)
	start := time.Now()

	switch kind {
	case QuerySelect:
		rows, err := s.db.QueryContext(ctx, query)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		headers, err := rows.Columns()
		if err != nil {
			return nil, err
		}

		var out [][]string
		for rows.Next() {
			raw := make([]any, len(headers))
			ptrs := make([]any, len(headers))
			for i := range raw {
				ptrs[i] = &raw[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return nil, err
			}
			out = append(out, StringifyRow(s.strf, raw))
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}

		return &Outcome{
			Kind:    kind,
			Headers: headers,
			Rows:    out,
			Elapsed: time.Since(start),
		}, nil

	case QueryInsert, QueryUpdate, QueryDelete:
		res, err := s.db.ExecContext(ctx, query)
		if err != nil {
			return nil, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			affected = 0
		}
		return &Outcome{
			Kind:     kind,
			Affected: affected,
			Elapsed:  time.Since(start),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported statement: only SELECT, INSERT, UPDATE, and DELETE are accepted")
	}
}

// Tables lists tables and views from sqlite_master with exact row
// counts and column details from table_info.
func (s *sqliteSession) Tables(ctx context.Context) ([]TableMeta, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, type FROM sqlite_master
		 WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
		 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var tables []TableMeta
	for rows.Next() {
		var t TableMeta
		if err := rows.Scan(&t.Name, &t.Kind); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tables {
		if err := s.fillTableDetails(ctx, &tables[i]); err != nil {
			return nil, err
		}
	}
	return tables, nil
}

func (s *sqliteSession) fillTableDetails(ctx context.Context, t *TableMeta) error {
	cols, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", t.Name))
	if err != nil {
		return fmt.Errorf("describing %s: %w", t.Name, err)
	}
	defer cols.Close()

	for cols.Next() {
		var cid int
		var notNull int
		var dfltValue any
		var pk int
		var col ColumnMeta
		if err := cols.Scan(&cid, &col.Name, &col.DataType, &notNull, &dfltValue, &pk); err != nil {
			return err
		}
		col.Nullable = notNull == 0
		t.Columns = append(t.Columns, col)
	}
	if err := cols.Err(); err != nil {
		return err
	}

	if t.Kind == "table" {
		row := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %q", t.Name))
		if err := row.Scan(&t.RowCount); err != nil {
			logger.Debug("row count unavailable", "table", t.Name, "error", err)
		}
	}
	return nil
}
