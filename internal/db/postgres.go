package db

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sift-db/sift/internal/config"
	"github.com/sift-db/sift/internal/logger"
)

// postgresSession runs statements over a pgx connection pool.
type postgresSession struct {
	pool   *pgxpool.Pool
	target string
	strf   RowStringifier
}

func openPostgres(ctx context.Context, cfg *config.ConnectionConfig) (Session, error) {
	dsn := fmt.Sprintf("postgres://%s@%s:%d/%s?sslmode=%s",
		url.UserPassword(cfg.User, cfg.Password).String(),
		cfg.Host, cfg.Port, url.PathEscape(cfg.Database), cfg.SSLMode)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing connection config: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.PoolMaxConns)
	poolCfg.MinConns = int32(cfg.PoolMinConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Database, err)
	}

	logger.Info("connected", "backend", "postgres", "host", cfg.Host, "database", cfg.Database)
	return &postgresSession{
		pool:   pool,
		target: fmt.Sprintf("%s@%s:%d/%s", cfg.User, cfg.Host, cfg.Port, cfg.Database),
		strf:   pgStringifier{},
	}, nil
}

func (s *postgresSession) Target() string { return s.target }

func (s *postgresSession) Close() {
	s.pool.Close()
}

func (s *postgresSession) Execute(ctx context.Context, sql string) (*Outcome, error) {
	kind := Classify(sql)
	start := time.Now()

	switch kind {
	case QuerySelect:
		rows, err := s.pool.Query(ctx, sql)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		fds := rows.FieldDescriptions()
		headers := make([]string, len(fds))
		for i, fd := range fds {
			headers[i] = string(fd.Name)
		}

		var out [][]string
		for rows.Next() {
			values, err := rows.Values()
			if err != nil {
				return nil, err
			}
			out = append(out, StringifyRow(s.strf, values))
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
		tag, err := s.pool.Exec(ctx, sql)
		if err != nil {
			return nil, err
		}
		return &Outcome{
			Kind:     kind,
			Affected: tag.RowsAffected(),
			Elapsed:  time.Since(start),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported statement: only SELECT, INSERT, UPDATE, and DELETE are accepted")
	}
}

// Tables lists ordinary tables and views in the search path schemas,
// with row estimates and on-disk sizes from the catalog.
func (s *postgresSession) Tables(ctx context.Context) ([]TableMeta, error) {
	const tableSQL = `
		SELECT c.relname,
		       CASE c.relkind WHEN 'v' THEN 'view' ELSE 'table' END,
		       GREATEST(c.reltuples::bigint, 0),
		       COALESCE(pg_total_relation_size(c.oid), 0)
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE c.relkind IN ('r', 'p', 'v')
		  AND n.nspname NOT IN ('pg_catalog', 'information_schema')
		ORDER BY c.relname`

	rows, err := s.pool.Query(ctx, tableSQL)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var tables []TableMeta
	index := map[string]int{}
	for rows.Next() {
		var t TableMeta
		if err := rows.Scan(&t.Name, &t.Kind, &t.RowCount, &t.SizeBytes); err != nil {
			return nil, err
		}
		index[t.Name] = len(tables)
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const columnSQL = `
		SELECT table_name, column_name, data_type, is_nullable = 'YES'
		FROM information_schema.columns
		WHERE table_schema NOT IN ('pg_catalog', 'information_schema')
		ORDER BY table_name, ordinal_position`

	colRows, err := s.pool.Query(ctx, columnSQL)
	if err != nil {
		return nil, fmt.Errorf("listing columns: %w", err)
	}
	defer colRows.Close()

	for colRows.Next() {
		var table string
		var col ColumnMeta
		if err := colRows.Scan(&table, &col.Name, &col.DataType, &col.Nullable); err != nil {
			return nil, err
		}
		if i, ok := index[table]; ok {
			tables[i].Columns = append(tables[i].Columns, col)
		}
	}
	return tables, colRows.Err()
}
