package store

import (
	"context"
	"fmt"
	"regexp"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bevtrends/bevtrends/internal/cocktail"
)

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// pgxPool is the subset of pgxpool.Pool the store uses; pgxmock satisfies
// it in tests.
type pgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

// PostgresConfig controls the snapshot table and connection pool.
type PostgresConfig struct {
	DSN   string
	Table string
}

// Postgres stores the snapshot as one row per record, replaced in a single
// transaction on each save. Schema:
//
//	CREATE TABLE cocktails (
//	    id       TEXT PRIMARY KEY,
//	    position INT NOT NULL,
//	    doc      JSONB NOT NULL
//	);
type Postgres struct {
	pool  pgxPool
	table string
}

// NewPostgres connects a pool and verifies it with a ping.
func NewPostgres(ctx context.Context, cfg PostgresConfig) (*Postgres, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("cache.dsn is required")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return newPostgresWithPool(pool, cfg.Table)
}

// NewPostgresWithPool constructs a store from an existing pool, primarily
// for testing.
func NewPostgresWithPool(pool pgxPool, table string) (*Postgres, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	return newPostgresWithPool(pool, table)
}

func newPostgresWithPool(pool pgxPool, table string) (*Postgres, error) {
	if table == "" {
		table = "cocktails"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &Postgres{pool: pool, table: table}, nil
}

// Close releases the underlying pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// Load reads the snapshot in stored order. An empty table means no cache.
func (p *Postgres) Load(ctx context.Context) ([]cocktail.Record, bool, error) {
	rows, err := p.pool.Query(ctx, fmt.Sprintf("SELECT doc FROM %s ORDER BY position", p.table))
	if err != nil {
		return nil, false, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	var records []cocktail.Record
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, false, fmt.Errorf("scan snapshot row: %w", err)
		}
		var rec cocktail.Record
		if err := json.Unmarshal(doc, &rec); err != nil {
			return nil, false, fmt.Errorf("decode snapshot row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate snapshot rows: %w", err)
	}
	if len(records) == 0 {
		return nil, false, nil
	}
	return records, true, nil
}

// Save replaces the table contents in one transaction.
func (p *Postgres) Save(ctx context.Context, records []cocktail.Record) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s", p.table)); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	insert := fmt.Sprintf("INSERT INTO %s (id, position, doc) VALUES ($1, $2, $3)", p.table)
	for i, rec := range records {
		doc, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode record %s: %w", rec.ID, err)
		}
		if _, err := tx.Exec(ctx, insert, rec.ID, i, doc); err != nil {
			return fmt.Errorf("insert record %s: %w", rec.ID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot tx: %w", err)
	}
	return nil
}
