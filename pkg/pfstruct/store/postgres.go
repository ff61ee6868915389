// Package store provides repositories for extracted portfolios.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/ukaji3/pfstruct-go/pkg/pfstruct/models"
)

// Execer runs a statement. It is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	createSummaryTable = `CREATE TABLE IF NOT EXISTS portfolio_summary (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	pan TEXT NOT NULL,
	total_investments NUMERIC(20,4),
	current_value NUMERIC(20,4),
	created_at TIMESTAMPTZ NOT NULL
)`
	createHoldingsTable = `CREATE TABLE IF NOT EXISTS portfolio_holdings (
	id BIGSERIAL PRIMARY KEY,
	scheme_name TEXT NOT NULL,
	units NUMERIC(20,6) NOT NULL,
	invested NUMERIC(20,4) NOT NULL,
	current NUMERIC(20,4) NOT NULL,
	returns NUMERIC(20,4) NOT NULL
)`
	insertSummary = `INSERT INTO portfolio_summary (name, pan, total_investments, current_value, created_at)
VALUES ($1, $2, $3, $4, $5)`
	insertHolding = `INSERT INTO portfolio_holdings (scheme_name, units, invested, current, returns)
VALUES ($1, $2, $3, $4, $5)`
)

// Postgres stores portfolios in PostgreSQL. Every insert runs on its own;
// callers wanting atomicity pass a transaction as the Execer.
type Postgres struct {
	db Execer
}

// NewPostgres creates a repository writing through db.
func NewPostgres(db Execer) *Postgres {
	return &Postgres{db: db}
}

// Connect opens a connection pool and checks it is reachable.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the summary and holdings tables if missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{createSummaryTable, createHoldingsTable} {
		if _, err := p.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// SaveSummary inserts one portfolio_summary row.
func (p *Postgres) SaveSummary(ctx context.Context, rec models.SummaryRecord) error {
	_, err := p.db.Exec(ctx, insertSummary,
		rec.Name,
		rec.PAN,
		nullDecimal(rec.TotalInvestments),
		nullDecimal(rec.CurrentValue),
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}
	return nil
}

// SaveHolding inserts one portfolio_holdings row.
func (p *Postgres) SaveHolding(ctx context.Context, rec models.HoldingRecord) error {
	_, err := p.db.Exec(ctx, insertHolding,
		rec.SchemeName,
		decimal.NewFromFloat(rec.Units),
		decimal.NewFromFloat(rec.Invested),
		decimal.NewFromFloat(rec.Current),
		decimal.NewFromFloat(rec.Returns),
	)
	if err != nil {
		return fmt.Errorf("insert holding: %w", err)
	}
	return nil
}

func nullDecimal(v sql.NullFloat64) decimal.NullDecimal {
	if !v.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(v.Float64))
}
