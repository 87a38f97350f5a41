package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

const schema = `
CREATE TABLE IF NOT EXISTS roadmap_runs (
	run_id          UUID PRIMARY KEY,
	source          TEXT NOT NULL,
	plan_date       DATE NOT NULL,
	pool_size       INT NOT NULL,
	item_count      INT NOT NULL,
	assigned_count  INT NOT NULL,
	unstaffed_count INT NOT NULL,
	avg_urgency     DOUBLE PRECISION NOT NULL,
	items           JSONB NOT NULL,
	unassigned      JSONB NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS roadmap_runs_created_at_idx ON roadmap_runs (created_at DESC);`

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const runColumns = `run_id, source, plan_date, pool_size, items, unassigned, created_at`

func (s *PostgresStore) CreateRun(ctx context.Context, run *Run) error {
	prepare(run, time.Now())
	itemsJSON, err := json.Marshal(run.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	unassignedJSON, err := json.Marshal(run.Unassigned)
	if err != nil {
		return fmt.Errorf("marshal unassigned: %w", err)
	}

	return s.pool.QueryRow(ctx, `
		INSERT INTO roadmap_runs (run_id, source, plan_date, pool_size,
			item_count, assigned_count, unstaffed_count, avg_urgency,
			items, unassigned, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`,
		run.ID, run.Source, run.PlanDate, run.PoolSize,
		len(run.Items), run.AssignedCount(), run.UnstaffedCount(), run.AvgUrgency(),
		itemsJSON, unassignedJSON, run.CreatedAt,
	).Scan(&run.CreatedAt)
}

func (s *PostgresStore) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	run, err := scanRun(s.pool.QueryRow(ctx, `
		SELECT `+runColumns+`
		FROM roadmap_runs WHERE run_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM roadmap_runs WHERE 1=1`
	var args []interface{}
	argN := 1

	if filter.Source != "" {
		query += fmt.Sprintf(" AND source = $%d", argN)
		args = append(args, filter.Source)
		argN++
	}
	query += " ORDER BY created_at DESC, run_id"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argN)
		args = append(args, filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *PostgresStore) GetStats(ctx context.Context) (*RunStats, error) {
	stats := &RunStats{}
	err := s.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(item_count), 0),
			COALESCE(SUM(assigned_count), 0),
			COALESCE(SUM(unstaffed_count), 0),
			COALESCE(SUM(avg_urgency * item_count) / NULLIF(SUM(item_count), 0), 0)
		FROM roadmap_runs`,
	).Scan(&stats.TotalRuns, &stats.TotalItems, &stats.TotalAssigned, &stats.UnstaffedItems, &stats.AvgUrgency)
	return stats, err
}

func scanRun(row pgx.Row) (*Run, error) {
	r := &Run{}
	var itemsJSON, unassignedJSON []byte
	if err := row.Scan(&r.ID, &r.Source, &r.PlanDate, &r.PoolSize, &itemsJSON, &unassignedJSON, &r.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &r.Items); err != nil {
		return nil, fmt.Errorf("decode items of run %s: %w", r.ID, err)
	}
	if err := json.Unmarshal(unassignedJSON, &r.Unassigned); err != nil {
		return nil, fmt.Errorf("decode unassigned of run %s: %w", r.ID, err)
	}
	return r, nil
}
