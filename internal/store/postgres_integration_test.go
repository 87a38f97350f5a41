//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	_, _ = s.pool.Exec(ctx, "TRUNCATE roadmap_runs")

	t.Cleanup(func() {
		_, _ = s.pool.Exec(ctx, "TRUNCATE roadmap_runs")
		s.Close()
	})

	return s
}

func TestPostgresStore(t *testing.T) {
	exerciseStore(t, setupTestDB(t))
}

func TestPostgresCreateRunAssignsCreatedAt(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	run := sampleRun(SourceCLI, time.Time{})
	if err := s.CreateRun(ctx, run); err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}
	if run.ID == uuid.Nil {
		t.Fatal("expected non-nil run ID after create")
	}
	if run.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}

	got, err := s.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected run, got nil")
	}
	if len(got.Items) != 2 || got.Items[0].Name != "launch" {
		t.Errorf("unexpected items: %+v", got.Items)
	}
	if !got.PlanDate.Equal(day(2024, 3, 1)) {
		t.Errorf("expected plan date 2024-03-01, got %s", got.PlanDate)
	}
}
