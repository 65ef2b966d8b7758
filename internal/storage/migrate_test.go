package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/taskmaestro/maestro/internal/model"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", DSN(dbPath))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("repeated migrate up failed: %v", err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	id := uuid.New()
	if err := repo.CreateTask(t.Context(), model.Task{
		ID:          id,
		Title:       "Roundtrip task",
		Description: "migration compatibility",
		Status:      model.StatusPending,
		Priority:    model.PriorityMedium,
		CreatedAt:   now,
	}); err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}

	got, err := repo.GetTask(t.Context(), id)
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got.Title != "Roundtrip task" {
		t.Fatalf("unexpected title after roundtrip: %q", got.Title)
	}
}
