package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"becat/internal/logging"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	logger := logging.NewLogger(logging.Config{Level: logging.ErrorLevel})
	store, err := Open(filepath.Join(t.TempDir(), "history.db"), logger)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Append(ctx, Record{
			Timestamp:  time.Now(),
			Path:       "report.xlsx",
			Agent:      "fs01",
			Recurse:    true,
			Success:    true,
			MatchCount: i,
			DurationMs: 1200,
		}, "")
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	records, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	// Newest first
	if records[0].MatchCount != 2 {
		t.Errorf("expected newest record first, got matchCount=%d", records[0].MatchCount)
	}
	if records[0].Path != "report.xlsx" || records[0].Agent != "fs01" || !records[0].Recurse {
		t.Errorf("record fields not round-tripped: %+v", records[0])
	}
}

func TestRecentLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := store.Append(ctx, Record{Timestamp: time.Now(), Path: "x", Success: true}, ""); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	records, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}
}

func TestGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.Append(ctx, Record{
		Timestamp: time.Now(),
		Path:      "data",
		Success:   false,
		Error:     "module not found",
	}, "")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	rec, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec == nil {
		t.Fatal("expected record, got nil")
	}
	if rec.Success || rec.Error != "module not found" {
		t.Errorf("record fields not round-tripped: %+v", rec)
	}

	missing, err := store.Get(ctx, 99999)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing id, got %+v", missing)
	}
}

func TestRawOutputRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	raw := `{"diagnostics": {}, "results": [` + strings.Repeat(`{"Name": "f"},`, 100) + `{"Name": "last"}]}`
	id, err := store.Append(ctx, Record{Timestamp: time.Now(), Path: "f", Success: true}, raw)
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got, err := store.RawOutput(ctx, id)
	if err != nil {
		t.Fatalf("RawOutput failed: %v", err)
	}
	if got != raw {
		t.Errorf("raw output not round-tripped: got %d bytes, want %d", len(got), len(raw))
	}
}

func TestRawOutputEmpty(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.Append(ctx, Record{Timestamp: time.Now(), Path: "f", Success: true}, "")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got, err := store.RawOutput(ctx, id)
	if err != nil {
		t.Fatalf("RawOutput failed: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty raw output, got %q", got)
	}
}

func TestPrune(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	old := time.Now().Add(-48 * time.Hour)
	if _, err := store.Append(ctx, Record{Timestamp: old, Path: "old", Success: true}, ""); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := store.Append(ctx, Record{Timestamp: time.Now(), Path: "new", Success: true}, ""); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	pruned, err := store.Prune(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if pruned != 1 {
		t.Errorf("expected 1 pruned record, got %d", pruned)
	}

	records, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 1 || records[0].Path != "new" {
		t.Errorf("unexpected surviving records: %+v", records)
	}
}
