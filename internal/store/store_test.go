package store_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	_ "modernc.org/sqlite"

	"github.com/tvdtogt/a11yExtractor/internal/record"
	"github.com/tvdtogt/a11yExtractor/internal/store"
	"github.com/tvdtogt/a11yExtractor/internal/testsupport"
)

func sampleRecords() []record.Record {
	return []record.Record{
		{FileName: "a.json", ISBN: "9781234567890", Title: "Eerste", JPEG: 2, Images: 2, SmallImages: 2, NonVisualReading: true},
		{FileName: "b.json", Title: "Tweede", ARIA: true, OtherAccessibilityFeatures: "readingOrder"},
	}
}

func TestRecordRunRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	run := store.Run{
		ID:         "run-1",
		InputDir:   "/in",
		OutputPath: "/out/report.csv",
		Processed:  2,
		Failed:     1,
		StartedAt:  started,
		FinishedAt: started.Add(1500 * time.Millisecond),
	}
	if err := st.RecordRun(ctx, run, sampleRecords()); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	got, err := st.RunRecords(ctx, "run-1")
	if err != nil {
		t.Fatalf("RunRecords failed: %v", err)
	}
	if diff := cmp.Diff(sampleRecords(), got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}

	fetched, err := st.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected run to exist")
	}
	if diff := cmp.Diff(run, *fetched); diff != "" {
		t.Fatalf("run mismatch (-want +got):\n%s", diff)
	}
	if fetched.Duration() != 1500*time.Millisecond {
		t.Fatalf("unexpected duration %s", fetched.Duration())
	}

	missing, err := st.GetRun(ctx, "absent")
	if err != nil || missing != nil {
		t.Fatalf("expected nil run for unknown id, got %v, %v", missing, err)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "middle", "new"} {
		run := store.Run{ID: id, InputDir: "/in", OutputPath: "/out.csv", StartedAt: base.Add(time.Duration(i) * time.Hour), FinishedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := st.RecordRun(ctx, run, nil); err != nil {
			t.Fatalf("RecordRun %s: %v", id, err)
		}
	}

	runs, err := st.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	var ids []string
	for _, run := range runs {
		ids = append(ids, run.ID)
	}
	if diff := cmp.Diff([]string{"new", "middle"}, ids); diff != "" {
		t.Fatalf("run order mismatch (-want +got):\n%s", diff)
	}

	all, err := st.ListRuns(ctx, 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d (%v)", len(all), err)
	}
}

func TestRecordRunRejectsDuplicateID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	run := store.Run{ID: "dup", InputDir: "/in", OutputPath: "/out.csv"}
	if err := st.RecordRun(ctx, run, sampleRecords()); err != nil {
		t.Fatalf("first RecordRun failed: %v", err)
	}
	if err := st.RecordRun(ctx, run, sampleRecords()); err == nil {
		t.Fatal("expected duplicate run id to fail")
	}
	got, err := st.RunRecords(ctx, "dup")
	if err != nil {
		t.Fatalf("RunRecords failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("failed insert must not leave extra rows, got %d", len(got))
	}

	if err := st.RecordRun(ctx, store.Run{}, nil); err == nil {
		t.Fatal("expected error for empty run id")
	}
}

func TestFindByISBN(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	first := []record.Record{{FileName: "a.json", ISBN: "9781234567890", Title: "v1"}}
	second := []record.Record{{FileName: "a.json", ISBN: "9781234567890", Title: "v2"}}
	if err := st.RecordRun(ctx, store.Run{ID: "r1", StartedAt: base, FinishedAt: base}, first); err != nil {
		t.Fatal(err)
	}
	if err := st.RecordRun(ctx, store.Run{ID: "r2", StartedAt: base.Add(time.Hour), FinishedAt: base.Add(time.Hour)}, second); err != nil {
		t.Fatal(err)
	}

	got, err := st.FindByISBN(ctx, "9781234567890")
	if err != nil {
		t.Fatalf("FindByISBN failed: %v", err)
	}
	if len(got) != 2 || got[0].Title != "v2" || got[1].Title != "v1" {
		t.Fatalf("unexpected ISBN history: %+v", got)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.db")
	st, err := store.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := store.Open(path); !errors.Is(err, store.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestOpenIsIdempotentAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.db")
	for i := 0; i < 2; i++ {
		st, err := store.Open(path)
		if err != nil {
			t.Fatalf("Open #%d failed: %v", i+1, err)
		}
		if err := st.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	defer db.Close()
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("read user_version: %v", err)
	}
	if version != 1 {
		t.Fatalf("user_version = %d, want 1", version)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := store.Open(" "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
