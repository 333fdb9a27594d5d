package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/verte-zerg/passcand/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "passcand.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func sampleResult() model.Result {
	var res model.Result
	res.Buckets[model.Weak] = []model.Candidate{{Password: "john12", Entropy: 31}, {Password: "john1", Entropy: 25.8}}
	res.Buckets[model.VeryStrong] = []model.Candidate{{Password: "Johnsmith123!", Entropy: 85.2}}
	res.Partial = true
	res.Unfilled = []model.Category{model.Strong, model.VeryStrong}
	return res
}

func TestInsertAndLoadRun(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	opts := model.Options{MaxParts: 2, PerCategory: 5, Leet: true}
	created := time.Unix(1700000000, 0).UTC()

	id, err := st.InsertRun(ctx, created, "john", opts, sampleResult())
	if err != nil {
		t.Fatalf("insert run: %v", err)
	}
	run, res, err := st.LoadRun(ctx, id)
	if err != nil {
		t.Fatalf("load run: %v", err)
	}
	if run.Label != "john" || run.MaxParts != 2 || run.PerCategory != 5 || !run.Leet || run.Symbols || !run.Partial {
		t.Fatalf("unexpected run: %+v", run)
	}
	if !run.CreatedAt.Equal(created) {
		t.Fatalf("unexpected created_at: %v", run.CreatedAt)
	}
	weak := res.Get(model.Weak)
	if len(weak) != 2 || weak[0].Password != "john12" || weak[1].Password != "john1" {
		t.Fatalf("unexpected weak candidates: %+v", weak)
	}
	if got := res.Get(model.VeryStrong); len(got) != 1 || got[0].Entropy != 85.2 {
		t.Fatalf("unexpected very strong candidates: %+v", got)
	}
	if run.Counts[model.Weak] != 2 || run.Counts[model.Medium] != 0 {
		t.Fatalf("unexpected counts: %v", run.Counts)
	}
	want := []model.Category{model.Strong, model.VeryStrong}
	if !slices.Equal(res.Unfilled, want) || !slices.Equal(run.Unfilled, want) {
		t.Fatalf("expected unfilled %v, got result %v run %v", want, res.Unfilled, run.Unfilled)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Unix(1700000000, 0).UTC()
	for i, label := range []string{"first", "second", "third"} {
		if _, err := st.InsertRun(ctx, base.Add(time.Duration(i)*time.Minute), label, model.Options{MaxParts: 1, PerCategory: 10}, sampleResult()); err != nil {
			t.Fatalf("insert run: %v", err)
		}
	}
	runs, err := st.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Label != "third" || runs[1].Label != "second" {
		t.Fatalf("unexpected order: %+v", runs)
	}
	if runs[0].Counts[model.VeryStrong] != 1 {
		t.Fatalf("unexpected counts: %v", runs[0].Counts)
	}
	all, err := st.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("list all runs: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(all))
	}
}

func TestLoadRunMissing(t *testing.T) {
	st := openTestStore(t)
	_, _, err := st.LoadRun(context.Background(), 99)
	if !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestInsertEmptyRun(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	id, err := st.InsertRun(ctx, time.Now(), "empty", model.Options{MaxParts: 1, PerCategory: 10}, model.Result{})
	if err != nil {
		t.Fatalf("insert run: %v", err)
	}
	_, res, err := st.LoadRun(ctx, id)
	if err != nil {
		t.Fatalf("load run: %v", err)
	}
	if !res.Empty() {
		t.Fatalf("expected empty result")
	}
	if res.Partial || res.Unfilled != nil {
		t.Fatalf("expected complete result, got partial=%v unfilled=%v", res.Partial, res.Unfilled)
	}
}

func TestOpenAddsUnfilledColumnToOlderDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	_, err = db.Exec(`CREATE TABLE runs (
		id INTEGER PRIMARY KEY,
		created_at TEXT NOT NULL,
		label TEXT NOT NULL,
		max_parts INTEGER NOT NULL,
		per_category INTEGER NOT NULL,
		leet INTEGER NOT NULL,
		symbols INTEGER NOT NULL,
		partial INTEGER NOT NULL
	);`)
	if err != nil {
		t.Fatalf("create old schema: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO runs VALUES (1, '2024-01-01T00:00:00Z', 'old', 3, 10, 1, 1, 0);`); err != nil {
		t.Fatalf("insert old run: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close raw db: %v", err)
	}

	st, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	run, _, err := st.LoadRun(context.Background(), 1)
	if err != nil {
		t.Fatalf("load old run: %v", err)
	}
	if run.Label != "old" || run.Unfilled != nil {
		t.Fatalf("unexpected run: %+v", run)
	}
}

func TestCategoriesEncoding(t *testing.T) {
	cats := []model.Category{model.Weak, model.VeryStrong}
	encoded := encodeCategories(cats)
	if encoded != "Weak,Very Strong" {
		t.Fatalf("unexpected encoding %q", encoded)
	}
	decoded, err := decodeCategories(encoded)
	if err != nil || !slices.Equal(decoded, cats) {
		t.Fatalf("decode %q = %v, %v", encoded, decoded, err)
	}
	if _, err := decodeCategories("Weak,Bogus"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}
