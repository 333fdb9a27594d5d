// Package store handles SQLite persistence of generation runs.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/passcand/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = errors.New("run not found")

// Store wraps SQLite access for generation runs.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			label TEXT NOT NULL,
			max_parts INTEGER NOT NULL,
			per_category INTEGER NOT NULL,
			leet INTEGER NOT NULL,
			symbols INTEGER NOT NULL,
			partial INTEGER NOT NULL,
			unfilled TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS run_candidates (
			run_id INTEGER NOT NULL,
			category INTEGER NOT NULL,
			rank INTEGER NOT NULL,
			password TEXT NOT NULL,
			entropy REAL NOT NULL,
			PRIMARY KEY (run_id, category, rank)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return s.ensureColumn("runs", "unfilled", "TEXT NOT NULL DEFAULT ''")
}

// ensureColumn adds a column to databases created before it existed.
func (s *Store) ensureColumn(table, column, decl string) error {
	rows, err := s.db.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return err
	}
	found := false
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			_ = rows.Close()
			return err
		}
		if name == column {
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	if err := rows.Close(); err != nil {
		return err
	}
	if found {
		return nil
	}
	_, err = s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl))
	return err
}

// InsertRun stores a generation run and all of its candidates.
func (s *Store) InsertRun(ctx context.Context, createdAt time.Time, label string, opts model.Options, res model.Result) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	execRes, err := tx.ExecContext(ctx,
		`INSERT INTO runs (created_at, label, max_parts, per_category, leet, symbols, partial, unfilled)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		createdAt.Format(time.RFC3339Nano),
		label,
		opts.MaxParts,
		opts.PerCategory,
		boolInt(opts.Leet),
		boolInt(opts.Symbols),
		boolInt(res.Partial),
		encodeCategories(res.Unfilled),
	)
	if err != nil {
		return 0, err
	}
	id, err = execRes.LastInsertId()
	if err != nil {
		return 0, err
	}

	if res.Total() > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO run_candidates (run_id, category, rank, password, entropy)
			 VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, cat := range model.Categories {
			for rank, c := range res.Get(cat) {
				if _, err := stmt.ExecContext(ctx, id, int(cat), rank, c.Password, c.Entropy); err != nil {
					return 0, err
				}
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns the most recent runs first. A non-positive limit returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, label, max_parts, per_category, leet, symbols, partial, unfilled
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		counts, err := s.categoryCounts(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Counts = counts
	}
	return runs, nil
}

// LoadRun returns a stored run and its candidates.
func (s *Store) LoadRun(ctx context.Context, id int64) (model.Run, model.Result, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, label, max_parts, per_category, leet, symbols, partial, unfilled
		 FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Run{}, model.Result{}, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return model.Run{}, model.Result{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, password, entropy
		 FROM run_candidates
		 WHERE run_id = ?
		 ORDER BY category, rank`, id)
	if err != nil {
		return model.Run{}, model.Result{}, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	res := model.Result{Partial: run.Partial, Unfilled: run.Unfilled}
	for rows.Next() {
		var cat int
		var c model.Candidate
		if err := rows.Scan(&cat, &c.Password, &c.Entropy); err != nil {
			return model.Run{}, model.Result{}, err
		}
		if cat < 0 || cat >= model.NumCategories {
			return model.Run{}, model.Result{}, fmt.Errorf("invalid category %d in run %d", cat, id)
		}
		res.Buckets[cat] = append(res.Buckets[cat], c)
	}
	if err := rows.Err(); err != nil {
		return model.Run{}, model.Result{}, err
	}
	for _, cat := range model.Categories {
		run.Counts[cat] = len(res.Buckets[cat])
	}
	return run, res, nil
}

func (s *Store) categoryCounts(ctx context.Context, runID int64) ([model.NumCategories]int, error) {
	var counts [model.NumCategories]int
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM run_candidates WHERE run_id = ? GROUP BY category`, runID)
	if err != nil {
		return counts, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	for rows.Next() {
		var cat, n int
		if err := rows.Scan(&cat, &n); err != nil {
			return counts, err
		}
		if cat >= 0 && cat < model.NumCategories {
			counts[cat] = n
		}
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (model.Run, error) {
	var run model.Run
	var createdAt string
	var leet, symbols, partial int
	var unfilled string
	if err := row.Scan(&run.ID, &createdAt, &run.Label, &run.MaxParts, &run.PerCategory, &leet, &symbols, &partial, &unfilled); err != nil {
		return model.Run{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return model.Run{}, err
	}
	run.CreatedAt = parsed
	run.Leet = leet != 0
	run.Symbols = symbols != 0
	run.Partial = partial != 0
	run.Unfilled, err = decodeCategories(unfilled)
	if err != nil {
		return model.Run{}, fmt.Errorf("run %d: %w", run.ID, err)
	}
	return run, nil
}

// encodeCategories stores categories as a comma-separated list of names.
func encodeCategories(cats []model.Category) string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.String()
	}
	return strings.Join(names, ",")
}

func decodeCategories(s string) ([]model.Category, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	cats := make([]model.Category, 0, len(parts))
	for _, part := range parts {
		c, err := model.ParseCategory(part)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
