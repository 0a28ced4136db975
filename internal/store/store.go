// Package store handles SQLite persistence of generation history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/tuipass/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for generation history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
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
		`CREATE TABLE IF NOT EXISTS generations (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			batch_size INTEGER NOT NULL,
			requested_length INTEGER NOT NULL,
			actual_length INTEGER NOT NULL,
			numbers INTEGER NOT NULL,
			letters INTEGER NOT NULL,
			special INTEGER NOT NULL,
			both_cases INTEGER NOT NULL,
			tier TEXT NOT NULL,
			score INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_generations_created_at ON generations(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_generations_tier ON generations(tier);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertGenerations stores records in a single transaction and sets their IDs.
func (s *Store) InsertGenerations(ctx context.Context, records []model.GenerationRecord) (err error) {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO generations (created_at, mode, batch_size, requested_length, actual_length, numbers, letters, special, both_cases, tier, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	for i := range records {
		rec := &records[i]
		res, execErr := stmt.ExecContext(ctx,
			rec.CreatedAt.UTC().Format(timeLayout),
			rec.Mode,
			rec.BatchSize,
			rec.RequestedLength,
			rec.ActualLength,
			rec.Numbers,
			rec.Letters,
			rec.Special,
			rec.BothCases,
			rec.Tier,
			rec.Score,
		)
		if execErr != nil {
			err = execErr
			return err
		}
		id, idErr := res.LastInsertId()
		if idErr != nil {
			err = idErr
			return err
		}
		rec.ID = id
	}

	err = tx.Commit()
	return err
}

// ListGenerations returns records matching filter, oldest first. Last keeps
// only the most recent N matches.
func (s *Store) ListGenerations(ctx context.Context, filter model.HistoryFilter) ([]model.GenerationRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Tier != "" {
		clauses = append(clauses, "tier = ?")
		args = append(args, filter.Tier)
	}
	if filter.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, filter.Since.UTC().Format(timeLayout))
	}
	limit := ""
	if filter.Last > 0 {
		limit = "LIMIT ?"
		args = append(args, filter.Last)
	}
	query := fmt.Sprintf(`SELECT id, created_at, mode, batch_size, requested_length, actual_length, numbers, letters, special, both_cases, tier, score
		FROM (
			SELECT * FROM generations
			WHERE %s
			ORDER BY created_at DESC, id DESC
			%s
		)
		ORDER BY created_at ASC, id ASC`, strings.Join(clauses, " AND "), limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.GenerationRecord
	for rows.Next() {
		var rec model.GenerationRecord
		var createdAt string
		if err := rows.Scan(
			&rec.ID, &createdAt, &rec.Mode, &rec.BatchSize, &rec.RequestedLength, &rec.ActualLength,
			&rec.Numbers, &rec.Letters, &rec.Special, &rec.BothCases, &rec.Tier, &rec.Score,
		); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, err
		}
		rec.CreatedAt = parsed
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// TierCounts aggregates all records per tier, strongest first.
func (s *Store) TierCounts(ctx context.Context) ([]model.TierCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tier, COUNT(*) FROM generations GROUP BY tier
		ORDER BY CASE tier WHEN 'Strong' THEN 0 WHEN 'Medium' THEN 1 ELSE 2 END`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.TierCount
	for rows.Next() {
		var tc model.TierCount
		if err := rows.Scan(&tc.Tier, &tc.Count); err != nil {
			return nil, err
		}
		result = append(result, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
