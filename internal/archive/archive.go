// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists completed sweep runs to a SQLite database. The
// archive is an optional output view, written once after filtering
// completes; the pipeline never reads it back, so every run stays
// independent and idempotent.
package archive

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/collab-scan/internal/sweep"
)

// Store manages the run archive database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			first_profile TEXT NOT NULL,
			second_profile TEXT NOT NULL,
			started_at TEXT NOT NULL,
			queries INTEGER,
			unique_ids INTEGER,
			fetched INTEGER,
			collaborations INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS collaborations (
			run_id TEXT NOT NULL REFERENCES runs(id),
			pmid TEXT NOT NULL,
			year TEXT,
			title TEXT,
			journal TEXT,
			authors TEXT,
			affiliations TEXT,
			first_affiliations TEXT,
			first_authors TEXT,
			second_affiliations TEXT,
			second_authors TEXT,
			permalink TEXT,
			PRIMARY KEY (run_id, pmid)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_collaborations_pmid ON collaborations(pmid)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save writes one completed run and its collaborations, returning the
// generated run identifier. Inserts use REPLACE so re-archiving the same
// run file is idempotent per (run, pmid).
func (s *Store) Save(run sweep.Run) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, first_profile, second_profile, started_at, queries, unique_ids, fetched, collaborations)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, run.First, run.Second, run.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
		len(run.Queries), run.UniqueIDs, run.Fetched, len(run.Collaborations),
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO collaborations
		 (run_id, pmid, year, title, journal, authors, affiliations,
		  first_affiliations, first_authors, second_affiliations, second_authors, permalink)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range run.Collaborations {
		var firstAffs, firstAuthors, secondAffs, secondAuthors string
		if len(c.Matches) > 0 {
			firstAffs = join(c.Matches[0].Affiliations)
			firstAuthors = join(c.Matches[0].Authors)
		}
		if len(c.Matches) > 1 {
			secondAffs = join(c.Matches[1].Affiliations)
			secondAuthors = join(c.Matches[1].Authors)
		}

		if _, err := stmt.Exec(
			runID, c.PMID, c.Year, c.Title, c.Journal,
			join(c.Authors), join(c.Affiliations),
			firstAffs, firstAuthors, secondAffs, secondAuthors,
			c.Permalink,
		); err != nil {
			return "", fmt.Errorf("inserting collaboration %s: %w", c.PMID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	return runID, nil
}

// Counts returns the stored run and collaboration totals.
func (s *Store) Counts() (runs, collaborations int, err error) {
	if err := s.db.QueryRow(`SELECT count(*) FROM runs`).Scan(&runs); err != nil {
		return 0, 0, fmt.Errorf("counting runs: %w", err)
	}
	if err := s.db.QueryRow(`SELECT count(*) FROM collaborations`).Scan(&collaborations); err != nil {
		return 0, 0, fmt.Errorf("counting collaborations: %w", err)
	}
	return runs, collaborations, nil
}

// join flattens a list for storage; the report files remain the canonical
// structured output.
func join(items []string) string {
	return strings.Join(items, "; ")
}
