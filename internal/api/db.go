package api

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Schema creates the lookup log table. It is safe to run more than once.
const Schema = `
	CREATE TABLE IF NOT EXISTS lookups (
		id TEXT PRIMARY KEY,
		digits TEXT NOT NULL,
		idx INTEGER NOT NULL,
		solution_count INTEGER NOT NULL,
		strategy TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS lookups_created_at ON lookups (created_at);
`

// Lookup is one recorded solve request
type Lookup struct {
	ID            string    `json:"id"`
	Digits        string    `json:"digits"`
	Index         int       `json:"index"`
	SolutionCount int       `json:"solutionCount"`
	Strategy      string    `json:"strategy"`
	CreatedAt     time.Time `json:"createdAt"`
}

// InitDB initializes and returns a SQLite database connection
func InitDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// CreateSchema creates the tables used by the server
func CreateSchema(db *sql.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// RecordLookup stores a lookup and returns its generated ID
func RecordLookup(db *sql.DB, digits string, idx, solutionCount int, strategy string) (string, error) {
	id := uuid.New().String()

	query := `INSERT INTO lookups (id, digits, idx, solution_count, strategy) VALUES (?, ?, ?, ?, ?)`
	if _, err := db.Exec(query, id, digits, idx, solutionCount, strategy); err != nil {
		return "", fmt.Errorf("failed to insert lookup: %w", err)
	}

	return id, nil
}

// RecentLookups fetches the most recent lookups, newest first
func RecentLookups(db *sql.DB, limit int) ([]Lookup, error) {
	query := `SELECT id, digits, idx, solution_count, strategy, created_at
		FROM lookups ORDER BY created_at DESC, rowid DESC LIMIT ?`

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query lookups: %w", err)
	}
	defer rows.Close()

	lookups := make([]Lookup, 0, limit)
	for rows.Next() {
		var l Lookup
		if err := rows.Scan(&l.ID, &l.Digits, &l.Index, &l.SolutionCount, &l.Strategy, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lookup: %w", err)
		}
		lookups = append(lookups, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lookups: %w", err)
	}

	return lookups, nil
}

// GetLookupByID fetches a single lookup by its ID
func GetLookupByID(db *sql.DB, id string) (*Lookup, error) {
	query := `SELECT id, digits, idx, solution_count, strategy, created_at FROM lookups WHERE id = ?`

	var l Lookup
	err := db.QueryRow(query, id).Scan(&l.ID, &l.Digits, &l.Index, &l.SolutionCount, &l.Strategy, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Lookup not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query lookup: %w", err)
	}

	return &l, nil
}
