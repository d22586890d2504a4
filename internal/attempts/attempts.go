// Package attempts persists every wager placement attempt to SQLite. The
// ledger CSV only sees the final record per cycle; this mirror keeps the
// full trail, including rejected and failed attempts, for inspection.
package attempts

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"nba-arb-bot/internal/ledger"
)

// Attempt is one recorded placement attempt.
type Attempt struct {
	ID        string
	Team      string
	KellySize float64
	Price     float64
	Stake     float64
	Status    ledger.WagerStatus
	CreatedAt time.Time
}

// DB handles attempt storage
type DB struct {
	db *sql.DB
}

// NewDB opens (creating if needed) the attempt database at dbPath.
func NewDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db: db}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS attempts (
		id TEXT PRIMARY KEY,
		team TEXT NOT NULL,
		kelly_size REAL NOT NULL,
		price REAL NOT NULL,
		stake REAL NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_attempts_team ON attempts(team);
	CREATE INDEX IF NOT EXISTS idx_attempts_status ON attempts(status);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// Record inserts an attempt, assigning an ID and timestamp when unset, and
// returns the stored attempt.
func (d *DB) Record(a Attempt) (Attempt, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := d.db.Exec(`
		INSERT INTO attempts (id, team, kelly_size, price, stake, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Team, a.KellySize, a.Price, a.Stake, string(a.Status), a.CreatedAt)
	if err != nil {
		return Attempt{}, fmt.Errorf("inserting attempt: %w", err)
	}

	return a, nil
}

// Get retrieves an attempt by ID. Returns nil when no row matches.
func (d *DB) Get(id string) (*Attempt, error) {
	row := d.db.QueryRow(`
		SELECT id, team, kelly_size, price, stake, status, created_at
		FROM attempts WHERE id = ?
	`, id)

	var a Attempt
	var status string
	err := row.Scan(&a.ID, &a.Team, &a.KellySize, &a.Price, &a.Stake, &status, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning attempt: %w", err)
	}
	a.Status = ledger.WagerStatus(status)

	return &a, nil
}

// List retrieves all attempts, newest first.
func (d *DB) List() ([]Attempt, error) {
	return d.query(`
		SELECT id, team, kelly_size, price, stake, status, created_at
		FROM attempts
		ORDER BY created_at DESC, id
	`)
}

// ListByTeam retrieves attempts for one team, newest first.
func (d *DB) ListByTeam(team string) ([]Attempt, error) {
	return d.query(`
		SELECT id, team, kelly_size, price, stake, status, created_at
		FROM attempts
		WHERE team = ?
		ORDER BY created_at DESC, id
	`, team)
}

func (d *DB) query(q string, args ...any) ([]Attempt, error) {
	rows, err := d.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var status string
		if err := rows.Scan(&a.ID, &a.Team, &a.KellySize, &a.Price, &a.Stake, &status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning attempt row: %w", err)
		}
		a.Status = ledger.WagerStatus(status)
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}

// CountByStatus returns the number of recorded attempts per status.
func (d *DB) CountByStatus() (map[ledger.WagerStatus]int, error) {
	rows, err := d.db.Query(`SELECT status, COUNT(*) FROM attempts GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting attempts: %w", err)
	}
	defer rows.Close()

	counts := make(map[ledger.WagerStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning count row: %w", err)
		}
		counts[ledger.WagerStatus(status)] = n
	}

	return counts, rows.Err()
}
