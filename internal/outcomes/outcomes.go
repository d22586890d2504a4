// Package outcomes stores per-team binary game results in the JSON file
// the performance analyzer reads. The file is an object keyed by
// YYYY-MM-DD date, each day mapping team name to 0 or 1.
package outcomes

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"time"
)

// ErrNoOutcome marks a team/date pair with no recorded result.
var ErrNoOutcome = errors.New("no recorded outcome")

// Results holds one day's results, team name to 1 for a win and 0 for a
// loss.
type Results map[string]int

// Table is the full outcomes file in memory.
type Table map[string]Results

// DateKey renders the file's date key for a wall time.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Lookup returns the recorded result for a team on the calendar day of t.
func (tb Table) Lookup(t time.Time, team string) (int, bool) {
	day, ok := tb[DateKey(t)]
	if !ok {
		return 0, false
	}
	result, ok := day[team]
	return result, ok
}

// Resolve finds the result for a wager recorded at the given time. Games
// that run past midnight land in the ledger under the next calendar day,
// so a miss retries once with the day one hour earlier before failing.
func (tb Table) Resolve(at time.Time, team string) (int, error) {
	if result, ok := tb.Lookup(at, team); ok {
		return result, nil
	}
	if result, ok := tb.Lookup(at.Add(-time.Hour), team); ok {
		return result, nil
	}
	return 0, fmt.Errorf("%w: %s on %s", ErrNoOutcome, team, DateKey(at))
}

// Verify compares the stored results for a day against freshly fetched
// ones. A day with no stored entry is an error, not a mismatch.
func (tb Table) Verify(day time.Time, fresh Results) (bool, error) {
	stored, ok := tb[DateKey(day)]
	if !ok {
		return false, fmt.Errorf("%w: nothing stored for %s", ErrNoOutcome, DateKey(day))
	}
	return maps.Equal(stored, fresh), nil
}

// MissingDates walks backwards from the given day and returns the date
// keys with no stored entry, stopping at the first day already present.
// The horizon bounds the walk so an empty table cannot send the backfill
// into the indefinite past.
func (tb Table) MissingDates(from time.Time, horizon int) []string {
	missing := []string{}
	current := from
	for i := 0; i < horizon; i++ {
		key := DateKey(current)
		if _, ok := tb[key]; ok {
			break
		}
		missing = append(missing, key)
		current = current.AddDate(0, 0, -1)
	}
	return missing
}

// Store reads and writes the outcomes file at a fixed path.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the outcomes file location.
func (s *Store) Path() string {
	return s.path
}

// EnsureFile creates an empty outcomes file when none exists, creating
// parent directories as needed.
func (s *Store) EnsureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat outcomes %s: %w", s.path, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create outcomes dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, []byte("{}\n"), 0o644); err != nil {
		return fmt.Errorf("create outcomes %s: %w", s.path, err)
	}
	return nil
}

// Load parses the whole outcomes file.
func (s *Store) Load() (Table, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read outcomes %s: %w", s.path, err)
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse outcomes %s: %w", s.path, err)
	}
	if table == nil {
		table = Table{}
	}
	return table, nil
}

// Save writes the whole table back to disk.
func (s *Store) Save(table Table) error {
	data, err := json.MarshalIndent(table, "", "    ")
	if err != nil {
		return fmt.Errorf("encode outcomes: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write outcomes %s: %w", s.path, err)
	}
	return nil
}

// MergeSlate upserts one day's results over the stored file, replacing
// any prior entry for that day wholesale.
func (s *Store) MergeSlate(day time.Time, results Results) error {
	table, err := s.Load()
	if err != nil {
		return err
	}
	table[DateKey(day)] = results
	return s.Save(table)
}
