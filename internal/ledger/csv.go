package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"nba-arb-bot/internal/analysis"
)

// Header is the persisted column contract. Order and naming are fixed;
// every consumer of the ledger keys off these exact strings.
var Header = []string{
	"Team",
	"Wager",
	"Kelly Size",
	"Diff",
	"Book Odds",
	"Polymarket Odds",
	"Polymarket Price",
	"Timestamp",
	"Wager Placed",
}

// Store reads and appends the wager ledger at a fixed path. The path is
// explicit configuration; nothing here derives file names from the
// environment.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the ledger file location.
func (s *Store) Path() string {
	return s.path
}

// EnsureFile creates the ledger with its header row when it does not exist
// yet, creating parent directories as needed. An existing file is left
// untouched.
func (s *Store) EnsureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat ledger %s: %w", s.path, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create ledger dir %s: %w", dir, err)
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create ledger %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("write ledger header: %w", err)
	}
	w.Flush()
	return w.Error()
}

// Append writes records to the end of the ledger. Prices and timestamps
// are formatted with full round-trip precision so a value read back
// compares equal to the value written; the dedup filter depends on that.
func (s *Store) Append(records []Record) error {
	if len(records) == 0 {
		return nil
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, r := range records {
		row := []string{
			r.Team,
			strconv.FormatBool(r.Wager),
			strconv.FormatFloat(r.KellySize, 'f', 2, 64),
			strconv.Itoa(r.Diff),
			strconv.Itoa(r.BookOdds),
			strconv.Itoa(r.MarketOdds),
			strconv.FormatFloat(r.MarketPrice, 'f', -1, 64),
			strconv.FormatFloat(r.Timestamp, 'f', -1, 64),
			string(r.Status),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("append ledger row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// Load parses the whole ledger in file order. The status column is kept
// verbatim even when it holds legacy values outside the closed set;
// callers that need a guarantee check Valid.
func (s *Store) Load() ([]Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read ledger %s: %w", s.path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("ledger %s has no header", s.path)
	}
	if rows[0][0] != Header[0] || len(rows[0]) != len(Header) {
		return nil, fmt.Errorf("ledger %s has unexpected header %v", s.path, rows[0])
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		r, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("ledger %s row %d: %w", s.path, i+2, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func parseRow(row []string) (Record, error) {
	wager, err := strconv.ParseBool(row[1])
	if err != nil {
		return Record{}, fmt.Errorf("wager column: %w", err)
	}
	kelly, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return Record{}, fmt.Errorf("kelly column: %w", err)
	}
	diff, err := strconv.Atoi(row[3])
	if err != nil {
		return Record{}, fmt.Errorf("diff column: %w", err)
	}
	bookOdds, err := strconv.Atoi(row[4])
	if err != nil {
		return Record{}, fmt.Errorf("book odds column: %w", err)
	}
	marketOdds, err := strconv.Atoi(row[5])
	if err != nil {
		return Record{}, fmt.Errorf("market odds column: %w", err)
	}
	price, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return Record{}, fmt.Errorf("price column: %w", err)
	}
	ts, err := strconv.ParseFloat(row[7], 64)
	if err != nil {
		return Record{}, fmt.Errorf("timestamp column: %w", err)
	}

	return Record{
		Opportunity: analysis.Opportunity{
			Team:        row[0],
			Wager:       wager,
			KellySize:   kelly,
			Diff:        diff,
			BookOdds:    bookOdds,
			MarketOdds:  marketOdds,
			MarketPrice: price,
		},
		Timestamp: ts,
		Status:    WagerStatus(row[8]),
	}, nil
}
