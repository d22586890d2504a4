package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"nba-arb-bot/internal/odds"
)

// Maintenance operations work on raw rows so they can repair ledgers from
// before the current schema. They always write to a separate output path;
// the live ledger is never rewritten in place.

func readRaw(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s has no header", path)
	}
	return rows, nil
}

func writeRaw(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return w.Error()
}

func columnIndex(header []string, name string) (int, error) {
	for i, col := range header {
		if col == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found in header %v", name, header)
}

// RemoveByDate strips all rows recorded on the given calendar day (local
// time of the day value). When teams is non-empty only those teams' rows
// are removed. Returns how many rows were dropped.
func RemoveByDate(inPath, outPath string, day time.Time, teams []string) (int, error) {
	rows, err := readRaw(inPath)
	if err != nil {
		return 0, err
	}

	tsIdx, err := columnIndex(rows[0], "Timestamp")
	if err != nil {
		return 0, err
	}
	teamIdx, err := columnIndex(rows[0], "Team")
	if err != nil {
		return 0, err
	}

	teamSet := make(map[string]bool, len(teams))
	for _, t := range teams {
		teamSet[t] = true
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	startTs := float64(start.Unix())
	endTs := float64(start.Add(24*time.Hour).Unix()) - 1

	kept := [][]string{rows[0]}
	removed := 0
	for _, row := range rows[1:] {
		ts, err := strconv.ParseFloat(row[tsIdx], 64)
		if err != nil {
			return 0, fmt.Errorf("timestamp %q: %w", row[tsIdx], err)
		}
		inDay := ts >= startTs && ts <= endTs
		if inDay && (len(teamSet) == 0 || teamSet[row[teamIdx]]) {
			removed++
			continue
		}
		kept = append(kept, row)
	}

	if err := writeRaw(outPath, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// RemoveDuplicates drops rows that are byte-identical to an earlier row,
// keeping the first occurrence. Returns how many rows were dropped.
func RemoveDuplicates(inPath, outPath string) (int, error) {
	rows, err := readRaw(inPath)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(rows))
	kept := [][]string{rows[0]}
	removed := 0
	for _, row := range rows[1:] {
		key := strings.Join(row, "\x1f")
		if seen[key] {
			removed++
			continue
		}
		seen[key] = true
		kept = append(kept, row)
	}

	if err := writeRaw(outPath, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// BackfillPrice derives a "Polymarket Price" column from the recorded
// "Polymarket Odds" for ledgers written before the price was persisted.
// The new column is inserted directly after the odds column.
func BackfillPrice(inPath, outPath string) error {
	rows, err := readRaw(inPath)
	if err != nil {
		return err
	}

	header := rows[0]
	if _, err := columnIndex(header, "Polymarket Price"); err == nil {
		return fmt.Errorf("%s already has a Polymarket Price column", inPath)
	}
	oddsIdx, err := columnIndex(header, "Polymarket Odds")
	if err != nil {
		return err
	}

	out := make([][]string, 0, len(rows))
	out = append(out, insertAt(header, oddsIdx+1, "Polymarket Price"))
	for _, row := range rows[1:] {
		marketOdds, err := strconv.Atoi(row[oddsIdx])
		if err != nil {
			return fmt.Errorf("odds %q: %w", row[oddsIdx], err)
		}
		p, err := odds.ProbabilityFromAmerican(marketOdds)
		if err != nil {
			return fmt.Errorf("odds %d: %w", marketOdds, err)
		}
		out = append(out, insertAt(row, oddsIdx+1, strconv.FormatFloat(p, 'f', -1, 64)))
	}

	return writeRaw(outPath, out)
}

// BackfillStatus appends a "Wager Placed" column filled with the given
// status for ledgers written before placement results were persisted.
func BackfillStatus(inPath, outPath string, fill WagerStatus) error {
	rows, err := readRaw(inPath)
	if err != nil {
		return err
	}

	header := rows[0]
	if _, err := columnIndex(header, "Wager Placed"); err == nil {
		return fmt.Errorf("%s already has a Wager Placed column", inPath)
	}

	out := make([][]string, 0, len(rows))
	out = append(out, append(append([]string{}, header...), "Wager Placed"))
	for _, row := range rows[1:] {
		out = append(out, append(append([]string{}, row...), string(fill)))
	}

	return writeRaw(outPath, out)
}

func insertAt(row []string, idx int, value string) []string {
	out := make([]string, 0, len(row)+1)
	out = append(out, row[:idx]...)
	out = append(out, value)
	out = append(out, row[idx:]...)
	return out
}
