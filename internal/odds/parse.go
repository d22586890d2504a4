package odds

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseMoneyline parses a scraped moneyline string into signed American odds.
// Sportsbook pages render negative lines with U+2212 MINUS SIGN instead of
// the ASCII hyphen, so that glyph is normalized before parsing. A leading
// "+" on underdog lines is accepted.
func ParseMoneyline(s string) (int, error) {
	s = strings.ReplaceAll(s, "−", "-")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")

	moneyline, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse moneyline %q: %w", s, err)
	}
	if moneyline == 0 {
		return 0, ErrZeroOdds
	}
	return moneyline, nil
}
