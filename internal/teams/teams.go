// Package teams maps sportsbook team naming onto Polymarket's NBA
// abbreviations and cleans the free text that live odds tables wrap
// around a team name.
package teams

import (
	"regexp"
	"strings"
)

// polymarketAbbr keys the full team name a sportsbook row ends with.
var polymarketAbbr = map[string]string{
	"Cavaliers":     "CLE",
	"Thunder":       "OKC",
	"Celtics":       "BOS",
	"Rockets":       "HOU",
	"Knicks":        "NYK",
	"Grizzlies":     "MEM",
	"Nuggets":       "DEN",
	"Mavericks":     "DAL",
	"Magic":         "ORL",
	"Lakers":        "LAL",
	"Bucks":         "MIL",
	"Timberwolves":  "MIN",
	"Clippers":      "LAC",
	"Heat":          "MIA",
	"Pacers":        "IND",
	"Warriors":      "GSW",
	"Pistons":       "DET",
	"Hawks":         "ATL",
	"Spurs":         "TOT", // Polymarket lists San Antonio as TOT, not SAS
	"Kings":         "SAC",
	"Suns":          "PHX",
	"Bulls":         "CHI",
	"76ers":         "PHI",
	"Nets":          "BKN",
	"Trail Blazers": "POR",
	"Jazz":          "UTA",
	"Hornets":       "CHA",
	"Raptors":       "TOR",
	"Pelicans":      "NOP",
	"Wizards":       "WAS",
}

// Abbreviation returns the Polymarket abbreviation for a full team name.
func Abbreviation(team string) (string, bool) {
	abbr, ok := polymarketAbbr[team]
	return abbr, ok
}

// Count returns how many teams are mapped.
func Count() int {
	return len(polymarketAbbr)
}

var (
	timePrefixRe  = regexp.MustCompile(`^\d+:\d+[AP]M\s*`)
	quarterRe     = regexp.MustCompile(`^.*Quarter\s*`)
	overtimeRe    = regexp.MustCompile(`^.*OT\s*`)
	trailingNumRe = regexp.MustCompile(`\s*\d+$`)
	regulationRe  = regexp.MustCompile(`\bRegulation\S*\b`)
	abbrSplitRe   = regexp.MustCompile(`^\s*(\w+)\s+(.*)$`)
)

// CleanName strips the state a live odds table folds into the team cell:
// a tip-off time prefix, quarter/overtime text, a trailing score, and
// "Regulation" markers. The leading abbreviation word is dropped so only
// the full team name remains. The U+2212 minus glyph is normalized first
// since it can leak into any scraped cell.
func CleanName(raw string) string {
	name := strings.ReplaceAll(raw, "−", "-")
	name = timePrefixRe.ReplaceAllString(name, "")
	name = quarterRe.ReplaceAllString(name, "")
	name = overtimeRe.ReplaceAllString(name, "")
	name = trailingNumRe.ReplaceAllString(name, "")
	name = regulationRe.ReplaceAllString(name, "")

	if m := abbrSplitRe.FindStringSubmatch(strings.TrimSpace(name)); m != nil {
		return m[2]
	}
	return strings.TrimSpace(name)
}
