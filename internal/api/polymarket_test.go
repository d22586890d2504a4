package api

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const gammaFixture = `[
  {
    "slug": "nba-mia-lal-2025-01-15",
    "closed": false,
    "markets": [
      {
        "outcomes": "[\"Heat\", \"Lakers\"]",
        "outcomePrices": "[\"0.45\", \"0.55\"]",
        "closed": false
      }
    ]
  },
  {
    "slug": "nba-bos-nyk-2025-01-15",
    "closed": true,
    "markets": [
      {
        "outcomes": "[\"Celtics\", \"Knicks\"]",
        "outcomePrices": "[\"0.7\", \"0.3\"]",
        "closed": true
      }
    ]
  },
  {
    "slug": "nba-den-phx-2025-01-16",
    "closed": false,
    "markets": [
      {
        "outcomes": "[\"Nuggets\", \"Suns\"]",
        "outcomePrices": "[\"0.6\", \"0.4\"]",
        "closed": false
      }
    ]
  },
  {
    "slug": "nba-futures-2025-01-15",
    "closed": false,
    "markets": []
  }
]`

func TestGammaMarkets(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.URL.Query().Get("closed") != "false" {
			t.Errorf("closed param = %q, want false", r.URL.Query().Get("closed"))
		}
		w.Write([]byte(gammaFixture))
	}))
	defer srv.Close()

	day := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	quotes, err := NewGammaClient(srv.URL).Markets(context.Background(), day)
	if err != nil {
		t.Fatalf("Markets: %v", err)
	}

	if gotPath != "/events" {
		t.Errorf("request path = %q, want /events", gotPath)
	}

	// Only the open event with the matching date survives: the closed
	// one and the next day's game are filtered, the marketless one is
	// skipped.
	if len(quotes) != 1 {
		t.Fatalf("got %d quotes, want 1: %+v", len(quotes), quotes)
	}
	q := quotes[0]
	if q.AwayTeam != "Heat" || q.HomeTeam != "Lakers" {
		t.Errorf("teams = %q @ %q, want Heat @ Lakers", q.AwayTeam, q.HomeTeam)
	}
	if math.Abs(q.AwayPrice-0.45) > 1e-9 || math.Abs(q.HomePrice-0.55) > 1e-9 {
		t.Errorf("prices = %v / %v, want 0.45 / 0.55", q.AwayPrice, q.HomePrice)
	}
}

func TestGammaMarketsRejectsMalformedOutcomes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
  {
    "slug": "nba-mia-lal-2025-01-15",
    "closed": false,
    "markets": [
      {"outcomes": "not json", "outcomePrices": "[\"0.45\", \"0.55\"]", "closed": false}
    ]
  }
]`))
	}))
	defer srv.Close()

	day := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	if _, err := NewGammaClient(srv.URL).Markets(context.Background(), day); err == nil {
		t.Error("Markets accepted a malformed outcomes array")
	}
}
