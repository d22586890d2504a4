package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

const scoreboardFixture = `{
  "scoreboard": {
    "gameDate": "2025-01-15",
    "games": [
      {
        "gameStatus": 1,
        "homeTeam": {"teamName": "Celtics"},
        "awayTeam": {"teamName": "Knicks"}
      },
      {
        "gameStatus": 2,
        "homeTeam": {"teamName": "Lakers"},
        "awayTeam": {"teamName": "Heat"}
      },
      {
        "gameStatus": 2,
        "homeTeam": {"teamName": "Nuggets"},
        "awayTeam": {"teamName": "Suns"}
      },
      {
        "gameStatus": 3,
        "homeTeam": {"teamName": "Bulls"},
        "awayTeam": {"teamName": "Pistons"}
      }
    ]
  }
}`

func TestLiveTeams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scoreboardFixture))
	}))
	defer srv.Close()

	teams, err := NewScoreboardClient(srv.URL).LiveTeams(context.Background())
	if err != nil {
		t.Fatalf("LiveTeams: %v", err)
	}

	want := []string{"Lakers", "Heat", "Nuggets", "Suns"}
	if !reflect.DeepEqual(teams, want) {
		t.Errorf("LiveTeams = %v, want %v", teams, want)
	}
}

func TestLiveTeamsNoGames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"scoreboard": {"gameDate": "2025-07-01", "games": []}}`))
	}))
	defer srv.Close()

	teams, err := NewScoreboardClient(srv.URL).LiveTeams(context.Background())
	if err != nil {
		t.Fatalf("LiveTeams: %v", err)
	}
	if len(teams) != 0 {
		t.Errorf("LiveTeams = %v, want empty", teams)
	}
}
