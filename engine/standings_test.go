/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"errors"
	"reflect"
	"testing"
)

func testRoster() []Player {
	return []Player{
		{ID: 1, Name: "Alice", Rating: 1800, Section: "Open"},
		{ID: 2, Name: "Bob", Rating: 1700, Section: "Open"},
		{ID: 3, Name: "Carol", Rating: 1600, Section: "Open"},
		{ID: 4, Name: "Dan", Rating: 1500, Section: "Open"},
	}
}

func TestComputeStandingsBasic(t *testing.T) {
	roster := testRoster()
	results := []GameResult{
		{Round: 1, WhiteID: 1, BlackID: 2, Outcome: OutcomeWhiteWins},
		{Round: 1, WhiteID: 3, BlackID: 4, Outcome: OutcomeDraw},
		{Round: 2, WhiteID: 2, BlackID: 3, Outcome: OutcomeBlackWins},
		{Round: 2, WhiteID: 1, BlackID: 0, Outcome: OutcomeByeAwarded},
	}

	st, err := ComputeStandings(roster, results, 0, DefaultConfig())
	if err != nil {
		t.Fatalf("ComputeStandings: %v", err)
	}

	cases := []struct {
		id        PlayerID
		score     float64
		games     int
		colors    []Color
		opponents []PlayerID
		byes      int
	}{
		{id: 1, score: 2.0, games: 1, colors: []Color{White},
			opponents: []PlayerID{2}, byes: 1},
		{id: 2, score: 0.0, games: 2, colors: []Color{Black, White},
			opponents: []PlayerID{1, 3}},
		{id: 3, score: 1.5, games: 2, colors: []Color{White, Black},
			opponents: []PlayerID{4, 2}},
		{id: 4, score: 0.5, games: 1, colors: []Color{Black},
			opponents: []PlayerID{3}},
	}
	for _, c := range cases {
		got := st[c.id]
		if got.Score != c.score {
			t.Errorf("player %v: Score = %v; want %v", c.id, got.Score, c.score)
		}
		if got.GamesPlayed != c.games {
			t.Errorf("player %v: GamesPlayed = %v; want %v", c.id,
				got.GamesPlayed, c.games)
		}
		if !reflect.DeepEqual(got.ColorHistory, c.colors) {
			t.Errorf("player %v: ColorHistory = %v; want %v", c.id,
				got.ColorHistory, c.colors)
		}
		if len(got.ColorHistory) != got.GamesPlayed {
			t.Errorf("player %v: color history length %v != games played %v",
				c.id, len(got.ColorHistory), got.GamesPlayed)
		}
		if got.ByeCount != c.byes {
			t.Errorf("player %v: ByeCount = %v; want %v", c.id,
				got.ByeCount, c.byes)
		}
		for _, opp := range c.opponents {
			if !got.HasPlayed(opp) {
				t.Errorf("player %v: missing opponent %v", c.id, opp)
			}
		}
		if got.HasPlayed(c.id) {
			t.Errorf("player %v: opponent set contains self", c.id)
		}
	}
}

func TestComputeStandingsDedup(t *testing.T) {
	roster := testRoster()
	cases := []struct {
		name      string
		results   []GameResult
		wantScore float64
		wantGames int
	}{
		{
			name: "later log row wins",
			results: []GameResult{
				{Round: 1, WhiteID: 1, BlackID: 2, Outcome: OutcomeWhiteWins},
				{Round: 1, WhiteID: 1, BlackID: 2, Outcome: OutcomeBlackWins},
			},
			wantScore: 0.0,
			wantGames: 1,
		},
		{
			name: "later timestamp wins over log order",
			results: []GameResult{
				{Round: 1, WhiteID: 1, BlackID: 2, Outcome: OutcomeWhiteWins,
					RecordedAt: "2025-03-01T20:15:00Z"},
				{Round: 1, WhiteID: 1, BlackID: 2, Outcome: OutcomeDraw,
					RecordedAt: "2025-03-01T19:00:00Z"},
			},
			wantScore: 1.0,
			wantGames: 1,
		},
		{
			name: "exact duplicate does not double count",
			results: []GameResult{
				{Round: 1, WhiteID: 1, BlackID: 2, Outcome: OutcomeWhiteWins},
				{Round: 1, WhiteID: 1, BlackID: 2, Outcome: OutcomeWhiteWins},
			},
			wantScore: 1.0,
			wantGames: 1,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			st, err := ComputeStandings(roster, c.results, 0, DefaultConfig())
			if err != nil {
				t.Fatalf("ComputeStandings: %v", err)
			}
			if st[1].Score != c.wantScore {
				t.Errorf("Score = %v; want %v", st[1].Score, c.wantScore)
			}
			if st[1].GamesPlayed != c.wantGames {
				t.Errorf("GamesPlayed = %v; want %v", st[1].GamesPlayed,
					c.wantGames)
			}
		})
	}
}

func TestComputeStandingsIdempotent(t *testing.T) {
	roster := testRoster()
	results := []GameResult{
		{Round: 1, WhiteID: 1, BlackID: 2, Outcome: OutcomeWhiteWins},
		{Round: 1, WhiteID: 3, BlackID: 4, Outcome: OutcomeDraw},
		{Round: 2, WhiteID: 4, BlackID: 1, Outcome: OutcomeBlackWins},
	}

	first, err := ComputeStandings(roster, results, 0, DefaultConfig())
	if err != nil {
		t.Fatalf("ComputeStandings: %v", err)
	}
	second, err := ComputeStandings(roster, results, 0, DefaultConfig())
	if err != nil {
		t.Fatalf("ComputeStandings: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("recomputation produced different standings")
	}
}

func TestComputeStandingsBeforeRound(t *testing.T) {
	roster := testRoster()
	results := []GameResult{
		{Round: 1, WhiteID: 1, BlackID: 2, Outcome: OutcomeWhiteWins},
		{Round: 2, WhiteID: 1, BlackID: 3, Outcome: OutcomeWhiteWins},
	}

	st, err := ComputeStandings(roster, results, 2, DefaultConfig())
	if err != nil {
		t.Fatalf("ComputeStandings: %v", err)
	}
	if st[1].Score != 1.0 {
		t.Errorf("Score = %v; want 1.0 (round 2 excluded)", st[1].Score)
	}
	if st[1].HasPlayed(3) {
		t.Errorf("round 2 opponent counted for a round-2 snapshot")
	}
}

func TestComputeStandingsInvalidInput(t *testing.T) {
	roster := testRoster()
	cases := []struct {
		name    string
		roster  []Player
		results []GameResult
	}{
		{
			name:    "self pairing",
			roster:  roster,
			results: []GameResult{{Round: 1, WhiteID: 1, BlackID: 1}},
		},
		{
			name:    "unknown player",
			roster:  roster,
			results: []GameResult{{Round: 1, WhiteID: 1, BlackID: 99}},
		},
		{
			name:    "round zero",
			roster:  roster,
			results: []GameResult{{Round: 0, WhiteID: 1, BlackID: 2}},
		},
		{
			name:   "duplicate roster id",
			roster: []Player{{ID: 1, Name: "A"}, {ID: 1, Name: "B"}},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ComputeStandings(c.roster, c.results, 0, DefaultConfig())
			var invalid *InvalidInputError
			if !errors.As(err, &invalid) {
				t.Errorf("error = %v; want InvalidInputError", err)
			}
		})
	}
}
