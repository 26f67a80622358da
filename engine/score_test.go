/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"strings"
	"testing"
)

func stateWith(colors []Color, opponents ...PlayerID) *PlayerState {
	st := &PlayerState{
		ColorHistory: colors,
		GamesPlayed:  len(colors),
		Opponents:    make(map[PlayerID]bool),
	}
	for _, opp := range opponents {
		st.Opponents[opp] = true
	}
	return st
}

func TestScorePairVeto(t *testing.T) {
	cfg := DefaultConfig()
	a := Player{ID: 1, Rating: 1800}
	b := Player{ID: 2, Rating: 1700}

	cases := []struct {
		name     string
		sa, sb   *PlayerState
		wantVeto bool
	}{
		{
			name:     "never met",
			sa:       stateWith(nil),
			sb:       stateWith(nil),
			wantVeto: false,
		},
		{
			name:     "a has played b",
			sa:       stateWith([]Color{White}, 2),
			sb:       stateWith([]Color{Black}),
			wantVeto: true,
		},
		{
			name:     "b has played a",
			sa:       stateWith([]Color{White}),
			sb:       stateWith([]Color{Black}, 1),
			wantVeto: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ScorePair(cfg, a, c.sa, b, c.sb)
			if got.Veto != c.wantVeto {
				t.Errorf("Veto = %v; want %v", got.Veto, c.wantVeto)
			}
		})
	}
}

func TestScorePairTeamPenalty(t *testing.T) {
	cfg := DefaultConfig()
	a := Player{ID: 1, Rating: 1800, Team: "Knights"}
	b := Player{ID: 2, Rating: 1700, Team: "Knights"}
	c := Player{ID: 3, Rating: 1700, Team: "Rooks"}

	same := ScorePair(cfg, a, stateWith(nil), b, stateWith(nil))
	diff := ScorePair(cfg, a, stateWith(nil), c, stateWith(nil))

	if same.Veto {
		t.Fatalf("teammates must be penalized, not vetoed")
	}
	if same.Value >= diff.Value {
		t.Errorf("same-team score %v not below cross-team score %v",
			same.Value, diff.Value)
	}
	if diff.Value-same.Value != cfg.TeamPenalty {
		t.Errorf("penalty = %v; want %v", diff.Value-same.Value,
			cfg.TeamPenalty)
	}
	found := false
	for _, note := range same.Notes {
		if strings.Contains(note, "same team") {
			found = true
		}
	}
	if !found {
		t.Errorf("same-team pairing carries no audit note: %v", same.Notes)
	}
}

func TestScorePairColorTerms(t *testing.T) {
	cfg := DefaultConfig()
	a := Player{ID: 1, Rating: 1800}
	b := Player{ID: 2, Rating: 1700}
	neutral := ScorePair(cfg, a, stateWith(nil), b, stateWith(nil))

	cases := []struct {
		name   string
		sa, sb *PlayerState
		want   float64 // delta vs the neutral pairing
	}{
		{
			name: "opposite imbalances attract",
			sa:   stateWith([]Color{White, Black, White}, 5),
			sb:   stateWith([]Color{Black, White, Black}, 6),
			want: cfg.ColorBalanceWeight,
		},
		{
			name: "matching imbalances repel",
			sa:   stateWith([]Color{White, Black, White}, 5),
			sb:   stateWith([]Color{Black, White, White}, 6),
			want: -cfg.ColorBalanceWeight,
		},
		{
			name: "both on same color streak",
			sa:   stateWith([]Color{Black, White, White}, 5),
			sb:   stateWith([]Color{Black, White, White}, 6),
			// matching +1 imbalances also repel
			want: -cfg.ColorBalanceWeight - cfg.ColorStreakPenalty,
		},
		{
			name: "streaks of different colors",
			sa:   stateWith([]Color{White, White}, 5),
			sb:   stateWith([]Color{Black, Black}, 6),
			want: cfg.ColorBalanceWeight,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ScorePair(cfg, a, c.sa, b, c.sb)
			if got.Veto {
				t.Fatalf("unexpected veto")
			}
			if delta := got.Value - neutral.Value; delta != c.want {
				t.Errorf("delta = %v; want %v", delta, c.want)
			}
		})
	}
}

func TestProximityBonus(t *testing.T) {
	cfg := DefaultConfig() // band [50, 300], decay 400, bonus 30

	cases := []struct {
		name             string
		ratingA, ratingB int
		want             float64
	}{
		{name: "inside band", ratingA: 1800, ratingB: 1650, want: 30},
		{name: "band edge low", ratingA: 1800, ratingB: 1750, want: 30},
		{name: "band edge high", ratingA: 1800, ratingB: 1500, want: 30},
		{name: "identical ratings", ratingA: 1800, ratingB: 1800, want: 26.25},
		{name: "gap 400", ratingA: 1800, ratingB: 1400, want: 22.5},
		{name: "huge mismatch", ratingA: 2400, ratingB: 1200, want: 0},
		{name: "symmetric", ratingA: 1400, ratingB: 1800, want: 22.5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := proximityBonus(cfg, c.ratingA, c.ratingB)
			if got != c.want {
				t.Errorf("proximityBonus(%v, %v) = %v; want %v",
					c.ratingA, c.ratingB, got, c.want)
			}
		})
	}
}
