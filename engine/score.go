/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"fmt"
)

// PairScore is the compatibility evaluation of one candidate pair. Vetoed
// pairs are illegal regardless of Value; a low Value is still a legal pair.
// Modeling the veto explicitly keeps it from being confused with a large
// negative score.
type PairScore struct {
	Veto  bool
	Value float64

	// Notes records the penalties paid by this pairing, for audit.
	Notes []string
}

// ScorePair evaluates pairing a against b. Rules, in priority order:
//
//  1. repeat-opponent veto: players who already met are never paired again
//  2. same-team penalty: teammates pair only when nothing else is legal
//  3. color balance: opposite imbalances attract, matching imbalances repel
//  4. color streak: avoid pairs where both players are owed the same color
//     after two consecutive games of the other one
//  5. rating proximity: moderate gaps score best
//
// The magnitudes in DefaultConfig preserve that ordering.
func ScorePair(cfg Config, a Player, sa *PlayerState,
	b Player, sb *PlayerState) PairScore {

	if sa.HasPlayed(b.ID) || sb.HasPlayed(a.ID) {
		return PairScore{Veto: true}
	}

	var score PairScore

	if a.Team != "" && a.Team == b.Team {
		score.Value -= cfg.TeamPenalty
		score.Notes = append(score.Notes,
			fmt.Sprintf("same team %q", a.Team))
	}

	balA, balB := sa.ColorBalance(), sb.ColorBalance()
	if balA*balB < 0 {
		// opposite imbalances: one is owed White, the other Black, so this
		// pairing can move both toward zero
		score.Value += cfg.ColorBalanceWeight
	} else if balA*balB > 0 {
		// matching imbalances: whichever color split we choose, one player
		// moves further from zero
		score.Value -= cfg.ColorBalanceWeight
		score.Notes = append(score.Notes, "matching color imbalance")
	}

	colorA, streakA := sa.lastTwoSameColor()
	colorB, streakB := sb.lastTwoSameColor()
	if streakA && streakB && colorA == colorB {
		// both are owed the same color; one of them will be forced into a
		// third consecutive game of the other
		score.Value -= cfg.ColorStreakPenalty
		score.Notes = append(score.Notes,
			fmt.Sprintf("both on a 2-game %v streak", colorA))
	}

	score.Value += proximityBonus(cfg, a.Rating, b.Rating)

	return score
}

// proximityBonus peaks for rating gaps inside the configured sweet-spot band
// and decays linearly to zero outside it, on both sides: near-identical
// ratings and extreme mismatches both earn less.
func proximityBonus(cfg Config, ratingA, ratingB int) float64 {
	gap := ratingA - ratingB
	if gap < 0 {
		gap = -gap
	}

	var dist int
	switch {
	case gap < cfg.ProximityMinGap:
		dist = cfg.ProximityMinGap - gap
	case gap > cfg.ProximityMaxGap:
		dist = gap - cfg.ProximityMaxGap
	default:
		return cfg.ProximityBonus
	}
	if cfg.ProximityDecay <= 0 || dist >= cfg.ProximityDecay {
		return 0
	}
	return cfg.ProximityBonus *
		(1.0 - float64(dist)/float64(cfg.ProximityDecay))
}
