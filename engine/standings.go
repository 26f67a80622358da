/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"sort"
	"time"

	"github.com/mikeb26/swisspair/internal"
)

// PlayerState is the derived tournament state of one player, computed from
// the result log. Invariant: len(ColorHistory) == GamesPlayed, and Opponents
// never contains the player's own id.
type PlayerState struct {
	Score        float64
	GamesPlayed  int
	ColorHistory []Color
	Opponents    map[PlayerID]bool
	ByeCount     int

	// one line per counted round, ascending round order
	lines []resultLine
}

type resultLine struct {
	round      int
	opponentID PlayerID // 0 for byes
	color      Color
	points     float64
	bye        bool
}

// ColorBalance is the running (#White - #Black) played so far.
func (st *PlayerState) ColorBalance() int {
	bal := 0
	for _, c := range st.ColorHistory {
		if c == White {
			bal++
		} else {
			bal--
		}
	}
	return bal
}

func (st *PlayerState) HasPlayed(opp PlayerID) bool {
	return st.Opponents[opp]
}

// lastTwoSameColor reports whether the player's last two games were both
// played with the same color, and which color that was.
func (st *PlayerState) lastTwoSameColor() (Color, bool) {
	n := len(st.ColorHistory)
	if n < 2 {
		return White, false
	}
	if st.ColorHistory[n-1] == st.ColorHistory[n-2] {
		return st.ColorHistory[n-1], true
	}
	return White, false
}

// Standings maps each roster player to their derived state.
type Standings map[PlayerID]*PlayerState

// pickedRow tracks the winning result row for one (player, round) during
// deduplication.
type pickedRow struct {
	logIndex int
	at       time.Time
	res      GameResult
}

// ComputeStandings reduces the result log to per-player state, counting only
// rounds strictly before beforeRound. Pass beforeRound <= 0 to count all
// rounds (final standings).
//
// The reference system could re-insert result rows on corrections, so the
// log may contain multiple rows for the same (player, round). Only the most
// recently recorded row is counted, and a round contributes at most one game
// to GamesPlayed. This dedup is a contract, not an optimization; standings
// are recomputed from scratch on every call and are therefore idempotent.
func ComputeStandings(roster []Player, results []GameResult,
	beforeRound int, cfg Config) (Standings, error) {

	known, err := validateRoster(roster)
	if err != nil {
		return nil, err
	}

	picked := make(map[PlayerID]map[int]pickedRow)
	pick := func(id PlayerID, row pickedRow) {
		byRound, ok := picked[id]
		if !ok {
			byRound = make(map[int]pickedRow)
			picked[id] = byRound
		}
		prior, ok := byRound[row.res.Round]
		if !ok || supersedes(row, prior) {
			byRound[row.res.Round] = row
		}
	}

	for idx, res := range results {
		if err := validateResult(res, known); err != nil {
			return nil, err
		}
		if beforeRound > 0 && res.Round >= beforeRound {
			continue
		}
		at, err := internal.ParseDateOrZero(res.RecordedAt)
		if err != nil {
			return nil, invalidInputf("result %d: unparseable recordedAt %q",
				idx, res.RecordedAt)
		}
		row := pickedRow{logIndex: idx, at: at, res: res}
		pick(res.WhiteID, row)
		if res.BlackID != 0 {
			pick(res.BlackID, row)
		}
	}

	standings := make(Standings, len(roster))
	for _, p := range roster {
		standings[p.ID] = &PlayerState{Opponents: make(map[PlayerID]bool)}
	}

	for id, byRound := range picked {
		st := standings[id]
		rounds := make([]int, 0, len(byRound))
		for rnd := range byRound {
			rounds = append(rounds, rnd)
		}
		sort.Ints(rounds)
		for _, rnd := range rounds {
			applyResult(st, id, byRound[rnd].res, cfg)
		}
	}

	return standings, nil
}

// supersedes reports whether row should replace prior for the same
// (player, round). Later recorded timestamps win; absent or equal timestamps
// fall back to log position.
func supersedes(row, prior pickedRow) bool {
	if !row.at.Equal(prior.at) && !row.at.IsZero() && !prior.at.IsZero() {
		return row.at.After(prior.at)
	}
	return row.logIndex > prior.logIndex
}

func applyResult(st *PlayerState, id PlayerID, res GameResult, cfg Config) {
	if res.BlackID == 0 || res.Outcome == OutcomeByeAwarded {
		pts := cfg.ByePoints
		if res.ByePoints != nil {
			pts = *res.ByePoints
		}
		st.Score += pts
		st.ByeCount++
		st.lines = append(st.lines, resultLine{
			round:  res.Round,
			points: pts,
			bye:    true,
		})
		return
	}

	color := Black
	opp := res.WhiteID
	if res.WhiteID == id {
		color = White
		opp = res.BlackID
	}
	pts := 0.0
	switch res.Outcome {
	case OutcomeWhiteWins:
		if color == White {
			pts = 1.0
		}
	case OutcomeBlackWins:
		if color == Black {
			pts = 1.0
		}
	case OutcomeDraw:
		pts = 0.5
	}
	st.Score += pts
	st.GamesPlayed++
	st.ColorHistory = append(st.ColorHistory, color)
	st.Opponents[opp] = true
	st.lines = append(st.lines, resultLine{
		round:      res.Round,
		opponentID: opp,
		color:      color,
		points:     pts,
	})
}

func validateRoster(roster []Player) (map[PlayerID]bool, error) {
	known := make(map[PlayerID]bool, len(roster))
	for _, p := range roster {
		if p.ID <= 0 {
			return nil, invalidInputf("player %q has non-positive id %v",
				p.Name, p.ID)
		}
		if known[p.ID] {
			return nil, invalidInputf("duplicate player id %v", p.ID)
		}
		known[p.ID] = true
	}
	return known, nil
}

func validateResult(res GameResult, known map[PlayerID]bool) error {
	if res.Round < 1 {
		return invalidInputf("result has round %v; rounds start at 1",
			res.Round)
	}
	if res.WhiteID == 0 {
		return invalidInputf("round %v result has no white player", res.Round)
	}
	if res.WhiteID == res.BlackID {
		return invalidInputf("round %v result pairs player %v against itself",
			res.Round, res.WhiteID)
	}
	if !known[res.WhiteID] {
		return invalidInputf("round %v result references unknown player %v",
			res.Round, res.WhiteID)
	}
	if res.BlackID != 0 && !known[res.BlackID] {
		return invalidInputf("round %v result references unknown player %v",
			res.Round, res.BlackID)
	}
	return nil
}
