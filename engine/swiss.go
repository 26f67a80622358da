/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Swiss round generation runs as a fixed phase sequence:
//
//	BuildGroups -> PairWithinGroups -> AssignColors -> AssignBoards -> Done
//
// PairWithinGroups walks score groups in descending order. Odd groups float
// their lowest-rated member into the next group before pairing; a player who
// is vetoed against every remaining candidate floats as well. The single
// tournament bye goes to the lowest-scoring, lowest-rated player left over
// after the last group, and anyone else left over is reported unpaired.

type committedPair struct {
	a, b  Player
	score PairScore
}

type leftover struct {
	player    Player
	vetoedAll bool
}

// GenerateSwissRound proposes pairings for one round of a Swiss event. The
// input snapshot is never mutated; the caller owns persisting the returned
// report. A report with Unpaired entries means the round is incomplete; the
// repeat-opponent veto is never relaxed to avoid that.
func GenerateSwissRound(roster []Player, results []GameResult, round int,
	cfg Config) (*RoundReport, error) {

	if round < 1 {
		return nil, invalidInputf("round %v; rounds start at 1", round)
	}
	standings, err := ComputeStandings(roster, results, round, cfg)
	if err != nil {
		return nil, err
	}

	var pool, requestedByes []Player
	for _, p := range roster {
		switch {
		case p.Status == StatusWithdrawn:
		case byeRequested(p, round):
			requestedByes = append(requestedByes, p)
		default:
			pool = append(pool, p)
		}
	}
	if len(pool) < 2 {
		return nil, fmt.Errorf("cannot pair round %v: %w", round,
			ErrInsufficientPlayers)
	}

	report := &RoundReport{Round: round}

	groups := BuildScoreGroups(pool, standings)
	committed, leftovers := pairWithinGroups(groups, standings, cfg)

	for _, cp := range committed {
		if len(cp.score.Notes) > 0 {
			report.Penalties = append(report.Penalties,
				fmt.Sprintf("%v vs %v: %v", cp.a.Name, cp.b.Name,
					strings.Join(cp.score.Notes, ", ")))
		}
	}

	byePlayer, unpaired := resolveByes(leftovers, standings)
	report.Unpaired = unpaired

	report.Pairings = assignBoards(committed, standings, round)
	if byePlayer != nil {
		report.Pairings = append(report.Pairings,
			byePairing(*byePlayer, round, cfg.ByePoints))
	}
	for _, p := range requestedByes {
		report.Pairings = append(report.Pairings,
			byePairing(p, round, cfg.RequestedByePoints))
	}

	return report, nil
}

// pairWithinGroups is the PairWithinGroups phase: within each group it
// repeatedly takes the top remaining player and commits them against the
// highest-scoring legal candidate.
func pairWithinGroups(groups []ScoreGroup, standings Standings,
	cfg Config) ([]committedPair, []leftover) {

	var committed []committedPair
	var leftovers []leftover
	var carry []Player

	for gi := range groups {
		members := append(append([]Player{}, carry...), groups[gi].Members...)
		carry = nil
		last := gi == len(groups)-1

		// Float the lowest-rated member down rather than byeing them, so
		// later rounds keep meaningful pairings.
		if len(members)%2 == 1 && !last {
			carry = append(carry, members[len(members)-1])
			members = members[:len(members)-1]
		}

		for len(members) >= 2 {
			top := members[0]
			bestIdx := -1
			var best PairScore
			for i := 1; i < len(members); i++ {
				cand := members[i]
				s := ScorePair(cfg, top, standings[top.ID],
					cand, standings[cand.ID])
				if s.Veto {
					continue
				}
				// ties keep the earlier candidate; members are already in
				// rating-then-id order, so selection is deterministic
				if bestIdx == -1 || s.Value > best.Value {
					bestIdx, best = i, s
				}
			}
			if bestIdx == -1 {
				if last {
					leftovers = append(leftovers,
						leftover{player: top, vetoedAll: true})
				} else {
					carry = append(carry, top)
				}
				members = members[1:]
				continue
			}
			committed = append(committed,
				committedPair{a: top, b: members[bestIdx], score: best})
			members = removeIndex(members, bestIdx)
			members = removeIndex(members, 0)
		}
		if len(members) == 1 {
			if last {
				leftovers = append(leftovers, leftover{player: members[0]})
			} else {
				carry = append(carry, members[0])
			}
		}
	}

	return committed, leftovers
}

// resolveByes picks the single automatic bye recipient from the leftover
// pool (lowest score, then lowest rating) and reports everyone else as
// unpaired with the reason they could not be placed.
func resolveByes(leftovers []leftover,
	standings Standings) (*Player, []Unpaired) {

	if len(leftovers) == 0 {
		return nil, nil
	}

	byeIdx := 0
	for i := 1; i < len(leftovers); i++ {
		a, b := leftovers[i].player, leftovers[byeIdx].player
		sa, sb := standings[a.ID].Score, standings[b.ID].Score
		if sa != sb {
			if sa < sb {
				byeIdx = i
			}
			continue
		}
		if a.Rating != b.Rating {
			if a.Rating < b.Rating {
				byeIdx = i
			}
			continue
		}
		if a.ID > b.ID {
			byeIdx = i
		}
	}

	bye := leftovers[byeIdx].player
	var unpaired []Unpaired
	for i, lo := range leftovers {
		if i == byeIdx {
			continue
		}
		reason := UnpairedNoByeSlot
		if lo.vetoedAll {
			reason = UnpairedNoLegalOpponent
		}
		unpaired = append(unpaired, Unpaired{
			PlayerID: lo.player.ID,
			Reason:   reason,
		})
	}

	return &bye, unpaired
}

// assignBoards is the AssignColors + AssignBoards phase: each committed pair
// gets its color split from color pressure, then boards are numbered with
// the strongest pairings first.
func assignBoards(committed []committedPair, standings Standings,
	round int) []Pairing {

	sort.SliceStable(committed, func(i, j int) bool {
		si := standings[committed[i].a.ID].Score +
			standings[committed[i].b.ID].Score
		sj := standings[committed[j].a.ID].Score +
			standings[committed[j].b.ID].Score
		if si != sj {
			return si > sj
		}
		ri := committed[i].a.Rating + committed[i].b.Rating
		rj := committed[j].a.Rating + committed[j].b.Rating
		return ri > rj
	})

	pairings := make([]Pairing, 0, len(committed))
	for board, cp := range committed {
		w, b := orderColors(cp.a, cp.b, standings)
		pairings = append(pairings, Pairing{
			Round:   round,
			Board:   board + 1,
			WhiteID: w.ID,
			BlackID: b.ID,
			Section: w.Section,
		})
	}

	return pairings
}

// orderColors gives White to the player with the greater "should get White"
// pressure: color balance first, then an owed color after a two-game streak,
// with rating then id breaking exact ties.
func orderColors(a, b Player, standings Standings) (Player, Player) {
	pa := whitePressure(standings[a.ID])
	pb := whitePressure(standings[b.ID])
	if pa != pb {
		if pa > pb {
			return a, b
		}
		return b, a
	}
	if a.Rating != b.Rating {
		if a.Rating > b.Rating {
			return a, b
		}
		return b, a
	}
	if a.ID < b.ID {
		return a, b
	}
	return b, a
}

func whitePressure(st *PlayerState) float64 {
	pressure := float64(-st.ColorBalance())
	if color, ok := st.lastTwoSameColor(); ok {
		// a third consecutive game of the same color outranks raw balance
		if color == Black {
			pressure += 1.5
		} else {
			pressure -= 1.5
		}
	}
	return pressure
}

func byePairing(p Player, round int, points float64) Pairing {
	return Pairing{
		Round:     round,
		Board:     0,
		WhiteID:   p.ID,
		Section:   p.Section,
		IsBye:     true,
		ByePoints: points,
	}
}

func byeRequested(p Player, round int) bool {
	if p.Status == StatusByeRequested {
		return true
	}
	for _, r := range p.ByeRequests {
		if r == round {
			return true
		}
	}
	return false
}

func removeIndex(s []Player, i int) []Player {
	return append(s[:i:i], s[i+1:]...)
}
