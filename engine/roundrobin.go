/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"fmt"
	"sort"
)

// RecommendedRounds returns the natural round-robin length for a group of n
// players: n-1 rounds when n is even, n rounds (each with one bye) when n is
// odd. Callers configuring a tournament should use this; asking the engine
// for rounds past it is a configuration error.
func RecommendedRounds(n int) int {
	if n <= 1 {
		return 0
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}

// BuildFixedGroups sorts players by rating descending and partitions them
// into consecutive groups of the given size. The remainder forms a smaller
// terminal group.
func BuildFixedGroups(players []Player, size int) [][]Player {
	sorted := append([]Player{}, players...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Rating != sorted[j].Rating {
			return sorted[i].Rating > sorted[j].Rating
		}
		return sorted[i].ID < sorted[j].ID
	})

	var groups [][]Player
	for len(sorted) > 0 {
		n := size
		if n > len(sorted) {
			n = len(sorted)
		}
		groups = append(groups, sorted[:n])
		sorted = sorted[n:]
	}
	return groups
}

// rotationPairs returns the index pairs for one round of a circle-method
// round robin over n players. The top seed stays fixed while the rest
// rotate; a slot of -1 marks the bye seat when n is odd. For a quad this
// yields rounds {0-3, 1-2}, {0-2, 3-1}, {0-1, 2-3}.
func rotationPairs(n, round int) [][2]int {
	m := n
	if m%2 == 1 {
		m++
	}
	ids := make([]int, m)
	for i := 0; i < n; i++ {
		ids[i] = i
	}
	if m > n {
		ids[m-1] = -1
	}

	for r := 1; r < round; r++ {
		rotated := make([]int, m)
		rotated[0] = ids[0]
		rotated[1] = ids[m-1]
		copy(rotated[2:], ids[1:m-1])
		ids = rotated
	}

	pairs := make([][2]int, 0, m/2)
	for i := 0; i < m/2; i++ {
		a, b := ids[i], ids[m-1-i]
		// the bye seat rotates; keep it in the second slot
		if a == -1 {
			a, b = b, a
		}
		pairs = append(pairs, [2]int{a, b})
	}
	return pairs
}

// GenerateFixedGroupRound proposes pairings for one round of a fixed-group
// (quad style) event. Groups are formed fresh from the roster by rating, so
// the caller must pass the same roster for every round. A remainder group
// that exhausts its own rotation before the full groups do has its members
// reported unpaired rather than recycled into repeat pairings.
func GenerateFixedGroupRound(roster []Player, results []GameResult,
	round int, cfg Config) (*RoundReport, error) {

	if round < 1 {
		return nil, invalidInputf("round %v; rounds start at 1", round)
	}
	if cfg.GroupSize < 2 {
		return nil, configErrorf("fixed-group size %v; need at least 2",
			cfg.GroupSize)
	}
	standings, err := ComputeStandings(roster, results, round, cfg)
	if err != nil {
		return nil, err
	}

	var active []Player
	for _, p := range roster {
		if p.Status != StatusWithdrawn {
			active = append(active, p)
		}
	}
	if len(active) < 2 {
		return nil, fmt.Errorf("cannot pair round %v: %w", round,
			ErrInsufficientPlayers)
	}
	if natural := RecommendedRounds(cfg.GroupSize); round > natural {
		return nil, configErrorf(
			"round %v exceeds the %v natural rounds of a %v-player group",
			round, natural, cfg.GroupSize)
	}

	report := &RoundReport{Round: round}
	board := 1
	for _, group := range BuildFixedGroups(active, cfg.GroupSize) {
		if round > RecommendedRounds(len(group)) {
			for _, p := range group {
				report.Unpaired = append(report.Unpaired, Unpaired{
					PlayerID: p.ID,
					Reason:   UnpairedNoLegalOpponent,
				})
			}
			continue
		}
		for _, pair := range rotationPairs(len(group), round) {
			i, j := pair[0], pair[1]
			if j == -1 {
				report.Pairings = append(report.Pairings,
					byePairing(group[i], round, cfg.ByePoints))
				continue
			}
			w, b := orderColors(group[i], group[j], standings)
			report.Pairings = append(report.Pairings, Pairing{
				Round:   round,
				Board:   board,
				WhiteID: w.ID,
				BlackID: b.ID,
				Section: w.Section,
			})
			board++
		}
	}

	return report, nil
}

// GenerateTeamRound applies the same rotation table at the team level and
// fills each team match board by board: board 1 is each team's highest-rated
// member, descending. Colors alternate by board, with the first-listed team
// taking White on odd boards.
func GenerateTeamRound(roster []Player, results []GameResult, round int,
	cfg Config) (*RoundReport, error) {

	if round < 1 {
		return nil, invalidInputf("round %v; rounds start at 1", round)
	}
	if _, err := ComputeStandings(roster, results, round, cfg); err != nil {
		return nil, err
	}

	byTeam := make(map[string][]Player)
	for _, p := range roster {
		if p.Status == StatusWithdrawn {
			continue
		}
		if p.Team == "" {
			return nil, invalidInputf(
				"player %q has no team in team mode", p.Name)
		}
		byTeam[p.Team] = append(byTeam[p.Team], p)
	}
	if len(byTeam) < 2 {
		return nil, fmt.Errorf("cannot pair round %v: %w", round,
			ErrInsufficientPlayers)
	}

	teams := rankTeams(byTeam)
	if natural := RecommendedRounds(len(teams)); round > natural {
		return nil, configErrorf(
			"round %v exceeds the %v natural rounds for %v teams",
			round, natural, len(teams))
	}

	report := &RoundReport{Round: round}
	board := 1
	for _, pair := range rotationPairs(len(teams), round) {
		i, j := pair[0], pair[1]
		if j == -1 {
			// whole team sits; every member gets the bye credit
			for _, p := range byTeam[teams[i]] {
				report.Pairings = append(report.Pairings,
					byePairing(p, round, cfg.ByePoints))
			}
			continue
		}
		home, away := byTeam[teams[i]], byTeam[teams[j]]
		boards := len(home)
		if len(away) < boards {
			boards = len(away)
		}
		for k := 0; k < boards; k++ {
			w, b := home[k], away[k]
			if k%2 == 1 {
				w, b = away[k], home[k]
			}
			report.Pairings = append(report.Pairings, Pairing{
				Round:   round,
				Board:   board,
				WhiteID: w.ID,
				BlackID: b.ID,
				Section: w.Section,
			})
			board++
		}
		// uneven team sizes: trailing members have no counterpart
		for k := boards; k < len(home); k++ {
			report.Unpaired = append(report.Unpaired, Unpaired{
				PlayerID: home[k].ID, Reason: UnpairedNoLegalOpponent})
		}
		for k := boards; k < len(away); k++ {
			report.Unpaired = append(report.Unpaired, Unpaired{
				PlayerID: away[k].ID, Reason: UnpairedNoLegalOpponent})
		}
	}

	return report, nil
}

// rankTeams orders team names by average rating descending (name as the
// tiebreak) and sorts each team's members board-order: rating descending.
func rankTeams(byTeam map[string][]Player) []string {
	names := make([]string, 0, len(byTeam))
	avg := make(map[string]float64, len(byTeam))
	for name, members := range byTeam {
		sort.Slice(members, func(i, j int) bool {
			if members[i].Rating != members[j].Rating {
				return members[i].Rating > members[j].Rating
			}
			return members[i].ID < members[j].ID
		})
		total := 0
		for _, p := range members {
			total += p.Rating
		}
		avg[name] = float64(total) / float64(len(members))
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if avg[names[i]] != avg[names[j]] {
			return avg[names[i]] > avg[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
