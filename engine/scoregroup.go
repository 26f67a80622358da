/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"sort"
)

// ScoreGroup is a round-scoped bracket of players sharing the same
// cumulative score. Members are ordered by rating descending, then id
// ascending so that pairing traversal is deterministic.
type ScoreGroup struct {
	Score   float64
	Members []Player
}

// BuildScoreGroups partitions players into descending-score groups. Callers
// are expected to have already removed withdrawn players and bye requests;
// every player passed in must have an entry in standings.
func BuildScoreGroups(players []Player, standings Standings) []ScoreGroup {
	byScore := make(map[float64][]Player)
	for _, p := range players {
		score := 0.0
		if st := standings[p.ID]; st != nil {
			score = st.Score
		}
		byScore[score] = append(byScore[score], p)
	}

	scores := make([]float64, 0, len(byScore))
	for score := range byScore {
		scores = append(scores, score)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))

	groups := make([]ScoreGroup, 0, len(scores))
	for _, score := range scores {
		members := byScore[score]
		sort.Slice(members, func(i, j int) bool {
			if members[i].Rating != members[j].Rating {
				return members[i].Rating > members[j].Rating
			}
			return members[i].ID < members[j].ID
		})
		groups = append(groups, ScoreGroup{Score: score, Members: members})
	}

	return groups
}
