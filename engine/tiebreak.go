/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"math"
	"sort"
)

// TiebreakKind names a secondary ranking criterion. All tiebreaks are pure
// functions of the full result log: they are recomputed from scratch on
// every call so late result corrections cannot leave stale values behind.
type TiebreakKind int

const (
	// TiebreakSolkoff sums the final scores of every opponent faced.
	TiebreakSolkoff TiebreakKind = iota
	// TiebreakMedian is Solkoff with the highest and lowest opponent
	// scores discarded (when the player has at least 3 opponents).
	TiebreakMedian
	// TiebreakCumulative sums the player's running score after each round.
	TiebreakCumulative
	// TiebreakPerformance estimates the rating that would have produced
	// the player's score against their opponents.
	TiebreakPerformance
)

func (k TiebreakKind) String() string {
	switch k {
	case TiebreakSolkoff:
		return "solkoff"
	case TiebreakMedian:
		return "median"
	case TiebreakCumulative:
		return "cumulative"
	case TiebreakPerformance:
		return "performance"
	}
	return "?"
}

// TiebreakResult is one row of the final standings: primary score plus the
// configured tiebreak values, recomputed on demand and never mutated in
// place.
type TiebreakResult struct {
	PlayerID PlayerID
	Rank     int
	Score    float64
	Values   map[string]float64
}

// ComputeTiebreaks produces ranked standings over the full result log.
// Players are ordered by score, then by each requested tiebreak in order,
// then by id for a stable total order.
func ComputeTiebreaks(roster []Player, results []GameResult,
	kinds []TiebreakKind, cfg Config) ([]TiebreakResult, error) {

	standings, err := ComputeStandings(roster, results, 0, cfg)
	if err != nil {
		return nil, err
	}

	ratings := make(map[PlayerID]int, len(roster))
	for _, p := range roster {
		ratings[p.ID] = p.Rating
	}

	rows := make([]TiebreakResult, 0, len(roster))
	for _, p := range roster {
		st := standings[p.ID]
		row := TiebreakResult{
			PlayerID: p.ID,
			Score:    st.Score,
			Values:   make(map[string]float64, len(kinds)),
		}
		for _, kind := range kinds {
			row.Values[kind.String()] = computeTiebreak(kind, st,
				standings, ratings)
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		for _, kind := range kinds {
			vi := rows[i].Values[kind.String()]
			vj := rows[j].Values[kind.String()]
			if vi != vj {
				return vi > vj
			}
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return rows, nil
}

func computeTiebreak(kind TiebreakKind, st *PlayerState,
	standings Standings, ratings map[PlayerID]int) float64 {

	switch kind {
	case TiebreakSolkoff:
		return solkoff(st, standings)
	case TiebreakMedian:
		return median(st, standings)
	case TiebreakCumulative:
		return cumulative(st)
	case TiebreakPerformance:
		return performanceRating(st, ratings)
	}
	return 0
}

func opponentScores(st *PlayerState, standings Standings) []float64 {
	var scores []float64
	for _, line := range st.lines {
		if line.bye {
			continue
		}
		if opp := standings[line.opponentID]; opp != nil {
			scores = append(scores, opp.Score)
		}
	}
	return scores
}

func solkoff(st *PlayerState, standings Standings) float64 {
	total := 0.0
	for _, s := range opponentScores(st, standings) {
		total += s
	}
	return total
}

func median(st *PlayerState, standings Standings) float64 {
	scores := opponentScores(st, standings)
	total := 0.0
	for _, s := range scores {
		total += s
	}
	if len(scores) < 3 {
		return total
	}
	lo, hi := scores[0], scores[0]
	for _, s := range scores[1:] {
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}
	return total - lo - hi
}

func cumulative(st *PlayerState) float64 {
	running, total := 0.0, 0.0
	for _, line := range st.lines {
		running += line.points
		total += running
	}
	return total
}

// expectedScore is the standard logistic winning expectancy:
// 1/(10^((opp-my)/400)+1).
func expectedScore(myRating, oppRating float64) float64 {
	exp := math.Pow(10, (oppRating-myRating)/400.0)
	return 1.0 / (exp + 1.0)
}

// performanceRating solves for the rating R at which the summed expected
// score against the player's opponents equals their actual score. Perfect
// and zero scores have no finite solution and saturate at the average
// opponent rating +/- 800.
func performanceRating(st *PlayerState, ratings map[PlayerID]int) float64 {
	var oppRatings []float64
	score := 0.0
	for _, line := range st.lines {
		if line.bye {
			continue
		}
		oppRatings = append(oppRatings, float64(ratings[line.opponentID]))
		score += line.points
	}
	n := len(oppRatings)
	if n == 0 {
		return 0
	}

	avg := 0.0
	lo, hi := oppRatings[0], oppRatings[0]
	for _, r := range oppRatings {
		avg += r
		lo = math.Min(lo, r)
		hi = math.Max(hi, r)
	}
	avg /= float64(n)

	if score <= 0 {
		return avg - 800.0
	}
	if score >= float64(n) {
		return avg + 800.0
	}

	f := func(r float64) float64 {
		sum := 0.0
		for _, opp := range oppRatings {
			sum += expectedScore(r, opp)
		}
		return sum - score
	}

	lo -= 1000.0
	hi += 1000.0
	for i := 0; i < 200 && hi-lo > 1e-6; i++ {
		mid := (lo + hi) / 2.0
		if f(mid) < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}

	return math.Round((lo+hi)/2.0*10.0) / 10.0
}
