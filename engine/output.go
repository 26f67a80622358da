/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SectionSorter implements sort.Interface for custom section ordering
// Order: "Open" first, then U<Number> sections descending by number, then
// others lexicographically
type SectionSorter []string

func (s SectionSorter) Len() int { return len(s) }

func (s SectionSorter) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s SectionSorter) Less(i, j int) bool {
	a, b := s[i], s[j]
	if a == "Open" && b != "Open" {
		return true
	}
	if b == "Open" && a != "Open" {
		return false
	}
	if a == "Championship" && b != "Championship" {
		return true
	}
	if b == "Championship" && a != "Championship" {
		return false
	}
	ua, ub := strings.HasPrefix(a, "U"), strings.HasPrefix(b, "U")
	// Both U-sections: compare numeric suffix descending
	if ua && ub {
		ai, errA := strconv.Atoi(strings.TrimPrefix(a, "U"))
		bi, errB := strconv.Atoi(strings.TrimPrefix(b, "U"))
		if errA == nil && errB == nil {
			return ai > bi
		}
	}
	// U-sections before non-U (after Championship)
	if ua != ub {
		return ua
	}
	return a < b
}

// scoreToString renders a score with chess half-point notation, e.g. "2½".
func scoreToString(score float64) string {
	whole := int(score)
	if score == float64(whole) {
		return strconv.Itoa(whole)
	}
	if whole == 0 {
		return "½"
	}
	return fmt.Sprintf("%d½", whole)
}

// BuildPairingsOutput formats per-section round reports into grouped,
// aligned string output.
func BuildPairingsOutput(reports map[string]*RoundReport,
	roster []Player, standings Standings) string {

	players := make(map[PlayerID]Player, len(roster))
	for _, p := range roster {
		players[p.ID] = p
	}
	var sectionNames []string
	for sec := range reports {
		sectionNames = append(sectionNames, sec)
	}
	sort.Sort(SectionSorter(sectionNames))

	var sb strings.Builder
	round := 0
	for _, sec := range sectionNames {
		if reports[sec].Round > round {
			round = reports[sec].Round
		}
	}
	sb.WriteString(fmt.Sprintf("Round %v Pairings:\n\n", round))

	describe := func(id PlayerID) string {
		p := players[id]
		score := 0.0
		if st := standings[id]; st != nil {
			score = st.Score
		}
		return fmt.Sprintf("%s(%d %v)", p.Name, p.Rating,
			scoreToString(score))
	}

	for _, sec := range sectionNames {
		report := reports[sec]
		list := append([]Pairing{}, report.Pairings...)
		sort.Slice(list, func(i, j int) bool {
			// 0 means bye
			return list[i].Board != 0 && list[i].Board < list[j].Board
		})

		type row struct{ board, white, black string }
		var rows []row
		for _, p := range list {
			var b, w, bl string
			w = describe(p.WhiteID)
			if p.IsBye {
				b = "n/a"
				if p.ByePoints == 1.0 {
					bl = "BYE(1)"
				} else {
					bl = "BYE(½)"
				}
			} else {
				b = fmt.Sprintf("%d.", p.Board)
				bl = describe(p.BlackID)
			}
			rows = append(rows, row{board: b, white: w, black: bl})
		}

		maxB, maxW, maxBl := len("Board"), len("White"), len("Black")
		for _, r := range rows {
			if l := len(r.board); l > maxB {
				maxB = l
			}
			if l := len(r.white); l > maxW {
				maxW = l
			}
			if l := len(r.black); l > maxBl {
				maxBl = l
			}
		}

		if len(sectionNames) > 1 {
			if sec == "" {
				sec = "UNNAMED"
			}
			sb.WriteString(fmt.Sprintf("%s Section\n", sec))
		}
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxB, "Board",
			maxW, "White", maxBl, "Black"))
		for _, r := range rows {
			sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxB, r.board,
				maxW, r.white, maxBl, r.black))
		}

		for _, u := range report.Unpaired {
			sb.WriteString(fmt.Sprintf("UNPAIRED: %s (%v)\n",
				players[u.PlayerID].Name, u.Reason))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// BuildStandingsOutput formats ranked standings into aligned string output,
// one column per tiebreak criterion.
func BuildStandingsOutput(results []TiebreakResult, roster []Player,
	kinds []TiebreakKind) string {

	players := make(map[PlayerID]Player, len(roster))
	for _, p := range roster {
		players[p.ID] = p
	}

	type row struct {
		rank, player, score string
		tbs                 []string
	}
	var rows []row
	priorScore := -1.0
	for _, res := range results {
		var rank string
		if res.Score == priorScore {
			rank = ""
		} else {
			rank = fmt.Sprintf("%v.", res.Rank)
			priorScore = res.Score
		}
		r := row{
			rank:   rank,
			player: players[res.PlayerID].Name,
			score:  fmt.Sprintf("%.1f", res.Score),
		}
		for _, kind := range kinds {
			r.tbs = append(r.tbs,
				fmt.Sprintf("%.1f", res.Values[kind.String()]))
		}
		rows = append(rows, r)
	}

	headers := []string{"Place", "Name", "Score"}
	for _, kind := range kinds {
		headers = append(headers, kind.String())
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, r := range rows {
		cols := append([]string{r.rank, r.player, r.score}, r.tbs...)
		for i, c := range cols {
			if len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}

	var sb strings.Builder
	for i, h := range headers {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(fmt.Sprintf("%-*s", widths[i], h))
	}
	sb.WriteString("\n")
	for _, r := range rows {
		cols := append([]string{r.rank, r.player, r.score}, r.tbs...)
		for i, c := range cols {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(fmt.Sprintf("%-*s", widths[i], c))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
