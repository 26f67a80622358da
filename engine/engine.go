/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// GenerateRound dispatches to the pairing engine selected by mode. The Mode
// set is closed; an unrecognized value is a configuration error rather than
// a fallthrough.
//
// The engine computes from an immutable snapshot and returns a proposal; it
// never persists anything itself. Callers running concurrent generations for
// the same (tournament, section, round) must serialize the commit, e.g. with
// a single-writer transaction that replaces any prior pairing set for that
// scope atomically.
func GenerateRound(mode Mode, roster []Player, results []GameResult,
	round int, cfg Config) (*RoundReport, error) {

	switch mode {
	case ModeSwiss:
		return GenerateSwissRound(roster, results, round, cfg)
	case ModeFixedGroup:
		return GenerateFixedGroupRound(roster, results, round, cfg)
	case ModeTeamSwiss:
		return GenerateTeamRound(roster, results, round, cfg)
	}
	return nil, configErrorf("unknown tournament mode %v", int(mode))
}

// GenerateSections pairs every section of a roster for one round,
// fanning out per section. Sections are independent, so each generation
// still runs single-threaded over its own snapshot. Board numbers are
// per-section; renumber via SectionSorter order if a hall-wide sequence is
// needed.
func GenerateSections(ctx context.Context, mode Mode, roster []Player,
	results []GameResult, round int,
	cfg Config) (map[string]*RoundReport, error) {

	secRosters := make(map[string][]Player)
	for _, p := range roster {
		secRosters[p.Section] = append(secRosters[p.Section], p)
	}

	var (
		mu      sync.Mutex
		reports = make(map[string]*RoundReport, len(secRosters))
	)
	g, _ := errgroup.WithContext(ctx)
	for sec, secRoster := range secRosters {
		sec, secRoster := sec, secRoster
		g.Go(func() error {
			report, err := GenerateRound(mode, secRoster,
				filterResults(results, secRoster), round, cfg)
			if err != nil {
				return err
			}

			mu.Lock()
			reports[sec] = report
			mu.Unlock()

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

// filterResults keeps only rows where every referenced player belongs to the
// section roster. Cross-section rows belong to other sections' logs.
func filterResults(results []GameResult, roster []Player) []GameResult {
	member := make(map[PlayerID]bool, len(roster))
	for _, p := range roster {
		member[p.ID] = true
	}

	var filtered []GameResult
	for _, res := range results {
		if !member[res.WhiteID] {
			continue
		}
		if res.BlackID != 0 && !member[res.BlackID] {
			continue
		}
		filtered = append(filtered, res)
	}
	return filtered
}
