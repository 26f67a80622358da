/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mikeb26/swisspair/engine"
	"github.com/mikeb26/swisspair/webimport"
)

// tournamentFile is the on-disk snapshot format pairctl consumes. The engine
// itself mandates no serialization; this is pairctl's own.
type tournamentFile struct {
	Players []engine.Player     `json:"players"`
	Results []engine.GameResult `json:"results"`
}

// loadTournament reads a tournament snapshot from a local JSON file, or from
// published wallchart pages when both URLs are provided instead.
func loadTournament(ctx context.Context, file, rosterURL,
	resultsURL string) (*tournamentFile, error) {

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("unable to read %v: %w", file, err)
		}
		var t tournamentFile
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("unable to parse %v: %w", file, err)
		}
		return &t, nil
	}

	if rosterURL == "" || resultsURL == "" {
		return nil, fmt.Errorf("specify either --file or both --roster-url and --results-url")
	}
	imported, err := webimport.Fetch(ctx, rosterURL, resultsURL)
	if err != nil {
		return nil, err
	}
	return &tournamentFile{
		Players: imported.Roster,
		Results: imported.Results,
	}, nil
}

func parseMode(mode string) (engine.Mode, error) {
	switch mode {
	case "swiss", "":
		return engine.ModeSwiss, nil
	case "fixed-group", "quads":
		return engine.ModeFixedGroup, nil
	case "team-swiss", "team":
		return engine.ModeTeamSwiss, nil
	}
	return engine.ModeSwiss, fmt.Errorf("unknown mode %q", mode)
}

func parseTiebreaks(list string) ([]engine.TiebreakKind, error) {
	var kinds []engine.TiebreakKind
	for _, name := range strings.Split(list, ",") {
		switch strings.TrimSpace(name) {
		case "solkoff":
			kinds = append(kinds, engine.TiebreakSolkoff)
		case "median":
			kinds = append(kinds, engine.TiebreakMedian)
		case "cumulative":
			kinds = append(kinds, engine.TiebreakCumulative)
		case "performance":
			kinds = append(kinds, engine.TiebreakPerformance)
		case "":
		default:
			return nil, fmt.Errorf("unknown tiebreak %q", name)
		}
	}
	return kinds, nil
}
