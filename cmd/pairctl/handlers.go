/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mikeb26/swisspair/engine"
)

type commonFlags struct {
	file       string
	rosterURL  string
	resultsURL string
}

func addCommonFlags(fs *flag.FlagSet, cf *commonFlags) {
	fs.StringVar(&cf.file, "file", "", "tournament snapshot JSON file")
	fs.StringVar(&cf.rosterURL, "roster-url", "", "published roster page URL")
	fs.StringVar(&cf.resultsURL, "results-url", "", "published results page URL")
}

func handlePair(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("pair", flag.ExitOnError)
	var cf commonFlags
	addCommonFlags(fs, &cf)
	mode := fs.String("mode", "swiss", "swiss | fixed-group | team-swiss")
	round := fs.Int("round", 1, "round number to pair")
	groupSize := fs.Int("group-size", 4, "group size for fixed-group mode")
	byePoints := fs.Float64("bye-points", 1.0, "points for the automatic bye")
	reqByePoints := fs.Float64("requested-bye-points", 0.5,
		"points for a requested bye")
	fs.Parse(args)

	t, err := loadTournament(ctx, cf.file, cf.rosterURL, cf.resultsURL)
	if err != nil {
		log.Fatalf("pairctl: %v", err)
	}
	m, err := parseMode(*mode)
	if err != nil {
		log.Fatalf("pairctl: %v", err)
	}
	cfg := engine.DefaultConfig()
	cfg.GroupSize = *groupSize
	cfg.ByePoints = *byePoints
	cfg.RequestedByePoints = *reqByePoints

	reports, err := engine.GenerateSections(ctx, m, t.Players, t.Results,
		*round, cfg)
	if err != nil {
		log.Fatalf("pairctl: unable to pair round %v: %v", *round, err)
	}
	standings, err := engine.ComputeStandings(t.Players, t.Results, *round,
		cfg)
	if err != nil {
		log.Fatalf("pairctl: %v", err)
	}

	fmt.Print(engine.BuildPairingsOutput(reports, t.Players, standings))

	incomplete := false
	for _, report := range reports {
		for _, note := range report.Penalties {
			fmt.Printf("* penalty accepted: %v\n", note)
		}
		if !report.Complete() {
			incomplete = true
		}
	}
	if incomplete {
		fmt.Printf("* round %v is incomplete; see UNPAIRED entries above\n",
			*round)
		os.Exit(2)
	}
}

func handleStandings(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("standings", flag.ExitOnError)
	var cf commonFlags
	addCommonFlags(fs, &cf)
	tiebreaks := fs.String("tiebreaks", "solkoff,cumulative",
		"comma separated: solkoff,median,cumulative,performance")
	fs.Parse(args)

	t, err := loadTournament(ctx, cf.file, cf.rosterURL, cf.resultsURL)
	if err != nil {
		log.Fatalf("pairctl: %v", err)
	}
	kinds, err := parseTiebreaks(*tiebreaks)
	if err != nil {
		log.Fatalf("pairctl: %v", err)
	}

	results, err := engine.ComputeTiebreaks(t.Players, t.Results, kinds,
		engine.DefaultConfig())
	if err != nil {
		log.Fatalf("pairctl: unable to compute standings: %v", err)
	}

	fmt.Print(engine.BuildStandingsOutput(results, t.Players, kinds))
}

func handleRounds(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("rounds", flag.ExitOnError)
	groupSize := fs.Int("group-size", 4, "fixed group size")
	fs.Parse(args)

	if *groupSize < 2 {
		log.Fatalf("pairctl: group size must be at least 2")
	}
	fmt.Printf("A group of %v plays %v rounds of round-robin\n",
		*groupSize, engine.RecommendedRounds(*groupSize))
}

func handleImport(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	var cf commonFlags
	addCommonFlags(fs, &cf)
	fs.Parse(args)

	if cf.rosterURL == "" || cf.resultsURL == "" {
		log.Fatalf("pairctl: import requires --roster-url and --results-url")
	}
	t, err := loadTournament(ctx, "", cf.rosterURL, cf.resultsURL)
	if err != nil {
		log.Fatalf("pairctl: %v", err)
	}

	out, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		log.Fatalf("pairctl: %v", err)
	}
	fmt.Printf("%s\n", out)
}
