/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package webimport loads a tournament roster and result log from published
// wallchart HTML pages. It exists as a boundary adapter: the pairing engine
// itself never performs I/O, so something has to turn a posted wallchart
// into the snapshot the engine consumes.
package webimport

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/swisspair/engine"
	"github.com/mikeb26/swisspair/internal"
)

// Tournament is the engine input recovered from a wallchart.
type Tournament struct {
	Roster  []engine.Player
	Results []engine.GameResult
}

// wallchart pages change at most once per round; cache accordingly
const pageTTL = 15 * time.Minute

// Fetch retrieves and parses the roster and results pages concurrently.
func Fetch(ctx context.Context, rosterURL, resultsURL string) (*Tournament, error) {
	client := internal.NewCachedHTTPClient(ctx, pageTTL)

	var wg sync.WaitGroup
	var rosterDoc, resultsDoc *goquery.Document
	var errRoster, errResults error
	wg.Add(2)
	go func() {
		defer wg.Done()
		rosterDoc, errRoster = fetchDoc(ctx, client, rosterURL)
	}()
	go func() {
		defer wg.Done()
		resultsDoc, errResults = fetchDoc(ctx, client, resultsURL)
	}()
	wg.Wait()

	if errRoster != nil {
		return nil, fmt.Errorf("unable to fetch roster page: %w", errRoster)
	}
	if errResults != nil {
		return nil, fmt.Errorf("unable to fetch results page: %w", errResults)
	}

	tourney := &Tournament{}
	var err error
	if tourney.Roster, err = ParseRoster(rosterDoc); err != nil {
		return nil, fmt.Errorf("unable to parse roster: %w", err)
	}
	if tourney.Results, err = ParseResults(resultsDoc); err != nil {
		return nil, fmt.Errorf("unable to parse results: %w", err)
	}

	return tourney, nil
}

// ParseRoster extracts players from the roster table in the document. Row
// layout: id, name, rating, section, team, status, bye requests.
func ParseRoster(doc *goquery.Document) ([]engine.Player, error) {
	var players []engine.Player
	doc.Find("table#roster tbody tr").Each(func(_ int, s *goquery.Selection) {
		cells := s.Find("td")
		if cells.Length() < 4 {
			return
		}
		id, err := strconv.Atoi(strings.TrimSpace(cells.Eq(0).Text()))
		if err != nil || id <= 0 {
			return
		}
		p := engine.Player{
			ID:   engine.PlayerID(id),
			Name: strings.TrimSpace(cells.Eq(1).Text()),
		}
		if r, err := strconv.Atoi(strings.TrimSpace(cells.Eq(2).Text())); err == nil {
			p.Rating = r
		}
		p.Section = strings.TrimSpace(cells.Eq(3).Text())
		if cells.Length() > 4 {
			p.Team = strings.TrimSpace(cells.Eq(4).Text())
		}
		if cells.Length() > 5 {
			p.Status = parseStatus(cells.Eq(5).Text())
		}
		if cells.Length() > 6 {
			p.ByeRequests = parseByeRequests(cells.Eq(6).Text())
		}
		players = append(players, p)
	})

	if len(players) == 0 {
		return nil, fmt.Errorf("no roster table found")
	}
	return players, nil
}

// ParseResults extracts one GameResult per completed game. Each round is a
// "Round N" header followed by a table whose rows are: board, white, result
// code, black, and optionally the recorded-at timestamp.
func ParseResults(doc *goquery.Document) ([]engine.GameResult, error) {
	var results []engine.GameResult
	var parseErr error

	doc.Find("div#results h2").Each(func(_ int, s *goquery.Selection) {
		round := parseRoundHeader(s.Text())
		if round == 0 {
			return
		}

		// find the next table sibling
		tableSel := s.Next()
		for tableSel.Length() > 0 && !tableSel.Is("table") {
			tableSel = tableSel.Next()
		}
		if tableSel.Length() == 0 {
			return
		}

		tableSel.Find("tr").Each(func(_ int, row *goquery.Selection) {
			res, ok, err := parseResultRow(row, round)
			if err != nil && parseErr == nil {
				parseErr = err
			}
			if ok {
				results = append(results, *res)
			}
		})
	})

	return results, parseErr
}

func parseResultRow(row *goquery.Selection, round int) (*engine.GameResult, bool, error) {
	cells := row.Find("td")
	if cells.Length() < 4 {
		return nil, false, nil
	}
	boardText := strings.TrimSpace(cells.Eq(0).Text())
	if strings.EqualFold(boardText, "Bd") ||
		strings.EqualFold(boardText, "Board") {
		return nil, false, nil
	}

	whiteID := parsePlayerRef(cells.Eq(1).Text())
	if whiteID == 0 {
		return nil, false, fmt.Errorf("round %v: unparseable white player %q",
			round, strings.TrimSpace(cells.Eq(1).Text()))
	}
	code := strings.TrimSpace(cells.Eq(2).Text())
	blackText := strings.TrimSpace(cells.Eq(3).Text())

	res := &engine.GameResult{
		Round:   round,
		WhiteID: whiteID,
	}
	if cells.Length() > 4 {
		res.RecordedAt = strings.TrimSpace(cells.Eq(4).Text())
	}

	if strings.EqualFold(blackText, "BYE") {
		res.Outcome = engine.OutcomeByeAwarded
		if pts, ok := parseByePoints(code); ok {
			res.ByePoints = &pts
		}
		return res, true, nil
	}

	blackID := parsePlayerRef(blackText)
	if blackID == 0 {
		return nil, false, fmt.Errorf("round %v: unparseable black player %q",
			round, blackText)
	}
	res.BlackID = blackID
	res.Outcome = parseOutcome(code)

	return res, true, nil
}

// parsePlayerRef extracts the player id from a cell like
// "12 John Doe (2250)".
func parsePlayerRef(text string) engine.PlayerID {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return 0
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil || id <= 0 {
		return 0
	}
	return engine.PlayerID(id)
}

func parseRoundHeader(text string) int {
	fields := strings.Fields(strings.TrimSpace(text))
	for i, f := range fields {
		if strings.EqualFold(f, "Round") && i+1 < len(fields) {
			if n, err := strconv.Atoi(fields[i+1]); err == nil {
				return n
			}
		}
	}
	return 0
}

func parseOutcome(code string) engine.Outcome {
	switch strings.TrimSpace(code) {
	case "1-0":
		return engine.OutcomeWhiteWins
	case "0-1":
		return engine.OutcomeBlackWins
	case "½-½", "1/2-1/2", "=":
		return engine.OutcomeDraw
	}
	return engine.OutcomeUnset
}

func parseByePoints(code string) (float64, bool) {
	code = strings.TrimSpace(code)
	if strings.Contains(code, "½") {
		return 0.5, true
	}
	if v, err := strconv.ParseFloat(code, 64); err == nil {
		return v, true
	}
	return 0, false
}

func parseStatus(text string) engine.Status {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "withdrawn":
		return engine.StatusWithdrawn
	case "bye-requested", "bye requested":
		return engine.StatusByeRequested
	}
	return engine.StatusActive
}

func parseByeRequests(text string) []int {
	var rounds []int
	for _, f := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '&' || r == ';' || r == '/' || r == ' '
	}) {
		if n, err := strconv.Atoi(f); err == nil && n > 0 {
			rounds = append(rounds, n)
		}
	}
	return rounds
}

// fetchDoc gets the HTML document at the given URL using the configured
// User-Agent.
func fetchDoc(ctx context.Context, client *http.Client,
	url string) (*goquery.Document, error) {

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}
