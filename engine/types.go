/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

// PlayerID identifies a player within a tournament. Ids are assigned by the
// caller (typically the storage layer) and must be positive.
type PlayerID int

type Color int

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "W"
	}
	return "B"
}

// Outcome is the recorded result of one game.
type Outcome int

const (
	OutcomeUnset Outcome = iota
	OutcomeWhiteWins
	OutcomeBlackWins
	OutcomeDraw
	OutcomeByeAwarded
)

type Status int

const (
	StatusActive Status = iota
	StatusWithdrawn
	StatusByeRequested
)

// Mode selects the pairing engine. The set is closed; GenerateRound switches
// over it exhaustively.
type Mode int

const (
	ModeSwiss Mode = iota
	ModeFixedGroup
	ModeTeamSwiss
)

func (m Mode) String() string {
	switch m {
	case ModeSwiss:
		return "swiss"
	case ModeFixedGroup:
		return "fixed-group"
	case ModeTeamSwiss:
		return "team-swiss"
	}
	return "?"
}

// Player is the roster snapshot entry the caller provides. Cumulative state
// (score, colors, opponents) is never stored here; it is derived from the
// result log by ComputeStandings.
type Player struct {
	ID      PlayerID `json:"id"`
	Name    string   `json:"name"`
	Rating  int      `json:"rating"`
	Section string   `json:"section"`
	Team    string   `json:"team"`
	Status  Status   `json:"status"`

	// ByeRequests lists round numbers the player asked to sit out.
	ByeRequests []int `json:"byeRequests"`
}

// GameResult is one row of the result log. A bye row has BlackID == 0 and
// Outcome == OutcomeByeAwarded. RecordedAt is an optional timestamp in any
// common format; when multiple rows exist for the same (player, round) the
// most recently recorded one wins.
type GameResult struct {
	Round      int      `json:"round"`
	WhiteID    PlayerID `json:"whiteId"`
	BlackID    PlayerID `json:"blackId"`
	Outcome    Outcome  `json:"outcome"`
	ByePoints  *float64 `json:"byePoints,omitempty"`
	RecordedAt string   `json:"recordedAt,omitempty"`
}

// Pairing is one proposed game assignment for a round. Byes have BlackID == 0
// and Board == 0.
type Pairing struct {
	Round     int      `json:"round"`
	Board     int      `json:"board"`
	WhiteID   PlayerID `json:"whiteId"`
	BlackID   PlayerID `json:"blackId"`
	Section   string   `json:"section"`
	IsBye     bool     `json:"isBye"`
	ByePoints float64  `json:"byePoints,omitempty"`
}

type UnpairedReason int

const (
	UnpairedNoLegalOpponent UnpairedReason = iota
	UnpairedNoByeSlot
)

func (r UnpairedReason) String() string {
	if r == UnpairedNoLegalOpponent {
		return "no legal opponent"
	}
	return "odd remainder with no bye slot"
}

type Unpaired struct {
	PlayerID PlayerID
	Reason   UnpairedReason
}

// RoundReport is the engine's proposed pairing set for one round plus any
// players it could not place. Callers must treat a report with Unpaired
// entries as an incomplete round; the engine never forces an illegal pairing
// to avoid one.
type RoundReport struct {
	Round    int
	Pairings []Pairing
	Unpaired []Unpaired

	// Penalties is an audit trail of the non-ideal pairings that were
	// accepted (e.g. a forced teammate pairing).
	Penalties []string
}

func (r *RoundReport) Complete() bool {
	return len(r.Unpaired) == 0
}

// Config carries the tunable pairing policy. The relative ordering of the
// scoring terms (veto > team penalty > color terms > proximity) must be
// preserved when overriding the defaults.
type Config struct {
	// ByePoints is awarded for the automatic odd-player bye.
	ByePoints float64
	// RequestedByePoints is awarded for a player-requested bye.
	RequestedByePoints float64
	// GroupSize for fixed-group mode.
	GroupSize int

	TeamPenalty        float64
	ColorBalanceWeight float64
	ColorStreakPenalty float64
	ProximityBonus     float64
	// Rating gaps inside [ProximityMinGap, ProximityMaxGap] earn the full
	// proximity bonus; outside the band the bonus decays linearly to zero
	// over ProximityDecay points.
	ProximityMinGap int
	ProximityMaxGap int
	ProximityDecay  int
}

func DefaultConfig() Config {
	return Config{
		ByePoints:          1.0,
		RequestedByePoints: 0.5,
		GroupSize:          4,
		TeamPenalty:        1000.0,
		ColorBalanceWeight: 60.0,
		ColorStreakPenalty: 250.0,
		ProximityBonus:     30.0,
		ProximityMinGap:    50,
		ProximityMaxGap:    300,
		ProximityDecay:     400,
	}
}
