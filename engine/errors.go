/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package engine

import (
	"errors"
	"fmt"
)

// ErrInsufficientPlayers is returned when fewer than two active players are
// available for the requested round.
var ErrInsufficientPlayers = errors.New("fewer than 2 active players")

// InvalidInputError indicates a malformed roster or result log. It is
// detected before any pairing computation starts.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %v", e.Reason)
}

// ConfigurationError indicates the requested operation cannot be performed
// with the given configuration (e.g. a fixed-group round number past the
// group's natural round-robin length).
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Reason)
}

func invalidInputf(format string, args ...any) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}
