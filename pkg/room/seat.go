package room

import (
	"errors"
	"fmt"
	"time"

	"holdem-server/internal/rng"
	"holdem-server/pkg/texasholdem"
)

// Seat is a player sitting down at a new table
type Seat struct {
	PlayerID int64  `json:"playerId"`
	Name     string `json:"name"`
	Chips    int    `json:"chips"`
	// AILevel is 0 for a person, otherwise the level of the computer player
	AILevel int `json:"aiLevel"`
}

func (s *Seat) validate() error {
	if s == nil {
		return texasholdem.UserError("seat cannot be empty")
	}

	if s.Chips <= 0 {
		return texasholdem.UserError(fmt.Sprintf("player %d must sit down with chips", s.PlayerID))
	}

	return nil
}

// GetPlayerID returns the player ID
func (s *Seat) GetPlayerID() int64 {
	return s.PlayerID
}

// GetName returns the display name
func (s *Seat) GetName() string {
	return s.Name
}

// GetTableStake returns the chips the player sits down with
func (s *Seat) GetTableStake() int {
	return s.Chips
}

// GetAILevel returns the AI level
func (s *Seat) GetAILevel() int {
	return s.AILevel
}

// TableConfig describes a table to open
type TableConfig struct {
	Name    string
	Seats   []*Seat
	Options texasholdem.Options
	// ActionTimeout is how long a person has to act before they are folded, 0 to wait forever
	ActionTimeout time.Duration
	// TickInterval is how often the table checks the clock, 0 for the game's own delay
	TickInterval time.Duration
	// Generator shuffles the deck and drives the AI, crypto/rand when nil
	Generator rng.Generator
}

func (t TableConfig) validate() error {
	if len(t.Seats) < 2 {
		return texasholdem.ErrInsufficientPlayers
	}

	for _, seat := range t.Seats {
		if err := seat.validate(); err != nil {
			return err
		}
	}

	if t.ActionTimeout < 0 {
		return errors.New("action timeout must not be negative")
	}

	if t.TickInterval < 0 {
		return errors.New("tick interval must not be negative")
	}

	return nil
}
