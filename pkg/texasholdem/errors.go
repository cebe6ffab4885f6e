package texasholdem

import (
	"errors"
	"fmt"

	"holdem-server/pkg/potmanager"
)

// UserError is an error caused by a player's request; the game state is left untouched
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// user errors
var (
	ErrNotYourTurn   = UserError("it is not your turn")
	ErrUnknownPlayer = UserError("player is not seated at this table")
	ErrHandFinished  = UserError("the hand is over")
	ErrInvalidAction = UserError("invalid action")
	ErrRaiseTooSmall = UserError("your raise must be greater than the current bet")
	ErrCannotCheck   = UserError("you cannot check with an active bet")
)

// ErrInsufficientPlayers is returned when fewer than two seats have chips
var ErrInsufficientPlayers = errors.New("there must be at least two players with chips")

// ErrNoActiveSeats is returned when community cards are requested with nobody left in the hand
var ErrNoActiveSeats = errors.New("no active seats")

// ErrChipMismatch is returned when chips were created or destroyed during a hand
var ErrChipMismatch = errors.New("chip count mismatch")

// IsUserError returns true if the error was caused by the player and can be retried
func IsUserError(err error) bool {
	var ue UserError
	return errors.As(err, &ue)
}

// InvariantError is a fatal error that aborted the hand
type InvariantError struct {
	Err error
}

func (i *InvariantError) Error() string {
	return fmt.Sprintf("hand aborted: %v", i.Err)
}

// Unwrap returns the underlying error
func (i *InvariantError) Unwrap() error {
	return i.Err
}

// translatePotManagerError maps a betting error onto what the player sees
func translatePotManagerError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, potmanager.ErrCannotCheck):
		return ErrCannotCheck
	case errors.Is(err, potmanager.ErrRaiseTooSmall):
		return ErrRaiseTooSmall
	case errors.Is(err, potmanager.ErrParticipantCannotAct):
		return ErrNotYourTurn
	case errors.Is(err, potmanager.ErrParticipantNotFound):
		return ErrUnknownPlayer
	case errors.Is(err, potmanager.ErrRoundOver), errors.Is(err, potmanager.ErrGameOver):
		return ErrHandFinished
	}

	return err
}
