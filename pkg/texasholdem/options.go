package texasholdem

import (
	"errors"
	"fmt"
	"time"
)

// MaxSeats is the most players a table can seat
const MaxSeats = 10

// Options configures how Texas Hold'em is played
type Options struct {
	SmallBlind int
	BigBlind   int
	MaxSeats   int
	// NextHandDelay is how long the result of a hand stays up before the next one is dealt
	NextHandDelay time.Duration
}

// DefaultOptions returns the default options for Texas Hold'em
func DefaultOptions() Options {
	return Options{
		SmallBlind:    50,
		BigBlind:      100,
		MaxSeats:      MaxSeats,
		NextHandDelay: time.Second * 5,
	}
}

func validateOptions(opts Options) error {
	if opts.SmallBlind <= 0 {
		return errors.New("small blind must be greater than zero")
	}

	if opts.BigBlind <= 0 {
		return errors.New("big blind must be greater than zero")
	}

	if opts.SmallBlind > opts.BigBlind {
		return errors.New("small blind must not exceed the big blind")
	}

	if opts.MaxSeats < 2 || opts.MaxSeats > MaxSeats {
		return fmt.Errorf("max seats must be between 2 and %d", MaxSeats)
	}

	if opts.NextHandDelay < 0 {
		return errors.New("next hand delay must not be negative")
	}

	return nil
}

// Validate returns an error if a table cannot be played with the options
func (o Options) Validate() error {
	return validateOptions(o)
}

// NameFromOptions returns the name from the provided options
func NameFromOptions(opts Options) string {
	if err := validateOptions(opts); err != nil {
		return ""
	}

	return fmt.Sprintf("No-Limit Texas Hold'em (${%d}/${%d})", opts.SmallBlind, opts.BigBlind)
}
