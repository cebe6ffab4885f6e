package texasholdem

import (
	"errors"
	"time"
)

// Delay returns how often Tick() should be called
func (g *Game) Delay() time.Duration {
	return time.Second
}

// Tick deals the next hand once the previous one has been over for NextHandDelay
// A paused table deals as soon as two players have chips. Returns true if the table changed.
func (g *Game) Tick() (bool, error) {
	if !g.handOver {
		return false, nil
	}

	if g.paused {
		if g.fundedSeats() < 2 {
			return false, nil
		}
	} else if time.Since(g.handOverAt) < g.options.NextHandDelay {
		return false, nil
	}

	if err := g.StartNewHand(); err != nil {
		if errors.Is(err, ErrInsufficientPlayers) {
			return true, nil
		}

		return true, err
	}

	return true, nil
}
