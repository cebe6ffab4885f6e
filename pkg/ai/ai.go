package ai

import (
	"holdem-server/internal/rng"
	"holdem-server/pkg/action"
	"holdem-server/pkg/poker"
	"holdem-server/pkg/texasholdem"
)

// Decision is what a policy wants to do on its turn
type Decision struct {
	Action action.Action `json:"action"`
	// Amount is the new total bet for bets and raises
	Amount int `json:"amount"`
}

// Policy decides for a seat played by the computer
// A policy only ever sees the seat's own snapshot and cannot change the game.
type Policy interface {
	Decide(view *texasholdem.Snapshot) Decision
	Name() string
}

// ForLevel returns the policy for an AI level
// Level 1 plays at random, level 2 plays its cards and level 3 and above always calls.
// Returns nil for a person.
func ForLevel(level int, gen rng.Generator) Policy {
	if gen == nil {
		gen = rng.Crypto{}
	}

	switch {
	case level <= 0:
		return nil
	case level == 1:
		return &Random{gen: gen}
	case level == 2:
		return &Heuristic{gen: gen}
	}

	return Caller{}
}

// Random picks fold, call or raise with equal odds
type Random struct {
	gen rng.Generator
}

// Name returns the name
func (r *Random) Name() string {
	return "random"
}

// Decide makes a decision
func (r *Random) Decide(view *texasholdem.Snapshot) Decision {
	switch r.gen.Intn(3) {
	case 0:
		return fold(view)
	case 1:
		return call(view)
	}

	return raise(view)
}

// Heuristic stays in with a straight or better, and otherwise seven times out of ten
type Heuristic struct {
	gen rng.Generator
}

// Name returns the name
func (h *Heuristic) Name() string {
	return "heuristic"
}

// Decide makes a decision
func (h *Heuristic) Decide(view *texasholdem.Snapshot) Decision {
	strong := false
	if view != nil && view.Viewer != nil && view.Viewer.Strength != nil {
		strong = view.Viewer.Strength.Hand > poker.ThreeOfAKind
	}

	if strong || h.gen.Intn(10) < 7 {
		if h.gen.Intn(2) == 0 {
			return call(view)
		}

		return raise(view)
	}

	return fold(view)
}

// Caller always calls
type Caller struct{}

// Name returns the name
func (Caller) Name() string {
	return "caller"
}

// Decide makes a decision
func (Caller) Decide(view *texasholdem.Snapshot) Decision {
	return call(view)
}

func canAct(view *texasholdem.Snapshot) bool {
	return view != nil && view.Viewer != nil && len(view.Viewer.LegalActions) > 0
}

func isLegal(view *texasholdem.Snapshot, act action.Action) bool {
	for _, legal := range view.Viewer.LegalActions {
		if legal == act {
			return true
		}
	}

	return false
}

// fold folds, unless checking is free
func fold(view *texasholdem.Snapshot) Decision {
	if canAct(view) && isLegal(view, action.Check) {
		return Decision{Action: action.Check}
	}

	return Decision{Action: action.Fold}
}

// call calls, or checks when nothing is owed
func call(view *texasholdem.Snapshot) Decision {
	if !canAct(view) {
		return Decision{Action: action.Fold}
	}

	if isLegal(view, action.Check) {
		return Decision{Action: action.Check}
	}

	return Decision{Action: action.Call}
}

// raise raises by the big blind, or calls if the seat cannot cover a raise
func raise(view *texasholdem.Snapshot) Decision {
	if !canAct(view) {
		return Decision{Action: action.Fold}
	}

	amount := view.CurrentBet + view.BigBlind
	switch {
	case isLegal(view, action.Bet):
		return Decision{Action: action.Bet, Amount: amount}
	case isLegal(view, action.Raise):
		return Decision{Action: action.Raise, Amount: amount}
	}

	return call(view)
}
