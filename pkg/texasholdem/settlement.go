package texasholdem

import (
	"holdem-server/pkg/action"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/poker"
	"holdem-server/pkg/potmanager"
)

// HandResult is how a player's hand was read at showdown
type HandResult struct {
	Strength    poker.HandStrength `json:"strength"`
	Description string             `json:"description"`
	Cards       deck.Hand          `json:"cards"`
}

// Settlement is the result of a completed hand
type Settlement struct {
	HandNumber int `json:"handNumber"`
	// Winners holds the players with the best hand, or the last player standing
	Winners []int64 `json:"winners"`
	// AmountEach is each winner's even share of what they won together, before odd chips
	AmountEach int                   `json:"amountEach"`
	Pots       potmanager.Pots       `json:"pots"`
	Payouts    map[int64]int         `json:"payouts"`
	Hands      map[int64]*HandResult `json:"hands"`
	Community  deck.Hand             `json:"community"`
}

// Outcome is returned after a successful action
type Outcome struct {
	Phase      Phase       `json:"phase"`
	HandNumber int         `json:"handNumber"`
	Settlement *Settlement `json:"settlement,omitempty"`
}

// LastAction is the most recent decision made at the table
type LastAction struct {
	PlayerID int64         `json:"playerId"`
	Action   action.Action `json:"action"`
	Amount   int           `json:"amount"`
	Phase    Phase         `json:"phase"`
	Forced   bool          `json:"forced,omitempty"`
}
