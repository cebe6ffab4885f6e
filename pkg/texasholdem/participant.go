package texasholdem

import (
	"fmt"

	"holdem-server/pkg/deck"
	"holdem-server/pkg/poker"
)

// Controller decides who makes decisions for a seat
// The zero value is a person; any other value is the level of an AI.
type Controller int

// Human is a seat played by a person
const Human Controller = 0

// AI returns the controller for an AI of the given level
func AI(level int) Controller {
	if level < 1 {
		level = 1
	}

	return Controller(level)
}

// IsAI returns true if the seat is played by an AI
func (c Controller) IsAI() bool {
	return c > Human
}

// Level returns the AI level, 0 for a person
func (c Controller) Level() int {
	return int(c)
}

func (c Controller) String() string {
	if c.IsAI() {
		return fmt.Sprintf("ai-%d", c)
	}

	return "human"
}

// MarshalText encodes the controller as its name
func (c Controller) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type result string

const (
	resultPending result = ""
	resultFolded  result = "folded"
	resultLost    result = "lost"
	resultWon     result = "won"
)

// Participant represents an individual player in Texas Hold'em
// Chips persist across hands, everything else is reset when a hand starts.
type Participant struct {
	PlayerID int64

	name       string
	controller Controller
	chips      int
	cards      deck.Hand

	inHand bool
	folded bool
	reveal bool
	bet    int

	result   result
	winnings int
}

func newParticipant(id int64, name string, chips int, controller Controller) *Participant {
	return &Participant{
		PlayerID:   id,
		name:       name,
		controller: controller,
		chips:      chips,
		result:     resultPending,
	}
}

// resetForHand clears everything but the chips
func (p *Participant) resetForHand() {
	p.cards = nil
	p.inHand = false
	p.folded = false
	p.reveal = false
	p.bet = 0
	p.result = resultPending
	p.winnings = 0
}

// Name returns the display name
func (p *Participant) Name() string {
	return p.name
}

// Controller returns who makes decisions for the seat
func (p *Participant) Controller() Controller {
	return p.controller
}

// Chips returns the chips in front of the player
func (p *Participant) Chips() int {
	return p.chips
}

// Bet returns what the player has put in during the current betting round
func (p *Participant) Bet() int {
	return p.bet
}

// Cards returns a copy of the hole cards
func (p *Participant) Cards() deck.Hand {
	return p.cards.Clone()
}

// IsFolded returns true if the player folded this hand
func (p *Participant) IsFolded() bool {
	return p.folded
}

// IsInHand returns true if the player was dealt into the current hand
func (p *Participant) IsInHand() bool {
	return p.inHand
}

// IsAllIn returns true if the player has every chip committed in the current hand
func (p *Participant) IsAllIn() bool {
	return p.inHand && !p.folded && p.chips == 0
}

// canAct returns true if the player can still make decisions this hand
func (p *Participant) canAct() bool {
	return p.inHand && !p.folded && p.chips > 0
}

// strength evaluates the player's best hand with the board
func (p *Participant) strength(community deck.Hand) poker.HandStrength {
	return poker.Evaluate(p.cards, community)
}

// potmanager.Participant interface

// ID returns the player ID
func (p *Participant) ID() int64 {
	return p.PlayerID
}

// Balance returns the chips the player can still bet
func (p *Participant) Balance() int {
	return p.chips
}

// AdjustBalance adds to (or with a negative amount, takes from) the player's chips
func (p *Participant) AdjustBalance(amount int) {
	p.chips += amount
}

// SetAmountInPlay records the player's bet for the betting round
func (p *Participant) SetAmountInPlay(amount int) {
	p.bet = amount
}
