package texasholdem

import "encoding/json"

// Phase is the street of the current hand
type Phase int

// constants for Phase
const (
	PreFlop Phase = iota
	Flop
	Turn
	River
	Showdown
)

var phaseNames = [...]string{"pre-flop", "flop", "turn", "river", "showdown"}

// communityCardsDealt is how many cards each phase adds to the board
var communityCardsDealt = [...]int{0, 3, 1, 1, 0}

func (p Phase) String() string {
	if p < PreFlop || p > Showdown {
		return ""
	}

	return phaseNames[p]
}

// CardsToDeal returns the number of community cards revealed when the phase begins
func (p Phase) CardsToDeal() int {
	if p < PreFlop || p > Showdown {
		return 0
	}

	return communityCardsDealt[p]
}

// MarshalJSON encodes JSON
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(p),
		Name: p.String(),
	})
}
