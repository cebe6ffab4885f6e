package poker

import (
	"encoding/json"
	"fmt"
)

// Hand is a poker hand category, i.e., royal flush
type Hand int

// Constants for hand
const (
	HighCard Hand = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var handNames = [...]string{
	"High card",
	"Pair",
	"Two pair",
	"Three of a kind",
	"Straight",
	"Flush",
	"Full house",
	"Four of a kind",
	"Straight flush",
	"Royal flush",
}

// String returns the string representation of a hand
func (h Hand) String() string {
	if h < HighCard || h > RoyalFlush {
		panic(fmt.Sprintf("unknown hand: %d", h))
	}

	return handNames[h]
}

// MarshalJSON encodes the category as its name
func (h Hand) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a category name
func (h *Hand) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}

	for i, n := range handNames {
		if n == name {
			*h = Hand(i)
			return nil
		}
	}

	return fmt.Errorf("unknown hand: %q", name)
}
