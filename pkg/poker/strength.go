package poker

import (
	"strings"

	"holdem-server/pkg/deck"
)

// HandStrength is the comparable value of a hand
// Strengths are ordered by category, then primary ranks, then kickers.
type HandStrength struct {
	Hand    Hand  `json:"hand"`
	Ranks   []int `json:"ranks"`
	Kickers []int `json:"kickers,omitempty"`
}

// Compare returns -1, 0 or 1 when h is weaker than, equal to or stronger than other
func (h HandStrength) Compare(other HandStrength) int {
	if h.Hand != other.Hand {
		if h.Hand < other.Hand {
			return -1
		}

		return 1
	}

	if c := compareRanks(h.Ranks, other.Ranks); c != 0 {
		return c
	}

	return compareRanks(h.Kickers, other.Kickers)
}

// Equal returns true if both strengths tie
func (h HandStrength) Equal(other HandStrength) bool {
	return h.Compare(other) == 0
}

// Beats returns true if h is strictly stronger than other
func (h HandStrength) Beats(other HandStrength) bool {
	return h.Compare(other) > 0
}

func (h HandStrength) String() string {
	if len(h.Ranks) == 0 {
		return h.Hand.String()
	}

	var sb strings.Builder
	sb.WriteString(h.Hand.String())
	sb.WriteString(" (")
	for i, r := range h.Ranks {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(deck.RankString(r))
	}
	sb.WriteString(")")

	for i, r := range h.Kickers {
		if i == 0 {
			sb.WriteString(" with ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(deck.RankString(r))
	}

	return sb.String()
}

func compareRanks(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] < b[i] {
			return -1
		} else if a[i] > b[i] {
			return 1
		}
	}

	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}

	return 0
}
