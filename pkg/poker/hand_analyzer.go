package poker

import (
	"fmt"
	"sort"

	"holdem-server/pkg/deck"
)

// HandSize is the number of cards that make a poker hand
const HandSize = 5

// HandAnalyzer can analyze a set of up to five cards
// Straights and flushes are only possible with a full five-card hand, smaller
// sets are analyzed by their rank groups.
type HandAnalyzer struct {
	ranks []int // descending
	quads []int
	trips []int
	pairs []int

	flush    []int
	straight int

	hand Hand
}

// NewHandAnalyzer will return a new HandAnalyzer instance
func NewHandAnalyzer(cards []deck.Card) *HandAnalyzer {
	if len(cards) > HandSize {
		panic(fmt.Sprintf("hand analyzer expects at most %d cards, got %d", HandSize, len(cards)))
	}

	ranks := make([]int, len(cards))
	for i, card := range cards {
		ranks[i] = card.Rank
	}

	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	h := &HandAnalyzer{
		ranks: ranks,
	}

	h.analyzeGroups()
	if len(cards) == HandSize {
		h.analyzeFlush(cards)
		h.analyzeStraight(cards)
	}

	h.calculateHand()

	return h
}

// analyzeGroups walks the descending ranks and records every run of equal ranks
func (h *HandAnalyzer) analyzeGroups() {
	for i := 0; i < len(h.ranks); {
		j := i
		for j < len(h.ranks) && h.ranks[j] == h.ranks[i] {
			j++
		}

		switch j - i {
		case 4:
			h.quads = append(h.quads, h.ranks[i])
		case 3:
			h.trips = append(h.trips, h.ranks[i])
		case 2:
			h.pairs = append(h.pairs, h.ranks[i])
		}

		i = j
	}
}

func (h *HandAnalyzer) analyzeFlush(cards []deck.Card) {
	for _, card := range cards[1:] {
		if card.Suit != cards[0].Suit {
			return
		}
	}

	h.flush = h.ranks
}

func (h *HandAnalyzer) analyzeStraight(cards []deck.Card) {
	for i := 1; i < len(h.ranks); i++ {
		if h.ranks[i] == h.ranks[i-1] {
			return
		}
	}

	if h.ranks[0]-h.ranks[len(h.ranks)-1] == HandSize-1 {
		h.straight = h.ranks[0]
		return
	}

	// the wheel: A-2-3-4-5 plays the ace low
	low := make([]int, len(cards))
	for i, card := range cards {
		low[i] = card.AceLowRank()
	}

	sort.Sort(sort.Reverse(sort.IntSlice(low)))
	if low[0]-low[len(low)-1] == HandSize-1 {
		h.straight = low[0]
	}
}

// calculateHand will determine the best hand
func (h *HandAnalyzer) calculateHand() {
	if h.GetRoyalFlush() {
		h.hand = RoyalFlush
	} else if _, ok := h.GetStraightFlush(); ok {
		h.hand = StraightFlush
	} else if _, ok := h.GetFourOfAKind(); ok {
		h.hand = FourOfAKind
	} else if _, ok := h.GetFullHouse(); ok {
		h.hand = FullHouse
	} else if _, ok := h.GetFlush(); ok {
		h.hand = Flush
	} else if _, ok := h.GetStraight(); ok {
		h.hand = Straight
	} else if _, ok := h.GetThreeOfAKind(); ok {
		h.hand = ThreeOfAKind
	} else if _, ok := h.GetTwoPair(); ok {
		h.hand = TwoPair
	} else if _, ok := h.GetPair(); ok {
		h.hand = OnePair
	} else {
		h.hand = HighCard
	}
}

// GetHand will return the category the cards make
func (h *HandAnalyzer) GetHand() Hand {
	return h.hand
}

// GetRoyalFlush will return true if there's a royal flush
func (h *HandAnalyzer) GetRoyalFlush() bool {
	high, ok := h.GetStraightFlush()
	return ok && high == deck.Ace
}

// GetStraightFlush will return the high card of the straight flush, if possible
func (h *HandAnalyzer) GetStraightFlush() (int, bool) {
	if h.flush != nil && h.straight > 0 {
		return h.straight, true
	}

	return 0, false
}

// GetFourOfAKind will return the rank of the four of a kind, if possible
func (h *HandAnalyzer) GetFourOfAKind() (int, bool) {
	if len(h.quads) > 0 {
		return h.quads[0], true
	}

	return 0, false
}

// GetFullHouse will return the trips and pair ranks of a full house, if possible
func (h *HandAnalyzer) GetFullHouse() ([]int, bool) {
	if len(h.trips) == 0 || len(h.pairs) == 0 {
		return nil, false
	}

	return []int{h.trips[0], h.pairs[0]}, true
}

// GetFlush will return the flush ranks in descending order, if possible
func (h *HandAnalyzer) GetFlush() ([]int, bool) {
	if h.flush != nil {
		return h.flush, true
	}

	return nil, false
}

// GetStraight will return the high card of the straight, if possible
func (h *HandAnalyzer) GetStraight() (int, bool) {
	if h.straight > 0 {
		return h.straight, true
	}

	return 0, false
}

// GetThreeOfAKind will return the rank of the three of a kind, if possible
func (h *HandAnalyzer) GetThreeOfAKind() (int, bool) {
	if len(h.trips) > 0 {
		return h.trips[0], true
	}

	return 0, false
}

// GetTwoPair will return the high and low pair ranks, if possible
func (h *HandAnalyzer) GetTwoPair() ([]int, bool) {
	if len(h.pairs) >= 2 {
		return h.pairs[0:2], true
	}

	return nil, false
}

// GetPair will return the rank of the best pair, if possible
func (h *HandAnalyzer) GetPair() (int, bool) {
	if len(h.pairs) > 0 {
		return h.pairs[0], true
	}

	return 0, false
}

// GetHighCard will return the high card
func (h *HandAnalyzer) GetHighCard() (int, bool) {
	if len(h.ranks) == 0 {
		return 0, false
	}

	return h.ranks[0], true
}

// Strength returns the category with its primary ranks and kickers
func (h *HandAnalyzer) Strength() HandStrength {
	var primary []int
	switch h.hand {
	case RoyalFlush, StraightFlush, Straight:
		return HandStrength{Hand: h.hand, Ranks: []int{h.straight}}
	case Flush:
		return HandStrength{Hand: h.hand, Ranks: append([]int(nil), h.flush...)}
	case FullHouse:
		primary, _ = h.GetFullHouse()
	case FourOfAKind:
		primary = []int{h.quads[0]}
	case ThreeOfAKind:
		primary = []int{h.trips[0]}
	case TwoPair:
		primary = []int{h.pairs[0], h.pairs[1]}
	case OnePair:
		primary = []int{h.pairs[0]}
	default:
		if len(h.ranks) == 0 {
			return HandStrength{Hand: HighCard}
		}

		primary = []int{h.ranks[0]}
	}

	return HandStrength{
		Hand:    h.hand,
		Ranks:   primary,
		Kickers: h.kickers(primary),
	}
}

// kickers returns the ranks not used by the primary groups
func (h *HandAnalyzer) kickers(primary []int) []int {
	used := make(map[int]bool, len(primary))
	for _, r := range primary {
		used[r] = true
	}

	var kickers []int
	for _, r := range h.ranks {
		if !used[r] {
			kickers = append(kickers, r)
		}
	}

	return kickers
}
