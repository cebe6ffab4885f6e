package poker

import "holdem-server/pkg/deck"

// Evaluate returns the strongest hand a player can make from their hole cards and the board
func Evaluate(hole, community []deck.Card) HandStrength {
	strength, _ := BestHand(append(append([]deck.Card{}, hole...), community...))
	return strength
}

// BestHand returns the strongest five-card hand among cards along with the cards that make it
// Sets of five cards or fewer are analyzed as they are.
func BestHand(cards []deck.Card) (HandStrength, []deck.Card) {
	if len(cards) <= HandSize {
		best := append([]deck.Card{}, cards...)
		return NewHandAnalyzer(best).Strength(), best
	}

	var best HandStrength
	var bestCards []deck.Card
	found := false

	five := make([]deck.Card, HandSize)
	eachCombination(len(cards), HandSize, func(idx []int) {
		for i, j := range idx {
			five[i] = cards[j]
		}

		strength := NewHandAnalyzer(five).Strength()
		if !found || strength.Beats(best) {
			found = true
			best = strength
			bestCards = append(bestCards[:0], five...)
		}
	})

	return best, bestCards
}

// eachCombination calls fn with every k-sized set of indexes into n items
func eachCombination(n, k int, fn func(idx []int)) {
	idx := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			fn(idx)
			return
		}

		for i := start; i <= n-(k-depth); i++ {
			idx[depth] = i
			rec(i+1, depth+1)
		}
	}

	rec(0, 0)
}
