package poker

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"holdem-server/pkg/deck"
)

func strengthOf(cards string) HandStrength {
	return NewHandAnalyzer(deck.CardsFromString(cards)).Strength()
}

func TestHandStrength_Compare(t *testing.T) {
	a := assert.New(t)

	flush := strengthOf("2c,5c,9c,11c,8c")
	straight := strengthOf("3c,4d,5h,6s,7c")
	a.Equal(1, flush.Compare(straight))
	a.Equal(-1, straight.Compare(flush))
	a.True(flush.Beats(straight))

	// same category, primary decides
	a.True(strengthOf("13c,13d,2h,3s,4c").Beats(strengthOf("12c,12d,14h,13s,11c")))

	// same primary, kickers decide
	a.True(strengthOf("9c,9d,14h,3s,2c").Beats(strengthOf("9h,9s,13h,12s,11c")))

	// suits never matter
	a.True(strengthOf("9c,9d,14h,3s,2c").Equal(strengthOf("9h,9s,14c,3d,2h")))
	a.Equal(0, strengthOf("2c,5c,9c,11c,8c").Compare(strengthOf("2d,5d,9d,11d,8d")))
}

func TestHandStrength_String(t *testing.T) {
	assert.Equal(t, "Four of a kind (A) with K", HandStrength{Hand: FourOfAKind, Ranks: []int{14}, Kickers: []int{13}}.String())
	assert.Equal(t, "Two pair (Q, 9) with T", strengthOf("12c,12d,9c,9d,10h").String())
	assert.Equal(t, "High card", HandStrength{}.String())
}

func randomStrengths(r *rand.Rand, n int) []HandStrength {
	strengths := make([]HandStrength, n)
	for i := range strengths {
		d := deck.New()
		r.Shuffle(len(d.Cards), func(i, j int) {
			d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
		})

		strengths[i] = Evaluate(d.Cards[0:2], d.Cards[2:7])
	}

	return strengths
}

func TestHandStrength_totalOrder(t *testing.T) {
	strengths := randomStrengths(rand.New(rand.NewSource(1)), 80)

	for _, a := range strengths {
		assert.Equal(t, 0, a.Compare(a))
		for _, b := range strengths {
			assert.Equal(t, a.Compare(b), -b.Compare(a))
			assert.Equal(t, a.Equal(b), a.Compare(b) == 0)

			if !a.Beats(b) {
				continue
			}

			for _, c := range strengths {
				if b.Beats(c) {
					assert.True(t, a.Beats(c), "%s > %s > %s", a, b, c)
				}
			}
		}
	}
}
