package rng

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrypto_Intn(t *testing.T) {
	a := assert.New(t)

	c := Crypto{}
	found := make(map[int]bool)
	// it's possible this could fail, but not likely
	for i := 0; i < 1000; i++ {
		found[c.Intn(5)] = true
	}

	a.True(found[0])
	a.True(found[1])
	a.True(found[2])
	a.True(found[3])
	a.True(found[4])
	a.False(found[5])
}

func TestShuffle(t *testing.T) {
	a := assert.New(t)

	values := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	Shuffle(rand.New(rand.NewSource(1)), len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	a.Len(values, 10)
	a.ElementsMatch([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, values)
	a.NotEqual([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, values)

	// a single element can't be moved
	single := []int{42}
	Shuffle(Crypto{}, 1, func(i, j int) {
		t.Fatal("swap should not be called")
	})
	a.Equal([]int{42}, single)
}

func TestShuffle_uniform(t *testing.T) {
	// every position of a three element permutation should come up
	gen := rand.New(rand.NewSource(7))
	seen := make(map[[3]int]int)
	for i := 0; i < 6000; i++ {
		p := [3]int{0, 1, 2}
		Shuffle(gen, 3, func(i, j int) {
			p[i], p[j] = p[j], p[i]
		})
		seen[p]++
	}

	assert.Len(t, seen, 6)
	for perm, count := range seen {
		assert.InDelta(t, 1000, count, 150, "permutation %v", perm)
	}
}
