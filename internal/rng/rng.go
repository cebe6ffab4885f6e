package rng

// Generator provides a simple random number
// *math/rand.Rand satisfies this interface, which is what tests use for repeatable shuffles
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Shuffle performs a Fisher-Yates shuffle of n elements using gen
// Every permutation is equally likely as long as gen is uniform
func Shuffle(gen Generator, n int, swap func(i, j int)) {
	for j := n - 1; j > 0; j-- {
		i := gen.Intn(j + 1)
		swap(i, j)
	}
}
