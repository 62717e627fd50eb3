package simulator

import (
	"math"
	"math/rand"
	"sort"
)

// minSplitShare is the floor for randomly generated split percentages; shares
// below it are degenerate near-zero settlements the platform rejects.
const minSplitShare = 5

// gate returns true with probability p. Every probabilistic branch in the
// engine goes through one of these so tests can force determinism by seeding
// the injected source.
func gate(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

// randBetween draws a uniform integer in the inclusive range [min, max].
func randBetween(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}

// weightedChoice draws one key proportional to its weight using a
// cumulative-weight scan over the fixed key order. Returns fallback when the
// scan falls through, which cannot happen with integer weights summing to a
// positive total but guards against a zero-weight table.
func weightedChoice[T comparable](rng *rand.Rand, keys []T, weights map[T]int, fallback T) T {
	total := 0
	for _, k := range keys {
		total += weights[k]
	}
	if total <= 0 {
		return fallback
	}

	draw := rng.Intn(total)
	cumulative := 0
	for _, k := range keys {
		cumulative += weights[k]
		if draw < cumulative {
			return k
		}
	}
	return fallback
}

// weightedIndex draws an index proportional to float weights.
func weightedIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}
	draw := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if draw <= cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// generateSplitPercentages returns n positive percentages summing to exactly
// 100. Shares are generated from sorted interior cut points in [20,80];
// draws leaving any share under the floor are retried, with an even split as
// the terminal fallback.
func generateSplitPercentages(rng *rand.Rand, n int) []int {
	if n <= 1 {
		return []int{100}
	}

	for attempt := 0; attempt < 10; attempt++ {
		cuts := make([]int, n-1)
		for i := range cuts {
			cuts[i] = randBetween(rng, 20, 80)
		}
		sort.Ints(cuts)

		shares := make([]int, n)
		prev := 0
		for i, cut := range cuts {
			shares[i] = cut - prev
			prev = cut
		}
		shares[n-1] = 100 - prev

		ok := true
		for _, s := range shares {
			if s < minSplitShare {
				ok = false
				break
			}
		}
		if ok {
			return shares
		}
	}
	return evenSplitPercentages(n)
}

// evenSplitPercentages divides 100 evenly, any remainder going to the first
// share.
func evenSplitPercentages(n int) []int {
	if n <= 1 {
		return []int{100}
	}
	base := 100 / n
	shares := make([]int, n)
	for i := range shares {
		shares[i] = base
	}
	shares[0] += 100 - base*n
	return shares
}

// percentageAmount computes round(base * pct / 100) in minor units. Every
// percentage discount goes through here before submission so the payload
// always carries an absolute amount.
func percentageAmount(base, pct int64) int64 {
	return int64(math.Round(float64(base) * float64(pct) / 100.0))
}
