package simulator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSplitPercentagesSumTo100(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		for n := 2; n <= 4; n++ {
			shares := generateSplitPercentages(rng, n)
			assert.Len(t, shares, n)

			sum := 0
			for _, share := range shares {
				sum += share
				assert.GreaterOrEqual(t, share, minSplitShare)
			}
			assert.Equal(t, 100, sum)
		}
	}
}

func TestGenerateSplitPercentagesSingleShare(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, []int{100}, generateSplitPercentages(rng, 1))
}

func TestEvenSplitPercentages(t *testing.T) {
	assert.Equal(t, []int{50, 50}, evenSplitPercentages(2))
	assert.Equal(t, []int{34, 33, 33}, evenSplitPercentages(3))
	assert.Equal(t, []int{25, 25, 25, 25}, evenSplitPercentages(4))
}

func TestRandBetweenInclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		v := randBetween(rng, 2, 4)
		assert.GreaterOrEqual(t, v, 2)
		assert.LessOrEqual(t, v, 4)
		seen[v] = true
	}
	assert.True(t, seen[2] && seen[3] && seen[4])

	assert.Equal(t, 5, randBetween(rng, 5, 5))
	assert.Equal(t, 5, randBetween(rng, 5, 3))
}

func TestWeightedChoiceFallbackOnZeroWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	keys := []string{"a", "b"}
	got := weightedChoice(rng, keys, map[string]int{}, "fallback")
	assert.Equal(t, "fallback", got)
}

func TestWeightedChoiceHonorsWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	keys := []string{"heavy", "never"}
	weights := map[string]int{"heavy": 10, "never": 0}
	for i := 0; i < 100; i++ {
		assert.Equal(t, "heavy", weightedChoice(rng, keys, weights, "never"))
	}
}

func TestPercentageAmountRounding(t *testing.T) {
	assert.Equal(t, int64(300), percentageAmount(2000, 15))
	assert.Equal(t, int64(345), percentageAmount(2297, 15))
	assert.Equal(t, int64(0), percentageAmount(0, 20))
	assert.Equal(t, int64(1), percentageAmount(10, 10))
}
