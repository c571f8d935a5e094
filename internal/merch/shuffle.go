// Package merch builds the "popular" and "deals" rows from the catalog.
package merch

import (
	"math/rand/v2"

	"github.com/cxsxrrrr/PokeMart/pkg/models"
)

const (
	DefaultPopularCount = 8
	DefaultDealsCount   = 4
)

// Rand is the source of randomness; *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand draws from the runtime's global generator.
var DefaultRand Rand = globalRand{}

// Shuffle returns a uniformly shuffled copy of items (Fisher–Yates, walking
// down from the last index). The input is left untouched.
func Shuffle[T any](items []T, rng Rand) []T {
	if rng == nil {
		rng = DefaultRand
	}
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// PickSubset draws up to count random cards whose ids are not in exclude.
// When exclusion would leave nothing, the full list is used instead.
func PickSubset(cards []models.NormalizedCard, count int, exclude map[string]struct{}, rng Rand) []models.NormalizedCard {
	if len(cards) == 0 || count <= 0 {
		return []models.NormalizedCard{}
	}

	pool := make([]models.NormalizedCard, 0, len(cards))
	for _, c := range cards {
		if _, skip := exclude[c.ID]; !skip {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		pool = cards
	}

	shuffled := Shuffle(pool, rng)
	return shuffled[:min(count, len(shuffled))]
}

// Selection is one merchandising pass over a filtered catalog.
type Selection struct {
	Popular []models.NormalizedCard
	Deals   []models.NormalizedCard
}

// Select picks the popular row first and keeps those cards out of the deals
// row whenever the catalog is big enough.
func Select(cards []models.NormalizedCard, popularCount, dealsCount int, rng Rand) Selection {
	popular := PickSubset(cards, popularCount, nil, rng)

	exclude := make(map[string]struct{}, len(popular))
	for _, c := range popular {
		exclude[c.ID] = struct{}{}
	}

	return Selection{
		Popular: popular,
		Deals:   PickSubset(cards, dealsCount, exclude, rng),
	}
}
