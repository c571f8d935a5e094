package merch

import (
	"math/rand/v2"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cxsxrrrr/PokeMart/internal/catalog"
	"github.com/cxsxrrrr/PokeMart/pkg/models"
)

func cardsN(n int) []models.NormalizedCard {
	raw := make([]models.CatalogCard, 0, n)
	for i := 0; i < n; i++ {
		raw = append(raw, models.CatalogCard{ID: "c" + strconv.Itoa(i), Name: "Card " + strconv.Itoa(i)})
	}
	return catalog.NewNormalizer("", "").NormalizeAll(raw)
}

func ids(cards []models.NormalizedCard) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func TestShuffleLeavesInputAlone(t *testing.T) {
	t.Parallel()

	in := []int{1, 2, 3, 4, 5, 6}
	out := Shuffle(in, rand.New(rand.NewPCG(1, 2)))

	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, in)
	sorted := append([]int(nil), out...)
	sort.Ints(sorted)
	require.Equal(t, in, sorted)
}

func TestShuffleEdgeSizes(t *testing.T) {
	t.Parallel()

	require.Empty(t, Shuffle([]string{}, nil))
	require.Equal(t, []string{"solo"}, Shuffle([]string{"solo"}, nil))
}

func TestPickSubsetEmptyInput(t *testing.T) {
	t.Parallel()

	got := PickSubset(nil, 5, nil, nil)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestPickSubsetFallsBackWhenEverythingExcluded(t *testing.T) {
	t.Parallel()

	cards := cardsN(3)
	exclude := map[string]struct{}{"c0": {}, "c1": {}, "c2": {}}

	got := PickSubset(cards, 2, exclude, nil)
	require.Len(t, got, 2)
	for _, id := range ids(got) {
		require.Contains(t, []string{"c0", "c1", "c2"}, id)
	}
}

func TestPickSubsetNonPositiveCount(t *testing.T) {
	t.Parallel()

	require.Empty(t, PickSubset(cardsN(4), 0, nil, nil))
	require.Empty(t, PickSubset(cardsN(4), -3, nil, nil))
}

func TestSelectKeepsDealsDisjointWhenPossible(t *testing.T) {
	t.Parallel()

	sel := Select(cardsN(20), 8, 4, rand.New(rand.NewPCG(7, 7)))
	require.Len(t, sel.Popular, 8)
	require.Len(t, sel.Deals, 4)
	for _, id := range ids(sel.Deals) {
		require.NotContains(t, ids(sel.Popular), id)
	}
}

func TestSelectSmallCatalogOverlaps(t *testing.T) {
	t.Parallel()

	sel := Select(cardsN(3), 8, 4, nil)
	require.Len(t, sel.Popular, 3)
	// every card is popular, so deals fall back to the whole catalog
	require.Len(t, sel.Deals, 3)
}
