package merch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cxsxrrrr/PokeMart/internal/catalog"
	"github.com/cxsxrrrr/PokeMart/pkg/models"
)

func TestDealDiscountRotates(t *testing.T) {
	t.Parallel()

	got := []float64{}
	for i := 0; i < 6; i++ {
		got = append(got, DealDiscount(i))
	}
	require.Equal(t, []float64{0.15, 0.20, 0.25, 0.30, 0.15, 0.20}, got)
	require.Zero(t, DealDiscount(-1))
}

func TestDealOffersApplyDiscount(t *testing.T) {
	t.Parallel()

	cards := catalog.NewNormalizer("", "").NormalizeAll([]models.CatalogCard{
		{ID: "a", Price: 10.0},
		{ID: "b", Price: 20.0},
	})

	offers := DealOffers(cards)
	require.Len(t, offers, 2)
	require.InDelta(t, 8.5, offers[0].Price, 1e-9)
	require.InDelta(t, 16.0, offers[1].Price, 1e-9)
	require.True(t, offers[0].HasDiscount())

	popular := PopularOffers(cards)
	require.InDelta(t, 10.0, popular[0].Price, 1e-9)
	require.False(t, popular[0].HasDiscount())
}
