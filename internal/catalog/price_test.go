package catalog

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cxsxrrrr/PokeMart/pkg/models"
)

func decodeCard(t *testing.T, raw string) models.CatalogCard {
	t.Helper()
	var c models.CatalogCard
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	return c
}

func TestRawMarketPriceOrder(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want float64
		ok   bool
	}{
		{"direct", `{"price": 5, "cardmarket": {"prices": {"averageSellPrice": 9}}}`, 5, true},
		{"cardmarket", `{"cardmarket": {"prices": {"averageSellPrice": "9.5"}}}`, 9.5, true},
		{
			"tcgplayer keeps json order",
			`{"tcgplayer": {"prices": {"reverseHolofoil": {"mid": 4}, "normal": {"market": 1.25}}}}`,
			4, true,
		},
		{
			"market before mid within a group",
			`{"tcgplayer": {"prices": {"holofoil": {"mid": 4, "market": 3}}}}`,
			3, true,
		},
		{
			"skips empty groups",
			`{"tcgplayer": {"prices": {"normal": {"low": 1}, "holofoil": {"market": 2}}}}`,
			2, true,
		},
		{"nothing", `{"name": "x"}`, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := rawMarketPrice(decodeCard(t, tc.raw))
			require.Equal(t, tc.ok, ok)
			require.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestMarketPricePrefersNormalizedPrice(t *testing.T) {
	t.Parallel()

	card := NewNormalizer("", "").Normalize(decodeCard(t, `{"id": "A", "cardmarket": {"prices": {"averageSellPrice": 99}}}`))
	got, ok := MarketPrice(card)
	require.True(t, ok)
	require.InDelta(t, 10.82, got, 1e-9)
}

func TestDisplayPrice(t *testing.T) {
	t.Parallel()

	card := NewNormalizer("", "").Normalize(decodeCard(t, `{"id": "sv1-1", "price": "4.25"}`))
	require.InDelta(t, 4.25, DisplayPrice(card), 1e-9)

	// a hand-built card without a normalized price falls back to its quotes
	raw := models.NormalizedCard{CatalogCard: decodeCard(t, `{"id": "x", "tcgplayer": {"prices": {"holofoil": {"mid": 7}}}}`)}
	require.InDelta(t, 7, DisplayPrice(raw), 1e-9)
}

func TestPriceGroupsRoundTripKeepsOrder(t *testing.T) {
	t.Parallel()

	card := decodeCard(t, `{"tcgplayer": {"prices": {"zeta": {"mid": 1}, "alpha": {"mid": 2}}}}`)
	require.Equal(t, "zeta", card.TCGPlayer.Prices[0].Name)
	require.Equal(t, "alpha", card.TCGPlayer.Prices[1].Name)

	b, err := json.Marshal(card.TCGPlayer)
	require.NoError(t, err)
	require.JSONEq(t, `{"prices": {"zeta": {"mid": 1}, "alpha": {"mid": 2}}}`, string(b))
	require.Less(t, strings.Index(string(b), "zeta"), strings.Index(string(b), "alpha"))
}

func TestRaritySymbol(t *testing.T) {
	t.Parallel()

	require.Equal(t, "●", RaritySymbol("Common"))
	require.Equal(t, "◆", RaritySymbol("Illustration Rare"))
	require.Equal(t, "★", RaritySymbol("Rare Holo EX"))
	require.Empty(t, RaritySymbol("Ultra Rare"))
}
