package catalog

import (
	"github.com/cxsxrrrr/PokeMart/pkg/models"
	"github.com/cxsxrrrr/PokeMart/pkg/utils"
)

var raritySymbols = map[string]string{
	"Common":            "●",
	"Uncommon":          "◆",
	"Rare":              "★",
	"Rare Holo":         "★",
	"Rare Holo EX":      "★",
	"Rare Holo GX":      "★",
	"Rare Holo V":       "★",
	"Rare Secret":       "★",
	"Rare Ultra":        "★",
	"Black White Rare":  "★",
	"Illustration Rare": "◆",
}

// RaritySymbol returns the badge glyph for a rarity, "" when unknown.
func RaritySymbol(rarity string) string {
	return raritySymbols[rarity]
}

// MarketPrice resolves the best known quote: the card's own price, then the
// cardmarket average, then the first tcgplayer variant with a market or mid
// price.
func MarketPrice(c models.NormalizedCard) (float64, bool) {
	if c.Price > 0 {
		return c.Price, true
	}
	return rawMarketPrice(c.CatalogCard)
}

// DisplayPrice is the unit price a merchandising row shows for a card.
func DisplayPrice(c models.NormalizedCard) float64 {
	if p, ok := MarketPrice(c); ok {
		return p
	}
	return c.Price
}

func rawMarketPrice(c models.CatalogCard) (float64, bool) {
	if p, ok := positive(c.Price); ok {
		return p, true
	}
	if c.Cardmarket != nil {
		if p, ok := positive(c.Cardmarket.Prices.AverageSellPrice); ok {
			return p, true
		}
	}
	if c.TCGPlayer == nil {
		return 0, false
	}
	for _, grp := range c.TCGPlayer.Prices {
		if p, ok := positive(grp.Levels.Market); ok {
			return p, true
		}
		if p, ok := positive(grp.Levels.Mid); ok {
			return p, true
		}
	}
	return 0, false
}

func positive(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	p, ok := utils.ToNumber(v)
	if !ok || p <= 0 {
		return 0, false
	}
	return p, true
}
