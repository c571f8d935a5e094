// Package catalog loads the card catalog and turns raw entries into
// normalized cards with a guaranteed price, set name and image list.
package catalog

import (
	"unicode/utf16"

	"github.com/cxsxrrrr/PokeMart/pkg/models"
	"github.com/cxsxrrrr/PokeMart/pkg/utils"
)

const (
	DefaultImageRoot   = "/assets/cards/"
	DefaultPlaceholder = "/assets/back.png"

	// LocalCollection names cards whose set is unknown.
	LocalCollection = "Colección local"

	defaultRarity    = "Rare"
	unknownBasePrice = 12.0
	offsetSeed       = 7
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

var rarityBasePrices = map[string]float64{
	"Common":                    1.5,
	"Uncommon":                  3,
	"Rare":                      8,
	"Illustration Rare":         18,
	"Ultra Rare":                24,
	"Special Illustration Rare": 36,
	"Black White Rare":          42,
}

// Normalizer resolves image URLs against a root and a placeholder.
type Normalizer struct {
	ImageRoot   string
	Placeholder string
}

func NewNormalizer(imageRoot, placeholder string) Normalizer {
	if imageRoot == "" {
		imageRoot = DefaultImageRoot
	}
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return Normalizer{ImageRoot: imageRoot, Placeholder: placeholder}
}

// Normalize never fails: every missing field gets a fallback.
func (n Normalizer) Normalize(c models.CatalogCard) models.NormalizedCard {
	setName := LocalCollection
	switch {
	case c.Set != nil && c.Set.Name != "":
		setName = c.Set.Name
	case c.SetName != "":
		setName = c.SetName
	}

	set := models.CardSet{Name: setName}
	if c.Set != nil && c.Set.Name != "" {
		set = *c.Set
	}

	price, ok := directPrice(c)
	if !ok {
		key := c.ID
		if key == "" {
			key = c.Name
		}
		price = EstimatePrice(c.Rarity, key)
	}

	return models.NormalizedCard{
		CatalogCard:     c,
		Set:             set,
		Price:           price,
		ImageCandidates: n.ImageCandidates(c.ID),
	}
}

func (n Normalizer) NormalizeAll(cards []models.CatalogCard) []models.NormalizedCard {
	out := make([]models.NormalizedCard, 0, len(cards))
	for _, c := range cards {
		out = append(out, n.Normalize(c))
	}
	return out
}

// ImageCandidates lists the URLs to try for a card id, most likely first.
func (n Normalizer) ImageCandidates(id string) []string {
	if id == "" {
		return []string{n.Placeholder}
	}
	base := n.ImageRoot + id
	candidates := make([]string, 0, len(imageExtensions)+1)
	for _, ext := range imageExtensions {
		candidates = append(candidates, base+ext)
	}
	candidates = append(candidates, n.Placeholder)
	return utils.Unique(candidates)
}

// directPrice takes the first present price field and accepts it only when
// it is a positive number.
func directPrice(c models.CatalogCard) (float64, bool) {
	var raw any
	for _, v := range []any{c.Price, c.PriceEUR, c.PriceUSD} {
		if v != nil {
			raw = v
			break
		}
	}
	if raw == nil {
		return 0, false
	}
	p, ok := utils.ToNumber(raw)
	if !ok || p <= 0 {
		return 0, false
	}
	return p, true
}

// BasePrice is the rarity baseline; a missing rarity counts as Rare.
func BasePrice(rarity string) float64 {
	if rarity == "" {
		rarity = defaultRarity
	}
	if p, ok := rarityBasePrices[rarity]; ok {
		return p
	}
	return unknownBasePrice
}

// EstimatePrice is the fallback price for cards without a usable quote.
func EstimatePrice(rarity, key string) float64 {
	return utils.Round2(BasePrice(rarity) + DeterministicOffset(key))
}

// DeterministicOffset hashes s into [0, 9.99] so estimated prices differ per
// card but never change between runs.
func DeterministicOffset(s string) float64 {
	if s == "" {
		return 0
	}
	hash := offsetSeed
	for _, unit := range utf16.Encode([]rune(s)) {
		hash = (hash*31 + int(unit)) % 1000
	}
	return float64(hash) / 100
}
