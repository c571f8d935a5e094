package catalog

import (
	"encoding/json"
	"strings"

	"github.com/cxsxrrrr/PokeMart/pkg/models"
)

// decodeRecord never fails. A well-typed record decodes directly; anything
// else is read field by field and mistyped fields are left empty. Records
// that are not objects become an empty card.
func decodeRecord(raw json.RawMessage) models.CatalogCard {
	var c models.CatalogCard
	if err := json.Unmarshal(raw, &c); err == nil {
		return c
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return models.CatalogCard{}
	}

	c = models.CatalogCard{
		ID:        looseString(fields["id"]),
		Name:      looseString(fields["name"]),
		Supertype: looseString(fields["supertype"]),
		Number:    looseString(fields["number"]),
		Rarity:    looseString(fields["rarity"]),
		SetName:   looseString(fields["setName"]),
		Price:     looseAny(fields["price"]),
		PriceEUR:  looseAny(fields["priceEUR"]),
		PriceUSD:  looseAny(fields["priceUsd"]),
	}
	if set, ok := looseSet(fields["set"]); ok {
		c.Set = set
	}
	var images models.CardImages
	if json.Unmarshal(fields["images"], &images) == nil && images != (models.CardImages{}) {
		c.Images = &images
	}
	var cm models.Cardmarket
	if json.Unmarshal(fields["cardmarket"], &cm) == nil {
		c.Cardmarket = &cm
	}
	var tcg models.TCGPlayer
	if json.Unmarshal(fields["tcgplayer"], &tcg) == nil {
		c.TCGPlayer = &tcg
	}
	return c
}

// looseString keeps strings and the literal text of numbers; anything else
// reads as "".
func looseString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}

func looseAny(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if json.Unmarshal(raw, &v) != nil {
		return nil
	}
	return v
}

// looseSet accepts only an object; a bare string such as "Base Set" is not
// a set and the setName fallback applies instead.
func looseSet(raw json.RawMessage) (*models.CardSet, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if json.Unmarshal(raw, &fields) != nil {
		return nil, false
	}
	return &models.CardSet{
		ID:     looseString(fields["id"]),
		Name:   looseString(fields["name"]),
		Series: looseString(fields["series"]),
	}, true
}
