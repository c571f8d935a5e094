package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CatalogCard is a raw card entry as it appears in the catalog payload.
// Every field is optional; price fields may hold numbers or numeric strings.
type CatalogCard struct {
	ID        string      `json:"id,omitempty"`
	Name      string      `json:"name,omitempty"`
	Supertype string      `json:"supertype,omitempty"`
	Number    string      `json:"number,omitempty"`
	Rarity    string      `json:"rarity,omitempty"`
	Set       *CardSet    `json:"set,omitempty"`
	SetName   string      `json:"setName,omitempty"`
	Price     any         `json:"price,omitempty"`
	PriceEUR  any         `json:"priceEUR,omitempty"`
	PriceUSD  any         `json:"priceUsd,omitempty"`
	Images    *CardImages `json:"images,omitempty"`

	Cardmarket *Cardmarket `json:"cardmarket,omitempty"`
	TCGPlayer  *TCGPlayer  `json:"tcgplayer,omitempty"`
}

type CardSet struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Series string `json:"series,omitempty"`
}

type CardImages struct {
	Small string `json:"small,omitempty"`
	Large string `json:"large,omitempty"`
}

type Cardmarket struct {
	Prices struct {
		AverageSellPrice any `json:"averageSellPrice,omitempty"`
	} `json:"prices"`
}

type TCGPlayer struct {
	Prices PriceGroups `json:"prices,omitempty"`
}

// PriceLevels are the quotes of one tcgplayer variant (normal, holofoil...).
type PriceLevels struct {
	Low    any `json:"low,omitempty"`
	Mid    any `json:"mid,omitempty"`
	High   any `json:"high,omitempty"`
	Market any `json:"market,omitempty"`
}

type PriceGroup struct {
	Name   string
	Levels PriceLevels
}

// PriceGroups keeps tcgplayer variants in the order they appear in the JSON
// object, since market price resolution takes the first usable one.
type PriceGroups []PriceGroup

func (g *PriceGroups) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*g = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("price groups: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("price groups: expected object")
	}

	out := PriceGroups{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("price groups: %w", err)
		}
		name, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("price group %q: %w", name, err)
		}
		var levels PriceLevels
		// non-object variants carry no prices; keep the slot so order holds
		_ = json.Unmarshal(raw, &levels)
		out = append(out, PriceGroup{Name: name, Levels: levels})
	}
	*g = out
	return nil
}

func (g PriceGroups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, grp := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(grp.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(grp.Levels)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CatalogPayload is the envelope served at the data endpoint.
type CatalogPayload struct {
	Data []CatalogCard `json:"data"`
}

// NormalizedCard is a catalog card with a resolved set name, a positive
// price and an ordered list of image URLs to try.
type NormalizedCard struct {
	CatalogCard
	Set             CardSet  `json:"set"`
	Price           float64  `json:"price"`
	ImageCandidates []string `json:"imageCandidates"`
}

// PrimaryImage is the first candidate, or "" when there is none.
func (c NormalizedCard) PrimaryImage() string {
	if len(c.ImageCandidates) == 0 {
		return ""
	}
	return c.ImageCandidates[0]
}
