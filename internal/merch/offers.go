package merch

import (
	"github.com/cxsxrrrr/PokeMart/internal/catalog"
	"github.com/cxsxrrrr/PokeMart/pkg/models"
)

// dealDiscounts rotate across the deals row by position.
var dealDiscounts = []float64{0.15, 0.20, 0.25, 0.30}

// Offer is a card as shown in a merchandising row.
type Offer struct {
	Card         models.NormalizedCard
	BasePrice    float64
	DiscountRate float64
	Price        float64
}

// HasDiscount reports whether the offer shows a struck-through base price.
func (o Offer) HasDiscount() bool {
	return o.DiscountRate > 0 && o.BasePrice > 0
}

func DealDiscount(index int) float64 {
	if index < 0 {
		return 0
	}
	return dealDiscounts[index%len(dealDiscounts)]
}

func newOffer(card models.NormalizedCard, discount float64) Offer {
	base, _ := catalog.MarketPrice(card)
	price := base
	if base > 0 && discount > 0 {
		price = base * (1 - discount)
	}
	return Offer{Card: card, BasePrice: base, DiscountRate: discount, Price: price}
}

// PopularOffers prices the popular row at market price.
func PopularOffers(cards []models.NormalizedCard) []Offer {
	out := make([]Offer, 0, len(cards))
	for _, c := range cards {
		out = append(out, newOffer(c, 0))
	}
	return out
}

// DealOffers applies the rotating discount tiers to the deals row.
func DealOffers(cards []models.NormalizedCard) []Offer {
	out := make([]Offer, 0, len(cards))
	for i, c := range cards {
		out = append(out, newOffer(c, DealDiscount(i)))
	}
	return out
}
