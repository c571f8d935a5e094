package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/cxsxrrrr/PokeMart/pkg/models"
	"github.com/cxsxrrrr/PokeMart/pkg/utils"
)

// ErrCorrupt means the stored value is not a JSON array.
var ErrCorrupt = errors.New("stored cart is not a JSON array")

// Serialize encodes items in order; an empty cart is "[]".
func Serialize(items []models.CartItem) (string, error) {
	if items == nil {
		items = []models.CartItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(b), nil
}

// Deserialize decodes a stored cart, dropping entries without a string id
// and coercing quantity to an integer >= 1 and price to a number >= 0.
func Deserialize(raw string) ([]models.CartItem, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if entries == nil {
		return nil, ErrCorrupt
	}

	out := make([]models.CartItem, 0, len(entries))
	for _, e := range entries {
		var fields map[string]any
		if err := json.Unmarshal(e, &fields); err != nil || fields == nil {
			continue
		}
		id, ok := fields["id"].(string)
		if !ok || id == "" {
			continue
		}
		out = append(out, models.CartItem{
			ID:       id,
			Name:     str(fields["name"]),
			SetName:  str(fields["setName"]),
			Image:    str(fields["image"]),
			Price:    sanitizePrice(fields["price"]),
			Quantity: sanitizeQuantity(fields["quantity"]),
		})
	}
	return out, nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// MaxQuantity caps a stored quantity so the int conversion cannot wrap.
const MaxQuantity = math.MaxInt32

func sanitizeQuantity(v any) int {
	n, ok := utils.ToNumber(v)
	if !ok || n < 1 {
		return 1
	}
	if n > MaxQuantity {
		return MaxQuantity
	}
	return int(math.Floor(n))
}

func sanitizePrice(v any) float64 {
	n, ok := utils.ToNumber(v)
	if !ok || n < 0 {
		return 0
	}
	return n
}
