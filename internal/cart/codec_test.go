package cart

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cxsxrrrr/PokeMart/pkg/models"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	items := []models.CartItem{{ID: "A", Quantity: 2, Price: 3.5}}
	raw, err := Serialize(items)
	require.NoError(t, err)

	got, err := Deserialize(raw)
	require.NoError(t, err)
	require.Equal(t, items, got)
}

func TestSerializeEmpty(t *testing.T) {
	t.Parallel()

	raw, err := Serialize(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", raw)
}

func TestDeserializeSanitizes(t *testing.T) {
	t.Parallel()

	raw := `[
		{"id": "ok", "name": "Pikachu", "setName": "Base", "image": "/a.png", "price": "2.50", "quantity": "3"},
		{"name": "no id"},
		{"id": 42, "quantity": 1},
		{"id": "", "quantity": 1},
		null,
		"string entry",
		{"id": "zero-qty", "quantity": 0, "price": -4},
		{"id": "frac", "quantity": 2.7, "price": "abc"},
		{"id": "bad-types", "name": 7, "quantity": "lots"},
		{"id": "huge", "quantity": 1e300, "price": 2}
	]`

	got, err := Deserialize(raw)
	require.NoError(t, err)
	require.Equal(t, []models.CartItem{
		{ID: "ok", Name: "Pikachu", SetName: "Base", Image: "/a.png", Price: 2.5, Quantity: 3},
		{ID: "zero-qty", Quantity: 1, Price: 0},
		{ID: "frac", Quantity: 2, Price: 0},
		{ID: "bad-types", Quantity: 1},
		{ID: "huge", Quantity: MaxQuantity, Price: 2},
	}, got)

	for _, it := range got {
		require.GreaterOrEqual(t, it.Quantity, 1, it.ID)
	}
}

func TestDeserializeRejectsNonArrays(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{`{"id": "a"}`, `null`, `42`, `nope`} {
		_, err := Deserialize(raw)
		require.ErrorIs(t, err, ErrCorrupt, raw)
	}
}
