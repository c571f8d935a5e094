package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cxsxrrrr/PokeMart/internal/catalog"
	"github.com/cxsxrrrr/PokeMart/internal/storage"
	"github.com/cxsxrrrr/PokeMart/pkg/models"
)

func card(id, name string, price float64) models.NormalizedCard {
	return catalog.NewNormalizer("", "").Normalize(models.CatalogCard{ID: id, Name: name, Price: price})
}

func TestAddSameCardTwiceBumpsQuantity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore(storage.NewMemory(), nil, "")

	_, ok := s.Add(ctx, card("base1-4", "Charizard", 120), 0)
	require.True(t, ok)
	item, ok := s.Add(ctx, card("base1-4", "Charizard", 120), 99)
	require.True(t, ok)

	items := s.Items()
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].Quantity)
	// the repeat add keeps the first unit price
	require.Equal(t, 120.0, items[0].Price)
	require.Equal(t, 2, item.Quantity)
	require.Equal(t, 2, s.Count())
	require.Equal(t, 240.0, s.Total())
}

func TestAddDefaultsAndOverrides(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore(storage.NewMemory(), nil, "")

	item, ok := s.Add(ctx, card("sv1-1", "", 5), 4.25)
	require.True(t, ok)
	require.Equal(t, "sv1-1", item.ID)
	require.Equal(t, DefaultItemName, item.Name)
	require.Equal(t, catalog.LocalCollection, item.SetName)
	require.Equal(t, 4.25, item.Price)
	require.Equal(t, "/assets/cards/sv1-1.png", item.Image)

	// id falls back to the name
	item, ok = s.Add(ctx, card("", "Loose Card", 2), 0)
	require.True(t, ok)
	require.Equal(t, "Loose Card", item.ID)
	require.Equal(t, "/assets/back.png", item.Image)

	// no key at all
	_, ok = s.Add(ctx, models.NormalizedCard{}, 1)
	require.False(t, ok)
	require.Len(t, s.Items(), 2)
}

func TestSetQuantityRemovesAtZero(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore(storage.NewMemory(), nil, "")
	s.Add(ctx, card("a", "A", 1), 0)

	s.SetQuantity(ctx, "a", 2)
	require.Equal(t, 3, s.Items()[0].Quantity)

	s.SetQuantity(ctx, "a", -1)
	require.Equal(t, 2, s.Items()[0].Quantity)

	s.SetQuantity(ctx, "missing", 5)
	require.Len(t, s.Items(), 1)

	s.SetQuantity(ctx, "a", -2)
	require.Empty(t, s.Items())
}

func TestRemove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore(storage.NewMemory(), nil, "")
	s.Add(ctx, card("a", "A", 1), 0)
	s.Add(ctx, card("b", "B", 2), 0)

	s.Remove(ctx, "a")
	s.Remove(ctx, "a")
	require.Len(t, s.Items(), 1)
	require.Equal(t, "b", s.Items()[0].ID)
}

func TestEveryMutationPersists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := storage.NewMemory()
	s := NewStore(kv, nil, "")

	s.Add(ctx, card("a", "A", 3.5), 0)
	s.SetQuantity(ctx, "a", 1)

	reloaded := NewStore(kv, nil, "")
	reloaded.Load(ctx)
	require.Equal(t, s.Items(), reloaded.Items())

	s.Clear(ctx)
	raw, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)
	require.Equal(t, "[]", raw)
}

func TestLoadCorruptDataLogsAndEmpties(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, StorageKey, "{not json"))

	core, logs := observer.New(zap.WarnLevel)
	s := NewStore(kv, zap.New(core), "")
	s.Load(ctx)

	require.Empty(t, s.Items())
	require.Equal(t, 1, logs.Len())
}

func TestLoadMissingKeyIsQuiet(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	s := NewStore(storage.NewMemory(), zap.New(core), "")
	s.Load(context.Background())

	require.Empty(t, s.Items())
	require.Zero(t, logs.Len())
}

type failingKV struct{ storage.Memory }

func (*failingKV) Set(context.Context, string, string) error { return errors.New("disk full") }

func TestSaveFailureIsOnlyLogged(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	s := NewStore(&failingKV{}, zap.New(core), "")

	_, ok := s.Add(context.Background(), card("a", "A", 1), 0)
	require.True(t, ok)
	require.Len(t, s.Items(), 1)
	require.Equal(t, 1, logs.FilterMessage("cart save failed").Len())
}
