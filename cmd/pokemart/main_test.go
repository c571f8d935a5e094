package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cxsxrrrr/PokeMart/internal/cart"
	"github.com/cxsxrrrr/PokeMart/internal/catalog"
	"github.com/cxsxrrrr/PokeMart/internal/storage"
	"github.com/cxsxrrrr/PokeMart/pkg/models"
	"github.com/cxsxrrrr/PokeMart/pkg/utils"
)

func TestSourceFor(t *testing.T) {
	t.Parallel()

	cfg := utils.DefaultStoreConfig()
	src := sourceFor(cfg)
	require.Equal(t, "file", src.Name())
	require.Equal(t, cfg.CatalogFile, src.(*catalog.FileSource).Path)

	cfg.APIBaseURL = "http://localhost:8080/"
	src = sourceFor(cfg)
	require.Equal(t, "http", src.Name())
	require.Equal(t, "http://localhost:8080/data/cards.json", src.(*catalog.HTTPSource).URL)

	cfg = utils.DefaultStoreConfig()
	cfg.DataURL = "https://cdn.example.com/cards.json"
	require.Equal(t, "https://cdn.example.com/cards.json", sourceFor(cfg).(*catalog.HTTPSource).URL)
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	norm := catalog.NewNormalizer("", "")
	cards := norm.NormalizeAll([]models.CatalogCard{
		{ID: "sv1-1", Name: "Sprigatito, the cat", Rarity: "Common", Price: 1.5},
	})

	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, cards))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "id,name,set,rarity,price,image", lines[0])
	require.Equal(t, `sv1-1,"Sprigatito, the cat",`+catalog.LocalCollection+`,Common,1.50,/assets/cards/sv1-1.png`, lines[1])
}

func TestPrintCart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := cart.NewStore(storage.NewMemory(), nil, "")

	var buf bytes.Buffer
	printCart(&buf, store)
	require.Equal(t, cart.EmptyMessage+"\n", buf.String())

	card := catalog.NewNormalizer("", "").Normalize(models.CatalogCard{ID: "base1-4", Name: "Charizard", Price: 10})
	store.Add(ctx, card, 0)
	store.Add(ctx, card, 0)

	buf.Reset()
	printCart(&buf, store)
	require.Contains(t, buf.String(), "Charizard")
	require.Contains(t, buf.String(), "2 item(s), total 20,00\u00a0US$")
}
