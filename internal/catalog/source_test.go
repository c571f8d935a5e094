package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSourceFetchAll(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"id": "base1-4", "name": "Charizard"}, {"name": "Loose"}]}`))
	}))
	defer srv.Close()

	cards, err := NewHTTPSource(srv.URL + "/data/cards.json").FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 2)
	require.Equal(t, "base1-4", cards[0].ID)
}

func TestHTTPSourceIsBoundByContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	src := NewHTTPSource(srv.URL)
	require.Zero(t, src.Client.Timeout)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := src.FetchAll(ctx)
	require.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestHTTPSourceErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"server error", http.StatusInternalServerError, "boom", ErrCatalogUnavailable},
		{"not found", http.StatusNotFound, "", ErrCatalogUnavailable},
		{"bad json", http.StatusOK, "{not json", ErrMalformedCatalog},
		{"data missing", http.StatusOK, `{"cards": []}`, ErrMalformedCatalog},
		{"data not array", http.StatusOK, `{"data": {"id": "x"}}`, ErrMalformedCatalog},
		{"data null", http.StatusOK, `{"data": null}`, ErrMalformedCatalog},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewHTTPSource(srv.URL).FetchAll(context.Background())
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDecodePayloadEmptyArrayIsValid(t *testing.T) {
	t.Parallel()

	cards, err := DecodePayload([]byte(`{"data": []}`))
	require.NoError(t, err)
	require.NotNil(t, cards)
	require.Empty(t, cards)
}

func TestDecodePayloadToleratesMistypedRecords(t *testing.T) {
	t.Parallel()

	payload := `{"data": [
		{"id": "base1-4", "name": "Charizard", "set": {"name": "Base"}, "rarity": "Rare Holo"},
		{"id": "x", "name": "Odd Set", "set": "Base Set", "setName": "Jungle"},
		{"id": 7, "number": 4, "name": ["not", "a", "name"], "price": "3.5"},
		"stray string",
		{"id": "z", "images": {"small": 5}, "tcgplayer": {"prices": []}}
	]}`

	cards, err := DecodePayload([]byte(payload))
	require.NoError(t, err)
	require.Len(t, cards, 5)

	require.Equal(t, "Base", cards[0].Set.Name)

	require.Equal(t, "x", cards[1].ID)
	require.Nil(t, cards[1].Set)
	require.Equal(t, "Jungle", cards[1].SetName)

	require.Equal(t, "7", cards[2].ID)
	require.Equal(t, "4", cards[2].Number)
	require.Empty(t, cards[2].Name)
	require.Equal(t, "3.5", cards[2].Price)

	require.Empty(t, cards[3].ID)

	require.Equal(t, "z", cards[4].ID)
	require.Nil(t, cards[4].Images)
	require.Nil(t, cards[4].TCGPlayer)

	n := NewNormalizer("", "")
	for _, c := range cards {
		require.Positive(t, n.Normalize(c).Price)
	}
	require.Equal(t, "Jungle", n.Normalize(cards[1]).Set.Name)
}

func TestFileSource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"data": [{"id": "a"}]}`), 0o644))

	cards, err := NewFileSource(path).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 1)

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.json")).FetchAll(context.Background())
	require.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestResolveURL(t *testing.T) {
	t.Parallel()

	got, err := ResolveURL("http://localhost:8080", "/data/cards.json")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/data/cards.json", got)

	got, err = ResolveURL("http://localhost:8080/", "data/cards.json")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/data/cards.json", got)

	got, err = ResolveURL("http://localhost:8080", "https://cdn.example.com/cards.json")
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/cards.json", got)
}
