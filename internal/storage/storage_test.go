package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cxsxrrrr/PokeMart/pkg/database"
)

func newSQLite(t *testing.T) *SQLite {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "data.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	return NewSQLite(db)
}

func TestKVImplementations(t *testing.T) {
	impls := map[string]func(t *testing.T) KV{
		"memory": func(*testing.T) KV { return NewMemory() },
		"sqlite": func(t *testing.T) KV { return newSQLite(t) },
	}

	for name, mk := range impls {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			kv := mk(t)

			_, err := kv.Get(ctx, "missing")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Set(ctx, "pokemart-theme", "dark"))
			v, err := kv.Get(ctx, "pokemart-theme")
			require.NoError(t, err)
			require.Equal(t, "dark", v)

			require.NoError(t, kv.Set(ctx, "pokemart-theme", "light"))
			v, err = kv.Get(ctx, "pokemart-theme")
			require.NoError(t, err)
			require.Equal(t, "light", v)

			require.NoError(t, kv.Delete(ctx, "pokemart-theme"))
			require.NoError(t, kv.Delete(ctx, "pokemart-theme"))
			_, err = kv.Get(ctx, "pokemart-theme")
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}
