package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/competency/backend/internal/domain/competency"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestKVCatalogRepository(t *testing.T) {
	ctx := context.Background()

	validCatalog := `[
		{"id": 1, "category": 1, "title": "Committee membership", "calculation_kind": "duration", "point_rate": 2},
		{"id": 2, "category": 6, "title": "Guest lecture", "calculation_kind": "workload", "point_rate": 1, "base_unit": 8, "max_points": 20}
	]`

	t.Run("seed then load returns the catalog", func(t *testing.T) {
		store := NewMemoryStore()
		repo := NewKVCatalogRepository(store, "competency:catalog")

		path := writeCatalogFile(t, validCatalog)
		require.NoError(t, repo.SeedFromFile(ctx, path))

		catalog, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, catalog.Len())

		item := catalog.FindByID(2)
		require.NotNil(t, item)
		assert.Equal(t, "Guest lecture", item.Title)
		assert.Equal(t, competency.ByWorkload, item.CalculationKind)
		assert.Equal(t, "8", item.BaseUnit.String())
		require.NotNil(t, item.MaxPoints)
		assert.Equal(t, "20", item.MaxPoints.String())
	})

	t.Run("seeding replaces a previously stored catalog", func(t *testing.T) {
		store := NewMemoryStore()
		repo := NewKVCatalogRepository(store, "competency:catalog")

		require.NoError(t, repo.SeedFromFile(ctx, writeCatalogFile(t, validCatalog)))
		require.NoError(t, repo.SeedFromFile(ctx, writeCatalogFile(t, `[
			{"id": 7, "category": 3, "title": "Certification course", "calculation_kind": "quantity", "point_rate": 5}
		]`)))

		catalog, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, catalog.Len())
		assert.Nil(t, catalog.FindByID(1))
		assert.NotNil(t, catalog.FindByID(7))
	})

	t.Run("seed rejects missing file", func(t *testing.T) {
		repo := NewKVCatalogRepository(NewMemoryStore(), "competency:catalog")

		err := repo.SeedFromFile(ctx, filepath.Join(t.TempDir(), "nope.json"))

		assert.Error(t, err)
	})

	t.Run("seed rejects malformed JSON without writing", func(t *testing.T) {
		store := NewMemoryStore()
		repo := NewKVCatalogRepository(store, "competency:catalog")

		err := repo.SeedFromFile(ctx, writeCatalogFile(t, "{not json"))

		assert.Error(t, err)
		_, ok, getErr := store.Get(ctx, "competency:catalog")
		assert.NoError(t, getErr)
		assert.False(t, ok)
	})

	t.Run("seed rejects invalid item definitions", func(t *testing.T) {
		repo := NewKVCatalogRepository(NewMemoryStore(), "competency:catalog")

		err := repo.SeedFromFile(ctx, writeCatalogFile(t, `[
			{"id": 1, "category": 9, "title": "Out of range", "calculation_kind": "quantity", "point_rate": 1}
		]`))

		assert.Error(t, err)
	})

	t.Run("load fails when nothing was seeded", func(t *testing.T) {
		repo := NewKVCatalogRepository(NewMemoryStore(), "competency:catalog")

		_, err := repo.Load(ctx)

		assert.Error(t, err)
	})
}
