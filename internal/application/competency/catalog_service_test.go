package competency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/competency/backend/internal/domain/competency"
	"github.com/competency/backend/internal/domain/shared"
)

func catalogWithThreeItems(t *testing.T) *competency.Catalog {
	t.Helper()
	baseUnit := decimal.NewFromInt(8)
	catalog, err := competency.NewCatalog([]competency.CompetencyItem{
		{
			ID:              1,
			Category:        2,
			Title:           "Professional practice",
			CalculationKind: competency.ByDuration,
			PointRate:       decimal.NewFromInt(2),
		},
		{
			ID:              2,
			Category:        4,
			Title:           "Published article",
			CalculationKind: competency.ByQuantity,
			PointRate:       decimal.NewFromInt(5),
		},
		{
			ID:              3,
			Category:        4,
			Title:           "Technical report",
			CalculationKind: competency.ByWorkload,
			PointRate:       decimal.NewFromInt(1),
			BaseUnit:        baseUnit,
		},
	})
	require.NoError(t, err)
	return catalog
}

func TestCatalogService_List(t *testing.T) {
	svc := NewCatalogService(catalogWithThreeItems(t))

	t.Run("returns every item without a filter", func(t *testing.T) {
		items := svc.List(0)
		require.Len(t, items, 3)
		assert.Equal(t, "Professional Experience", items[0].CategoryName)
		assert.Equal(t, "duration", items[0].CalculationKind)
	})

	t.Run("filters by category", func(t *testing.T) {
		items := svc.List(4)
		require.Len(t, items, 2)
		for _, item := range items {
			assert.Equal(t, 4, item.Category)
		}
	})

	t.Run("an empty category filter yields an empty list", func(t *testing.T) {
		assert.Empty(t, svc.List(6))
	})

	t.Run("base unit is exposed only for workload items", func(t *testing.T) {
		items := svc.List(4)
		byTitle := map[string]ItemResponse{}
		for _, item := range items {
			byTitle[item.Title] = item
		}
		assert.Nil(t, byTitle["Published article"].BaseUnit)
		require.NotNil(t, byTitle["Technical report"].BaseUnit)
		assert.Equal(t, "8", byTitle["Technical report"].BaseUnit.String())
	})
}

func TestCatalogService_GetByID(t *testing.T) {
	svc := NewCatalogService(catalogWithThreeItems(t))

	t.Run("returns the resolved item", func(t *testing.T) {
		item, err := svc.GetByID(2)
		require.NoError(t, err)
		assert.Equal(t, "Published article", item.Title)
		assert.Equal(t, "Scientific Production", item.CategoryName)
		assert.Equal(t, "5", item.PointRate.String())
	})

	t.Run("unknown ID yields a not-found error", func(t *testing.T) {
		_, err := svc.GetByID(99)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
