package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/competency/backend/internal/domain/competency"
)

// failingStore simulates a store whose writes fail
type failingStore struct {
	*MemoryStore
	failSet bool
	failGet bool
}

func (s *failingStore) Set(ctx context.Context, key, value string) error {
	if s.failSet {
		return errors.New("store unavailable")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.failGet {
		return "", false, errors.New("store unavailable")
	}
	return s.MemoryStore.Get(ctx, key)
}

func TestKVActivityRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("load before any save returns empty collection", func(t *testing.T) {
		repo := NewKVActivityRepository(NewMemoryStore(), "competency:activities")

		activities, err := repo.Load(ctx)

		require.NoError(t, err)
		assert.Empty(t, activities)
	})

	t.Run("save then load round-trips the collection", func(t *testing.T) {
		repo := NewKVActivityRepository(NewMemoryStore(), "competency:activities")

		start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
		activity := competency.NewActivity(3, competency.ActivityInput{
			PeriodStart:   &start,
			PeriodEnd:     &end,
			Description:   "Department coordination",
			DocumentCount: 2,
		}, decimal.RequireFromString("6"))
		require.NoError(t, activity.UpdateStatus(competency.StatusApproved, "verified"))

		require.NoError(t, repo.Save(ctx, []competency.Activity{*activity}))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)

		got := loaded[0]
		assert.Equal(t, activity.ID, got.ID)
		assert.Equal(t, 3, got.ItemID)
		assert.True(t, start.Equal(*got.PeriodStart))
		assert.True(t, end.Equal(*got.PeriodEnd))
		assert.Equal(t, "Department coordination", got.Description)
		assert.Equal(t, 2, got.DocumentCount)
		assert.True(t, got.Points.Equal(decimal.RequireFromString("6")))
		assert.Equal(t, competency.StatusApproved, got.Status)
		assert.Equal(t, "verified", got.ReviewComment)
	})

	t.Run("save replaces the stored collection", func(t *testing.T) {
		repo := NewKVActivityRepository(NewMemoryStore(), "competency:activities")

		first := competency.NewActivity(1, competency.ActivityInput{
			Quantity:      decimal.NewFromInt(2),
			Description:   "First",
			DocumentCount: 1,
		}, decimal.NewFromInt(4))
		second := competency.NewActivity(2, competency.ActivityInput{
			Quantity:      decimal.NewFromInt(1),
			Description:   "Second",
			DocumentCount: 1,
		}, decimal.NewFromInt(3))

		require.NoError(t, repo.Save(ctx, []competency.Activity{*first, *second}))
		require.NoError(t, repo.Save(ctx, []competency.Activity{*second}))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, second.ID, loaded[0].ID)
	})

	t.Run("save propagates store failures", func(t *testing.T) {
		store := &failingStore{MemoryStore: NewMemoryStore(), failSet: true}
		repo := NewKVActivityRepository(store, "competency:activities")

		err := repo.Save(ctx, []competency.Activity{})

		assert.Error(t, err)
	})

	t.Run("load propagates store failures", func(t *testing.T) {
		store := &failingStore{MemoryStore: NewMemoryStore(), failGet: true}
		repo := NewKVActivityRepository(store, "competency:activities")

		_, err := repo.Load(ctx)

		assert.Error(t, err)
	})

	t.Run("load rejects corrupted payloads", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Set(ctx, "competency:activities", "{not json"))
		repo := NewKVActivityRepository(store, "competency:activities")

		_, err := repo.Load(ctx)

		assert.Error(t, err)
	})
}
