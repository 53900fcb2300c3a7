package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/competency/backend/internal/domain/competency"
)

// KVActivityRepository persists the whole activity collection as one JSON
// document under a single key. The collection is small enough that the
// simplicity of whole-document replacement beats row-level persistence.
type KVActivityRepository struct {
	store KeyValueStore
	key   string
}

// NewKVActivityRepository creates an activity repository over a key-value store
func NewKVActivityRepository(store KeyValueStore, key string) *KVActivityRepository {
	return &KVActivityRepository{
		store: store,
		key:   key,
	}
}

// Save replaces the stored collection with the given one
func (r *KVActivityRepository) Save(ctx context.Context, activities []competency.Activity) error {
	data, err := json.Marshal(activities)
	if err != nil {
		return fmt.Errorf("failed to marshal activities: %w", err)
	}
	if err := r.store.Set(ctx, r.key, string(data)); err != nil {
		return fmt.Errorf("failed to persist activities: %w", err)
	}
	return nil
}

// Load returns the stored collection, or an empty one when nothing has
// been persisted yet
func (r *KVActivityRepository) Load(ctx context.Context) ([]competency.Activity, error) {
	data, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}
	if !ok {
		return []competency.Activity{}, nil
	}

	var activities []competency.Activity
	if err := json.Unmarshal([]byte(data), &activities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal activities: %w", err)
	}
	return activities, nil
}

// Ensure KVActivityRepository implements the domain repository interface
var _ competency.ActivityRepository = (*KVActivityRepository)(nil)
