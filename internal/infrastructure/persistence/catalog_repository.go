package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/competency/backend/internal/domain/competency"
)

// KVCatalogRepository loads the competency item catalog from a key-value
// store. The catalog is read-only at runtime; it is written once by
// SeedFromFile during startup.
type KVCatalogRepository struct {
	store KeyValueStore
	key   string
}

// NewKVCatalogRepository creates a catalog repository over a key-value store
func NewKVCatalogRepository(store KeyValueStore, key string) *KVCatalogRepository {
	return &KVCatalogRepository{
		store: store,
		key:   key,
	}
}

// SeedFromFile writes the catalog under the repository key from a JSON
// file. An existing catalog is replaced so that item definition changes
// take effect on restart; stored activities keep the points they were
// scored with.
func (r *KVCatalogRepository) SeedFromFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	// Parse and validate before writing anything
	items, err := parseCatalog(data)
	if err != nil {
		return err
	}
	if _, err := competency.NewCatalog(items); err != nil {
		return fmt.Errorf("invalid catalog file %s: %w", path, err)
	}

	if err := r.store.Set(ctx, r.key, string(data)); err != nil {
		return fmt.Errorf("failed to persist catalog: %w", err)
	}
	return nil
}

// Load reads and validates the stored catalog
func (r *KVCatalogRepository) Load(ctx context.Context) (*competency.Catalog, error) {
	data, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("catalog not found under key %s", r.key)
	}

	items, err := parseCatalog([]byte(data))
	if err != nil {
		return nil, err
	}
	catalog, err := competency.NewCatalog(items)
	if err != nil {
		return nil, fmt.Errorf("invalid stored catalog: %w", err)
	}
	return catalog, nil
}

func parseCatalog(data []byte) ([]competency.CompetencyItem, error) {
	var items []competency.CompetencyItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	return items, nil
}

// Ensure KVCatalogRepository implements the domain repository interface
var _ competency.CatalogRepository = (*KVCatalogRepository)(nil)
