package competency

import "context"

// ActivityRepository persists the activity collection as a whole.
// Every mutation writes the entire ordered collection durably before the
// store operation is considered complete; there is no partial or
// append-only persistence.
type ActivityRepository interface {
	// Save durably replaces the stored collection
	Save(ctx context.Context, activities []Activity) error
	// Load restores the stored collection in insertion order.
	// An empty store yields an empty slice, not an error.
	Load(ctx context.Context) ([]Activity, error)
}

// CatalogRepository loads the static, read-only catalog definitions
type CatalogRepository interface {
	Load(ctx context.Context) (*Catalog, error)
}
