package catalog

import "context"

// Source provides the base catalog the service starts from
type Source interface {
	// Load parses and returns the base catalog
	Load(ctx context.Context) (Catalog, error)

	// FileName is the original file name, reused when the catalog is re-exported
	FileName() string
}

// OverrideRepository persists operator edits made through the setup surface.
// Unreadable stored documents are reported as empty, not as errors.
type OverrideRepository interface {
	// Recommendations returns the saved recommendation overrides (never nil)
	Recommendations(ctx context.Context) (RecommendationOverrides, error)

	// SaveRecommendations replaces the saved recommendation overrides
	SaveRecommendations(ctx context.Context, overrides RecommendationOverrides) error

	// Items returns the saved replacement item list; ok is false when none is saved
	Items(ctx context.Context) (items Catalog, ok bool, err error)

	// SaveItems replaces the saved item list
	SaveItems(ctx context.Context, items Catalog) error

	// Clear removes every saved override
	Clear(ctx context.Context) error
}
