package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/orderpad/backend/internal/domain/catalog"
	"github.com/orderpad/backend/internal/domain/shared"
)

// Keys under which setup edits are stored
const (
	RecommendationsKey = "customRecommendations"
	ItemsKey           = "customItems"
)

// KVOverrideRepository implements catalog.OverrideRepository as JSON documents
// in a KeyValueStore
type KVOverrideRepository struct {
	store  shared.KeyValueStore
	logger *zap.Logger
}

// NewKVOverrideRepository creates a new repository
func NewKVOverrideRepository(store shared.KeyValueStore, logger *zap.Logger) *KVOverrideRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KVOverrideRepository{store: store, logger: logger}
}

// Recommendations returns the saved overrides. A missing or unreadable
// document gives an empty set.
func (r *KVOverrideRepository) Recommendations(ctx context.Context) (catalog.RecommendationOverrides, error) {
	out := catalog.RecommendationOverrides{}
	ok, err := r.load(ctx, RecommendationsKey, &out)
	if err != nil {
		return nil, err
	}
	if !ok || out == nil {
		return catalog.RecommendationOverrides{}, nil
	}
	return out, nil
}

// SaveRecommendations replaces the saved overrides
func (r *KVOverrideRepository) SaveRecommendations(ctx context.Context, overrides catalog.RecommendationOverrides) error {
	return r.save(ctx, RecommendationsKey, overrides.Clone())
}

// Items returns the saved item list, if any
func (r *KVOverrideRepository) Items(ctx context.Context) (catalog.Catalog, bool, error) {
	var items catalog.Catalog
	ok, err := r.load(ctx, ItemsKey, &items)
	if err != nil || !ok {
		return nil, false, err
	}
	if items == nil {
		items = catalog.Catalog{}
	}
	return items, true, nil
}

// SaveItems replaces the saved item list
func (r *KVOverrideRepository) SaveItems(ctx context.Context, items catalog.Catalog) error {
	if items == nil {
		items = catalog.Catalog{}
	}
	return r.save(ctx, ItemsKey, items)
}

// Clear removes both documents
func (r *KVOverrideRepository) Clear(ctx context.Context) error {
	for _, key := range []string{RecommendationsKey, ItemsKey} {
		if err := r.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}
	return nil
}

func (r *KVOverrideRepository) load(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.store.Get(ctx, key)
	if errors.Is(err, shared.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.Warn("Ignoring unreadable stored document",
			zap.String("key", key),
			zap.Int("bytes", len(data)),
			zap.Error(err),
		)
		return false, nil
	}
	return true, nil
}

func (r *KVOverrideRepository) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Ensure KVOverrideRepository implements OverrideRepository
var _ catalog.OverrideRepository = (*KVOverrideRepository)(nil)
