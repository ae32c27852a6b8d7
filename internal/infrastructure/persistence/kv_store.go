package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orderpad/backend/internal/domain/shared"
	"github.com/orderpad/backend/internal/infrastructure/persistence/models"
)

// GormKeyValueStore implements KeyValueStore on the kv_entries table
type GormKeyValueStore struct {
	db        *gorm.DB
	keyPrefix string
	closer    func() error
}

// NewGormKeyValueStore creates a store over an open connection. Close does
// not close db.
func NewGormKeyValueStore(db *gorm.DB, keyPrefix string) *GormKeyValueStore {
	return &GormKeyValueStore{db: db, keyPrefix: keyPrefix}
}

// NewDatabaseKeyValueStore creates a store that owns database and closes it on Close
func NewDatabaseKeyValueStore(database *Database, keyPrefix string) *GormKeyValueStore {
	s := NewGormKeyValueStore(database.DB, keyPrefix)
	s.closer = database.Close
	return s
}

// Get returns the stored value or shared.ErrKeyNotFound
func (s *GormKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	var m models.KVEntryModel
	err := s.db.WithContext(ctx).Where("key = ?", s.keyPrefix+key).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return m.Value, nil
}

// Put inserts or replaces the value for key
func (s *GormKeyValueStore) Put(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	m := models.KVEntryModel{
		Key:       s.keyPrefix + key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("failed to put key %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *GormKeyValueStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Where("key = ?", s.keyPrefix+key).Delete(&models.KVEntryModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Close closes the owned database, if any
func (s *GormKeyValueStore) Close() error {
	if s.closer != nil {
		return s.closer()
	}
	return nil
}

// Ensure GormKeyValueStore implements KeyValueStore
var _ shared.KeyValueStore = (*GormKeyValueStore)(nil)
