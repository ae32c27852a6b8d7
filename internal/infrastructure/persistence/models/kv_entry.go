package models

import "time"

// KVEntryModel is one row of the kv_entries table backing the sql store driver
type KVEntryModel struct {
	Key       string    `gorm:"column:key;type:varchar(255);primaryKey"`
	Value     []byte    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName returns the table name for GORM
func (KVEntryModel) TableName() string {
	return "kv_entries"
}
