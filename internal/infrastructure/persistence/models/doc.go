// Package models contains the GORM models behind the sql store driver. They
// carry the table mappings so the domain packages stay free of ORM tags.
//
// The kv_entries table is created by AutoMigrate for sqlite and by
// migrations/000001_create_kv_entries for postgres; keep the two in step.
package models
