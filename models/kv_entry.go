package models

import "time"

// KVEntry is one row of the terminal's local key/value store.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;type:varchar(100)"`
	Value     string    `gorm:"type:longtext;not null"` // closed_bills bisa > 64KB
	UpdatedAt time.Time `gorm:"not null"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
