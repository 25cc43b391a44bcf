package persistence

import (
	"time"
)

// SessionEntryModel represents the session_entries table: one row per
// persisted session field, scoped by player profile
type SessionEntryModel struct {
	Profile   string    `gorm:"column:profile;primaryKey;size:64"`
	Key       string    `gorm:"column:key;primaryKey;size:64"`
	Value     string    `gorm:"column:value;type:text;not null"` // JSON or scalar text
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (SessionEntryModel) TableName() string {
	return "session_entries"
}
