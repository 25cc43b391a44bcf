package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/redcycle-go/internal/adapters/persistence"
	"github.com/andrescamacho/redcycle-go/internal/domain/shared"
	"github.com/andrescamacho/redcycle-go/internal/infrastructure/database"
)

// NewTestDB opens a private, migrated in-memory session database that is
// closed when the test ends
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewTestConnection()
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { _ = database.Close(db) })

	return db
}

// NewTestSessionStore returns a gorm session repository for profile on a
// fresh database, plus the database for row-level assertions
func NewTestSessionStore(t *testing.T, profile string, clock shared.Clock) (*persistence.GormSessionRepository, *gorm.DB) {
	t.Helper()

	db := NewTestDB(t)
	return persistence.NewGormSessionRepository(db, profile, clock), db
}
