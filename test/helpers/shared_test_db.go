package helpers

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/redcycle-go/internal/adapters/persistence"
	"github.com/andrescamacho/redcycle-go/internal/infrastructure/database"
)

// SharedTestDB is the in-memory session database shared by every BDD
// scenario. Scenarios isolate themselves by profile and by TruncateAllTables.
var SharedTestDB *gorm.DB

// InitializeSharedTestDB opens and migrates SharedTestDB. Call once from TestMain.
func InitializeSharedTestDB() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open shared test database: %w", err)
	}
	SharedTestDB = db
	return nil
}

// TruncateAllTables removes every stored session entry, for all profiles
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}

	err := SharedTestDB.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&persistence.SessionEntryModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to truncate session entries: %w", err)
	}
	return nil
}

// CloseSharedTestDB closes SharedTestDB. Call once after m.Run.
func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}
	err := database.Close(SharedTestDB)
	SharedTestDB = nil
	return err
}
