package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/redcycle-go/internal/application/common"
	"github.com/andrescamacho/redcycle-go/internal/domain/session"
	"github.com/andrescamacho/redcycle-go/internal/domain/shared"
)

// DefaultProfile is used when no profile is configured
const DefaultProfile = "default"

// GormSessionRepository implements session.Repository using GORM
type GormSessionRepository struct {
	db      *gorm.DB
	profile string
	clock   shared.Clock
}

// NewGormSessionRepository creates a new GORM session repository for one profile
func NewGormSessionRepository(db *gorm.DB, profile string, clock shared.Clock) *GormSessionRepository {
	if profile == "" {
		profile = DefaultProfile
	}
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &GormSessionRepository{
		db:      db,
		profile: profile,
		clock:   clock,
	}
}

// Load retrieves the profile's stored fields. Unreadable fields are logged
// and left out of the snapshot.
func (r *GormSessionRepository) Load(ctx context.Context) (*session.Snapshot, error) {
	var models []SessionEntryModel
	result := r.db.WithContext(ctx).Where("profile = ?", r.profile).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load session: %w", result.Error)
	}

	entries := make(map[string]string, len(models))
	for _, model := range models {
		entries[model.Key] = model.Value
	}

	snap, issues := DecodeSnapshot(entries)
	logDecodeIssues(ctx, r.profile, issues)
	return snap, nil
}

// Save replaces every stored field of the profile in one transaction
func (r *GormSessionRepository) Save(ctx context.Context, snap *session.Snapshot) error {
	entries, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	now := r.clock.Now()
	models := make([]SessionEntryModel, 0, len(entries))
	for _, key := range SessionKeys {
		value, ok := entries[key]
		if !ok {
			continue
		}
		models = append(models, SessionEntryModel{
			Profile:   r.profile,
			Key:       key,
			Value:     value,
			UpdatedAt: now,
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile = ?", r.profile).Delete(&SessionEntryModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete old session entries: %w", err)
		}

		if len(models) > 0 {
			if err := tx.Create(&models).Error; err != nil {
				return fmt.Errorf("failed to insert session entries: %w", err)
			}
		}

		return nil
	})
}

// Clear removes every stored field of the profile
func (r *GormSessionRepository) Clear(ctx context.Context) error {
	result := r.db.WithContext(ctx).Where("profile = ?", r.profile).Delete(&SessionEntryModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to clear session: %w", result.Error)
	}
	return nil
}

// ListProfiles returns every profile with stored session entries
func (r *GormSessionRepository) ListProfiles(ctx context.Context) ([]string, error) {
	var profiles []string
	result := r.db.WithContext(ctx).Model(&SessionEntryModel{}).Distinct("profile").Order("profile").Pluck("profile", &profiles)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", result.Error)
	}
	return profiles, nil
}

func logDecodeIssues(ctx context.Context, profile string, issues []error) {
	if len(issues) == 0 {
		return
	}
	logger := common.LoggerFromContext(ctx)
	for _, issue := range issues {
		metadata := map[string]interface{}{
			"profile": profile,
			"error":   issue.Error(),
		}
		if entryErr, ok := issue.(*EntryError); ok {
			metadata["key"] = entryErr.Key
		}
		logger.Log(common.LevelWarn, "ignoring unreadable session entry, default kept", metadata)
	}
}
