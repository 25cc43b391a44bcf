package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/redcycle-go/internal/adapters/persistence"
	"github.com/andrescamacho/redcycle-go/internal/domain/material"
	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
	"github.com/andrescamacho/redcycle-go/internal/domain/session"
	"github.com/andrescamacho/redcycle-go/internal/domain/shared"
	"github.com/andrescamacho/redcycle-go/test/helpers"
)

func playedSession(t *testing.T) *session.Session {
	t.Helper()
	s := session.New()
	s.AssignCrew("crew1", processing.Foam)
	s.AssignCrew("crew2", "")
	s.AdvanceDay(2)
	_, err := s.Process(processing.Habitat, []processing.StagedInput{
		{Key: material.Textiles, Kg: 60},
		{Key: material.BubbleWrap, Kg: 40},
	}, processing.ModeFull, false)
	require.NoError(t, err)
	return s
}

func TestGormSessionRepository_SaveAndLoad(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Date(2035, 7, 1, 12, 0, 0, 0, time.UTC))
	repo, db := helpers.NewTestSessionStore(t, "ares", clock)
	s := playedSession(t)

	// Act
	require.NoError(t, repo.Save(context.Background(), s.Snapshot()))
	loaded, err := repo.Load(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, s.Snapshot(), loaded)

	var count int64
	require.NoError(t, db.Model(&persistence.SessionEntryModel{}).Where("profile = ?", "ares").Count(&count).Error)
	assert.Equal(t, int64(len(persistence.SessionKeys)), count)

	var entry persistence.SessionEntryModel
	require.NoError(t, db.Where("profile = ? AND key = ?", "ares", persistence.KeyDay).First(&entry).Error)
	assert.True(t, entry.UpdatedAt.Equal(time.Date(2035, 7, 1, 12, 0, 0, 0, time.UTC)), "entries carry the save time")
}

func TestGormSessionRepository_EmptyProfileLoadsEmptySnapshot(t *testing.T) {
	repo, _ := helpers.NewTestSessionStore(t, "", nil)

	loaded, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestGormSessionRepository_ProfilesAreIsolated(t *testing.T) {
	db := helpers.NewTestDB(t)
	ares := persistence.NewGormSessionRepository(db, "ares", nil)
	hermes := persistence.NewGormSessionRepository(db, "hermes", nil)

	require.NoError(t, ares.Save(context.Background(), playedSession(t).Snapshot()))
	require.NoError(t, hermes.Save(context.Background(), session.New().Snapshot()))
	require.NoError(t, hermes.Clear(context.Background()))

	loaded, err := ares.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, *loaded.MissionDay)

	cleared, err := hermes.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, cleared.IsEmpty())

	profiles, err := ares.ListProfiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ares"}, profiles)
}

func TestGormSessionRepository_SaveReplacesPreviousEntries(t *testing.T) {
	repo, _ := helpers.NewTestSessionStore(t, "ares", nil)
	require.NoError(t, repo.Save(context.Background(), playedSession(t).Snapshot()))

	day := 9
	require.NoError(t, repo.Save(context.Background(), &session.Snapshot{MissionDay: &day}))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, *loaded.MissionDay)
	assert.Nil(t, loaded.Inventory)
}

func TestGormSessionRepository_MalformedEntryIsAbsent(t *testing.T) {
	repo, db := helpers.NewTestSessionStore(t, "ares", nil)
	require.NoError(t, repo.Save(context.Background(), playedSession(t).Snapshot()))

	require.NoError(t, db.Model(&persistence.SessionEntryModel{}).
		Where("profile = ? AND key = ?", "ares", persistence.KeyWastePool).
		Update("value", `{"textiles": "lots"}`).Error)

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded.WastePool)
	assert.NotNil(t, loaded.Inventory)

	restored := session.Restore(loaded)
	assert.Empty(t, restored.WastePool())
	assert.Equal(t, 3, restored.MissionDay())
}
