package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/redcycle-go/internal/infrastructure/config"
	"github.com/andrescamacho/redcycle-go/test/helpers"
)

// useMemoryApp makes every command run against an in-memory repository
func useMemoryApp(t *testing.T) *helpers.MockSessionRepository {
	t.Helper()

	repo := helpers.NewMockSessionRepository()
	original := openApp
	openApp = func(ctx context.Context, opts appOptions) (*App, error) {
		cfg := &config.Config{}
		config.SetDefaults(cfg)
		if profile != "" {
			cfg.Session.Profile = profile
		}

		app := &App{Config: cfg, Logger: discardLogger{}}
		if err := app.wire(ctx, repo, opts.forceMetrics); err != nil {
			return nil, err
		}
		return app, nil
	}
	t.Cleanup(func() { openApp = original })

	return repo
}

type discardLogger struct{}

func (discardLogger) Log(level, message string, metadata map[string]interface{}) {}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func readState(t *testing.T) stateView {
	t.Helper()

	out, _, err := runCLI(t, "status", "--format", "json")
	require.NoError(t, err)

	var state stateView
	require.NoError(t, json.Unmarshal([]byte(out), &state))
	return state
}

func TestStatus_JSONShowsCatalogDefaults(t *testing.T) {
	useMemoryApp(t)

	state := readState(t)

	assert.Equal(t, 1, state.MissionDay)
	assert.Len(t, state.Inventory, 9)
	assert.Equal(t, "aluminum_struts", state.Inventory[0].Key)
	assert.Equal(t, 120.0, state.Resources.Energy)
	assert.Equal(t, 6.0, state.Resources.CrewHours)
	assert.Empty(t, state.WastePool)
	assert.Zero(t, state.Totals.Recovered)
}

func TestProcess_FoamBatchIsPersisted(t *testing.T) {
	repo := useMemoryApp(t)

	out, _, err := runCLI(t, "process", "--module", "foam", "--input", "foam_pack=100")
	require.NoError(t, err)
	assert.Contains(t, out, "Recovered:   95.0 kg")
	assert.Contains(t, out, "Wasted:      5.0 kg")
	assert.Equal(t, 1, repo.SaveCount())

	// A fresh invocation restores from the repository
	state := readState(t)
	assert.Equal(t, 60.0, state.Resources.Energy)
	assert.Equal(t, 95.0, state.Totals.Recovered)
	assert.Equal(t, 5.0, state.Totals.Wasted)
	require.Len(t, state.WastePool, 1)
	assert.Equal(t, poolView{Key: "foam_pack", Kg: 5}, state.WastePool[0])
}

func TestProcess_ShortfallLeavesSessionUnchanged(t *testing.T) {
	repo := useMemoryApp(t)

	_, _, err := runCLI(t, "process", "--module", "foam", "--input", "foam_pack=100")
	require.NoError(t, err)

	_, _, err = runCLI(t, "process", "--module", "foam", "--input", "foam_pack=100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enough crew hours")
	assert.Equal(t, 1, repo.SaveCount())

	state := readState(t)
	assert.Equal(t, 60.0, state.Resources.Energy)
	assert.Equal(t, 2.0, state.Resources.CrewHours)
	assert.Equal(t, 95.0, state.Totals.Recovered)
}

func TestProcess_UnknownMaterialSuggestsKey(t *testing.T) {
	useMemoryApp(t)

	_, _, err := runCLI(t, "process", "--module", "foam", "--input", "foam_pak=10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "foam_pack"?`)
}

func TestProcess_UnknownModuleWarnsAndRuns(t *testing.T) {
	repo := useMemoryApp(t)

	out, stderr, err := runCLI(t, "process", "--module", "fom", "--input", "foam_pack=10")
	require.NoError(t, err)
	assert.Contains(t, stderr, `did you mean "foam"?`)
	assert.Contains(t, out, "Efficiency:  70%")
	assert.Equal(t, 1, repo.SaveCount())
}

func TestProcess_RejectsMalformedInputs(t *testing.T) {
	useMemoryApp(t)

	for _, input := range []string{"foam_pack", "=10", "foam_pack=lots", "foam_pack=NaN", "foam_pack=+Inf"} {
		t.Run(input, func(t *testing.T) {
			_, _, err := runCLI(t, "process", "--module", "foam", "--input", input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid input")
		})
	}
}

func TestInventory_SetAndConsume(t *testing.T) {
	useMemoryApp(t)

	out, _, err := runCLI(t, "inventory", "set", "foam_pack", "40")
	require.NoError(t, err)
	assert.Contains(t, out, "Packaging foam (foam_pack): 40.0 kg")

	out, _, err = runCLI(t, "inventory", "consume", "foam_pack", "55", "--format", "json")
	require.NoError(t, err)
	var stock stockView
	require.NoError(t, json.Unmarshal([]byte(out), &stock))
	assert.Equal(t, 0.0, stock.Kg)
}

func TestInventory_ConsumeUnknownHints(t *testing.T) {
	repo := useMemoryApp(t)

	_, stderr, err := runCLI(t, "inventory", "consume", "textils", "5")
	require.NoError(t, err)
	assert.Contains(t, stderr, `did you mean "textiles"?`)
	assert.Equal(t, 1, repo.SaveCount())
}

func TestInventory_ListYAML(t *testing.T) {
	useMemoryApp(t)

	out, _, err := runCLI(t, "inventory", "list", "-o", "yaml")
	require.NoError(t, err)

	var stocks []stockView
	require.NoError(t, yaml.Unmarshal([]byte(out), &stocks))
	assert.Len(t, stocks, 9)
}

func TestCrew_AssignToggleAndHints(t *testing.T) {
	useMemoryApp(t)

	out, _, err := runCLI(t, "crew", "assign", "--crew", "crew1", "--module", "foam")
	require.NoError(t, err)
	assert.Contains(t, out, "crew1 posted to foam")

	out, _, err = runCLI(t, "crew", "toggle", "--crew", "crew1", "--module", "foam")
	require.NoError(t, err)
	assert.Contains(t, out, "crew1 unassigned")

	_, _, err = runCLI(t, "crew", "assign", "--crew", "crew9", "--module", "foam")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "crew1"?`)

	_, _, err = runCLI(t, "crew", "assign", "--crew", "crew2", "--module", "labb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "lab"?`)
}

func TestEstimate_ReportsShortfall(t *testing.T) {
	useMemoryApp(t)

	out, _, err := runCLI(t, "estimate", "--module", "foam", "--kg", "300", "--format", "json")
	require.NoError(t, err)

	var view estimateView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.False(t, view.Affordable)
	assert.Equal(t, "energy", view.Shortfall)
	assert.Equal(t, 180.0, view.Cost.Energy)
	assert.Equal(t, []string{"foam_pack"}, view.Preferred)
}

func TestModules_ListsGridWithPreferredMaterials(t *testing.T) {
	useMemoryApp(t)

	_, _, err := runCLI(t, "crew", "assign", "--crew", "crew1", "--module", "party")
	require.NoError(t, err)

	out, _, err := runCLI(t, "modules", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Recycling Plant")
	assert.Contains(t, out, "textiles, bubble_wrap, plastic_pouches")
	assert.Contains(t, out, "foam: Densify foam into insulation blocks or packing material")

	out, _, err = runCLI(t, "modules", "--format", "json")
	require.NoError(t, err)

	var views []moduleView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 6)
	assert.Equal(t, "party", views[3].ID)
	assert.Equal(t, 1, views[3].CrewCount)
	assert.Equal(t, 0.85, views[3].BaseEfficiency)
}

func TestProcess_NotesMaterialsOutsideSpecialty(t *testing.T) {
	useMemoryApp(t)

	out, _, err := runCLI(t, "process", "--module", "foam", "--input", "textiles=10", "--input", "foam_pack=20")
	require.NoError(t, err)
	assert.Contains(t, out, "Note:        textiles outside foam's specialty")
}

func TestStageAndAssist(t *testing.T) {
	useMemoryApp(t)

	out, _, err := runCLI(t, "stage", "foam_pack")
	require.NoError(t, err)
	assert.Contains(t, out, "--input foam_pack=36")

	out, _, err = runCLI(t, "assist")
	require.NoError(t, err)
	assert.Contains(t, out, "--module recycle --input polycomposite=44")
}

func TestResourcesAndAdvanceDay(t *testing.T) {
	useMemoryApp(t)

	_, _, err := runCLI(t, "resources", "consume", "--energy", "20", "--water", "500")
	require.NoError(t, err)

	out, _, err := runCLI(t, "advance-day", "--days", "3", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"missionDay": 4}`, out)

	state := readState(t)
	assert.Equal(t, 100.0, state.Resources.Energy)
	assert.Equal(t, 0.0, state.Resources.Water)
}

func TestReset_RequiresConfirmation(t *testing.T) {
	repo := useMemoryApp(t)

	_, _, err := runCLI(t, "reset")
	require.Error(t, err)
	assert.Equal(t, 0, repo.ClearCount())

	_, _, err = runCLI(t, "process", "--module", "foam", "--input", "foam_pack=100")
	require.NoError(t, err)

	_, _, err = runCLI(t, "reset", "--yes")
	require.NoError(t, err)
	_, _, err = runCLI(t, "reset", "--yes")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.ClearCount())
	assert.Nil(t, repo.Stored())

	state := readState(t)
	assert.Equal(t, 120.0, state.Resources.Energy)
	assert.Empty(t, state.WastePool)
}

func TestMetrics_PrintsSessionGauges(t *testing.T) {
	useMemoryApp(t)

	out, _, err := runCLI(t, "metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "# TYPE redcycle_engine_resource_level gauge")
	assert.Contains(t, out, `redcycle_engine_resource_level{resource="energy"} 120`)
}

func TestRoot_RejectsUnknownFormat(t *testing.T) {
	useMemoryApp(t)

	_, _, err := runCLI(t, "status", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestConfigProfiles_FileBackendNamesSessionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	original := openApp
	openApp = func(ctx context.Context, opts appOptions) (*App, error) {
		cfg := &config.Config{}
		config.SetDefaults(cfg)
		cfg.Session.Backend = "file"
		cfg.Session.FilePath = path

		app := &App{Config: cfg, Logger: discardLogger{}}
		repo, err := app.openRepository(cfg)
		if err != nil {
			return nil, err
		}
		if err := app.wire(ctx, repo, false); err != nil {
			return nil, err
		}
		return app, nil
	}
	t.Cleanup(func() { openApp = original })

	_, _, err := runCLI(t, "config", "profiles")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "the file backend stores a single session in "+path)
}
