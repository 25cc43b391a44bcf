package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/redcycle-go/internal/adapters/persistence"
	"github.com/andrescamacho/redcycle-go/internal/application/common"
	appSession "github.com/andrescamacho/redcycle-go/internal/application/session"
	"github.com/andrescamacho/redcycle-go/internal/application/session/commands"
	"github.com/andrescamacho/redcycle-go/internal/application/session/queries"
	"github.com/andrescamacho/redcycle-go/internal/application/setup"
	"github.com/andrescamacho/redcycle-go/internal/domain/material"
	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
	domainSession "github.com/andrescamacho/redcycle-go/internal/domain/session"
	"github.com/andrescamacho/redcycle-go/internal/domain/shared"
	"github.com/andrescamacho/redcycle-go/test/helpers"
)

// scenarioStart is the fixed clock reading stamped on stored entries
var scenarioStart = time.Date(2035, 3, 1, 0, 0, 0, 0, time.UTC)

type sessionContext struct {
	profile   string
	clock     *shared.MockClock
	repo      *persistence.GormSessionRepository
	lifecycle *appSession.Lifecycle
	mediator  common.Mediator

	lastBatch   *commands.ProcessModuleResponse
	lastErr     error
	totals      []processing.MassBalance
	resetStates []*queries.GetStateResponse
	savedState  *queries.GetStateResponse
}

func (sc *sessionContext) reset() error {
	sc.profile = persistence.DefaultProfile
	sc.clock = shared.NewMockClock(scenarioStart)
	sc.repo = nil
	sc.lifecycle = nil
	sc.mediator = nil
	sc.lastBatch = nil
	sc.lastErr = nil
	sc.totals = nil
	sc.resetStates = nil
	sc.savedState = nil
	return helpers.TruncateAllTables()
}

// open wires a lifecycle and mediator over the shared database, restoring
// whatever the profile has stored
func (sc *sessionContext) open() error {
	sc.repo = persistence.NewGormSessionRepository(helpers.SharedTestDB, sc.profile, sc.clock)
	sc.lifecycle = appSession.NewLifecycle(sc.repo)
	sc.lifecycle.Init(context.Background())

	mediator, err := setup.NewHandlerRegistry(sc.lifecycle, nil).CreateConfiguredMediator()
	if err != nil {
		return fmt.Errorf("failed to create mediator: %w", err)
	}
	sc.mediator = mediator
	return nil
}

func (sc *sessionContext) send(request common.Request) (common.Response, error) {
	return sc.mediator.Send(context.Background(), request)
}

func (sc *sessionContext) state() (*queries.GetStateResponse, error) {
	response, err := sc.send(&queries.GetStateQuery{})
	if err != nil {
		return nil, err
	}
	return response.(*queries.GetStateResponse), nil
}

// Given

func (sc *sessionContext) aFreshSessionForProfile(profile string) error {
	sc.profile = profile
	return sc.open()
}

func (sc *sessionContext) theInventoryHolds(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		kg, err := parseKg(getCellValue(table, row, "kg"))
		if err != nil {
			return err
		}
		if _, err := sc.send(&commands.UpdateMaterialCommand{
			Material: getCellValue(table, row, "material"),
			Kg:       kg,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (sc *sessionContext) theStoredSessionHasKgInTheWastePool(kg float64, key string) error {
	snap := &domainSession.Snapshot{
		WastePool: map[material.Key]float64{material.Key(key): kg},
	}
	if err := sc.repo.Save(context.Background(), snap); err != nil {
		return err
	}
	return sc.open()
}

func (sc *sessionContext) crewMemberIsAssignedTo(crew, module string) error {
	_, err := sc.send(&commands.AssignCrewCommand{CrewID: crew, Module: module})
	return err
}

// When

func (sc *sessionContext) iProcessModuleWith(module string, table *godog.Table) error {
	inputs, err := stagedInputs(table)
	if err != nil {
		return err
	}
	sc.processBatch(module, inputs)
	return nil
}

func (sc *sessionContext) iRunTheseBatches(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		kg, err := parseKg(getCellValue(table, row, "kg"))
		if err != nil {
			return err
		}
		sc.processBatch(getCellValue(table, row, "module"), []commands.StagedInput{
			{Material: getCellValue(table, row, "material"), Kg: kg},
		})
		if sc.lastErr != nil {
			return fmt.Errorf("batch %d at %s failed: %w", i, getCellValue(table, row, "module"), sc.lastErr)
		}
	}
	return nil
}

func (sc *sessionContext) processBatch(module string, inputs []commands.StagedInput) {
	response, err := sc.send(&commands.ProcessModuleCommand{Module: module, Inputs: inputs})
	sc.lastErr = err
	sc.lastBatch = nil
	if err == nil {
		sc.lastBatch = response.(*commands.ProcessModuleResponse)
	}
	sc.totals = append(sc.totals, sc.lifecycle.Session().Totals())
}

func (sc *sessionContext) iConsumeKgOf(kg float64, key string) error {
	_, err := sc.send(&commands.ConsumeMaterialCommand{Material: key, Kg: kg})
	return err
}

func (sc *sessionContext) iResetTheSession() error {
	if _, err := sc.send(&commands.ResetSessionCommand{}); err != nil {
		return err
	}
	state, err := sc.state()
	if err != nil {
		return err
	}
	sc.resetStates = append(sc.resetStates, state)
	return nil
}

func (sc *sessionContext) theSessionIsReloadedFromStorage() error {
	state, err := sc.state()
	if err != nil {
		return err
	}
	sc.savedState = state
	return sc.open()
}

// Then

func (sc *sessionContext) theBatchRecoversKgAndWastesKg(recovered, wasted float64) error {
	if sc.lastErr != nil {
		return fmt.Errorf("expected batch to succeed, got: %w", sc.lastErr)
	}
	r := sc.lastBatch.Result
	if err := expectKg("recovered", recovered, r.RecoveredKg); err != nil {
		return err
	}
	return expectKg("wasted", wasted, r.WastedKg)
}

func (sc *sessionContext) theSecondaryRecoveryIsKg(kg float64) error {
	if sc.lastBatch == nil {
		return fmt.Errorf("no batch was processed")
	}
	return expectKg("secondary", kg, sc.lastBatch.Result.SecondaryKg)
}

func (sc *sessionContext) productHoldsKg(name string, kg float64) error {
	state, err := sc.state()
	if err != nil {
		return err
	}
	for _, p := range state.Products {
		if p.Name == name {
			return expectKg(name, kg, p.Kg)
		}
	}
	return fmt.Errorf("product %q not found", name)
}

func (sc *sessionContext) theWastePoolHoldsKgOf(kg float64, key string) error {
	state, err := sc.state()
	if err != nil {
		return err
	}
	for _, e := range state.WastePool {
		if e.Key == material.Key(key) {
			return expectKg("pool "+key, kg, e.Kg)
		}
	}
	return expectKg("pool "+key, kg, 0)
}

func (sc *sessionContext) theInventoryHoldsKgOf(kg float64, key string) error {
	stock, ok := sc.lifecycle.Session().Stock(material.Key(key))
	if !ok {
		return fmt.Errorf("no stock named %q", key)
	}
	return expectKg("inventory "+key, kg, stock.Kg)
}

func (sc *sessionContext) everyBatchAccountsForItsInputWithinKg(tolerance float64) error {
	if sc.lastBatch == nil {
		return fmt.Errorf("no batch was processed")
	}
	r := sc.lastBatch.Result
	if r.RecoveredKg+r.WastedKg > r.TotalIn+tolerance {
		return fmt.Errorf("recovered %v + wasted %v exceeds input %v", r.RecoveredKg, r.WastedKg, r.TotalIn)
	}
	if math.Abs(r.RecoveredKg+r.WastedKg-r.TotalIn) > tolerance {
		return fmt.Errorf("recovered %v + wasted %v drifts from input %v by more than %v kg",
			r.RecoveredKg, r.WastedKg, r.TotalIn, tolerance)
	}
	return nil
}

func (sc *sessionContext) theRunningTotalsNeverDecreased() error {
	if len(sc.totals) == 0 {
		return fmt.Errorf("no batch was processed")
	}
	for i := 1; i < len(sc.totals); i++ {
		prev, cur := sc.totals[i-1], sc.totals[i]
		if cur.RecoveredTotal < prev.RecoveredTotal || cur.WastedTotal < prev.WastedTotal {
			return fmt.Errorf("totals decreased after batch %d: %+v -> %+v", i+1, prev, cur)
		}
	}
	return nil
}

func (sc *sessionContext) theBatchIsRefusedForLackOf(resource string) error {
	var insufficient *domainSession.InsufficientResourcesError
	if !errors.As(sc.lastErr, &insufficient) {
		return fmt.Errorf("expected insufficient resources error, got: %v", sc.lastErr)
	}
	if insufficient.Resource != resource {
		return fmt.Errorf("expected shortfall in %s, got %s", resource, insufficient.Resource)
	}
	return nil
}

func (sc *sessionContext) resourcesAreStill(energy, crewHours float64) error {
	r := sc.lifecycle.Session().Resources()
	if r.Energy != energy || r.CrewHours != crewHours {
		return fmt.Errorf("expected %v kWh and %v h, got %v kWh and %v h", energy, crewHours, r.Energy, r.CrewHours)
	}
	return nil
}

func (sc *sessionContext) crewMemberIsPostedAt(crew, module string) error {
	state, err := sc.state()
	if err != nil {
		return err
	}
	for _, a := range state.Crew {
		if string(a.Crew) == crew {
			if a.Module.String() != module {
				return fmt.Errorf("expected %s at %q, got %q", crew, module, a.Module)
			}
			return nil
		}
	}
	return fmt.Errorf("crew member %s has no post", crew)
}

func (sc *sessionContext) everyResetLeftTheCatalogDefaults() error {
	if len(sc.resetStates) == 0 {
		return fmt.Errorf("the session was never reset")
	}

	fresh := appSession.NewLifecycle(helpers.NewMockSessionRepository())
	mediator, err := setup.NewHandlerRegistry(fresh, nil).CreateConfiguredMediator()
	if err != nil {
		return err
	}
	response, err := mediator.Send(context.Background(), &queries.GetStateQuery{})
	if err != nil {
		return err
	}
	defaults := response.(*queries.GetStateResponse)

	for i, state := range sc.resetStates {
		if !reflect.DeepEqual(defaults, state) {
			return fmt.Errorf("state after reset %d differs from catalog defaults: %+v", i+1, state)
		}
	}
	return nil
}

func (sc *sessionContext) nothingIsStoredForTheProfile() error {
	snap, err := sc.repo.Load(context.Background())
	if err != nil {
		return err
	}
	if !snap.IsEmpty() {
		return fmt.Errorf("expected no stored entries for %s, got %+v", sc.profile, snap)
	}
	return nil
}

func (sc *sessionContext) theReloadedSessionMatchesTheSavedOne() error {
	if sc.savedState == nil {
		return fmt.Errorf("the session was never reloaded")
	}
	state, err := sc.state()
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(sc.savedState, state) {
		return fmt.Errorf("reloaded session differs:\nsaved:    %+v\nreloaded: %+v", sc.savedState, state)
	}
	return nil
}

func stagedInputs(table *godog.Table) ([]commands.StagedInput, error) {
	inputs := make([]commands.StagedInput, 0, len(table.Rows))
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		kg, err := parseKg(getCellValue(table, row, "kg"))
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, commands.StagedInput{Material: getCellValue(table, row, "material"), Kg: kg})
	}
	return inputs, nil
}

func parseKg(value string) (float64, error) {
	kg, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid kg %q: %w", value, err)
	}
	return kg, nil
}

func expectKg(what string, want, got float64) error {
	if math.Abs(want-got) > 1e-9 {
		return fmt.Errorf("expected %s to be %v kg, got %v kg", what, want, got)
	}
	return nil
}

// getCellValue finds a cell by its header in the first table row
func getCellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}
	for i, headerCell := range table.Rows[0].Cells {
		if headerCell.Value == columnName {
			if i < len(row.Cells) {
				return row.Cells[i].Value
			}
			return ""
		}
	}
	return ""
}

// InitializeSessionScenario registers the engine and session lifecycle steps
func InitializeSessionScenario(ctx *godog.ScenarioContext) {
	sc := &sessionContext{}

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, sc.reset()
	})

	ctx.Step(`^a fresh session for profile "([^"]*)"$`, sc.aFreshSessionForProfile)
	ctx.Step(`^the inventory holds:$`, sc.theInventoryHolds)
	ctx.Step(`^the stored session has (\d+(?:\.\d+)?) kg of "([^"]*)" in the waste pool$`, sc.theStoredSessionHasKgInTheWastePool)
	ctx.Step(`^crew member "([^"]*)" is assigned to "([^"]*)"$`, sc.crewMemberIsAssignedTo)

	ctx.Step(`^I process module "([^"]*)" with:$`, sc.iProcessModuleWith)
	ctx.Step(`^I run these batches:$`, sc.iRunTheseBatches)
	ctx.Step(`^I consume (\d+(?:\.\d+)?) kg of "([^"]*)"$`, sc.iConsumeKgOf)
	ctx.Step(`^I reset the session(?: again)?$`, sc.iResetTheSession)
	ctx.Step(`^the session is reloaded from storage$`, sc.theSessionIsReloadedFromStorage)

	ctx.Step(`^the batch recovers (\d+(?:\.\d+)?) kg and wastes (\d+(?:\.\d+)?) kg$`, sc.theBatchRecoversKgAndWastesKg)
	ctx.Step(`^the secondary recovery is (\d+(?:\.\d+)?) kg$`, sc.theSecondaryRecoveryIsKg)
	ctx.Step(`^product "([^"]*)" holds (\d+(?:\.\d+)?) kg$`, sc.productHoldsKg)
	ctx.Step(`^the waste pool holds (\d+(?:\.\d+)?) kg of "([^"]*)"$`, sc.theWastePoolHoldsKgOf)
	ctx.Step(`^the inventory holds (\d+(?:\.\d+)?) kg of "([^"]*)"$`, sc.theInventoryHoldsKgOf)
	ctx.Step(`^the batch accounts for its input within (\d+) kg$`, sc.everyBatchAccountsForItsInputWithinKg)
	ctx.Step(`^the running totals never decreased$`, sc.theRunningTotalsNeverDecreased)
	ctx.Step(`^the batch is refused for lack of "([^"]*)"$`, sc.theBatchIsRefusedForLackOf)
	ctx.Step(`^resources are still (\d+(?:\.\d+)?) kWh energy and (\d+(?:\.\d+)?) crew hours$`, sc.resourcesAreStill)
	ctx.Step(`^crew member "([^"]*)" is posted at "([^"]*)"$`, sc.crewMemberIsPostedAt)
	ctx.Step(`^every reset left the catalog defaults$`, sc.everyResetLeftTheCatalogDefaults)
	ctx.Step(`^nothing is stored for the profile$`, sc.nothingIsStoredForTheProfile)
	ctx.Step(`^the reloaded session matches the saved one$`, sc.theReloadedSessionMatchesTheSavedOne)
}
