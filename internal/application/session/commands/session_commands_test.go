package commands

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appSession "github.com/andrescamacho/redcycle-go/internal/application/session"
	"github.com/andrescamacho/redcycle-go/internal/domain/material"
	"github.com/andrescamacho/redcycle-go/internal/domain/mission"
	"github.com/andrescamacho/redcycle-go/internal/application/common"
	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
	"github.com/andrescamacho/redcycle-go/internal/domain/shared"
	"github.com/andrescamacho/redcycle-go/test/helpers"
)

func TestConsumeMaterial_FloorsAtZero(t *testing.T) {
	lifecycle := newLifecycle(t)
	handler := NewConsumeMaterialHandler(lifecycle)

	resp, err := handler.Handle(context.Background(), &ConsumeMaterialCommand{Material: "carbon_residue", Kg: 500})

	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.(*MaterialResponse).Stock.Kg)
}

func TestConsumeMaterial_RejectsNegativeAmount(t *testing.T) {
	_, err := NewConsumeMaterialHandler(newLifecycle(t)).Handle(context.Background(), &ConsumeMaterialCommand{Material: "textiles", Kg: -5})

	var validation *shared.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestUpdateMaterial_ClampsAndCreates(t *testing.T) {
	lifecycle := newLifecycle(t)
	handler := NewUpdateMaterialHandler(lifecycle)

	resp, err := handler.Handle(context.Background(), &UpdateMaterialCommand{Material: "textiles", Kg: -10})
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.(*MaterialResponse).Stock.Kg)

	resp, err = handler.Handle(context.Background(), &UpdateMaterialCommand{Material: "ice_blocks", Kg: 40})
	require.NoError(t, err)
	assert.Equal(t, material.Key("ice_blocks"), resp.(*MaterialResponse).Stock.Key)
	assert.Equal(t, 40.0, resp.(*MaterialResponse).Stock.Kg)
	assert.True(t, lifecycle.Session().KnowsMaterial("ice_blocks"))
}

func TestMaterialCommands_RejectNonFiniteAmounts(t *testing.T) {
	ctx := context.Background()
	repo, _ := helpers.NewTestSessionStore(t, "ares", nil)
	lifecycle := appSession.NewLifecycle(repo)
	lifecycle.Init(ctx)

	m := common.NewMediator()
	m.Use(appSession.CommitMiddleware(lifecycle))
	require.NoError(t, common.RegisterHandler[*UpdateMaterialCommand](m, NewUpdateMaterialHandler(lifecycle)))
	require.NoError(t, common.RegisterHandler[*ConsumeMaterialCommand](m, NewConsumeMaterialHandler(lifecycle)))
	require.NoError(t, common.RegisterHandler[*ConsumeResourcesCommand](m, NewConsumeResourcesHandler(lifecycle)))

	rejected := []common.Request{
		&UpdateMaterialCommand{Material: "textiles", Kg: math.NaN()},
		&UpdateMaterialCommand{Material: "textiles", Kg: math.Inf(1)},
		&UpdateMaterialCommand{Material: "textiles", Kg: math.Inf(-1)},
		&ConsumeMaterialCommand{Material: "textiles", Kg: math.Inf(1)},
		&ConsumeResourcesCommand{Energy: math.NaN()},
		&ConsumeResourcesCommand{Water: math.Inf(1)},
	}
	for _, request := range rejected {
		_, err := m.Send(ctx, request)
		var validation *shared.ValidationError
		assert.ErrorAs(t, err, &validation, "%#v", request)
	}

	stock, ok := lifecycle.Session().Stock(material.Textiles)
	require.True(t, ok)
	assert.Equal(t, 160.0, stock.Kg)
	assert.Equal(t, mission.DefaultResources(), lifecycle.Session().Resources())

	// a later mutation still commits
	_, err := m.Send(ctx, &ConsumeMaterialCommand{Material: "textiles", Kg: 10})
	require.NoError(t, err)

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 150.0, stored.Inventory[material.Textiles].Kg)
}

func TestAssignCrew(t *testing.T) {
	lifecycle := newLifecycle(t)
	handler := NewAssignCrewHandler(lifecycle)

	_, err := handler.Handle(context.Background(), &AssignCrewCommand{CrewID: "crew1", Module: "lab"})
	require.NoError(t, err)
	_, err = handler.Handle(context.Background(), &AssignCrewCommand{CrewID: "crew1", Module: "foam"})
	require.NoError(t, err)

	assert.Equal(t, 0, lifecycle.Session().CrewAt(processing.Lab))
	assert.Equal(t, 1, lifecycle.Session().CrewAt(processing.Foam))

	resp, err := handler.Handle(context.Background(), &AssignCrewCommand{CrewID: "crew1"})
	require.NoError(t, err)
	assert.False(t, resp.(*AssignCrewResponse).Assignment.Assigned())
	assert.Equal(t, 0, lifecycle.Session().CrewAt(processing.Foam))
}

func TestAssignCrew_Toggle(t *testing.T) {
	lifecycle := newLifecycle(t)
	handler := NewAssignCrewHandler(lifecycle)
	toggle := &AssignCrewCommand{CrewID: "crew2", Module: "party", Toggle: true}

	resp, err := handler.Handle(context.Background(), toggle)
	require.NoError(t, err)
	assert.Equal(t, processing.Party, resp.(*AssignCrewResponse).Assignment.Module)

	resp, err = handler.Handle(context.Background(), toggle)
	require.NoError(t, err)
	assert.False(t, resp.(*AssignCrewResponse).Assignment.Assigned())
}

func TestAssignCrew_RejectsUnknownNames(t *testing.T) {
	handler := NewAssignCrewHandler(newLifecycle(t))

	tests := []struct {
		name string
		cmd  *AssignCrewCommand
		kind string
	}{
		{name: "unknown crew", cmd: &AssignCrewCommand{CrewID: "crew9", Module: "lab"}, kind: "crew member"},
		{name: "unknown module", cmd: &AssignCrewCommand{CrewID: "crew1", Module: "gym"}, kind: "module"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), tt.cmd)

			var unknown *shared.UnknownKeyError
			require.ErrorAs(t, err, &unknown)
			assert.Equal(t, tt.kind, unknown.Kind)
		})
	}
}

func TestConsumeResources_ClampsEachField(t *testing.T) {
	lifecycle := newLifecycle(t)

	resp, err := NewConsumeResourcesHandler(lifecycle).Handle(context.Background(), &ConsumeResourcesCommand{Energy: 500, Water: 20, CrewHours: 1.5})

	require.NoError(t, err)
	assert.Equal(t, mission.Resources{Energy: 0, Water: 100, CrewHours: 4.5}, resp.(*ResourcesResponse).Resources)
}

func TestAdvanceDay(t *testing.T) {
	lifecycle := newLifecycle(t)
	handler := NewAdvanceDayHandler(lifecycle)

	resp, err := handler.Handle(context.Background(), &AdvanceDayCommand{Days: 3})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.(*AdvanceDayResponse).MissionDay)

	_, err = handler.Handle(context.Background(), &AdvanceDayCommand{Days: 0})
	assert.Error(t, err)
}

func TestResetSession_ClearsStorage(t *testing.T) {
	repo := helpers.NewMockSessionRepository()
	lifecycle := appSession.NewLifecycle(repo)
	lifecycle.Init(context.Background())
	lifecycle.Session().AdvanceDay(4)
	require.NoError(t, lifecycle.Commit(context.Background()))

	_, err := NewResetSessionHandler(lifecycle).Handle(context.Background(), &ResetSessionCommand{})

	require.NoError(t, err)
	assert.Nil(t, repo.Stored())
	assert.Equal(t, mission.FirstDay, lifecycle.Session().MissionDay())
	assert.Equal(t, 1, repo.ClearCount())
}

func TestMutationMarkers(t *testing.T) {
	mutations := []interface{}{
		&ProcessModuleCommand{},
		&ConsumeMaterialCommand{},
		&UpdateMaterialCommand{},
		&AssignCrewCommand{},
		&ConsumeResourcesCommand{},
		&AdvanceDayCommand{},
	}
	for _, m := range mutations {
		_, ok := m.(interface{ IsMutation() })
		assert.True(t, ok, "%T should be a mutation", m)
	}

	var reset interface{} = &ResetSessionCommand{}
	_, ok := reset.(interface{ IsMutation() })
	assert.False(t, ok)
}
