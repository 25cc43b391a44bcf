package setup

import (
	"reflect"

	"github.com/andrescamacho/redcycle-go/internal/adapters/metrics"
	"github.com/andrescamacho/redcycle-go/internal/application/common"
	appSession "github.com/andrescamacho/redcycle-go/internal/application/session"
	sessionCommands "github.com/andrescamacho/redcycle-go/internal/application/session/commands"
	sessionQueries "github.com/andrescamacho/redcycle-go/internal/application/session/queries"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	lifecycle      *appSession.Lifecycle
	commandMetrics *metrics.CommandMetricsCollector // nil when metrics are disabled
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(
	lifecycle *appSession.Lifecycle,
	commandMetrics *metrics.CommandMetricsCollector,
) *HandlerRegistry {
	return &HandlerRegistry{
		lifecycle:      lifecycle,
		commandMetrics: commandMetrics,
	}
}

// RegisterSessionCommands registers every state-changing session handler
//
// This method registers:
//   - ProcessModuleCommand → ProcessModuleHandler (cost gate + engine)
//   - ConsumeMaterialCommand, UpdateMaterialCommand → inventory edits
//   - AssignCrewCommand → crew posting and toggling
//   - ConsumeResourcesCommand, AdvanceDayCommand → mission bookkeeping
//   - ResetSessionCommand → restore defaults and clear storage
func (r *HandlerRegistry) RegisterSessionCommands(m common.Mediator) error {
	handlers := []struct {
		request common.Request
		handler common.RequestHandler
	}{
		{&sessionCommands.ProcessModuleCommand{}, sessionCommands.NewProcessModuleHandler(r.lifecycle)},
		{&sessionCommands.ConsumeMaterialCommand{}, sessionCommands.NewConsumeMaterialHandler(r.lifecycle)},
		{&sessionCommands.UpdateMaterialCommand{}, sessionCommands.NewUpdateMaterialHandler(r.lifecycle)},
		{&sessionCommands.AssignCrewCommand{}, sessionCommands.NewAssignCrewHandler(r.lifecycle)},
		{&sessionCommands.ConsumeResourcesCommand{}, sessionCommands.NewConsumeResourcesHandler(r.lifecycle)},
		{&sessionCommands.AdvanceDayCommand{}, sessionCommands.NewAdvanceDayHandler(r.lifecycle)},
		{&sessionCommands.ResetSessionCommand{}, sessionCommands.NewResetSessionHandler(r.lifecycle)},
	}

	for _, h := range handlers {
		if err := m.Register(reflect.TypeOf(h.request), h.handler); err != nil {
			return err
		}
	}
	return nil
}

// RegisterSessionQueries registers the read-only session handlers
func (r *HandlerRegistry) RegisterSessionQueries(m common.Mediator) error {
	// Register GetStateQuery handler
	if err := m.Register(
		reflect.TypeOf(&sessionQueries.GetStateQuery{}),
		sessionQueries.NewGetStateHandler(r.lifecycle),
	); err != nil {
		return err
	}

	// Register SuggestQuery handler
	if err := m.Register(
		reflect.TypeOf(&sessionQueries.SuggestQuery{}),
		sessionQueries.NewSuggestHandler(r.lifecycle),
	); err != nil {
		return err
	}

	// Register StageMaterialQuery handler
	if err := m.Register(
		reflect.TypeOf(&sessionQueries.StageMaterialQuery{}),
		sessionQueries.NewStageMaterialHandler(r.lifecycle),
	); err != nil {
		return err
	}

	// Register EstimateCostQuery handler
	if err := m.Register(
		reflect.TypeOf(&sessionQueries.EstimateCostQuery{}),
		sessionQueries.NewEstimateCostHandler(r.lifecycle),
	); err != nil {
		return err
	}

	// Register ListModulesQuery handler
	if err := m.Register(
		reflect.TypeOf(&sessionQueries.ListModulesQuery{}),
		sessionQueries.NewListModulesHandler(r.lifecycle),
	); err != nil {
		return err
	}

	return nil
}

// CreateConfiguredMediator creates a mediator with every session handler registered
//
// Middleware order, outermost first: logging, request metrics, session commit.
// A failed commit therefore shows up as a failed request in logs and metrics.
func (r *HandlerRegistry) CreateConfiguredMediator() (common.Mediator, error) {
	m := common.NewMediator()

	m.Use(common.LoggingMiddleware())
	if r.commandMetrics != nil {
		m.Use(metrics.PrometheusMiddleware(r.commandMetrics))
	}
	m.Use(appSession.CommitMiddleware(r.lifecycle))

	if err := r.RegisterSessionCommands(m); err != nil {
		return nil, err
	}
	if err := r.RegisterSessionQueries(m); err != nil {
		return nil, err
	}

	return m, nil
}
