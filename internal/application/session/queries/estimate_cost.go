package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/redcycle-go/internal/application/common"
	appSession "github.com/andrescamacho/redcycle-go/internal/application/session"
	"github.com/andrescamacho/redcycle-go/internal/domain/material"
	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
	"github.com/andrescamacho/redcycle-go/internal/domain/shared"
)

// EstimateCostQuery prices a batch without running it
type EstimateCostQuery struct {
	Module  string  `validate:"required"`
	TotalKg float64 `validate:"finite,gt=0"`
	Mode    string
	EcoTier string
}

// EstimateCostResponse is the price of a batch against current resources
type EstimateCostResponse struct {
	Cost       processing.Cost
	CrewCount  int
	Efficiency float64
	Shortfall  string // "" when affordable

	// Preferred inputs of the module; empty for modules missing from the grid
	Preferred []material.Key
}

// Affordable reports whether the batch could run now
func (r *EstimateCostResponse) Affordable() bool {
	return r.Shortfall == ""
}

// EstimateCostHandler handles the EstimateCost query
type EstimateCostHandler struct {
	lifecycle *appSession.Lifecycle
}

// NewEstimateCostHandler creates a new EstimateCostHandler
func NewEstimateCostHandler(lifecycle *appSession.Lifecycle) *EstimateCostHandler {
	return &EstimateCostHandler{lifecycle: lifecycle}
}

// Handle executes the EstimateCost query
func (h *EstimateCostHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*EstimateCostQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *EstimateCostQuery")
	}

	if err := common.ValidateRequest(query); err != nil {
		return nil, err
	}

	mode, err := processing.ParseMode(query.Mode)
	if err != nil {
		return nil, shared.NewValidationError("Mode", err.Error())
	}
	tier, err := processing.ParseEcoTier(query.EcoTier)
	if err != nil {
		return nil, shared.NewValidationError("EcoTier", err.Error())
	}

	s := h.lifecycle.Session()
	module := processing.ModuleID(query.Module)
	crewCount := s.CrewAt(module)
	cost := processing.EstimateCost(module, query.TotalKg, mode, tier, crewCount)

	return &EstimateCostResponse{
		Cost:       cost,
		CrewCount:  crewCount,
		Efficiency: processing.Efficiency(module, mode, tier.Optimize()),
		Shortfall:  s.Resources().Shortfall(cost),
		Preferred:  preferredInputs(module),
	}, nil
}

func preferredInputs(id processing.ModuleID) []material.Key {
	if m, ok := processing.LookupModule(id); ok {
		return m.Efficient
	}
	return nil
}
