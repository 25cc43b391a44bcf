package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/redcycle-go/internal/adapters/metrics"
	"github.com/andrescamacho/redcycle-go/internal/application/common"
	appSession "github.com/andrescamacho/redcycle-go/internal/application/session"
	"github.com/andrescamacho/redcycle-go/internal/domain/material"
	"github.com/andrescamacho/redcycle-go/internal/domain/mission"
	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
	domainSession "github.com/andrescamacho/redcycle-go/internal/domain/session"
	"github.com/andrescamacho/redcycle-go/internal/domain/shared"
)

// StagedInput is one material dropped on the workbench
type StagedInput struct {
	Material string `validate:"required"`
	Kg       float64
}

// ProcessModuleCommand runs one batch through a module, paying its resource cost
type ProcessModuleCommand struct {
	Module  string        `validate:"required"`
	Inputs  []StagedInput `validate:"dive"`
	Mode    string        // full (default) or quick
	EcoTier string        // off (default), eco or ultra
}

func (*ProcessModuleCommand) IsMutation() {}

// ProcessModuleResponse carries the batch result and what it cost
type ProcessModuleResponse struct {
	Result    *processing.Result
	Cost      processing.Cost
	CrewCount int
	Resources mission.Resources

	// Staged materials the module does not specialise in
	OutsideSpecialty []material.Key
}

// ProcessModuleHandler handles the ProcessModule command
type ProcessModuleHandler struct {
	lifecycle *appSession.Lifecycle
}

// NewProcessModuleHandler creates a new ProcessModuleHandler
func NewProcessModuleHandler(lifecycle *appSession.Lifecycle) *ProcessModuleHandler {
	return &ProcessModuleHandler{lifecycle: lifecycle}
}

// Handle executes the ProcessModule command
func (h *ProcessModuleHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ProcessModuleCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ProcessModuleCommand")
	}

	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	mode, err := processing.ParseMode(cmd.Mode)
	if err != nil {
		return nil, shared.NewValidationError("Mode", err.Error())
	}
	tier, err := processing.ParseEcoTier(cmd.EcoTier)
	if err != nil {
		return nil, shared.NewValidationError("EcoTier", err.Error())
	}

	module := processing.ModuleID(cmd.Module)
	s := h.lifecycle.Session()

	staged := make([]processing.StagedInput, 0, len(cmd.Inputs))
	for _, in := range cmd.Inputs {
		staged = append(staged, processing.StagedInput{Key: material.Key(in.Material), Kg: in.Kg})
	}

	// Reject before touching any store
	if err := processing.ValidateStaged(staged); err != nil {
		metrics.RecordRejectedBatch(module, "invalid_staging")
		return nil, err
	}
	for _, in := range staged {
		if !s.KnowsMaterial(in.Key) {
			metrics.RecordRejectedBatch(module, "unknown_material")
			return nil, shared.NewUnknownKeyError("material", string(in.Key))
		}
	}

	crewCount := s.CrewAt(module)
	cost := processing.EstimateCost(module, processing.TotalStaged(staged), mode, tier, crewCount)

	if resources := s.Resources(); !resources.CanAfford(cost) {
		switch resources.Shortfall(cost) {
		case "energy":
			metrics.RecordRejectedBatch(module, "energy")
			return nil, domainSession.NewInsufficientResourcesError("energy", cost.Energy, resources.Energy)
		default:
			metrics.RecordRejectedBatch(module, "crew_hours")
			return nil, domainSession.NewInsufficientResourcesError("crew hours", cost.CrewHours, resources.CrewHours)
		}
	}

	s.PayFor(cost)

	result, err := s.Process(module, staged, mode, tier.Optimize())
	if err != nil {
		return nil, fmt.Errorf("failed to process batch: %w", err)
	}

	metrics.RecordBatch(result, cost)

	logger := common.LoggerFromContext(ctx)
	logger.Log(common.LevelInfo, "batch processed", map[string]interface{}{
		"batch_id":     result.BatchID,
		"module":       string(result.Module),
		"mode":         string(result.Mode),
		"optimized":    result.Optimized,
		"total_in_kg":  result.TotalIn,
		"recovered_kg": result.RecoveredKg,
		"wasted_kg":    result.WastedKg,
		"crew":         crewCount,
		"energy_cost":  cost.Energy,
	})

	return &ProcessModuleResponse{
		Result:    result,
		Cost:      cost,
		CrewCount: crewCount,
		Resources: s.Resources(),

		OutsideSpecialty: processing.OutsideSpecialty(module, staged),
	}, nil
}
