package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/redcycle-go/internal/application/common"
	appSession "github.com/andrescamacho/redcycle-go/internal/application/session"
	"github.com/andrescamacho/redcycle-go/internal/domain/mission"
	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
	"github.com/andrescamacho/redcycle-go/internal/domain/shared"
)

// AssignCrewCommand places a crew member at a module, or unassigns them when
// Module is empty. With Toggle set, a crew member already at Module is
// unassigned instead.
type AssignCrewCommand struct {
	CrewID string `validate:"required"`
	Module string
	Toggle bool
}

func (*AssignCrewCommand) IsMutation() {}

// AssignCrewResponse reports where the crew member ended up
type AssignCrewResponse struct {
	Assignment mission.Assignment
}

// AssignCrewHandler handles the AssignCrew command
type AssignCrewHandler struct {
	lifecycle *appSession.Lifecycle
}

// NewAssignCrewHandler creates a new AssignCrewHandler
func NewAssignCrewHandler(lifecycle *appSession.Lifecycle) *AssignCrewHandler {
	return &AssignCrewHandler{lifecycle: lifecycle}
}

// Handle executes the AssignCrew command
func (h *AssignCrewHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*AssignCrewCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AssignCrewCommand")
	}

	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	crew := mission.CrewID(cmd.CrewID)
	if !mission.IsRosterMember(crew) {
		return nil, shared.NewUnknownKeyError("crew member", cmd.CrewID)
	}
	module := processing.ModuleID(cmd.Module)
	if module != "" && !processing.IsKnownModule(module) {
		return nil, shared.NewUnknownKeyError("module", cmd.Module)
	}

	s := h.lifecycle.Session()
	if cmd.Toggle {
		if module == "" {
			return nil, shared.NewValidationError("Module", "toggle needs a module")
		}
		s.ToggleCrew(crew, module)
	} else {
		s.AssignCrew(crew, module)
	}
	module = s.CrewPost(crew)

	common.LoggerFromContext(ctx).Log(common.LevelDebug, "crew assignment changed", map[string]interface{}{
		"crew":   string(crew),
		"module": string(module),
	})

	return &AssignCrewResponse{Assignment: mission.Assignment{Crew: crew, Module: module}}, nil
}
