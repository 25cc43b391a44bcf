package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/redcycle-go/internal/application/common"
	appSession "github.com/andrescamacho/redcycle-go/internal/application/session"
)

// AdvanceDayCommand moves the mission clock forward
type AdvanceDayCommand struct {
	Days int `validate:"min=1"`
}

func (*AdvanceDayCommand) IsMutation() {}

// AdvanceDayResponse reports the new mission day
type AdvanceDayResponse struct {
	MissionDay int
}

// AdvanceDayHandler handles the AdvanceDay command
type AdvanceDayHandler struct {
	lifecycle *appSession.Lifecycle
}

// NewAdvanceDayHandler creates a new AdvanceDayHandler
func NewAdvanceDayHandler(lifecycle *appSession.Lifecycle) *AdvanceDayHandler {
	return &AdvanceDayHandler{lifecycle: lifecycle}
}

// Handle executes the AdvanceDay command
func (h *AdvanceDayHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*AdvanceDayCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AdvanceDayCommand")
	}

	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	day := h.lifecycle.Session().AdvanceDay(cmd.Days)
	return &AdvanceDayResponse{MissionDay: day}, nil
}
