package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/redcycle-go/internal/application/common"
	appSession "github.com/andrescamacho/redcycle-go/internal/application/session"
	"github.com/andrescamacho/redcycle-go/internal/domain/mission"
)

// ConsumeResourcesCommand spends habitat resources outside of processing
type ConsumeResourcesCommand struct {
	Energy    float64 `validate:"finite,gte=0"`
	Water     float64 `validate:"finite,gte=0"`
	CrewHours float64 `validate:"finite,gte=0"`
}

func (*ConsumeResourcesCommand) IsMutation() {}

// ResourcesResponse reports the remaining resources
type ResourcesResponse struct {
	Resources mission.Resources
}

// ConsumeResourcesHandler handles the ConsumeResources command
type ConsumeResourcesHandler struct {
	lifecycle *appSession.Lifecycle
}

// NewConsumeResourcesHandler creates a new ConsumeResourcesHandler
func NewConsumeResourcesHandler(lifecycle *appSession.Lifecycle) *ConsumeResourcesHandler {
	return &ConsumeResourcesHandler{lifecycle: lifecycle}
}

// Handle executes the ConsumeResources command. Each resource floors at zero.
func (h *ConsumeResourcesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ConsumeResourcesCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ConsumeResourcesCommand")
	}

	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	s := h.lifecycle.Session()
	s.ConsumeResources(cmd.Energy, cmd.Water, cmd.CrewHours)
	return &ResourcesResponse{Resources: s.Resources()}, nil
}
