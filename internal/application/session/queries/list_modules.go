package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/redcycle-go/internal/application/common"
	appSession "github.com/andrescamacho/redcycle-go/internal/application/session"
	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
)

// ListModulesQuery lists the processing grid
type ListModulesQuery struct{}

// ModuleStatus is a grid module with the crew currently posted there
type ModuleStatus struct {
	processing.Module
	CrewCount int
}

// ListModulesResponse holds the grid in order
type ListModulesResponse struct {
	Modules []ModuleStatus
}

// ListModulesHandler handles the ListModules query
type ListModulesHandler struct {
	lifecycle *appSession.Lifecycle
}

// NewListModulesHandler creates a new ListModulesHandler
func NewListModulesHandler(lifecycle *appSession.Lifecycle) *ListModulesHandler {
	return &ListModulesHandler{lifecycle: lifecycle}
}

// Handle executes the ListModules query
func (h *ListModulesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*ListModulesQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListModulesQuery")
	}

	s := h.lifecycle.Session()
	grid := processing.Modules()
	out := make([]ModuleStatus, 0, len(grid))
	for _, m := range grid {
		out = append(out, ModuleStatus{Module: m, CrewCount: s.CrewAt(m.ID)})
	}
	return &ListModulesResponse{Modules: out}, nil
}
