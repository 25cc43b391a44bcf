package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/redcycle-go/internal/application/common"
	appSession "github.com/andrescamacho/redcycle-go/internal/application/session"
)

// ResetSessionCommand restores catalog defaults and clears stored state.
// It is not a Mutation: the cleared storage must stay empty.
type ResetSessionCommand struct{}

// ResetSessionHandler handles the ResetSession command
type ResetSessionHandler struct {
	lifecycle *appSession.Lifecycle
}

// NewResetSessionHandler creates a new ResetSessionHandler
func NewResetSessionHandler(lifecycle *appSession.Lifecycle) *ResetSessionHandler {
	return &ResetSessionHandler{lifecycle: lifecycle}
}

// Handle executes the ResetSession command
func (h *ResetSessionHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*ResetSessionCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ResetSessionCommand")
	}

	if err := h.lifecycle.Reset(ctx); err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "session reset to catalog defaults", nil)
	return struct{}{}, nil
}
