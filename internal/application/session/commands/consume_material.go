package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/redcycle-go/internal/application/common"
	appSession "github.com/andrescamacho/redcycle-go/internal/application/session"
	"github.com/andrescamacho/redcycle-go/internal/domain/material"
)

// ConsumeMaterialCommand removes kilograms from an inventory stock, floored at zero
type ConsumeMaterialCommand struct {
	Material string  `validate:"required"`
	Kg       float64 `validate:"finite,gte=0"`
}

func (*ConsumeMaterialCommand) IsMutation() {}

// MaterialResponse reports a stock after it changed
type MaterialResponse struct {
	Stock material.Stock
}

// ConsumeMaterialHandler handles the ConsumeMaterial command
type ConsumeMaterialHandler struct {
	lifecycle *appSession.Lifecycle
}

// NewConsumeMaterialHandler creates a new ConsumeMaterialHandler
func NewConsumeMaterialHandler(lifecycle *appSession.Lifecycle) *ConsumeMaterialHandler {
	return &ConsumeMaterialHandler{lifecycle: lifecycle}
}

// Handle executes the ConsumeMaterial command. Unknown materials are left alone.
func (h *ConsumeMaterialHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ConsumeMaterialCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ConsumeMaterialCommand")
	}

	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	s := h.lifecycle.Session()
	key := material.Key(cmd.Material)
	s.ConsumeMaterial(key, cmd.Kg)

	stock, _ := s.Stock(key)
	return &MaterialResponse{Stock: stock}, nil
}
