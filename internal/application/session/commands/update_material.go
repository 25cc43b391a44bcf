package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/redcycle-go/internal/application/common"
	appSession "github.com/andrescamacho/redcycle-go/internal/application/session"
	"github.com/andrescamacho/redcycle-go/internal/domain/material"
)

// UpdateMaterialCommand sets an inventory stock; negative amounts become zero
type UpdateMaterialCommand struct {
	Material string `validate:"required"`
	Kg       float64 `validate:"finite"`
}

func (*UpdateMaterialCommand) IsMutation() {}

// UpdateMaterialHandler handles the UpdateMaterial command
type UpdateMaterialHandler struct {
	lifecycle *appSession.Lifecycle
}

// NewUpdateMaterialHandler creates a new UpdateMaterialHandler
func NewUpdateMaterialHandler(lifecycle *appSession.Lifecycle) *UpdateMaterialHandler {
	return &UpdateMaterialHandler{lifecycle: lifecycle}
}

// Handle executes the UpdateMaterial command
func (h *UpdateMaterialHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*UpdateMaterialCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpdateMaterialCommand")
	}

	if err := common.ValidateRequest(cmd); err != nil {
		return nil, err
	}

	s := h.lifecycle.Session()
	key := material.Key(cmd.Material)
	s.UpdateMaterial(key, cmd.Kg)

	stock, _ := s.Stock(key)
	return &MaterialResponse{Stock: stock}, nil
}
