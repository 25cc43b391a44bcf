package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/redcycle-go/internal/application/common"
	appSession "github.com/andrescamacho/redcycle-go/internal/application/session"
	"github.com/andrescamacho/redcycle-go/internal/domain/material"
	"github.com/andrescamacho/redcycle-go/internal/domain/mission"
	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
	"github.com/andrescamacho/redcycle-go/internal/domain/product"
)

// GetStateQuery reads the whole session
type GetStateQuery struct{}

// GetStateResponse is a read-only copy of every session store
type GetStateResponse struct {
	Inventory   []material.Stock
	InventoryKg float64
	WastePool   []material.PoolEntry
	WastePoolKg float64
	Products    []product.Product
	ProductKg   float64
	Resources   mission.Resources
	MissionDay  int
	Crew        []mission.Assignment
	Totals      processing.MassBalance
}

// GetStateHandler handles the GetState query
type GetStateHandler struct {
	lifecycle *appSession.Lifecycle
}

// NewGetStateHandler creates a new GetStateHandler
func NewGetStateHandler(lifecycle *appSession.Lifecycle) *GetStateHandler {
	return &GetStateHandler{lifecycle: lifecycle}
}

// Handle executes the GetState query
func (h *GetStateHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*GetStateQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetStateQuery")
	}

	s := h.lifecycle.Session()

	return &GetStateResponse{
		Inventory:   s.Inventory(),
		InventoryKg: s.InventoryKg(),
		WastePool:   s.WastePool(),
		WastePoolKg: s.WastePoolTotal(),
		Products:    s.Products(),
		ProductKg:   s.ProductKg(),
		Resources:   s.Resources(),
		MissionDay:  s.MissionDay(),
		Crew:        s.Crew(),
		Totals:      s.Totals(),
	}, nil
}
