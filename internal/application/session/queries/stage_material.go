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

// StageMaterialQuery computes how much of a stock one drop on the workbench stages
type StageMaterialQuery struct {
	Material string `validate:"required"`
}

// StageMaterialResponse describes a staged drop
type StageMaterialResponse struct {
	Material  material.Key
	Name      string
	Available float64
	PooledKg  float64
	StageKg   float64
}

// StageMaterialHandler handles the StageMaterial query
type StageMaterialHandler struct {
	lifecycle *appSession.Lifecycle
}

// NewStageMaterialHandler creates a new StageMaterialHandler
func NewStageMaterialHandler(lifecycle *appSession.Lifecycle) *StageMaterialHandler {
	return &StageMaterialHandler{lifecycle: lifecycle}
}

// Handle executes the StageMaterial query
func (h *StageMaterialHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*StageMaterialQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *StageMaterialQuery")
	}

	if err := common.ValidateRequest(query); err != nil {
		return nil, err
	}

	s := h.lifecycle.Session()
	key := material.Key(query.Material)
	stock, found := s.Stock(key)
	if !found {
		return nil, shared.NewUnknownKeyError("material", query.Material)
	}

	return &StageMaterialResponse{
		Material:  key,
		Name:      stock.Name,
		Available: stock.Kg,
		PooledKg:  s.PooledKg(key),
		StageKg:   processing.StageAmount(stock.Kg),
	}, nil
}
