package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/redcycle-go/internal/application/common"
	appSession "github.com/andrescamacho/redcycle-go/internal/application/session"
	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
)

// SuggestQuery asks the assistant what to process next
type SuggestQuery struct{}

// SuggestHandler handles the Suggest query
type SuggestHandler struct {
	lifecycle *appSession.Lifecycle
}

// NewSuggestHandler creates a new SuggestHandler
func NewSuggestHandler(lifecycle *appSession.Lifecycle) *SuggestHandler {
	return &SuggestHandler{lifecycle: lifecycle}
}

// Handle executes the Suggest query; the response is a processing.Suggestion
func (h *SuggestHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*SuggestQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *SuggestQuery")
	}

	suggestion := processing.Suggest(h.lifecycle.Session().Inventory())
	return &suggestion, nil
}
