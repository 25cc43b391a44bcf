package session

import (
	"fmt"

	"github.com/andrescamacho/redcycle-go/internal/domain/shared"
)

// InsufficientResourcesError is returned when a batch cannot be paid for.
type InsufficientResourcesError struct {
	*shared.DomainError
	Resource  string
	Required  float64
	Available float64
}

func NewInsufficientResourcesError(resource string, required, available float64) *InsufficientResourcesError {
	return &InsufficientResourcesError{
		DomainError: shared.NewDomainError(fmt.Sprintf("not enough %s: need %v, have %v", resource, required, available)),
		Resource:    resource,
		Required:    required,
		Available:   available,
	}
}
