package processing

import (
	"fmt"

	"github.com/andrescamacho/redcycle-go/internal/domain/shared"
)

// ErrNothingStaged is returned when a batch is submitted with no inputs.
var ErrNothingStaged = shared.NewDomainError("no materials staged")

// InvalidStagedInputError represents a staged input the engine cannot draw
type InvalidStagedInputError struct {
	Index  int
	Key    string
	Kg     float64
	Reason string
}

func (*InvalidStagedInputError) Rejected() {}

func (e *InvalidStagedInputError) Error() string {
	return fmt.Sprintf("invalid staged input #%d (%s, %vkg): %s", e.Index, e.Key, e.Kg, e.Reason)
}
