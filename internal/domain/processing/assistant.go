package processing

import (
	"fmt"
	"strconv"

	"github.com/andrescamacho/redcycle-go/internal/domain/material"
)

// suggestThreshold is the stock size above which the assistant recommends
// a module.
const suggestThreshold = 30

const balancedAdvice = "Maintain balanced processing. Try making decorations or converting carbon residue into filament."

// Suggestion is the assistant's recommendation for the next batch.
type Suggestion struct {
	Material     material.Key
	MaterialName string
	Kg           float64
	Module       ModuleID
	Message      string
}

// HasTarget reports whether the suggestion names a material and module.
func (s Suggestion) HasTarget() bool { return s.Material != "" }

// ModuleForMaterial returns the module the assistant routes a material to.
func ModuleForMaterial(key material.Key) ModuleID {
	switch key {
	case material.FoamPack:
		return Foam
	case material.AluminumStruts, material.Polycomposite:
		return Recycle
	case material.Textiles, material.BubbleWrap:
		return Habitat
	case material.CarbonResidue:
		return Lab
	default:
		return Storage
	}
}

// Suggest recommends processing the largest stock when it exceeds the
// threshold. Ties go to the stock listed first.
func Suggest(stocks []material.Stock) Suggestion {
	var largest material.Stock
	for _, s := range stocks {
		if s.Kg > largest.Kg {
			largest = s
		}
	}

	if largest.Key == "" || largest.Kg <= suggestThreshold {
		return Suggestion{Message: balancedAdvice}
	}

	module := ModuleForMaterial(largest.Key)
	title := module.String()
	if m, ok := LookupModule(module); ok {
		title = m.Title
	}

	return Suggestion{
		Material:     largest.Key,
		MaterialName: largest.Name,
		Kg:           largest.Kg,
		Module:       module,
		Message: fmt.Sprintf("You have %s kg of %s. Consider processing it at the %s.",
			strconv.FormatFloat(largest.Kg, 'f', -1, 64), largest.Name, title),
	}
}
