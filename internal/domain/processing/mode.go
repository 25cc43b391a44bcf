package processing

import (
	"fmt"
	"strings"
)

// Mode selects between full processing and the cheaper, lower-yield quick pass.
type Mode string

const (
	ModeFull  Mode = "full"
	ModeQuick Mode = "quick"
)

// ParseMode converts a string to a Mode (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeFull, "":
		return ModeFull, nil
	case ModeQuick:
		return ModeQuick, nil
	default:
		return "", fmt.Errorf("invalid processing mode %q: must be full or quick", s)
	}
}

// EcoTier is the habitat-wide resource saving setting.
type EcoTier string

const (
	EcoOff   EcoTier = "off"
	EcoOn    EcoTier = "eco"
	EcoUltra EcoTier = "ultra"
)

// ParseEcoTier converts a string to an EcoTier (case-insensitive).
func ParseEcoTier(s string) (EcoTier, error) {
	switch EcoTier(strings.ToLower(strings.TrimSpace(s))) {
	case EcoOff, "":
		return EcoOff, nil
	case EcoOn:
		return EcoOn, nil
	case EcoUltra:
		return EcoUltra, nil
	default:
		return "", fmt.Errorf("invalid eco tier %q: must be off, eco or ultra", s)
	}
}

// Optimize reports whether the tier enables the engine's efficiency bonus.
func (t EcoTier) Optimize() bool {
	return t == EcoOn || t == EcoUltra
}

// energyFactor and waterFactor scale the resource cost of a batch.
func (t EcoTier) energyFactor() float64 {
	switch t {
	case EcoOn:
		return 0.8
	case EcoUltra:
		return 0.6
	default:
		return 1
	}
}

func (t EcoTier) waterFactor() float64 {
	switch t {
	case EcoOn:
		return 0.8
	case EcoUltra:
		return 0.5
	default:
		return 1
	}
}
