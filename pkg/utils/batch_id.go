package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateBatchID creates a short, human-readable identifier for one
// processing batch.
// Format: {module}-{8charHexUUID}
//
// Example:
//   - Input: module="foam"
//   - Output: "foam-a3f8e2b1"
//
// An empty module yields "batch-{8charHexUUID}".
func GenerateBatchID(module string) string {
	prefix := strings.ToLower(strings.TrimSpace(module))
	if prefix == "" {
		prefix = "batch"
	}
	return prefix + "-" + generateShortUUID()
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
