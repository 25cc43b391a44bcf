package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/redcycle-go/internal/domain/shared"
)

func TestClosestKey(t *testing.T) {
	candidates := []string{"foam_pack", "textiles", "bubble_wrap", "EVA_waste"}

	tests := []struct {
		input string
		want  string
		found bool
	}{
		{"foam_pak", "foam_pack", true},
		{"textile", "textiles", true},
		{"eva_waste", "", false}, // exact match ignoring case
		{"bub", "bubble_wrap", true},
		{"regolith", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, found := closestKey(tt.input, candidates)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithHint(t *testing.T) {
	err := withHint(shared.NewUnknownKeyError("module", "recyle"), moduleCandidates())
	assert.EqualError(t, err, `unknown module: "recyle" (did you mean "recycle"?)`)

	var unknown *shared.UnknownKeyError
	assert.True(t, errors.As(err, &unknown))

	plain := errors.New("boom")
	assert.Same(t, plain, withHint(plain, moduleCandidates()))
}

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "postgres://rc:xxxxx@db:5432/redcycle",
		maskPassword("postgres://rc:secret@db:5432/redcycle"))
	assert.Equal(t, "postgres://db/redcycle", maskPassword("postgres://db/redcycle"))
}

func TestParseInputs(t *testing.T) {
	staged, err := parseInputs([]string{"foam_pack=12.5", " textiles = 3 "})
	assert.NoError(t, err)
	assert.Len(t, staged, 2)
	assert.Equal(t, "textiles", staged[1].Material)
	assert.Equal(t, 3.0, staged[1].Kg)
}
