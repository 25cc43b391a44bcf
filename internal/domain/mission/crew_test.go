package mission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
)

func TestCrewAssignment_LastWriteWins(t *testing.T) {
	crew := NewCrewAssignment()

	crew.Assign("crew1", processing.Foam)
	crew.Assign("crew1", processing.Lab)

	assert.Equal(t, processing.Lab, crew.ModuleOf("crew1"))
	assert.Equal(t, 0, crew.CountAt(processing.Foam))
	assert.Equal(t, 1, crew.CountAt(processing.Lab))
}

func TestCrewAssignment_Toggle(t *testing.T) {
	crew := NewCrewAssignment()

	assert.Equal(t, processing.Foam, crew.Toggle("crew2", processing.Foam))
	assert.Equal(t, processing.ModuleID(""), crew.Toggle("crew2", processing.Foam))
	assert.Equal(t, processing.Lab, crew.Toggle("crew2", processing.Lab))

	assignments := crew.Assignments()
	require.Len(t, assignments, 1)
	assert.True(t, assignments[0].Assigned())
}

func TestCrewAssignment_CountAt(t *testing.T) {
	crew := NewCrewAssignment()
	crew.Assign("crew1", processing.Recycle)
	crew.Assign("crew2", processing.Recycle)
	crew.Assign("crew3", "")

	assert.Equal(t, 2, crew.CountAt(processing.Recycle))
	assert.Equal(t, 0, crew.CountAt(""))
	assert.Len(t, crew.Assignments(), 3)

	crew.Clear()
	assert.Empty(t, crew.Assignments())
}

func TestIsRosterMember(t *testing.T) {
	assert.True(t, IsRosterMember("crew4"))
	assert.False(t, IsRosterMember("crew5"))
}
