package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestViewState_Idle tests the idle variant.
func TestViewState_Idle(t *testing.T) {
	v := IdleView()
	assert.Equal(t, ViewIdle, v.Kind())

	id, ok := v.NodeID()
	assert.False(t, ok)
	assert.Empty(t, id)
}

// TestViewState_Selected tests the selected variant.
func TestViewState_Selected(t *testing.T) {
	v := SelectedView("node1")
	assert.Equal(t, ViewSelected, v.Kind())

	id, ok := v.NodeID()
	assert.True(t, ok)
	assert.Equal(t, "node1", id)
}

// TestViewState_EditingCode tests the editing variant.
func TestViewState_EditingCode(t *testing.T) {
	v := EditingCodeView("node2")
	assert.Equal(t, ViewEditingCode, v.Kind())

	id, ok := v.NodeID()
	assert.True(t, ok)
	assert.Equal(t, "node2", id)
}

// TestViewKind_String tests log names.
func TestViewKind_String(t *testing.T) {
	assert.Equal(t, "idle", ViewIdle.String())
	assert.Equal(t, "selected", ViewSelected.String())
	assert.Equal(t, "editing-code", ViewEditingCode.String())
	assert.Equal(t, "unknown", ViewKind(99).String())
}
