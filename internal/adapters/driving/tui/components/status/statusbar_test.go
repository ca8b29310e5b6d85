package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBar_StartsReady(t *testing.T) {
	b := NewBar(nil, nil)

	assert.Equal(t, StateReady, b.State())
	assert.Contains(t, b.View(), "Ready")
}

func TestBar_Loading(t *testing.T) {
	b := NewBar(nil, nil)

	b.SetState(StateLoading)

	assert.Contains(t, b.View(), "Loading")
}

func TestBar_Searching(t *testing.T) {
	b := NewBar(nil, nil)

	b.SetState(StateSearching)

	assert.Contains(t, b.View(), "Searching")
}

func TestBar_Error_WithMessage(t *testing.T) {
	b := NewBar(nil, nil)

	b.SetState(StateError)
	b.SetMessage("store unavailable")

	view := b.View()
	assert.Contains(t, view, "Error: store unavailable")
}

func TestBar_Error_WithoutMessage(t *testing.T) {
	b := NewBar(nil, nil)

	b.SetState(StateError)

	assert.Contains(t, b.View(), "Error")
}

func TestBar_Results_ShowsMessage(t *testing.T) {
	b := NewBar(nil, nil)

	b.SetState(StateResults)
	b.SetResultCount(2)
	b.SetMessage(`2 result(s) for "vpn"`)

	view := b.View()
	assert.Contains(t, view, `2 result(s) for "vpn"`)
	// Results mode switches the hints to the browse bindings.
	assert.Contains(t, view, "add document")
}

func TestBar_Ready_ShowsDocumentCount(t *testing.T) {
	b := NewBar(nil, nil)

	b.SetResultCount(5)

	assert.Contains(t, b.View(), "5 document(s)")
}

func TestBar_Clear(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetState(StateError)
	b.SetMessage("boom")
	b.SetResultCount(3)

	b.Clear()

	assert.Equal(t, StateReady, b.State())
	assert.Empty(t, b.Message())
	assert.Contains(t, b.View(), "Ready")
}
