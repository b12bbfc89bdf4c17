package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(time.Minute)

	sc := &Context{UserID: "u1", Flow: FlowAwaitingSearchTerm}
	s.Save(sc)

	got, found := s.Get("u1")
	require.True(t, found)
	assert.Equal(t, FlowAwaitingSearchTerm, got.Flow)

	s.Delete("u1")
	_, found = s.Get("u1")
	assert.False(t, found)
}

func TestGetOrCreateStartsIdle(t *testing.T) {
	s := NewStore(time.Minute)

	sc := s.GetOrCreate("u2")
	assert.Equal(t, FlowIdle, sc.Flow)
	assert.Equal(t, "u2", sc.UserID)

	sc.Flow = FlowShowingInventory
	s.Save(sc)

	again := s.GetOrCreate("u2")
	assert.Equal(t, FlowShowingInventory, again.Flow, "existing context is returned, not replaced")
}

func TestStoreExpiry(t *testing.T) {
	s := NewStore(10 * time.Millisecond)

	s.Save(&Context{UserID: "u3", Flow: FlowShowingInventory, Holdings: []string{"x"}})
	time.Sleep(30 * time.Millisecond)

	_, found := s.Get("u3")
	assert.False(t, found, "expired session reads as absent")
}

func TestResetToIdle(t *testing.T) {
	sc := &Context{
		UserID:      "u4",
		Flow:        FlowShowingInventory,
		Purpose:     PurposeInventory,
		ActiveQuery: "awp",
		Holdings:    []string{"a", "b"},
		CurrentPage: 3,
		SubjectID:   "76561198000000000",
	}
	sc.ResetToIdle()

	assert.Equal(t, FlowIdle, sc.Flow)
	assert.Empty(t, sc.ActiveQuery)
	assert.Nil(t, sc.Holdings)
	assert.Zero(t, sc.CurrentPage)
	assert.Empty(t, sc.SubjectID)
	assert.Equal(t, "u4", sc.UserID, "identity survives a reset")
}
