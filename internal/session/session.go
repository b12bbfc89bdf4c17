// Package session holds per-user conversation state. Each user owns one
// Context for the lifetime of their interaction; contexts live in memory
// only and expire after a period of inactivity.
package session

import "github.com/kiri-osint/CS2-Info-Hub-Bot/internal/catalog"

// Flow names the multi-step interaction a user is currently in.
type Flow string

const (
	FlowIdle                 Flow = "idle"
	FlowAwaitingSearchTerm   Flow = "awaiting_search_term"
	FlowShowingSearchResults Flow = "showing_search_results"
	FlowAwaitingAccountID    Flow = "awaiting_account_id"
	FlowShowingInventory     Flow = "showing_inventory"
)

// Purpose disambiguates what an awaited account id is for.
type Purpose string

const (
	PurposeProfile   Purpose = "profile"
	PurposeInventory Purpose = "inventory"
)

// Context is one user's conversation state. The state machine is its sole
// owner: it is created on first interaction, mutated only by transitions,
// and reset when a flow returns to idle. The active result set and Flow are
// always updated together.
type Context struct {
	UserID  string
	Flow    Flow
	Purpose Purpose

	// ActiveQuery is the last free-text search term; "back" from a price
	// detail re-executes it instead of replaying cached results.
	ActiveQuery string

	// Results holds catalog search results while FlowShowingSearchResults.
	Results []catalog.Item

	// Holdings is the fetched inventory snapshot while FlowShowingInventory.
	// Positions in this slice are the stable indexes pagination hands out;
	// they mean nothing once the slice is replaced.
	Holdings []string

	CurrentPage int

	// SubjectID is the external account being inspected.
	SubjectID string
}

// ResetToIdle discards all flow state, returning the context to idle.
func (c *Context) ResetToIdle() {
	c.Flow = FlowIdle
	c.Purpose = ""
	c.ActiveQuery = ""
	c.Results = nil
	c.Holdings = nil
	c.CurrentPage = 0
	c.SubjectID = ""
}
