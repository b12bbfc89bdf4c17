// Package bot drives the per-user conversation: it resolves each incoming
// text or callback event against the session's current flow, calls out to
// the catalog index or the Steam gateway as the transition requires, and
// produces the render request for the transport to deliver. Failures from
// the gateway arrive as sentinel values and leave this machine as
// user-visible notices; nothing in here is fatal to the process.
package bot

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kiri-osint/CS2-Info-Hub-Bot/internal/catalog"
	"github.com/kiri-osint/CS2-Info-Hub-Bot/internal/pagination"
	"github.com/kiri-osint/CS2-Info-Hub-Bot/internal/session"
	"github.com/kiri-osint/CS2-Info-Hub-Bot/internal/steam"
)

const (
	welcomeText = "👋 Welcome! Here you can find CS2 item prices."

	csPriceInfoText = "Counter-Strike 2 prices are fetched via the Steam Market using an unofficial API."
	botInfoText     = "CS2 Info Hub: item price search, inventory browsing, profile lookups and server stats."

	searchPromptText    = "Please type a skin name to search (e.g., 'Redline' or 'AWP Asiimov'):"
	inventoryPromptText = "Please enter the user's SteamID64 to view their inventory."
	profilePromptText   = "Please enter the user's SteamID64.\n\nYou can find it on sites like steamid.io by the user's profile link."

	invalidAccountIDText = "That doesn't look like a valid SteamID64. It must be 17 digits long."
	nothingFoundText     = "⚠️ Nothing found. Please try again."
	sessionExpiredText   = "Session expired. Please start over from the main menu."
	staleControlText     = "That control is no longer active."
)

// Machine is the session state machine. One Machine serves all users;
// per-user state lives in the session store, and events from different
// users never touch each other's context.
type Machine struct {
	index    *catalog.Index
	gateway  *steam.Client
	sessions *session.Store
	pageSize int
	log      *zap.Logger
}

// NewMachine wires the state machine to its collaborators.
func NewMachine(index *catalog.Index, gateway *steam.Client, sessions *session.Store, pageSize int, log *zap.Logger) *Machine {
	return &Machine{
		index:    index,
		gateway:  gateway,
		sessions: sessions,
		pageSize: pageSize,
		log:      log,
	}
}

// HandleText processes a free-text message from a user.
func (m *Machine) HandleText(ctx context.Context, ev TextEvent) RenderRequest {
	sc := m.sessions.GetOrCreate(ev.UserID)
	text := strings.TrimSpace(ev.Text)

	switch sc.Flow {
	case session.FlowAwaitingSearchTerm:
		return m.finishSearch(sc, text)
	case session.FlowAwaitingAccountID:
		return m.finishAccountID(ctx, sc, text)
	default:
		return m.routeMenu(ctx, sc, text)
	}
}

// routeMenu handles text outside an awaiting state. Menu taps may arrive in
// any flow; starting a new flow replaces the old result set and flow state
// together.
func (m *Machine) routeMenu(ctx context.Context, sc *session.Context, text string) RenderRequest {
	switch text {
	case "/start":
		return menuRender(welcomeText)

	case menuSearch:
		sc.ResetToIdle()
		sc.Flow = session.FlowAwaitingSearchTerm
		m.sessions.Save(sc)
		return RenderRequest{Text: searchPromptText}

	case menuInventory:
		return m.promptAccountID(sc, session.PurposeInventory, inventoryPromptText)

	case menuProfile:
		return m.promptAccountID(sc, session.PurposeProfile, profilePromptText)

	case menuStats:
		stats := m.gateway.FetchServerStats(ctx)
		if stats == nil {
			return RenderRequest{Text: "⚠️ Could not retrieve stats. The Valve stats page might be down or its layout changed."}
		}
		return RenderRequest{Text: statsText(stats)}

	case menuCSPrice:
		return menuRender(csPriceInfoText)

	case menuProfileLink, "/profile_steam":
		return profileLinkRender()

	case menuBotInfo:
		return menuRender(botInfoText)
	}

	if sc.Flow == session.FlowIdle {
		return menuRender(welcomeText)
	}
	// Stray text while a list view is showing: leave the view alone.
	return RenderRequest{Text: staleControlText, Alert: true}
}

func (m *Machine) promptAccountID(sc *session.Context, purpose session.Purpose, prompt string) RenderRequest {
	sc.ResetToIdle()
	sc.Flow = session.FlowAwaitingAccountID
	sc.Purpose = purpose
	m.sessions.Save(sc)
	return RenderRequest{Text: prompt}
}

func (m *Machine) finishSearch(sc *session.Context, query string) RenderRequest {
	results := m.index.Search(query)
	if len(results) == 0 {
		sc.ResetToIdle()
		m.sessions.Save(sc)
		return menuRender(nothingFoundText)
	}

	sc.Flow = session.FlowShowingSearchResults
	sc.ActiveQuery = query
	sc.Results = results
	sc.Holdings = nil
	sc.CurrentPage = 0
	m.sessions.Save(sc)

	return resultsRender(query, results)
}

func resultsRender(query string, results []catalog.Item) RenderRequest {
	return RenderRequest{
		Text:     fmt.Sprintf("Here's what I found for '%s' (up to 15 shown):", query),
		Controls: resultsKeyboard(results),
	}
}

// finishAccountID validates the submitted account id and, on the inventory
// path, fetches holdings. The validation check runs before any network
// call; an invalid id consumes the attempt and drops back to idle.
func (m *Machine) finishAccountID(ctx context.Context, sc *session.Context, text string) RenderRequest {
	purpose := sc.Purpose

	if !isAccountID(text) {
		sc.ResetToIdle()
		m.sessions.Save(sc)
		return menuRender(invalidAccountIDText)
	}

	switch purpose {
	case session.PurposeInventory:
		return m.showInventory(ctx, sc, text)
	case session.PurposeProfile:
		return m.showProfile(ctx, sc, text)
	default:
		sc.ResetToIdle()
		m.sessions.Save(sc)
		return menuRender(welcomeText)
	}
}

func (m *Machine) showInventory(ctx context.Context, sc *session.Context, accountID string) RenderRequest {
	holdings, errMsg := m.gateway.FetchHoldings(ctx, accountID)
	if errMsg != "" {
		sc.ResetToIdle()
		m.sessions.Save(sc)
		return menuRender("⚠️ " + errMsg)
	}

	sc.Flow = session.FlowShowingInventory
	sc.Holdings = holdings
	sc.Results = nil
	sc.SubjectID = accountID
	sc.CurrentPage = 0
	m.sessions.Save(sc)

	return m.inventoryRender(sc)
}

func (m *Machine) inventoryRender(sc *session.Context) RenderRequest {
	return RenderRequest{
		Text:     fmt.Sprintf("Inventory for %s (%d items):", sc.SubjectID, len(sc.Holdings)),
		Controls: inventoryKeyboard(sc.Holdings, sc.CurrentPage, m.pageSize),
	}
}

// showProfile renders the profile card and ends the flow; a shown profile
// is not a state, just a message with a close control.
func (m *Machine) showProfile(ctx context.Context, sc *session.Context, accountID string) RenderRequest {
	summary := m.gateway.FetchProfile(ctx, accountID)

	sc.ResetToIdle()
	m.sessions.Save(sc)

	if summary == nil {
		return menuRender("⚠️ Could not find this profile. It might be private or the SteamID is incorrect.")
	}

	return RenderRequest{
		Text:     profileCard(summary),
		Photo:    summary.AvatarFull,
		Controls: [][]Control{{{Label: "Close", Token: tokenClose}}},
	}
}

// HandleCallback processes a control tap. A callback for a session that no
// longer exists (expired or lost to a restart) is state loss: the user gets
// an alert and a fresh main menu rather than silence.
func (m *Machine) HandleCallback(ctx context.Context, ev CallbackEvent) RenderRequest {
	action := ParseAction(ev.Token)
	if _, ok := action.(Noop); ok {
		return RenderRequest{Noop: true}
	}

	sc, found := m.sessions.Get(ev.UserID)
	if !found {
		m.log.Warn("callback for missing session", zap.String("user_id", ev.UserID), zap.String("token", ev.Token))
		r := menuRender(sessionExpiredText)
		r.Alert = true
		return r
	}

	switch sc.Flow {
	case session.FlowShowingSearchResults:
		return m.searchCallback(ctx, sc, action)
	case session.FlowShowingInventory:
		return m.inventoryCallback(ctx, sc, action)
	default:
		if _, ok := action.(Close); ok {
			sc.ResetToIdle()
			m.sessions.Save(sc)
			return menuRender("Closed.")
		}
		return RenderRequest{Text: staleControlText, Alert: true}
	}
}

func (m *Machine) searchCallback(ctx context.Context, sc *session.Context, action Action) RenderRequest {
	switch a := action.(type) {
	case SelectID:
		item, ok := m.index.Get(a.ID)
		if !ok {
			return RenderRequest{Text: "Error: Item not found in database.", Alert: true}
		}
		// Price detail is a sub-view; the flow and query stay put for "back".
		return m.priceRender(ctx, item.Name, "« Back to Results",
			fmt.Sprintf("⚠️ Could not retrieve price for '%s'. It might not be marketable or the Steam API is down.", item.Name))

	case Back:
		if sc.ActiveQuery == "" {
			sc.ResetToIdle()
			m.sessions.Save(sc)
			r := menuRender(sessionExpiredText)
			r.Alert = true
			return r
		}
		// Re-run the query rather than replaying cached results, so the
		// list reflects the current index.
		results := m.index.Search(sc.ActiveQuery)
		sc.Results = results
		m.sessions.Save(sc)
		return resultsRender(sc.ActiveQuery, results)

	default:
		return RenderRequest{Text: staleControlText, Alert: true}
	}
}

func (m *Machine) inventoryCallback(ctx context.Context, sc *session.Context, action Action) RenderRequest {
	switch a := action.(type) {
	case PageNav:
		// Navigation only moves the window; the holdings snapshot is not
		// refetched. Stale page numbers clamp instead of failing.
		page := pagination.Window(sc.Holdings, a.Page, m.pageSize)
		sc.CurrentPage = page.Number
		m.sessions.Save(sc)
		return m.inventoryRender(sc)

	case SelectIndex:
		if a.Index < 0 || a.Index >= len(sc.Holdings) {
			return RenderRequest{Text: "Error: Inventory data lost or item index out of bounds.", Alert: true}
		}
		name := sc.Holdings[a.Index]
		return m.priceRender(ctx, name, "« Back to Inventory",
			fmt.Sprintf("⚠️ Could not retrieve price for '%s'.", name))

	case Back:
		// The fetched snapshot is reused as-is; an inventory must not
		// silently change under the user mid-browse.
		return m.inventoryRender(sc)

	case Close:
		sc.ResetToIdle()
		m.sessions.Save(sc)
		return menuRender("Inventory closed.")

	default:
		return RenderRequest{Text: staleControlText, Alert: true}
	}
}

// priceRender fetches and formats a price card. Every price failure renders
// the same generic unavailable message.
func (m *Machine) priceRender(ctx context.Context, itemName, backLabel, failText string) RenderRequest {
	quote := m.gateway.FetchPrice(ctx, itemName)
	if quote == nil {
		return RenderRequest{Text: failText, Controls: backRow(backLabel)}
	}
	return RenderRequest{Text: priceCard(itemName, quote), Controls: backRow(backLabel)}
}

// isAccountID reports whether s is a well-formed SteamID64: exactly 17
// digits.
func isAccountID(s string) bool {
	if len(s) != 17 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
