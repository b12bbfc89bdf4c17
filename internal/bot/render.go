package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/kiri-osint/CS2-Info-Hub-Bot/internal/catalog"
	"github.com/kiri-osint/CS2-Info-Hub-Bot/internal/pagination"
	"github.com/kiri-osint/CS2-Info-Hub-Bot/internal/steam"
)

// Control is one tappable element in a rendered keyboard. A control with a
// Token reports back as a CallbackEvent carrying that token; a control
// without one sends its label as a plain text message.
type Control struct {
	Label string `json:"label"`
	Token string `json:"token,omitempty"`
	URL   string `json:"url,omitempty"`
}

// RenderRequest is what the state machine hands the chat transport after a
// transition: text plus control rows, and presentation hints.
type RenderRequest struct {
	Text     string      `json:"text"`
	Controls [][]Control `json:"controls,omitempty"`

	// Alert marks a transient error notice (shown as a popup rather than a
	// message on platforms that distinguish the two).
	Alert bool `json:"alert,omitempty"`

	// Photo is an image URL to attach, used by the profile card.
	Photo string `json:"photo,omitempty"`

	// Noop means there is nothing to render; the transport just
	// acknowledges the event.
	Noop bool `json:"noop,omitempty"`
}

// Main menu labels. Menu taps arrive back as plain text events.
const (
	menuSearch      = "Skin Price Search"
	menuInventory   = "View Inventory"
	menuProfile     = "Steam Profile Search"
	menuStats       = "Server Stats"
	menuCSPrice     = "CS Price"
	menuProfileLink = "Steam Profile"
	menuBotInfo     = "Bot Info"
)

// profileLinkURL is the community profile the "Steam Profile" shortcut
// points at.
const profileLinkURL = "https://steamcommunity.com/profiles/123456789"

func mainMenu() [][]Control {
	return [][]Control{
		{{Label: menuSearch}, {Label: menuInventory}},
		{{Label: menuProfile}},
		{{Label: menuStats}},
		{{Label: menuCSPrice}, {Label: menuProfileLink}},
		{{Label: menuBotInfo}},
	}
}

// menuRender pairs a message with the main menu, the shape every return to
// idle uses.
func menuRender(text string) RenderRequest {
	return RenderRequest{Text: text, Controls: mainMenu()}
}

// profileLinkRender is the "Steam Profile" shortcut: a link button plus a
// way back.
func profileLinkRender() RenderRequest {
	return RenderRequest{
		Text: "Steam Profile Link",
		Controls: [][]Control{
			{{Label: menuProfileLink, URL: profileLinkURL}},
			{{Label: "Back", Token: tokenClose}},
		},
	}
}

func resultsKeyboard(results []catalog.Item) [][]Control {
	rows := make([][]Control, 0, len(results))
	for _, item := range results {
		rows = append(rows, []Control{{
			Label: item.Name,
			Token: tokenSelectIDPrefix + item.ID,
		}})
	}
	return rows
}

// shortLabel trims long market names so they fit on a keyboard button.
func shortLabel(name string) string {
	if len(name) > 43 {
		return name[:40] + "..."
	}
	return name
}

// inventoryKeyboard windows the holdings onto one page of item buttons, two
// per row, followed by a navigation row and a close row. Item buttons carry
// the holding's stable absolute index, so a tap resolves to the same item no
// matter which page was last rendered.
func inventoryKeyboard(holdings []string, pageNum, pageSize int) [][]Control {
	page := pagination.Window(holdings, pageNum, pageSize)

	var rows [][]Control
	var row []Control
	for i, name := range page.Items {
		row = append(row, Control{
			Label: shortLabel(name),
			Token: fmt.Sprintf("%s%d", tokenSelectIndexPrefix, page.StableIndex(i)),
		})
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	var nav []Control
	if page.HasPrev {
		nav = append(nav, Control{Label: "« Prev", Token: fmt.Sprintf("%s%d", tokenPagePrefix, page.Number-1)})
	}
	nav = append(nav, Control{
		Label: fmt.Sprintf("Page %d/%d", page.Number+1, page.TotalPages),
		Token: tokenNoop,
	})
	if page.HasNext {
		nav = append(nav, Control{Label: "Next »", Token: fmt.Sprintf("%s%d", tokenPagePrefix, page.Number+1)})
	}
	rows = append(rows, nav)

	rows = append(rows, []Control{{Label: "Close Inventory", Token: tokenClose}})
	return rows
}

func backRow(label string) [][]Control {
	return [][]Control{{{Label: label, Token: tokenBack}}}
}

func priceCard(name string, quote *steam.PriceQuote) string {
	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}
	return fmt.Sprintf(
		"<b>%s</b>\n\n"+
			"📉 <b>Lowest Price:</b> %s\n"+
			"📊 <b>Median Price:</b> %s\n"+
			"📦 <b>Volume (24h):</b> %s sold",
		name, orNA(quote.LowestPrice), orNA(quote.MedianPrice), orNA(quote.Volume))
}

func statsText(stats *steam.ServerStats) string {
	return fmt.Sprintf(
		"<b>Steam Server Stats</b>\n\n"+
			"🟢 <b>Players Online:</b> %s\n"+
			"🎮 <b>Players In-Game:</b> %s",
		stats.Online, stats.InGame)
}

var personaStates = map[int]string{
	0: "🔴 Offline",
	1: "🟢 Online",
	2: "🟡 Busy",
	3: "🟡 Away",
	4: "🟡 Snooze",
	5: "🔵 Looking to trade",
	6: "🔵 Looking to play",
}

func profileCard(p *steam.ProfileSummary) string {
	status, ok := personaStates[p.PersonaState]
	if !ok {
		status = "❓ Unknown"
	}
	// Visibility state 3 is public; anything else hides presence.
	if p.CommunityVisibilityState != 3 {
		status = "🔒 Private Profile"
	}
	if p.GameExtraInfo != "" {
		status = "🎮 Playing: " + p.GameExtraInfo
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n%s\n\n", p.PersonaName, status)
	if p.RealName != "" {
		fmt.Fprintf(&b, "👤 <b>Real Name:</b> %s\n", p.RealName)
	}
	if p.TimeCreated > 0 {
		fmt.Fprintf(&b, "📅 <b>Joined Steam:</b> %s\n",
			time.Unix(p.TimeCreated, 0).UTC().Format("Jan 02, 2006"))
	}
	profileURL := p.ProfileURL
	if profileURL == "" {
		profileURL = "N/A"
	}
	fmt.Fprintf(&b, "🔗 <b>Profile URL:</b> %s\n", profileURL)
	return b.String()
}
