package bot

import (
	"strconv"
	"strings"
)

// TextEvent is a free-text message from the chat transport.
type TextEvent struct {
	UserID string
	Text   string
}

// CallbackEvent is a control tap from the chat transport, carrying the raw
// token the control was rendered with.
type CallbackEvent struct {
	UserID string
	Token  string
}

// Action is a callback token parsed into its closed variant set. Tokens are
// parsed exactly once, at the boundary; transitions switch on the variant
// and never inspect token strings again.
type Action interface{ isAction() }

// PageNav asks for a different page of the active result set.
type PageNav struct{ Page int }

// SelectIndex selects the item at a stable absolute index within the active
// result set.
type SelectIndex struct{ Index int }

// SelectID selects a catalog item by id.
type SelectID struct{ ID string }

// Back returns from a detail sub-view to the list it came from.
type Back struct{}

// Close dismisses the active view and returns the session to idle.
type Close struct{}

// Noop is the variant every unrecognized or deliberately inert token parses
// to. Handling it as a first-class action keeps "ignore unknown input" in
// one default transition instead of scattered suppression.
type Noop struct{}

func (PageNav) isAction()     {}
func (SelectIndex) isAction() {}
func (SelectID) isAction()    {}
func (Back) isAction()        {}
func (Close) isAction()       {}
func (Noop) isAction()        {}

// Token encodings, shared with the renderer.
const (
	tokenBack  = "back"
	tokenClose = "close"
	tokenNoop  = "noop"

	tokenPagePrefix        = "page:"
	tokenSelectIndexPrefix = "selectIndex:"
	tokenSelectIDPrefix    = "selectId:"
)

// ParseAction decodes a raw callback token. Anything it does not recognize,
// including numeric payloads that fail to parse, comes back as Noop.
func ParseAction(token string) Action {
	switch token {
	case tokenBack:
		return Back{}
	case tokenClose:
		return Close{}
	case tokenNoop:
		return Noop{}
	}

	switch {
	case strings.HasPrefix(token, tokenPagePrefix):
		n, err := strconv.Atoi(token[len(tokenPagePrefix):])
		if err != nil {
			return Noop{}
		}
		return PageNav{Page: n}

	case strings.HasPrefix(token, tokenSelectIndexPrefix):
		n, err := strconv.Atoi(token[len(tokenSelectIndexPrefix):])
		if err != nil {
			return Noop{}
		}
		return SelectIndex{Index: n}

	case strings.HasPrefix(token, tokenSelectIDPrefix):
		id := token[len(tokenSelectIDPrefix):]
		if id == "" {
			return Noop{}
		}
		return SelectID{ID: id}
	}

	return Noop{}
}
