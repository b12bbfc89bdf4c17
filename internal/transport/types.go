// Package transport is the chat-platform boundary. It decodes platform
// updates into the state machine's event contract and carries render
// requests back; it holds no conversation state of its own.
package transport

import (
	"context"

	"github.com/google/uuid"

	"github.com/kiri-osint/CS2-Info-Hub-Bot/internal/bot"
)

// Update is one event delivered by the chat platform: either a text message
// or a control tap carrying a callback token.
type Update struct {
	UserID        string `json:"user_id"`
	Text          string `json:"text,omitempty"`
	CallbackToken string `json:"callback_token,omitempty"`
}

// Response is a render request addressed back to its user.
type Response struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	bot.RenderRequest
}

// Handler processes decoded updates. The session state machine is the one
// implementation in production.
type Handler interface {
	HandleText(ctx context.Context, ev bot.TextEvent) bot.RenderRequest
	HandleCallback(ctx context.Context, ev bot.CallbackEvent) bot.RenderRequest
}

// dispatch routes an update to the handler. An update with a callback token
// is a control tap; anything else is text.
func dispatch(ctx context.Context, h Handler, upd Update) Response {
	var rr bot.RenderRequest
	if upd.CallbackToken != "" {
		rr = h.HandleCallback(ctx, bot.CallbackEvent{UserID: upd.UserID, Token: upd.CallbackToken})
	} else {
		rr = h.HandleText(ctx, bot.TextEvent{UserID: upd.UserID, Text: upd.Text})
	}
	return Response{
		ID:            uuid.NewString(),
		UserID:        upd.UserID,
		RenderRequest: rr,
	}
}
