package transport

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler serves updates over a persistent websocket, one JSON Update per
// message in, one JSON Response per message out.
type WSHandler struct {
	handler Handler
	log     *zap.Logger
}

// NewWSHandler creates a websocket endpoint.
func NewWSHandler(handler Handler, log *zap.Logger) *WSHandler {
	return &WSHandler{handler: handler, log: log}
}

// HandleWS upgrades the connection and pumps updates until the peer goes
// away.
func (h *WSHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	for {
		var upd Update
		if err := conn.ReadJSON(&upd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("websocket read", zap.Error(err))
			}
			return
		}

		if upd.UserID == "" {
			h.writeError(conn, "user_id is required")
			continue
		}

		resp := dispatch(r.Context(), h.handler, upd)
		if err := conn.WriteJSON(resp); err != nil {
			h.log.Error("websocket write", zap.Error(err))
			return
		}
	}
}

func (h *WSHandler) writeError(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(map[string]string{"error": message}); err != nil {
		h.log.Error("websocket write", zap.Error(err))
	}
}
