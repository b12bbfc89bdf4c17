package transport

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// signatureHeader carries the hex HMAC-SHA256 of the request body, keyed
// with the shared webhook secret.
const signatureHeader = "X-CSHub-Signature"

// WebhookHandler receives platform updates as HTTP POSTs.
type WebhookHandler struct {
	handler Handler
	secret  string
	log     *zap.Logger
}

// NewWebhookHandler creates a webhook endpoint. An empty secret disables
// signature verification.
func NewWebhookHandler(handler Handler, secret string, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{handler: handler, secret: secret, log: log}
}

// HandleUpdate handles one incoming update (HTTP POST).
func (h *WebhookHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if h.secret != "" && !h.verifySignature(r, body) {
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var upd Update
	if err := json.Unmarshal(body, &upd); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if upd.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	resp := dispatch(r.Context(), h.handler, upd)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Error("writing webhook response", zap.Error(err))
	}
}

func (h *WebhookHandler) verifySignature(r *http.Request, body []byte) bool {
	signature := r.Header.Get(signatureHeader)
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
