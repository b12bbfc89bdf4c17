package transport

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kiri-osint/CS2-Info-Hub-Bot/internal/bot"
)

// mockHandler records the last event and answers with a canned render.
type mockHandler struct {
	lastText     *bot.TextEvent
	lastCallback *bot.CallbackEvent
}

func (m *mockHandler) HandleText(_ context.Context, ev bot.TextEvent) bot.RenderRequest {
	m.lastText = &ev
	return bot.RenderRequest{Text: "text reply"}
}

func (m *mockHandler) HandleCallback(_ context.Context, ev bot.CallbackEvent) bot.RenderRequest {
	m.lastCallback = &ev
	return bot.RenderRequest{Text: "callback reply"}
}

func postWebhook(t *testing.T, h *WebhookHandler, body []byte, sign func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	if sign != nil {
		sign(req)
	}
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)
	return rec
}

func TestWebhookTextUpdate(t *testing.T) {
	mock := &mockHandler{}
	h := NewWebhookHandler(mock, "", zap.NewNop())

	rec := postWebhook(t, h, []byte(`{"user_id":"u1","text":"hello"}`), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, mock.lastText)
	assert.Equal(t, "u1", mock.lastText.UserID)
	assert.Equal(t, "hello", mock.lastText.Text)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "text reply", resp.Text)
	assert.Equal(t, "u1", resp.UserID)
	assert.NotEmpty(t, resp.ID)
}

func TestWebhookCallbackUpdate(t *testing.T) {
	mock := &mockHandler{}
	h := NewWebhookHandler(mock, "", zap.NewNop())

	rec := postWebhook(t, h, []byte(`{"user_id":"u1","callback_token":"page:2"}`), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, mock.lastCallback)
	assert.Equal(t, "page:2", mock.lastCallback.Token)
	assert.Nil(t, mock.lastText)
}

func TestWebhookRejectsBadJSON(t *testing.T) {
	h := NewWebhookHandler(&mockHandler{}, "", zap.NewNop())
	rec := postWebhook(t, h, []byte(`{nope`), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookRequiresUserID(t *testing.T) {
	h := NewWebhookHandler(&mockHandler{}, "", zap.NewNop())
	rec := postWebhook(t, h, []byte(`{"text":"hi"}`), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookSignature(t *testing.T) {
	const secret = "hunter2"
	mock := &mockHandler{}
	h := NewWebhookHandler(mock, secret, zap.NewNop())
	body := []byte(`{"user_id":"u1","text":"hello"}`)

	// Unsigned request is rejected.
	rec := postWebhook(t, h, body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Correctly signed request goes through.
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	sig := hex.EncodeToString(mac.Sum(nil))
	rec = postWebhook(t, h, body, func(r *http.Request) {
		r.Header.Set(signatureHeader, sig)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, mock.lastText)

	// Tampered body fails verification.
	rec = postWebhook(t, h, []byte(`{"user_id":"eve","text":"hello"}`), func(r *http.Request) {
		r.Header.Set(signatureHeader, sig)
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServerRoutes(t *testing.T) {
	srv := New(Config{Port: 0}, &mockHandler{}, zap.NewNop())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := bytes.NewReader([]byte(`{"user_id":"u1","text":"hi"}`))
	resp2, err := http.Post(ts.URL+"/webhook", "application/json", body)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}
