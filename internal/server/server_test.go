package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buddyai-core/server/internal/chat"
	"github.com/buddyai-core/server/internal/chat/repo"
	"github.com/buddyai-core/server/internal/core"
	"github.com/buddyai-core/server/internal/llm"
)

// newTestServer wires the chat surface against in-process state. The LLM
// client stays nil, so every chat turn yields the connectivity reply.
func newTestServer() *Server {
	chatSvc := chat.NewService(
		chat.Config{AssistantName: "Buddy", PlatformName: "DealKart", HistoryWindow: 10},
		nil,
		llm.RetryConfig{MaxAttempts: 1, BaseDelay: time.Millisecond},
		repo.NewMemoryRepository(),
		nil,
	)
	return New(Config{Port: 0, DefaultUserID: 7413}, core.Testing, chatSvc, nil, nil, nil, nil, nil)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestChatEndpointRejectsEmptyMessage(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/api/chat", map[string]any{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
}

func TestChatEndpointAlwaysCarriesConversationID(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/api/chat", map[string]any{"message": "hello"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chat.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ConversationID)
	assert.Contains(t, resp.Response, "trouble connecting")
}

func TestQuickReplyEndpointRequiresQuestionType(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodPost, "/api/quick-reply", map[string]any{"conversation_id": "conv_x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetConversationUnknownIDReturnsEmptyState(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodGet, "/api/conversation/conv_missing", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var conv chat.Conversation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conv))
	assert.Empty(t, conv.Messages)
	assert.Empty(t, conv.Context)
	assert.Empty(t, conv.Metadata)
}

func TestDeleteConversationEndpoint(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s, http.MethodDelete, "/api/conversation/conv_x", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
}

func TestCORSAllowsConfiguredOriginOnly(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
