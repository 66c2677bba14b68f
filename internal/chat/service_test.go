package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buddyai-core/server/internal/chat/repo"
	"github.com/buddyai-core/server/internal/llm"
	"github.com/buddyai-core/server/internal/model"
)

// scriptedClient replays a fixed sequence of outcomes and records every
// outbound message batch.
type scriptedClient struct {
	mu       sync.Mutex
	outcomes []func() (*schema.Message, error)
	calls    [][]*schema.Message
}

func (c *scriptedClient) Generate(_ context.Context, messages []*schema.Message) (*schema.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, messages)
	if len(c.outcomes) == 0 {
		return schema.AssistantMessage("ok", nil), nil
	}
	next := c.outcomes[0]
	c.outcomes = c.outcomes[1:]
	return next()
}

func reply(text string) func() (*schema.Message, error) {
	return func() (*schema.Message, error) { return schema.AssistantMessage(text, nil), nil }
}

func failure(text string) func() (*schema.Message, error) {
	return func() (*schema.Message, error) { return nil, fmt.Errorf("%s", text) }
}

type fakeSearcher struct {
	mu       sync.Mutex
	keywords []string
	results  map[string][]model.Product
	err      error
}

func (f *fakeSearcher) SearchProducts(_ context.Context, keyword, _ string, _, _ *float64) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keywords = append(f.keywords, keyword)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[keyword], nil
}

func newTestService(client llm.Client, searcher ProductSearcher) (*Service, *repo.MemoryRepository) {
	conversations := repo.NewMemoryRepository()
	retry := llm.RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond}
	return NewService(Config{AssistantName: "Buddy", PlatformName: "DealKart", HistoryWindow: 10}, client, retry, conversations, searcher), conversations
}

func TestChatFirstTurnMintsConversationAndPersistsBothMessages(t *testing.T) {
	client := &scriptedClient{outcomes: []func() (*schema.Message, error){reply("Hello! How can I help?")}}
	svc, conversations := newTestService(client, nil)

	resp, err := svc.Chat(context.Background(), Request{Message: "hello"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.ConversationID, "conv_"))
	assert.Equal(t, "Hello! How can I help?", resp.Response)
	_, err = time.Parse(time.RFC3339, resp.Timestamp)
	assert.NoError(t, err)
	assert.Empty(t, resp.Products)

	history, err := conversations.History(context.Background(), resp.ConversationID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, schema.User, history[0].Role)
	assert.Equal(t, "hello", history[0].Content)
	assert.Equal(t, schema.Assistant, history[1].Role)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	svc, _ := newTestService(&scriptedClient{}, nil)

	_, err := svc.Chat(context.Background(), Request{Message: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestChatWindowCapsOutboundMessages(t *testing.T) {
	client := &scriptedClient{outcomes: []func() (*schema.Message, error){reply("noted")}}
	svc, conversations := newTestService(client, nil)

	ctx := context.Background()
	conversationID := "conv_window"
	for i := 0; i < 15; i++ {
		require.NoError(t, conversations.AppendMessages(ctx, conversationID,
			schema.UserMessage(fmt.Sprintf("question %d", i)),
			schema.AssistantMessage(fmt.Sprintf("answer %d", i), nil),
		))
	}

	_, err := svc.Chat(ctx, Request{ConversationID: conversationID, Message: "latest question"})
	require.NoError(t, err)

	require.Len(t, client.calls, 1)
	sent := client.calls[0]
	// system prompt plus the ten most recent messages, the staged turn last
	require.Len(t, sent, 11)
	assert.Equal(t, schema.System, sent[0].Role)
	assert.Equal(t, "latest question", sent[len(sent)-1].Content)
}

func TestChatRetriesRateLimitThenSucceeds(t *testing.T) {
	client := &scriptedClient{outcomes: []func() (*schema.Message, error){
		failure("429 Too Many Requests"),
		reply("recovered"),
	}}
	svc, conversations := newTestService(client, nil)

	resp, err := svc.Chat(context.Background(), Request{Message: "hello"})
	require.NoError(t, err)

	assert.Equal(t, "recovered", resp.Response)
	assert.Len(t, client.calls, 2)

	history, err := conversations.History(context.Background(), resp.ConversationID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestChatExhaustedRateLimitReturnsBusyReplyAndPersistsNothing(t *testing.T) {
	client := &scriptedClient{outcomes: []func() (*schema.Message, error){
		failure("429 Too Many Requests"),
		failure("429 Too Many Requests"),
		failure("429 Too Many Requests"),
	}}
	svc, conversations := newTestService(client, nil)

	resp, err := svc.Chat(context.Background(), Request{Message: "hello"})
	require.NoError(t, err)

	assert.Len(t, client.calls, 3)
	assert.Equal(t, "I apologize, but the AI service is currently experiencing high demand. Please try again in a moment.", resp.Response)

	history, err := conversations.History(context.Background(), resp.ConversationID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestChatQuotaExceededFailsWithoutRetry(t *testing.T) {
	client := &scriptedClient{outcomes: []func() (*schema.Message, error){
		failure("You exceeded your current quota, please check your plan and billing details"),
	}}
	svc, _ := newTestService(client, nil)

	resp, err := svc.Chat(context.Background(), Request{Message: "hello"})
	require.NoError(t, err)

	assert.Len(t, client.calls, 1)
	assert.Contains(t, resp.Response, "quota has been exceeded")
}

func TestChatWithoutClientReturnsConnectivityReply(t *testing.T) {
	svc, _ := newTestService(nil, nil)

	resp, err := svc.Chat(context.Background(), Request{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "I'm sorry, I'm having trouble connecting right now. Please try again in a moment.", resp.Response)
	assert.NotEmpty(t, resp.ConversationID)
}

func TestChatAttachesProductMatches(t *testing.T) {
	client := &scriptedClient{outcomes: []func() (*schema.Message, error){reply("sure")}}
	searcher := &fakeSearcher{results: map[string][]model.Product{
		"tomato": {{ProductID: 101, ProductName: "Fresh Tomato"}},
	}}
	svc, _ := newTestService(client, searcher)

	resp, err := svc.Chat(context.Background(), Request{Message: "I want to buy 1 kg tomato"})
	require.NoError(t, err)

	require.Len(t, resp.Products, 1)
	assert.Equal(t, 101, resp.Products[0].ProductID)
}

func TestQuickReplyUsesCannedMessageAndStoredMetadata(t *testing.T) {
	client := &scriptedClient{outcomes: []func() (*schema.Message, error){reply("refund on the way")}}
	svc, conversations := newTestService(client, nil)

	ctx := context.Background()
	conversationID := "conv_qr"
	require.NoError(t, conversations.MergeMetadata(ctx, conversationID, map[string]any{
		"order_info":       map[string]any{"order_id": float64(10001)},
		"is_general_issue": true,
	}))

	resp, err := svc.QuickReply(ctx, conversationID, "refund")
	require.NoError(t, err)
	assert.Equal(t, "refund on the way", resp.Response)

	require.Len(t, client.calls, 1)
	sent := client.calls[0]
	assert.Equal(t, "I would like to request a refund for my order", sent[len(sent)-1].Content)
	// stored metadata flows back into the prompt as the general-issue clause
	assert.Contains(t, sent[0].Content, "general support inquiry")
}

func TestQuickReplyUnknownTypeFallsBackToGenericMessage(t *testing.T) {
	client := &scriptedClient{outcomes: []func() (*schema.Message, error){reply("ok")}}
	svc, _ := newTestService(client, nil)

	_, err := svc.QuickReply(context.Background(), "conv_qr2", "warranty")
	require.NoError(t, err)

	require.Len(t, client.calls, 1)
	sent := client.calls[0]
	assert.Equal(t, "I need help with warranty", sent[len(sent)-1].Content)
}

func TestGetConversationUnknownIDReturnsEmptyContainers(t *testing.T) {
	svc, _ := newTestService(&scriptedClient{}, nil)

	conv := svc.GetConversation(context.Background(), "conv_missing")
	assert.Empty(t, conv.Messages)
	assert.Empty(t, conv.Context)
	assert.Empty(t, conv.Metadata)
}

func TestDeleteConversationIsIdempotent(t *testing.T) {
	svc, conversations := newTestService(&scriptedClient{}, nil)

	ctx := context.Background()
	require.NoError(t, conversations.AppendMessages(ctx, "conv_del", schema.UserMessage("hi")))
	require.NoError(t, svc.DeleteConversation(ctx, "conv_del"))
	require.NoError(t, svc.DeleteConversation(ctx, "conv_del"))

	history, err := conversations.History(ctx, "conv_del")
	require.NoError(t, err)
	assert.Empty(t, history)
}
