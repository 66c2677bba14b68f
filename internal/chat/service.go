package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/buddyai-core/server/internal/chat/repo"
	errx "github.com/buddyai-core/server/internal/core/error"
	"github.com/buddyai-core/server/internal/llm"
	"github.com/buddyai-core/server/internal/model"
	logx "github.com/buddyai-core/server/pkg/logger"
)

// Config defines the orchestrator settings, sourced from env.
type Config struct {
	AssistantName string `envconfig:"ASSISTANT_NAME" default:"Buddy"`
	PlatformName  string `envconfig:"PLATFORM_NAME" default:"DealKart"`
	HistoryWindow int    `envconfig:"CHAT_HISTORY_WINDOW" default:"10"`
}

// ErrEmptyMessage rejects chat turns with no message text.
var ErrEmptyMessage = fmt.Errorf("message must not be empty")

// Service turns one inbound user message into one assistant reply,
// maintaining conversation state and attaching product matches.
type Service struct {
	cfg      Config
	client   llm.Client
	retry    llm.RetryConfig
	repo     repo.Repository
	searcher ProductSearcher
}

// NewService wires the orchestrator. client may be nil when no credential is
// configured; every turn then degrades to the generic connectivity reply.
func NewService(cfg Config, client llm.Client, retry llm.RetryConfig, conversations repo.Repository, searcher ProductSearcher) *Service {
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 10
	}
	return &Service{
		cfg:      cfg,
		client:   client,
		retry:    retry,
		repo:     conversations,
		searcher: searcher,
	}
}

// Chat processes one turn. A failed model call returns a reply bundle with a
// category-specific explanation and appends nothing to stored history.
func (s *Service) Chat(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Message) == "" {
		return Response{}, ErrEmptyMessage
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = fmt.Sprintf("conv_%d", time.Now().UnixMilli())
	}

	if err := s.repo.MergeMetadata(ctx, conversationID, requestMetadata(req)); err != nil {
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to merge conversation metadata")
		return s.failureResponse(conversationID, errx.LLMReplyText(err)), nil
	}

	history, err := s.repo.History(ctx, conversationID)
	if err != nil {
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to load conversation history")
		return s.failureResponse(conversationID, errx.LLMReplyText(err)), nil
	}

	systemPrompt, err := buildSystemPrompt(ctx, s.cfg, req)
	if err != nil {
		logx.Error().Err(err).Msg("failed to build system prompt")
		return s.failureResponse(conversationID, errx.LLMReplyText(err)), nil
	}

	// the staged user message counts toward the tail window; it is only
	// persisted together with the assistant reply after a successful call
	userMsg := schema.UserMessage(req.Message)
	recent := tailWindow(append(history, userMsg), s.cfg.HistoryWindow)

	messages := make([]*schema.Message, 0, len(recent)+1)
	messages = append(messages, schema.SystemMessage(systemPrompt))
	messages = append(messages, recent...)

	if s.client == nil {
		logx.Error().Msg("chat-completion client is not configured")
		return s.failureResponse(conversationID, errx.LLMReplyText(fmt.Errorf("llm client not configured"))), nil
	}

	reply, err := llm.GenerateWithRetry(ctx, s.client, messages, s.retry)
	if err != nil {
		le := errx.WrapLLM(err)
		logx.Error().Err(err).
			Str("conversationID", conversationID).
			Str("kind", le.Kind.String()).
			Msg("chat completion failed")
		return s.failureResponse(conversationID, errx.LLMReplyText(le)), nil
	}

	content := strings.TrimSpace(reply.Content)
	if err := s.repo.AppendMessages(ctx, conversationID, userMsg, schema.AssistantMessage(content, nil)); err != nil {
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to persist chat turn")
	}

	products := s.searchProductsFromMessage(ctx, req.Message)

	collected, err := s.repo.Context(ctx, conversationID)
	if err != nil {
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to load conversation context")
		collected = map[string]any{}
	}

	resp := newResponse(conversationID)
	resp.Response = content
	resp.CollectedData = collected
	resp.Products = products
	return resp, nil
}

// quickReplyMessages maps canned question types to user message text.
var quickReplyMessages = map[string]string{
	"refund":      "I would like to request a refund for my order",
	"damage":      "My items arrived damaged or broken",
	"missing":     "I'm missing some items from my order",
	"wrong":       "I received wrong items in my order",
	"delivery":    "I have a question about my delivery",
	"return":      "I want to return my order",
	"cancel":      "I want to cancel my order",
	"track":       "Where is my order? Can you track it?",
	"replacement": "I need a replacement for damaged items",
}

// QuickReply translates a canned question type into a chat turn, re-injecting
// the metadata previously stored for the conversation.
func (s *Service) QuickReply(ctx context.Context, conversationID, questionType string) (Response, error) {
	message, ok := quickReplyMessages[questionType]
	if !ok {
		message = "I need help with " + questionType
	}

	metadata, err := s.repo.Metadata(ctx, conversationID)
	if err != nil {
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to load conversation metadata")
		metadata = map[string]any{}
	}

	req := Request{
		ConversationID: conversationID,
		Message:        message,
	}
	if v, ok := metadata["order_info"].(map[string]any); ok {
		req.OrderInfo = v
	}
	generalIssue := false
	if v, ok := metadata["is_general_issue"].(bool); ok {
		generalIssue = v
	}
	req.IsGeneralIssue = &generalIssue
	issueReporting := false
	if v, ok := metadata["is_issue_reporting"].(bool); ok {
		issueReporting = v
	}
	req.IsIssueReporting = &issueReporting

	return s.Chat(ctx, req)
}

// GetConversation returns the stored state for a conversation. An unknown id
// yields empty containers, never an error.
func (s *Service) GetConversation(ctx context.Context, conversationID string) Conversation {
	conv := Conversation{
		Messages: []*schema.Message{},
		Context:  map[string]any{},
		Metadata: map[string]any{},
	}
	if msgs, err := s.repo.History(ctx, conversationID); err == nil {
		conv.Messages = msgs
	} else {
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to load history")
	}
	if c, err := s.repo.Context(ctx, conversationID); err == nil {
		conv.Context = c
	} else {
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to load context")
	}
	if m, err := s.repo.Metadata(ctx, conversationID); err == nil {
		conv.Metadata = m
	} else {
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to load metadata")
	}
	return conv
}

// DeleteConversation removes all state for the id; unknown ids are a no-op.
func (s *Service) DeleteConversation(ctx context.Context, conversationID string) error {
	return s.repo.Delete(ctx, conversationID)
}

// requestMetadata collects the metadata fields present on the request; only
// non-nil fields overwrite stored values.
func requestMetadata(req Request) map[string]any {
	meta := map[string]any{}
	if req.OrderInfo != nil {
		meta["order_info"] = req.OrderInfo
	}
	if req.IsGeneralIssue != nil {
		meta["is_general_issue"] = *req.IsGeneralIssue
	}
	if req.IsIssueReporting != nil {
		meta["is_issue_reporting"] = *req.IsIssueReporting
	}
	return meta
}

// tailWindow returns the most recent max messages.
func tailWindow(messages []*schema.Message, max int) []*schema.Message {
	if len(messages) <= max {
		return messages
	}
	return messages[len(messages)-max:]
}

func newResponse(conversationID string) Response {
	return Response{
		ConversationID:     conversationID,
		SuggestedQuestions: []string{},
		QuestionsToAsk:     []string{},
		Products:           []model.Product{},
		Timestamp:          time.Now().Format(time.RFC3339),
	}
}

func (s *Service) failureResponse(conversationID, text string) Response {
	resp := newResponse(conversationID)
	resp.Response = text
	return resp
}
