package chat

import (
	"github.com/cloudwego/eino/schema"

	"github.com/buddyai-core/server/internal/model"
)

// Request is one inbound chat turn.
type Request struct {
	ConversationID   string         `json:"conversation_id"`
	Message          string         `json:"message"`
	OrderID          *int           `json:"order_id,omitempty"`
	OrderInfo        map[string]any `json:"order_info,omitempty"`
	IsGeneralIssue   *bool          `json:"is_general_issue,omitempty"`
	IsIssueReporting *bool          `json:"is_issue_reporting,omitempty"`
}

// Response is the reply bundle for a chat turn. The suggested-questions,
// needs-more-info and related fields are reserved extension points and are
// always empty in the current design.
type Response struct {
	Response           string           `json:"response"`
	ConversationID     string           `json:"conversation_id"`
	SuggestedQuestions []string         `json:"suggested_questions"`
	Timestamp          string           `json:"timestamp"`
	NeedsMoreInfo      bool             `json:"needs_more_info"`
	QuestionsToAsk     []string         `json:"questions_to_ask"`
	CollectedData      map[string]any   `json:"collected_data,omitempty"`
	Intent             string           `json:"intent,omitempty"`
	OrderData          map[string]any   `json:"order_data,omitempty"`
	BrandOptions       []map[string]any `json:"brand_options,omitempty"`
	ShowFeedbackModal  bool             `json:"show_feedback_modal"`
	FeedbackContext    map[string]any   `json:"feedback_context,omitempty"`
	Products           []model.Product  `json:"products"`
}

// Conversation is the read view of one conversation's stored state.
type Conversation struct {
	Messages []*schema.Message `json:"messages"`
	Context  map[string]any    `json:"context"`
	Metadata map[string]any    `json:"metadata"`
}
