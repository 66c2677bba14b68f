package repo

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// Repository stores per-conversation state: the ordered message history plus
// the context and metadata scratch maps. Implementations must be safe for
// concurrent use across conversation ids. No per-conversation turn ordering
// is enforced; concurrent appends land in arrival order.
type Repository interface {
	// AppendMessages appends messages to the conversation history,
	// creating the conversation on first use.
	AppendMessages(ctx context.Context, conversationID string, messages ...*schema.Message) error

	// History returns the full stored history, oldest first. An unknown
	// conversation yields an empty slice, not an error.
	History(ctx context.Context, conversationID string) ([]*schema.Message, error)

	// MergeContext merges keys into the conversation context map,
	// last write wins per key. Creates the conversation if absent.
	MergeContext(ctx context.Context, conversationID string, values map[string]any) error

	// Context returns the context map; empty when absent.
	Context(ctx context.Context, conversationID string) (map[string]any, error)

	// MergeMetadata merges keys into the conversation metadata map,
	// last write wins per key. Creates the conversation if absent.
	MergeMetadata(ctx context.Context, conversationID string, values map[string]any) error

	// Metadata returns the metadata map; empty when absent.
	Metadata(ctx context.Context, conversationID string) (map[string]any, error)

	// Delete removes all state for the conversation. Deleting an unknown
	// id is a no-op.
	Delete(ctx context.Context, conversationID string) error
}
