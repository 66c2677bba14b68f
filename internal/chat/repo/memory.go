package repo

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/schema"
)

// MemoryRepository keeps conversation state in process memory. State lives
// until explicitly deleted; there is no TTL or eviction, so memory grows
// with distinct conversation ids.
type MemoryRepository struct {
	conversations sync.Map // conversationID -> *conversationState
}

type conversationState struct {
	mu       sync.RWMutex
	messages []*schema.Message
	context  map[string]any
	metadata map[string]any
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) state(conversationID string) *conversationState {
	if v, ok := r.conversations.Load(conversationID); ok {
		return v.(*conversationState)
	}
	v, _ := r.conversations.LoadOrStore(conversationID, &conversationState{
		messages: []*schema.Message{},
		context:  map[string]any{},
		metadata: map[string]any{},
	})
	return v.(*conversationState)
}

func (r *MemoryRepository) AppendMessages(_ context.Context, conversationID string, messages ...*schema.Message) error {
	if len(messages) == 0 {
		return nil
	}
	st := r.state(conversationID)
	st.mu.Lock()
	st.messages = append(st.messages, messages...)
	st.mu.Unlock()
	return nil
}

func (r *MemoryRepository) History(_ context.Context, conversationID string) ([]*schema.Message, error) {
	v, ok := r.conversations.Load(conversationID)
	if !ok {
		return []*schema.Message{}, nil
	}
	st := v.(*conversationState)
	st.mu.RLock()
	out := make([]*schema.Message, len(st.messages))
	copy(out, st.messages)
	st.mu.RUnlock()
	return out, nil
}

func (r *MemoryRepository) MergeContext(_ context.Context, conversationID string, values map[string]any) error {
	st := r.state(conversationID)
	st.mu.Lock()
	for k, v := range values {
		st.context[k] = v
	}
	st.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Context(_ context.Context, conversationID string) (map[string]any, error) {
	return r.copyMap(conversationID, func(st *conversationState) map[string]any { return st.context })
}

func (r *MemoryRepository) MergeMetadata(_ context.Context, conversationID string, values map[string]any) error {
	st := r.state(conversationID)
	st.mu.Lock()
	for k, v := range values {
		st.metadata[k] = v
	}
	st.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Metadata(_ context.Context, conversationID string) (map[string]any, error) {
	return r.copyMap(conversationID, func(st *conversationState) map[string]any { return st.metadata })
}

func (r *MemoryRepository) Delete(_ context.Context, conversationID string) error {
	r.conversations.Delete(conversationID)
	return nil
}

func (r *MemoryRepository) copyMap(conversationID string, pick func(*conversationState) map[string]any) (map[string]any, error) {
	v, ok := r.conversations.Load(conversationID)
	if !ok {
		return map[string]any{}, nil
	}
	st := v.(*conversationState)
	st.mu.RLock()
	src := pick(st)
	out := make(map[string]any, len(src))
	for k, val := range src {
		out[k] = val
	}
	st.mu.RUnlock()
	return out, nil
}

var _ Repository = (*MemoryRepository)(nil)
