package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"

	errx "github.com/buddyai-core/server/internal/core/error"
	logx "github.com/buddyai-core/server/pkg/logger"
)

// RedisRepository persists conversation state in Redis: the history as a
// list, context and metadata as hashes with JSON-encoded values.
type RedisRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisRepository(rdb redis.Cmdable, ttl time.Duration) *RedisRepository {
	return &RedisRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisRepository) messagesKey(conversationID string) string {
	return fmt.Sprintf("conversation:%s:messages", conversationID)
}

func (r *RedisRepository) contextKey(conversationID string) string {
	return fmt.Sprintf("conversation:%s:context", conversationID)
}

func (r *RedisRepository) metadataKey(conversationID string) string {
	return fmt.Sprintf("conversation:%s:metadata", conversationID)
}

func (r *RedisRepository) AppendMessages(ctx context.Context, conversationID string, messages ...*schema.Message) error {
	if len(messages) == 0 {
		return nil
	}
	key := r.messagesKey(conversationID)

	payloads := make([]interface{}, 0, len(messages))
	for _, m := range messages {
		b, err := json.Marshal(m)
		if err != nil {
			logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to marshal message")
			return fmt.Errorf("marshal message: %w", err)
		}
		payloads = append(payloads, b)
	}

	if err := r.rdb.RPush(ctx, key, payloads...).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push messages to redis")
		return errx.WrapRedis(err)
	}
	r.touch(ctx, key)
	return nil
}

func (r *RedisRepository) History(ctx context.Context, conversationID string) ([]*schema.Message, error) {
	key := r.messagesKey(conversationID)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []*schema.Message{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load conversation history from redis")
		return nil, errx.WrapRedis(err)
	}

	msgs := make([]*schema.Message, 0, len(rows))
	for i, s := range rows {
		var m schema.Message
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			logx.Error().Err(err).Str("conversationID", conversationID).Int("index", i).Msg("failed to unmarshal message")
			return nil, fmt.Errorf("unmarshal message at index %d: %w", i, err)
		}
		msgs = append(msgs, &m)
	}
	return msgs, nil
}

func (r *RedisRepository) MergeContext(ctx context.Context, conversationID string, values map[string]any) error {
	return r.mergeHash(ctx, r.contextKey(conversationID), values)
}

func (r *RedisRepository) Context(ctx context.Context, conversationID string) (map[string]any, error) {
	return r.loadHash(ctx, r.contextKey(conversationID))
}

func (r *RedisRepository) MergeMetadata(ctx context.Context, conversationID string, values map[string]any) error {
	return r.mergeHash(ctx, r.metadataKey(conversationID), values)
}

func (r *RedisRepository) Metadata(ctx context.Context, conversationID string) (map[string]any, error) {
	return r.loadHash(ctx, r.metadataKey(conversationID))
}

func (r *RedisRepository) Delete(ctx context.Context, conversationID string) error {
	keys := []string{
		r.messagesKey(conversationID),
		r.contextKey(conversationID),
		r.metadataKey(conversationID),
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to delete conversation from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisRepository) mergeHash(ctx context.Context, key string, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	fields := make(map[string]interface{}, len(values))
	for k, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal field %s: %w", k, err)
		}
		fields[k] = b
	}
	if err := r.rdb.HSet(ctx, key, fields).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to merge hash fields")
		return errx.WrapRedis(err)
	}
	r.touch(ctx, key)
	return nil
}

func (r *RedisRepository) loadHash(ctx context.Context, key string) (map[string]any, error) {
	rows, err := r.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return map[string]any{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load hash from redis")
		return nil, errx.WrapRedis(err)
	}
	out := make(map[string]any, len(rows))
	for k, s := range rows {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			// tolerate values written by other clients as raw strings
			out[k] = s
			continue
		}
		out[k] = v
	}
	return out, nil
}

// touch extends the TTL on write so active conversations stay alive.
func (r *RedisRepository) touch(ctx context.Context, key string) {
	if r.ttl <= 0 {
		return
	}
	if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
	} else if !ok {
		logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on conversation key")
	}
}

var _ Repository = (*RedisRepository)(nil)
