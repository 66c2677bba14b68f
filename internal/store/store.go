package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	errx "github.com/buddyai-core/server/internal/core/error"
	logx "github.com/buddyai-core/server/pkg/logger"
)

// collection stores JSON documents in a Redis hash, one field per document.
type collection struct {
	rdb redis.Cmdable
	key string
}

func newCollection(rdb redis.Cmdable, key string) collection {
	return collection{rdb: rdb, key: key}
}

func (c *collection) put(ctx context.Context, field string, doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %s/%s: %w", c.key, field, err)
	}
	if err := c.rdb.HSet(ctx, c.key, field, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", c.key).Str("field", field).Msg("failed to store document")
		return errx.WrapRedis(err)
	}
	return nil
}

// get unmarshals one document into out; ok is false when the field is absent.
func (c *collection) get(ctx context.Context, field string, out any) (bool, error) {
	s, err := c.rdb.HGet(ctx, c.key, field).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		logx.Error().Err(err).Str("key", c.key).Str("field", field).Msg("failed to load document")
		return false, errx.WrapRedis(err)
	}
	if err := json.Unmarshal([]byte(s), out); err != nil {
		return false, fmt.Errorf("unmarshal document %s/%s: %w", c.key, field, err)
	}
	return true, nil
}

func (c *collection) raw(ctx context.Context) ([]string, error) {
	rows, err := c.rdb.HVals(ctx, c.key).Result()
	if err != nil {
		if err == redis.Nil {
			return []string{}, nil
		}
		logx.Error().Err(err).Str("key", c.key).Msg("failed to load collection")
		return nil, errx.WrapRedis(err)
	}
	return rows, nil
}

func (c *collection) size(ctx context.Context) (int64, error) {
	n, err := c.rdb.HLen(ctx, c.key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, errx.WrapRedis(err)
	}
	return n, nil
}

// decodeAll loads every document of a collection into a typed slice.
func decodeAll[T any](ctx context.Context, c *collection) ([]T, error) {
	rows, err := c.raw(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for i, s := range rows {
		var v T
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return nil, fmt.Errorf("unmarshal document %s[%d]: %w", c.key, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
