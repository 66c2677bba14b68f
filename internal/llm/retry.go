package llm

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cloudwego/eino/schema"

	errx "github.com/buddyai-core/server/internal/core/error"
	logx "github.com/buddyai-core/server/pkg/logger"
)

// RetryConfig bounds the retry loop for transient rate limiting.
type RetryConfig struct {
	MaxAttempts int           `envconfig:"LLM_RETRY_MAX_ATTEMPTS" default:"3"`
	BaseDelay   time.Duration `envconfig:"LLM_RETRY_BASE_DELAY" default:"2s"`
}

// GenerateWithRetry calls the client, retrying only on rate-limit signals
// with exponential backoff (base, 2x base, 4x base). The wait honours ctx
// cancellation, so a disconnecting caller aborts the loop. Quota exhaustion
// and every other error kind fail immediately.
func GenerateWithRetry(ctx context.Context, client Client, messages []*schema.Message, cfg RetryConfig) (*schema.Message, error) {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 2 * time.Second
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.BaseDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxInterval = cfg.BaseDelay << uint(cfg.MaxAttempts)
	bo.MaxElapsedTime = 0

	var reply *schema.Message
	attempt := 0
	op := func() error {
		attempt++
		out, err := client.Generate(ctx, messages)
		if err == nil {
			reply = out
			return nil
		}

		le := errx.WrapLLM(err)
		if !le.Retryable() {
			return backoff.Permanent(le)
		}
		logx.Warn().
			Int("attempt", attempt).
			Int("max_attempts", cfg.MaxAttempts).
			Msg("rate limit hit, backing off before retry")
		return le
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(cfg.MaxAttempts-1)), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, errx.WrapLLM(err)
	}
	return reply, nil
}
