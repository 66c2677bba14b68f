package errx

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// LLMErrorKind classifies failures coming back from the chat-completion
// provider so callers can branch on the kind instead of digging through
// provider-specific error chains.
type LLMErrorKind int

const (
	LLMOther LLMErrorKind = iota
	LLMRateLimited
	LLMQuotaExceeded
	LLMAuthFailed
	LLMServerError
	LLMTimeout
)

func (k LLMErrorKind) String() string {
	switch k {
	case LLMRateLimited:
		return "rate_limited"
	case LLMQuotaExceeded:
		return "quota_exceeded"
	case LLMAuthFailed:
		return "auth_failed"
	case LLMServerError:
		return "server_error"
	case LLMTimeout:
		return "timeout"
	default:
		return "other"
	}
}

// LLMError wraps a provider error with its classified kind.
type LLMError struct {
	Kind LLMErrorKind
	Err  error
}

func (e *LLMError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("llm error (%s)", e.Kind)
	}
	return fmt.Sprintf("llm error (%s): %v", e.Kind, e.Err)
}

func (e *LLMError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is a transient capacity signal.
// Quota exhaustion shares the 429 status family but is a billing problem
// and must not be retried.
func (e *LLMError) Retryable() bool {
	return e.Kind == LLMRateLimited
}

// WrapLLM classifies a raw provider error into an LLMError. Already
// classified errors pass through unchanged.
func WrapLLM(err error) *LLMError {
	if err == nil {
		return nil
	}
	var le *LLMError
	if errors.As(err, &le) {
		return le
	}
	return &LLMError{Kind: classifyLLM(err), Err: err}
}

func classifyLLM(err error) LLMErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return LLMTimeout
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "exceeded your current quota"),
		strings.Contains(msg, "insufficient_quota"),
		strings.Contains(msg, "billing"):
		return LLMQuotaExceeded
	case strings.Contains(msg, "429"),
		strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "resource_exhausted"):
		return LLMRateLimited
	case strings.Contains(msg, "401"),
		strings.Contains(msg, "api key"),
		strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "authentication"),
		strings.Contains(msg, "invalid_api_key"):
		return LLMAuthFailed
	case strings.Contains(msg, "500"),
		strings.Contains(msg, "502"),
		strings.Contains(msg, "503"),
		strings.Contains(msg, "server_error"),
		strings.Contains(msg, "service unavailable"),
		strings.Contains(msg, "bad gateway"):
		return LLMServerError
	case strings.Contains(msg, "timeout"),
		strings.Contains(msg, "deadline exceeded"):
		return LLMTimeout
	default:
		return LLMOther
	}
}

// LLMReplyText returns the user-facing reply for a failed chat turn.
// Raw provider errors never reach the caller.
func LLMReplyText(err error) string {
	le := WrapLLM(err)
	if le == nil {
		return ""
	}
	switch le.Kind {
	case LLMAuthFailed:
		return "I apologize, but there's an authentication issue with the AI service. Please check the API key configuration."
	case LLMRateLimited:
		return "I apologize, but the AI service is currently experiencing high demand. Please try again in a moment."
	case LLMQuotaExceeded:
		return "I apologize, but the AI service quota has been exceeded. Please check your account billing and add credits to continue using the service."
	case LLMServerError:
		return "The AI service is temporarily unavailable. Please try again in a moment."
	case LLMTimeout:
		return "The request took too long to process. Please try again."
	default:
		return "I'm sorry, I'm having trouble connecting right now. Please try again in a moment."
	}
}
