package chat

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/system_prompt.txt
var coreSystemPrompt string

// buildSystemPrompt renders the persona template and appends the clauses
// that depend on the current request. The result is deterministic for a
// given config and request shape.
func buildSystemPrompt(ctx context.Context, cfg Config, req Request) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(coreSystemPrompt),
	)
	vars := map[string]any{
		"AssistantName": cfg.AssistantName,
		"PlatformName":  cfg.PlatformName,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("system prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("system prompt render: empty result")
	}

	var b strings.Builder
	b.WriteString(msgs[0].Content)

	if len(req.OrderInfo) > 0 {
		b.WriteString("\nCustomer has an order context available. Reference it when relevant.\n")
	}
	if req.IsGeneralIssue != nil && *req.IsGeneralIssue {
		b.WriteString("\nThis is a general support inquiry. Help the user with their questions.\n")
	}

	return b.String(), nil
}
