package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/mealpick-core/server/internal/agent/model"
)

//go:embed template/aggregate_prompt.txt
var aggregateSystemPrompt string

// RenderAggregateSystem renders the final-answer system prompt that merges
// specialist findings into one user-facing response.
func RenderAggregateSystem(ctx context.Context, sel *model.WorkflowSelection, findings string, incomplete bool) (string, error) {
	if sel == nil {
		return "", fmt.Errorf("workflow selection is nil")
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(aggregateSystemPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"WorkflowType": string(sel.Type),
		"PrimaryRole":  string(sel.PrimaryRole),
		"Findings":     findings,
		"Incomplete":   incomplete,
	})
	if err != nil {
		return "", fmt.Errorf("aggregate prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("aggregate prompt render: empty result")
	}
	return msgs[0].Content, nil
}
