// Package roles runs a single specialist task: persona prompt, tool loop
// under a hard call budget, and degradation signalling.
package roles

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/mealpick-core/server/internal/agent/model"
	"github.com/mealpick-core/server/internal/agent/prompts"
	"github.com/mealpick-core/server/internal/agent/tools"
	errx "github.com/mealpick-core/server/internal/core/error"
	logx "github.com/mealpick-core/server/pkg/logger"
)

// degradedSentinel is the exact reply a role gives when its tools cannot
// supply enough to answer.
const degradedSentinel = "insufficient data"

// Finding is what one specialist contributes to the blackboard.
type Finding struct {
	Role       model.Role
	Content    string
	Degraded   bool
	Incomplete bool
	ToolCalls  int
	Usage      schema.TokenUsage
	CostUSD    float64
}

// Runner executes specialist tasks against a tool-calling chat model.
type Runner struct {
	base         einomodel.ToolCallingChatModel
	modelName    string
	toolbox      *tools.Toolbox
	maxToolCalls int
}

func NewRunner(base einomodel.ToolCallingChatModel, modelName string, tb *tools.Toolbox, maxToolCalls int) *Runner {
	if maxToolCalls <= 0 {
		maxToolCalls = 3
	}
	return &Runner{base: base, modelName: modelName, toolbox: tb, maxToolCalls: maxToolCalls}
}

// Run drives one specialist to a finding. The returned error is reserved for
// model unavailability; tool failures degrade the finding instead.
func (r *Runner) Run(ctx context.Context, task model.TaskSpec, userQuery, priorFindings string) (*Finding, error) {
	system, err := prompts.RenderRoleSystem(ctx, task.Role, r.maxToolCalls, priorFindings)
	if err != nil {
		return nil, errx.WrapReasoning(err)
	}

	roleTools := r.toolbox.ForRole(task.Role)
	infos, err := tools.GetToolInfos(ctx, roleTools)
	if err != nil {
		return nil, errx.WrapReasoning(err)
	}

	cm := r.base
	if len(infos) > 0 {
		if cm, err = r.base.WithTools(infos); err != nil {
			return nil, errx.WrapReasoning(err)
		}
	}

	byName, err := indexTools(ctx, roleTools)
	if err != nil {
		return nil, errx.WrapReasoning(err)
	}

	finding := &Finding{Role: task.Role}
	messages := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(userQuery),
	}

	noticed := false
	// Hard ceiling on model rounds so a stubborn model cannot loop forever.
	maxRounds := r.maxToolCalls + 2
	for round := 0; round < maxRounds; round++ {
		resp, err := cm.Generate(ctx, messages)
		if err != nil {
			return nil, errx.WrapReasoning(fmt.Errorf("role %s generate: %w", task.Role, err))
		}
		r.accumulateUsage(finding, resp)

		if len(resp.ToolCalls) == 0 || noticed {
			finding.Content = strings.TrimSpace(resp.Content)
			break
		}

		messages = append(messages, resp)
		for _, tc := range resp.ToolCalls {
			if err := ctx.Err(); err != nil {
				return nil, errx.WrapReasoning(err)
			}
			result, callErr := invokeTool(ctx, byName, tc)
			if callErr != nil {
				logx.Warn().
					Err(callErr).
					Str("role", string(task.Role)).
					Str("tool", tc.Function.Name).
					Msg("tool call failed, continuing with partial data")
				finding.Incomplete = true
				result = fmt.Sprintf("{\"error\":%q}", callErr.Error())
			}
			messages = append(messages, schema.ToolMessage(result, tc.ID))
			finding.ToolCalls++
		}

		if finding.ToolCalls >= r.maxToolCalls && !noticed {
			messages = append(messages, wrapUpNotice(r.maxToolCalls))
			noticed = true
		}
	}

	if finding.Content == "" {
		finding.Content = degradedSentinel
	}
	if strings.EqualFold(finding.Content, degradedSentinel) {
		finding.Degraded = true
	}

	logx.Info().
		Str("role", string(task.Role)).
		Int("tool_calls", finding.ToolCalls).
		Bool("degraded", finding.Degraded).
		Bool("incomplete", finding.Incomplete).
		Msg("role finished")
	return finding, nil
}

func (r *Runner) accumulateUsage(f *Finding, out *schema.Message) {
	if out == nil || out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return
	}
	usage := out.ResponseMeta.Usage
	f.Usage.PromptTokens += usage.PromptTokens
	f.Usage.CompletionTokens += usage.CompletionTokens
	f.Usage.TotalTokens += usage.TotalTokens
	if model.CostEnabled() {
		_, _, total := model.ComputeCost(usage, model.ResolvePricing(r.modelName))
		f.CostUSD += total
	}
}

func wrapUpNotice(maxToolCalls int) *schema.Message {
	return &schema.Message{
		Role: schema.System,
		Content: fmt.Sprintf(
			"SYSTEM NOTICE: You have reached the maximum tool call limit (%d). "+
				"Please synthesize a helpful response using the information you've already gathered. "+
				"Acknowledge any limitations in your response if you couldn't complete all necessary tool calls.",
			maxToolCalls,
		),
	}
}

// indexTools maps tool name to implementation for dispatching model calls.
func indexTools(ctx context.Context, ts []tool.BaseTool) (map[string]tool.InvokableTool, error) {
	byName := make(map[string]tool.InvokableTool, len(ts))
	for _, t := range ts {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("index tool: %w", err)
		}
		inv, ok := t.(tool.InvokableTool)
		if !ok {
			return nil, fmt.Errorf("tool %s is not invokable", info.Name)
		}
		byName[info.Name] = inv
	}
	return byName, nil
}

func invokeTool(ctx context.Context, byName map[string]tool.InvokableTool, tc schema.ToolCall) (string, error) {
	inv, ok := byName[tc.Function.Name]
	if !ok {
		// Hallucinated tool names are reported back to the model, not fatal.
		return "", fmt.Errorf("unknown tool %q", tc.Function.Name)
	}
	return inv.InvokableRun(ctx, tc.Function.Arguments)
}
