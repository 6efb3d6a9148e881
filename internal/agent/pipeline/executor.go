// Package pipeline executes a planned task sequence over a shared blackboard
// and aggregates the findings into one answer.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/mealpick-core/server/internal/agent/model"
	"github.com/mealpick-core/server/internal/agent/prompts"
	"github.com/mealpick-core/server/internal/agent/roles"
	errx "github.com/mealpick-core/server/internal/core/error"
	logx "github.com/mealpick-core/server/pkg/logger"
)

// RunState tracks a run through its lifecycle.
type RunState string

const (
	StatePlanned    RunState = "PLANNED"
	StateRunning    RunState = "RUNNING"
	StateAggregated RunState = "AGGREGATED"
	StateDone       RunState = "DONE"
	StateFailed     RunState = "FAILED"
)

// TaskRunner executes one specialist task. Satisfied by roles.Runner.
type TaskRunner interface {
	Run(ctx context.Context, task model.TaskSpec, userQuery, priorFindings string) (*roles.Finding, error)
}

// RunResult carries everything a run produced.
type RunResult struct {
	RunID      string
	State      RunState
	Selection  *model.WorkflowSelection
	Findings   []Entry
	Answer     string
	Incomplete bool
	Usage      schema.TokenUsage
	CostUSD    float64
}

// Executor drives tasks sequentially. Roles within one run depend on each
// other's findings, so there is nothing to gain from running them
// concurrently; order is the contract.
type Executor struct {
	runner       TaskRunner
	aggregator   einomodel.BaseChatModel
	aggModelName string
}

func NewExecutor(runner TaskRunner, aggregator einomodel.BaseChatModel, aggModelName string) *Executor {
	return &Executor{runner: runner, aggregator: aggregator, aggModelName: aggModelName}
}

// Execute runs the planned tasks in order and aggregates their findings.
// Individual role failures degrade the run; Execute returns an error only
// when no model output can be produced at all.
func (e *Executor) Execute(ctx context.Context, sel *model.WorkflowSelection, tasks []model.TaskSpec, userQuery string) (*RunResult, error) {
	result := &RunResult{
		RunID:     uuid.NewString(),
		State:     StatePlanned,
		Selection: sel,
	}
	if len(tasks) == 0 {
		result.State = StateFailed
		return result, errx.WrapReasoning(fmt.Errorf("no tasks planned"))
	}

	board := NewBlackboard()
	result.State = StateRunning
	logx.Info().
		Str("run_id", result.RunID).
		Str("workflow_type", string(sel.Type)).
		Int("tasks", len(tasks)).
		Msg("pipeline started")

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			result.State = StateFailed
			result.Findings = board.Entries()
			return result, errx.WrapReasoning(fmt.Errorf("run %s cancelled before role %s: %w", result.RunID, task.Role, err))
		}

		finding, err := e.runner.Run(ctx, task, userQuery, board.RenderFor(task.Reads))
		if err != nil {
			logx.Warn().
				Err(err).
				Str("run_id", result.RunID).
				Str("role", string(task.Role)).
				Bool("optional", task.Optional).
				Msg("role failed, recording degraded finding")
			finding = &roles.Finding{Role: task.Role, Content: "insufficient data", Degraded: true}
		}

		if err := board.Write(task.WriteKey, Entry{
			Role:       finding.Role,
			Content:    finding.Content,
			Degraded:   finding.Degraded,
			Incomplete: finding.Incomplete,
		}); err != nil {
			result.State = StateFailed
			result.Findings = board.Entries()
			return result, errx.WrapReasoning(err)
		}

		result.Usage.PromptTokens += finding.Usage.PromptTokens
		result.Usage.CompletionTokens += finding.Usage.CompletionTokens
		result.Usage.TotalTokens += finding.Usage.TotalTokens
		result.CostUSD += finding.CostUSD
		if finding.Incomplete {
			result.Incomplete = true
		}
	}

	result.Findings = board.Entries()
	result.State = StateAggregated

	answer, err := e.aggregate(ctx, sel, board, result)
	if err != nil {
		result.State = StateFailed
		return result, err
	}
	result.Answer = answer
	result.State = StateDone

	logx.Info().
		Str("run_id", result.RunID).
		Int("total_tokens", result.Usage.TotalTokens).
		Float64("cost_usd", result.CostUSD).
		Bool("incomplete", result.Incomplete).
		Msg("pipeline finished")
	return result, nil
}

func (e *Executor) aggregate(ctx context.Context, sel *model.WorkflowSelection, board *Blackboard, result *RunResult) (string, error) {
	findings := board.RenderAll()
	if findings == "" {
		// Every role came back empty-handed; apologize instead of calling
		// the model with nothing to merge.
		return apology(sel), nil
	}

	system, err := prompts.RenderAggregateSystem(ctx, sel, findings, result.Incomplete)
	if err != nil {
		return "", errx.WrapReasoning(err)
	}

	resp, err := e.aggregator.Generate(ctx, []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage("Write the final answer for the user."),
	})
	if err != nil {
		return "", errx.WrapReasoning(fmt.Errorf("aggregate: %w", err))
	}
	if resp != nil && resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		usage := resp.ResponseMeta.Usage
		result.Usage.PromptTokens += usage.PromptTokens
		result.Usage.CompletionTokens += usage.CompletionTokens
		result.Usage.TotalTokens += usage.TotalTokens
		if model.CostEnabled() {
			_, _, total := model.ComputeCost(usage, model.ResolvePricing(e.aggModelName))
			result.CostUSD += total
		}
	}

	answer := strings.TrimSpace(resp.Content)
	if answer == "" {
		return apology(sel), nil
	}
	return answer, nil
}

// apology is the all-degraded fallback. It still tells the user what the
// system understood, so the failure is explainable.
func apology(sel *model.WorkflowSelection) string {
	var sb strings.Builder
	sb.WriteString("죄송합니다, 지금은 추천에 필요한 정보를 충분히 모으지 못했어요. ")
	sb.WriteString("잠시 후 다시 시도해 주세요.")
	if sel != nil && sel.Rationale != "" {
		fmt.Fprintf(&sb, "\n(요청 해석: %s)", sel.Rationale)
	}
	return sb.String()
}
