// Package plan turns a workflow selection into an ordered task list for the
// pipeline executor.
package plan

import (
	"github.com/mealpick-core/server/internal/agent/model"
	logx "github.com/mealpick-core/server/pkg/logger"
)

// Plan expands a workflow selection into task specs. Ordering follows the
// role list of the selection; each task may read every finding written before
// it and writes under its own role key. The chef runs as optional inside a
// full recommendation so a recipe failure never sinks the whole run.
func Plan(sel *model.WorkflowSelection) []model.TaskSpec {
	if sel == nil || len(sel.Roles) == 0 {
		logx.Warn().Msg("empty workflow selection, planning nothing")
		return nil
	}

	tasks := make([]model.TaskSpec, 0, len(sel.Roles))
	for i, role := range sel.Roles {
		reads := make([]model.Role, i)
		copy(reads, sel.Roles[:i])

		tasks = append(tasks, model.TaskSpec{
			Role:     role,
			Reads:    reads,
			WriteKey: string(role),
			Optional: role == model.RoleChef && sel.Type == model.WorkflowFullRecommendation,
		})
	}

	logx.Debug().
		Str("workflow_type", string(sel.Type)).
		Int("tasks", len(tasks)).
		Msg("workflow planned")
	return tasks
}
