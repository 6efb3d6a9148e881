package classify

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mealpick-core/server/internal/agent/model"
	logx "github.com/mealpick-core/server/pkg/logger"
)

// basic safety limits to avoid pathological model output
const (
	maxContentLen = 64 * 1024 // 64KB
	maxErrSnippet = 200
)

// selectionWire is the JSON shape the classifier model is asked to produce.
type selectionWire struct {
	WorkflowType   string   `json:"workflow_type"`
	RequiredAgents []string `json:"required_agents"`
	PrimaryAgent   string   `json:"primary_agent"`
	Reasoning      string   `json:"reasoning"`
}

// ParseSelection turns raw classifier model output into a WorkflowSelection.
// The role list always comes from the static workflow table, never from the
// model; the model's agent list is advisory only.
func ParseSelection(content string) (sel *model.WorkflowSelection, err error) {
	// panic safety
	defer func() {
		if r := recover(); r != nil {
			logx.Error().Str("component", "selection_parser").Msgf("panic recovered: %v", r)
			sel = nil
			err = fmt.Errorf("selection parser panic")
		}
	}()

	if len(content) > maxContentLen {
		logx.Warn().
			Str("component", "selection_parser").
			Int("max_len", maxContentLen).
			Int("orig_len", len(content)).
			Msg("content truncated due to size limit")
		content = content[:maxContentLen]
	}

	content = stripCodeFence(content)
	if content == "" {
		return nil, fmt.Errorf("empty classifier output")
	}

	var wire selectionWire
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return nil, fmt.Errorf("decode classifier output %q: %w", safeSnippet(content), err)
	}

	workflowType := model.WorkflowType(strings.TrimSpace(wire.WorkflowType))
	if !model.KnownWorkflowType(workflowType) {
		return nil, fmt.Errorf("unknown workflow type %q", safeSnippet(wire.WorkflowType))
	}

	roles := model.RolesFor(workflowType)
	primary := normalizeRole(wire.PrimaryAgent)
	if !containsRole(roles, primary) {
		primary = roles[0]
	}

	return &model.WorkflowSelection{
		Type:        workflowType,
		Roles:       roles,
		PrimaryRole: primary,
		Rationale:   strings.TrimSpace(wire.Reasoning),
	}, nil
}

// normalizeRole maps model-facing agent names ("taste_agent") onto roles.
func normalizeRole(name string) model.Role {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimSuffix(name, "_agent")
	switch name {
	case "scheduler":
		return model.RoleSchedule
	default:
		return model.Role(name)
	}
}

func containsRole(roles []model.Role, r model.Role) bool {
	for _, role := range roles {
		if role == r {
			return true
		}
	}
	return false
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

func safeSnippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxErrSnippet {
		return s
	}
	return s[:maxErrSnippet]
}
