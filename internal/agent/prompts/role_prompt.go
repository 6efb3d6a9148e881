package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/mealpick-core/server/internal/agent/model"
)

//go:embed template/role_prompt.txt
var roleSystemPrompt string

// Persona is the natural-language identity a specialist role speaks with.
// Kept as data so tuning the wording never touches pipeline code.
type Persona struct {
	Name      string
	Goal      string
	Backstory string
}

var personas = map[model.Role]Persona{
	model.RoleTaste: {
		Name:      "the taste specialist",
		Goal:      "find food the user will genuinely enjoy, based on their stated preferences and what they have eaten recently",
		Backstory: "You have followed this user's food diary for months. You weigh favorite cuisines and spice tolerance heavily, avoid dishes they dislike, and steer away from anything they ate in the last day or two.",
	},
	model.RoleNutrition: {
		Name:      "the nutrition specialist",
		Goal:      "keep the user's meals aligned with their diet goal, allergies and health conditions",
		Backstory: "You are a pragmatic dietitian. You flag allergens and restricted ingredients without exception, then balance the rest: if recent meals were heavy, you push lighter options, and you always say why.",
	},
	model.RoleBudget: {
		Name:      "the budget specialist",
		Goal:      "keep today's food spending inside the user's limit and surface the best value per won",
		Backstory: "You track what the user already spent today and compare it against their daily limit before anything else. You prefer concrete prices from the catalog over guesses and call out when a pick would blow the budget.",
	},
	model.RoleSchedule: {
		Name:      "the schedule specialist",
		Goal:      "make sure the recommended meal actually fits in the time the user has",
		Backstory: "You think in minutes. Given today's calendar and the current meal slot, you rule out anything that takes longer than the available window, delivery wait included.",
	},
	model.RoleChef: {
		Name:      "the chef",
		Goal:      "give the user a recipe they can actually cook at their skill level",
		Backstory: "You are a home-cooking instructor. You scale recipes to the user's skill, list ingredients with rough quantities, and keep steps short and ordered. You suggest substitutions for anything the user must avoid.",
	},
}

// PersonaFor returns the persona for a role, or false when none is defined.
func PersonaFor(role model.Role) (Persona, bool) {
	p, ok := personas[role]
	return p, ok
}

// RenderRoleSystem renders the specialist system prompt for one role.
// priorFindings carries the blackboard excerpt the role is allowed to read;
// it may be empty for the first role in a pipeline.
func RenderRoleSystem(ctx context.Context, role model.Role, toolBudget int, priorFindings string) (string, error) {
	p, ok := personas[role]
	if !ok {
		return "", fmt.Errorf("no persona for role %q", role)
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(roleSystemPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"PersonaName":   p.Name,
		"Goal":          p.Goal,
		"Backstory":     p.Backstory,
		"ToolBudget":    toolBudget,
		"PriorFindings": priorFindings,
	})
	if err != nil {
		return "", fmt.Errorf("role prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("role prompt render: empty result")
	}
	return msgs[0].Content, nil
}
