package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/mealpick-core/server/internal/profile"
)

// Persona tools wrap the profile source. A failing source is surfaced as a
// tool error so the calling role can degrade instead of aborting the run.

type PreferencesInput struct{}

func (tb *Toolbox) createPreferencesTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name:        ToolGetPreferences,
			Desc:        "Fetch the user's taste and health profile: allergies, dislikes, diet goal, favorite cuisines, spicy tolerance, cooking skill, health conditions and dietary restrictions.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		func(ctx context.Context, in *PreferencesInput) (*profile.Preferences, error) {
			return tb.src.Preferences(ctx)
		},
	)
}

type ScheduleInput struct{}

func (tb *Toolbox) createScheduleTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name:        ToolGetSchedule,
			Desc:        "Fetch the user's schedule for today: available time in minutes and the upcoming meal slot.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		func(ctx context.Context, in *ScheduleInput) (*profile.Schedule, error) {
			return tb.src.Schedule(ctx)
		},
	)
}

type BudgetInput struct{}

func (tb *Toolbox) createBudgetTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name:        ToolGetBudget,
			Desc:        "Fetch the user's budget status: daily limit, amount already spent today and preferred price range.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		func(ctx context.Context, in *BudgetInput) (*profile.Budget, error) {
			return tb.src.Budget(ctx)
		},
	)
}

type MealHistoryInput struct {
	Days int `json:"days,omitempty"`
}

type MealHistoryOutput struct {
	Meals []profile.MealRecord `json:"meals"`
	Total int                  `json:"total"`
}

func (tb *Toolbox) createMealHistoryTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetMealHistory,
			Desc: "Fetch the user's recent meal records with calories and cost.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"days": {
					Type: "number",
					Desc: "How many days back to look (default: 7)",
				},
			}),
		},
		func(ctx context.Context, in *MealHistoryInput) (*MealHistoryOutput, error) {
			meals, err := tb.src.MealHistory(ctx, in.Days)
			if err != nil {
				return nil, err
			}
			return &MealHistoryOutput{Meals: meals, Total: len(meals)}, nil
		},
	)
}
