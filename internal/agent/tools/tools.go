// Package tools defines the retrieval tools a role may call during a pipeline
// run. Every tool takes an explicit typed input struct with stated defaults;
// nothing is coerced at call time beyond zero-value substitution.
package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/mealpick-core/server/internal/agent/model"
	"github.com/mealpick-core/server/internal/catalog"
	"github.com/mealpick-core/server/internal/profile"
)

const (
	ToolSearchRestaurants    = "search_restaurants"
	ToolBestValueRestaurants = "recommend_best_value_restaurants"
	ToolRestaurantDetails    = "get_restaurant_details"
	ToolGetPreferences       = "get_user_preferences"
	ToolGetSchedule          = "get_user_schedule"
	ToolGetBudget            = "get_budget_status"
	ToolGetMealHistory       = "get_meal_history"
)

// Toolbox owns the tool implementations and their injected dependencies:
// the immutable venue catalog and the persona source.
type Toolbox struct {
	cat *catalog.Catalog
	src profile.Source
}

func NewToolbox(cat *catalog.Catalog, src profile.Source) *Toolbox {
	return &Toolbox{cat: cat, src: src}
}

// roleTools assigns each role its permitted tools, mirroring the capability
// cards: taste gets search/detail plus persona reads, nutrition reads persona
// data only, budget gets the value ranking, schedule gets time-bound search,
// chef generates recipes without retrieval tools.
var roleTools = map[model.Role][]string{
	model.RoleTaste:     {ToolGetPreferences, ToolGetMealHistory, ToolSearchRestaurants, ToolRestaurantDetails},
	model.RoleNutrition: {ToolGetPreferences, ToolGetMealHistory},
	model.RoleBudget:    {ToolGetBudget, ToolBestValueRestaurants, ToolSearchRestaurants},
	model.RoleSchedule:  {ToolGetSchedule, ToolSearchRestaurants},
	model.RoleChef:      {},
}

// ForRole returns the tool set the given role is permitted to call.
func (tb *Toolbox) ForRole(role model.Role) []tool.BaseTool {
	names := roleTools[role]
	out := make([]tool.BaseTool, 0, len(names))
	for _, name := range names {
		if t := tb.byName(name); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// All returns every tool in the box.
func (tb *Toolbox) All() []tool.BaseTool {
	return []tool.BaseTool{
		tb.createSearchRestaurantsTool(),
		tb.createBestValueTool(),
		tb.createRestaurantDetailsTool(),
		tb.createPreferencesTool(),
		tb.createScheduleTool(),
		tb.createBudgetTool(),
		tb.createMealHistoryTool(),
	}
}

func (tb *Toolbox) byName(name string) tool.BaseTool {
	switch name {
	case ToolSearchRestaurants:
		return tb.createSearchRestaurantsTool()
	case ToolBestValueRestaurants:
		return tb.createBestValueTool()
	case ToolRestaurantDetails:
		return tb.createRestaurantDetailsTool()
	case ToolGetPreferences:
		return tb.createPreferencesTool()
	case ToolGetSchedule:
		return tb.createScheduleTool()
	case ToolGetBudget:
		return tb.createBudgetTool()
	case ToolGetMealHistory:
		return tb.createMealHistoryTool()
	}
	return nil
}

// GetToolInfos collects the ToolInfo of each tool, preserving order.
func GetToolInfos(ctx context.Context, ts []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(ts))
	for _, t := range ts {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("get tool info: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}
