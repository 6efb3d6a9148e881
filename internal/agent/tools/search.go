package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/mealpick-core/server/internal/catalog"
	"github.com/mealpick-core/server/internal/recommend"
)

// ===================================
// Search Restaurants Tool
// ===================================

type SearchRestaurantsInput struct {
	MaxBudget      int    `json:"max_budget,omitempty"`
	MaxTimeMinutes int    `json:"max_time_minutes,omitempty"`
	MealMode       string `json:"meal_mode,omitempty"`
	Keyword        string `json:"keyword,omitempty"`
}

type SearchRestaurantsOutput struct {
	Candidates  []recommend.Candidate       `json:"candidates"`
	Total       int                         `json:"total"`
	Constraints recommend.SearchConstraints `json:"constraints"`
	Suggestion  string                      `json:"suggestion,omitempty"`
}

const (
	defaultMaxBudget      = 100000
	defaultMaxTimeMinutes = 120
)

func (in *SearchRestaurantsInput) constraints() recommend.SearchConstraints {
	budget := in.MaxBudget
	if budget <= 0 {
		budget = defaultMaxBudget
	}
	minutes := in.MaxTimeMinutes
	if minutes <= 0 {
		minutes = defaultMaxTimeMinutes
	}
	mode := recommend.ModeDelivery
	if strings.EqualFold(strings.TrimSpace(in.MealMode), string(recommend.ModeDineIn)) {
		mode = recommend.ModeDineIn
	}
	return recommend.SearchConstraints{
		MaxBudget:      budget,
		MaxTimeMinutes: minutes,
		MealMode:       mode,
		Keyword:        strings.TrimSpace(in.Keyword),
	}
}

func (tb *Toolbox) createSearchRestaurantsTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSearchRestaurants,
			Desc: "Search restaurants within a budget and time limit. Returns venues ordered by estimated duration with the menu items the user can afford. The keyword filter is optional; omit it to search everything.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"max_budget": {
					Type: "number",
					Desc: "Maximum budget in KRW (default: 100000)",
				},
				"max_time_minutes": {
					Type: "number",
					Desc: "Maximum acceptable duration in minutes (default: 120)",
				},
				"meal_mode": {
					Type: "string",
					Desc: "Either delivery or dine_in (default: delivery)",
				},
				"keyword": {
					Type: "string",
					Desc: "Optional keyword matched against venue name, description and menu item names. Examples: 한식, 파스타, 국물",
				},
			}),
		},
		func(ctx context.Context, in *SearchRestaurantsInput) (*SearchRestaurantsOutput, error) {
			result := recommend.Rank(tb.cat, in.constraints(), recommend.RankGeneral)
			return &SearchRestaurantsOutput{
				Candidates:  result.Candidates,
				Total:       len(result.Candidates),
				Constraints: result.Constraints,
				Suggestion:  result.Suggestion,
			}, nil
		},
	)
}

// ===================================
// Best Value Tool
// ===================================

type BestValueInput struct {
	MaxBudget      int    `json:"max_budget,omitempty"`
	MaxTimeMinutes int    `json:"max_time_minutes,omitempty"`
	MealMode       string `json:"meal_mode,omitempty"`
}

type BestValueOutput struct {
	Candidates  []recommend.Candidate       `json:"candidates"`
	Total       int                         `json:"total"`
	Constraints recommend.SearchConstraints `json:"constraints"`
	Suggestion  string                      `json:"suggestion,omitempty"`
}

func (tb *Toolbox) createBestValueTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolBestValueRestaurants,
			Desc: "Recommend the restaurants with the best value for money within a budget and time limit. Ranks by budget headroom over average affordable menu price divided by duration; higher is better. Returns at most five venues.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"max_budget": {
					Type: "number",
					Desc: "Maximum budget in KRW (default: 100000)",
				},
				"max_time_minutes": {
					Type: "number",
					Desc: "Maximum acceptable duration in minutes (default: 120)",
				},
				"meal_mode": {
					Type: "string",
					Desc: "Either delivery or dine_in (default: delivery)",
				},
			}),
		},
		func(ctx context.Context, in *BestValueInput) (*BestValueOutput, error) {
			search := SearchRestaurantsInput{
				MaxBudget:      in.MaxBudget,
				MaxTimeMinutes: in.MaxTimeMinutes,
				MealMode:       in.MealMode,
			}
			result := recommend.Rank(tb.cat, search.constraints(), recommend.RankBestValue)
			return &BestValueOutput{
				Candidates:  result.Candidates,
				Total:       len(result.Candidates),
				Constraints: result.Constraints,
				Suggestion:  result.Suggestion,
			}, nil
		},
	)
}

// ===================================
// Restaurant Details Tool
// ===================================

type RestaurantDetailsInput struct {
	RestaurantName string `json:"restaurant_name"`
}

type RestaurantDetailsOutput struct {
	Venue catalog.Venue `json:"venue"`
}

func (tb *Toolbox) createRestaurantDetailsTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolRestaurantDetails,
			Desc: "Look up the full record of one restaurant: description, opening hours, closed days, both duration estimates and the complete menu. Matches the name case-insensitively as a substring and returns the first hit.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"restaurant_name": {
					Type:     "string",
					Desc:     "Restaurant name, or a distinctive part of it, taken from search results",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *RestaurantDetailsInput) (*RestaurantDetailsOutput, error) {
			if strings.TrimSpace(in.RestaurantName) == "" {
				return nil, fmt.Errorf("restaurant_name is required")
			}
			v, err := recommend.Detail(tb.cat, in.RestaurantName)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", err, in.RestaurantName)
			}
			return &RestaurantDetailsOutput{Venue: v}, nil
		},
	)
}
