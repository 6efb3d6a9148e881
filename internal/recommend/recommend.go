// Package recommend implements deterministic filtering and ranking of the
// venue catalog against budget, time and keyword constraints. It is a pure
// function of its inputs so results are fully reproducible in tests.
package recommend

import (
	"errors"
	"sort"
	"strings"

	"github.com/mealpick-core/server/internal/catalog"
)

// MealMode selects which duration estimate a ranking run uses.
type MealMode string

const (
	ModeDelivery MealMode = "delivery"
	ModeDineIn   MealMode = "dine_in"
)

// RankMode selects the ordering strategy.
type RankMode string

const (
	// RankGeneral orders by ascending duration and returns up to 10 venues.
	RankGeneral RankMode = "general"
	// RankBestValue orders by descending value score and returns up to 5 venues.
	RankBestValue RankMode = "best_value"
)

const (
	generalLimit   = 10
	bestValueLimit = 5
)

// SearchConstraints are the caller's hard limits for a ranking run.
// Keyword may be empty, in which case no keyword filter applies.
type SearchConstraints struct {
	MaxBudget      int      `json:"max_budget"`
	MaxTimeMinutes int      `json:"max_time_minutes"`
	MealMode       MealMode `json:"meal_mode"`
	Keyword        string   `json:"keyword,omitempty"`
}

// Candidate is one venue that survived every constraint, with the menu subset
// the user can actually afford. ValueScore is populated only in best-value mode.
type Candidate struct {
	Venue            catalog.Venue      `json:"venue"`
	AffordableMenu   []catalog.MenuItem `json:"affordable_menu"`
	EstimatedMinutes int                `json:"estimated_minutes"`
	ValueScore       float64            `json:"value_score,omitempty"`
}

// Result carries the ranked candidates. When no venue survives, Candidates is
// empty and Suggestion explains how the caller might relax the constraints;
// an empty catalog match is an answer, not an error.
type Result struct {
	Candidates  []Candidate       `json:"candidates"`
	Constraints SearchConstraints `json:"constraints"`
	Suggestion  string            `json:"suggestion,omitempty"`
}

// ErrVenueNotFound is returned by Detail when no venue name matches.
var ErrVenueNotFound = errors.New("venue not found")

// Rank filters the catalog against the constraints and orders the survivors
// according to mode. Ties keep original catalog order.
func Rank(cat *catalog.Catalog, c SearchConstraints, mode RankMode) Result {
	delivery := c.MealMode != ModeDineIn
	keyword := strings.ToLower(strings.TrimSpace(c.Keyword))

	var candidates []Candidate
	for _, v := range cat.Venues() {
		minutes := catalog.VenueMinutes(v, delivery)
		if minutes > c.MaxTimeMinutes {
			continue
		}
		if keyword != "" && !matchesKeyword(v, keyword) {
			continue
		}
		affordable := affordableMenu(v.Menu, c.MaxBudget)
		if len(affordable) == 0 {
			continue
		}
		candidates = append(candidates, Candidate{
			Venue:            v,
			AffordableMenu:   affordable,
			EstimatedMinutes: minutes,
		})
	}

	if len(candidates) == 0 {
		return Result{
			Constraints: c,
			Suggestion:  "no venues matched; consider raising the budget or allowing more time",
		}
	}

	switch mode {
	case RankBestValue:
		for i := range candidates {
			candidates[i].ValueScore = valueScore(candidates[i], c.MaxBudget)
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].ValueScore > candidates[j].ValueScore
		})
		if len(candidates) > bestValueLimit {
			candidates = candidates[:bestValueLimit]
		}
	default:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].EstimatedMinutes < candidates[j].EstimatedMinutes
		})
		if len(candidates) > generalLimit {
			candidates = candidates[:generalLimit]
		}
	}

	return Result{Candidates: candidates, Constraints: c}
}

// Detail looks a venue up by case-insensitive substring match on its name and
// returns the first hit in catalog order.
func Detail(cat *catalog.Catalog, name string) (catalog.Venue, error) {
	v, ok := cat.FindByName(name)
	if !ok {
		return catalog.Venue{}, ErrVenueNotFound
	}
	return v, nil
}

func matchesKeyword(v catalog.Venue, keyword string) bool {
	if strings.Contains(strings.ToLower(v.Name), keyword) {
		return true
	}
	if strings.Contains(strings.ToLower(v.Description), keyword) {
		return true
	}
	for _, m := range v.Menu {
		if strings.Contains(strings.ToLower(m.Name), keyword) {
			return true
		}
	}
	return false
}

// affordableMenu returns menu items with a known price within budget, cheapest
// first. Items without a price are excluded under any budget.
func affordableMenu(menu []catalog.MenuItem, maxBudget int) []catalog.MenuItem {
	var items []catalog.MenuItem
	for _, m := range menu {
		if m.Price != nil && *m.Price <= maxBudget {
			items = append(items, m)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return *items[i].Price < *items[j].Price
	})
	return items
}

// valueScore rewards cheap menus reachable quickly: budget headroom over the
// average affordable price, divided by the duration (floored at one minute).
func valueScore(c Candidate, maxBudget int) float64 {
	sum := 0
	for _, m := range c.AffordableMenu {
		sum += *m.Price
	}
	avg := float64(sum) / float64(len(c.AffordableMenu))

	minutes := c.EstimatedMinutes
	if minutes < 1 {
		minutes = 1
	}
	return (float64(maxBudget) - avg) / float64(minutes)
}
