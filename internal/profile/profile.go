// Package profile exposes the persona data a pipeline run may consult. The
// acquisition side (wiki/Notion parsing) lives outside this service; whatever
// produces the data must conform to the Source contract below.
package profile

import (
	"context"
	"encoding/json"
	"os"

	errx "github.com/mealpick-core/server/internal/core/error"
	logx "github.com/mealpick-core/server/pkg/logger"
)

// Preferences captures the taste and health related persona fields.
type Preferences struct {
	Allergies           []string          `json:"allergies"`
	Dislikes            []string          `json:"dislikes"`
	DietGoal            string            `json:"diet_goal"`
	FavoriteCuisines    []string          `json:"favorite_cuisines"`
	SpicyLevel          string            `json:"spicy_level"`
	CookingSkill        string            `json:"cooking_skill"`
	HealthConditions    []string          `json:"health_conditions"`
	DietaryRestrictions map[string]string `json:"dietary_restrictions"`
}

// Schedule describes the user's availability for the next meal.
type Schedule struct {
	Today                string `json:"today"`
	AvailableTimeMinutes int    `json:"available_time_minutes"`
	MealSlot             string `json:"meal_slot"`
}

// Budget describes the user's spending state for today.
type Budget struct {
	DailyLimit     int    `json:"daily_limit"`
	SpentToday     int    `json:"spent_today"`
	PreferredRange [2]int `json:"preferred_range"`
}

// MealRecord is one historical meal entry.
type MealRecord struct {
	Date     string `json:"date"`
	Type     string `json:"type"`
	Item     string `json:"item"`
	Calories int    `json:"calories"`
	Cost     int    `json:"cost"`
}

// Source is the persona/profile data contract consumed by roles. Every method
// may fail independently; callers degrade rather than abort when one does.
type Source interface {
	Preferences(ctx context.Context) (*Preferences, error)
	Schedule(ctx context.Context) (*Schedule, error)
	Budget(ctx context.Context) (*Budget, error)
	MealHistory(ctx context.Context, days int) ([]MealRecord, error)
}

type fileData struct {
	Preferences Preferences  `json:"preferences"`
	Schedule    Schedule     `json:"schedule"`
	Budget      Budget       `json:"budget"`
	MealHistory []MealRecord `json:"meal_history"`
}

// FileSource serves persona data from a JSON snapshot loaded at construction.
type FileSource struct {
	data fileData
}

// NewFileSource reads the persona snapshot from path.
func NewFileSource(path string) (*FileSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		logx.Error().Err(err).Str("path", path).Msg("failed to read profile snapshot")
		return nil, errx.WrapProfile(err)
	}
	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		logx.Error().Err(err).Str("path", path).Msg("failed to decode profile snapshot")
		return nil, errx.WrapProfile(err)
	}
	logx.Info().Str("path", path).Int("meals", len(data.MealHistory)).Msg("profile snapshot loaded")
	return &FileSource{data: data}, nil
}

func (s *FileSource) Preferences(ctx context.Context) (*Preferences, error) {
	p := s.data.Preferences
	return &p, nil
}

func (s *FileSource) Schedule(ctx context.Context) (*Schedule, error) {
	sc := s.data.Schedule
	return &sc, nil
}

func (s *FileSource) Budget(ctx context.Context) (*Budget, error) {
	b := s.data.Budget
	return &b, nil
}

func (s *FileSource) MealHistory(ctx context.Context, days int) ([]MealRecord, error) {
	if days <= 0 {
		days = 7
	}
	history := s.data.MealHistory
	if len(history) > days*3 {
		history = history[len(history)-days*3:]
	}
	out := make([]MealRecord, len(history))
	copy(out, history)
	return out, nil
}

var _ Source = (*FileSource)(nil)
