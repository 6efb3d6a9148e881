// Package judge decides whether a recommended menu suits the user's persona.
// The interface has two backends: a deterministic rule screen used in tests
// and as a cheap first pass, and a chat-model-backed judge for production.
package judge

import (
	"context"
	"strings"

	"github.com/mealpick-core/server/internal/profile"
)

// Verdict is the outcome of judging one candidate menu against a persona.
type Verdict struct {
	Accept bool   `json:"accept"`
	Reason string `json:"reason"`
}

// Judge evaluates a candidate menu description against the user's persona.
type Judge interface {
	Judge(ctx context.Context, candidate string, persona *profile.Preferences) (Verdict, error)
}

// RuleJudge rejects candidates that name an allergen, a disliked food or a
// food class excluded by a dietary restriction. It only sees text, so it errs
// on the side of accepting; the reasoning-backed judge refines on top.
type RuleJudge struct{}

func NewRuleJudge() *RuleJudge {
	return &RuleJudge{}
}

func (j *RuleJudge) Judge(ctx context.Context, candidate string, persona *profile.Preferences) (Verdict, error) {
	if persona == nil {
		return Verdict{Accept: true, Reason: "no persona data; nothing to screen against"}, nil
	}
	text := strings.ToLower(candidate)

	for _, allergen := range persona.Allergies {
		if term := strings.ToLower(strings.TrimSpace(allergen)); term != "" && strings.Contains(text, term) {
			return Verdict{Accept: false, Reason: "contains allergen: " + allergen}, nil
		}
	}
	for _, dislike := range persona.Dislikes {
		if term := strings.ToLower(strings.TrimSpace(dislike)); term != "" && strings.Contains(text, term) {
			return Verdict{Accept: false, Reason: "user dislikes: " + dislike}, nil
		}
	}
	for kind, excluded := range persona.DietaryRestrictions {
		if term := strings.ToLower(strings.TrimSpace(excluded)); term != "" && strings.Contains(text, term) {
			return Verdict{Accept: false, Reason: "violates " + kind + " restriction: " + excluded}, nil
		}
	}

	return Verdict{Accept: true, Reason: "no conflict with the persona found"}, nil
}

var _ Judge = (*RuleJudge)(nil)
