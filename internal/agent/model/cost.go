package model

import (
	"github.com/cloudwego/eino/schema"
)

// Pricing is USD per 1M text tokens.
type Pricing struct {
	InputPerM  float64
	OutputPerM float64
}

// modelPricing covers the models this service runs. Unknown models price at
// zero so cost reporting degrades to token counts instead of guessing.
var modelPricing = map[string]Pricing{
	"gemini-2.5-flash":      {InputPerM: 0.30, OutputPerM: 2.50},
	"gemini-2.5-flash-lite": {InputPerM: 0.10, OutputPerM: 0.40},
}

// CostEnabled reports whether per-run cost accounting is active.
func CostEnabled() bool {
	return true
}

// ResolvePricing returns the pricing entry for a model name.
func ResolvePricing(model string) Pricing {
	return modelPricing[model]
}

// ComputeCost converts token usage into USD using per-1M pricing.
func ComputeCost(usage *schema.TokenUsage, p Pricing) (inputCost, outputCost, total float64) {
	if usage == nil {
		return 0, 0, 0
	}
	inputCost = p.InputPerM * float64(usage.PromptTokens) / 1_000_000.0
	outputCost = p.OutputPerM * float64(usage.CompletionTokens) / 1_000_000.0
	return inputCost, outputCost, inputCost + outputCost
}
