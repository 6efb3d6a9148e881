// Package llm constructs the Gemini chat models the pipeline runs on.
package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	"github.com/mealpick-core/server/internal/agent/model"
	logx "github.com/mealpick-core/server/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey           string
	BaseURL          string
	ClassifierConfig *model.ClassifierModelConfig
	RoleConfig       *model.RoleModelConfig
}

// ChatModels holds the classifier model and the role (specialist) model.
// The role model is kept unbound; each role binds its own tool subset.
type ChatModels struct {
	Classifier          *gemini.ChatModel
	Role                *gemini.ChatModel
	ClassifierModelName string
	RoleModelName       string
}

// NewChatModels creates both chat models against one shared Gemini client.
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	if config.ClassifierConfig == nil || config.RoleConfig == nil {
		return nil, fmt.Errorf("model config is nil")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	classifierModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.ClassifierConfig.Model,
		Temperature: &config.ClassifierConfig.Temperature,
		MaxTokens:   &config.ClassifierConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating classifier model")
		return nil, fmt.Errorf("error creating classifier model: %w", err)
	}

	roleModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.RoleConfig.Model,
		Temperature: &config.RoleConfig.Temperature,
		MaxTokens:   &config.RoleConfig.MaxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: true,
			ThinkingBudget:  genai.Ptr(int32(2000)),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating role model")
		return nil, fmt.Errorf("error creating role model: %w", err)
	}

	return &ChatModels{
		Classifier:          classifierModel,
		Role:                roleModel,
		ClassifierModelName: config.ClassifierConfig.Model,
		RoleModelName:       config.RoleConfig.Model,
	}, nil
}
