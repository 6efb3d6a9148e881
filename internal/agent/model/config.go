package model

// ================ Config ================
type ConversationConfig struct {
	TTL     string `envconfig:"CONVERSATION_TTL" default:"15m"`
	History struct {
		MaxTurns int `envconfig:"CONVERSATION_HISTORY_MAX_TURNS" default:"5"`
	}
}

type ClassifierModelConfig struct {
	Model       string  `envconfig:"CLASSIFIER_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"CLASSIFIER_MAX_TOKENS" default:"500"`
	Temperature float32 `envconfig:"CLASSIFIER_TEMPERATURE" default:"0.3"`
}

type RoleModelConfig struct {
	Model       string  `envconfig:"ROLE_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"ROLE_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"ROLE_TEMPERATURE" default:"0.7"`
}

type PipelineConfig struct {
	// RoleToolMaxCalls caps retrieval/search tool calls per role invocation.
	// Once exhausted the role finalises from data already gathered.
	RoleToolMaxCalls int `envconfig:"PIPELINE_ROLE_TOOL_MAX_CALLS" default:"3"`
	// RunTimeout bounds the wall clock of one pipeline run end to end.
	RunTimeout string `envconfig:"PIPELINE_RUN_TIMEOUT" default:"120s"`
}

type DataConfig struct {
	CatalogPath string `envconfig:"CATALOG_PATH" default:"data/restaurants.json"`
	ProfilePath string `envconfig:"PROFILE_PATH" default:"data/profile.json"`
}
