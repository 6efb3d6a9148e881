package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/mealpick-core/server/internal/agent"
	"github.com/mealpick-core/server/internal/agent/model"
	"github.com/mealpick-core/server/internal/agent/repo"
	"github.com/mealpick-core/server/internal/catalog"
	"github.com/mealpick-core/server/internal/core"
	"github.com/mealpick-core/server/internal/profile"
	logx "github.com/mealpick-core/server/pkg/logger"
	pkgredis "github.com/mealpick-core/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the recommendation
// service, sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Classifier   model.ClassifierModelConfig
	Role         model.RoleModelConfig
	Conversation model.ConversationConfig
	Pipeline     model.PipelineConfig
	Data         model.DataConfig
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	rdb, err := envCfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	ttl, err := time.ParseDuration(envCfg.Conversation.TTL)
	if err != nil {
		log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", envCfg.Conversation.TTL, err)
	}

	cat, err := catalog.Load(envCfg.Data.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load restaurant catalog: %v", err)
	}

	src, err := profile.NewFileSource(envCfg.Data.ProfilePath)
	if err != nil {
		log.Fatalf("Failed to load user profile: %v", err)
	}

	svc, err := agent.New(ctx, agent.Config{
		APIKey:           envCfg.APIKey,
		BaseURL:          envCfg.BaseURL,
		ClassifierModel:  envCfg.Classifier,
		RoleModel:        envCfg.Role,
		Conversation:     envCfg.Conversation,
		Pipeline:         envCfg.Pipeline,
		ConversationRepo: repo.NewRedisConversationRepository(rdb, ttl),
		Catalog:          cat,
		ProfileSource:    src,
	})
	if err != nil {
		log.Fatalf("Failed to build agent service: %v", err)
	}

	testQueries := []struct {
		description string
		query       string
	}{
		{
			description: "Broad meal recommendation",
			query:       "오늘 저녁 뭐 먹을까?",
		},
		{
			description: "Delivery within budget",
			query:       "만원으로 배달 시켜먹고 싶은데 뭐가 좋을까?",
		},
		{
			description: "Recipe request",
			query:       "된장찌개 만드는 법 알려줘",
		},
		{
			description: "Quick meal under time pressure",
			query:       "30분밖에 없는데 빨리 먹을 수 있는 거 추천해줘",
		},
	}

	conversationID := "demo-conversation-001"

	for i, test := range testQueries {
		fmt.Printf("\n🚀 Test %d: %s\n", i+1, test.description)
		fmt.Printf("Query: \"%s\"\n", test.query)
		fmt.Println("Processing...")

		answer, err := svc.Handle(ctx, model.QueryInput{
			ConversationID: conversationID,
			Query:          test.query,
		})
		if err != nil {
			log.Fatalf("Failed to handle query for test %d: %v", i+1, err)
		}

		fmt.Printf("✅ Response %d [%s, run %s]:\n%s\n", i+1, answer.Workflow, answer.RunID, answer.Content)
		if answer.Incomplete {
			fmt.Println("(note: answer based on incomplete data)")
		}
		if answer.CostUSD > 0 {
			fmt.Printf("cost: $%.6f\n", answer.CostUSD)
		}
		fmt.Println("─────────────────────────────────────────────")

		// slight delay between tests for readability
		time.Sleep(500 * time.Millisecond)
	}
}
