// Package agent assembles the meal recommendation pipeline: classify the
// request, plan a role sequence, execute it over the blackboard, screen the
// answer and persist the turn.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/mealpick-core/server/internal/agent/classify"
	"github.com/mealpick-core/server/internal/agent/conversations"
	"github.com/mealpick-core/server/internal/agent/judge"
	"github.com/mealpick-core/server/internal/agent/llm"
	"github.com/mealpick-core/server/internal/agent/model"
	"github.com/mealpick-core/server/internal/agent/observers"
	"github.com/mealpick-core/server/internal/agent/pipeline"
	"github.com/mealpick-core/server/internal/agent/plan"
	"github.com/mealpick-core/server/internal/agent/roles"
	"github.com/mealpick-core/server/internal/agent/tools"
	"github.com/mealpick-core/server/internal/catalog"
	"github.com/mealpick-core/server/internal/profile"
	logx "github.com/mealpick-core/server/pkg/logger"
)

// Config holds everything needed to assemble the service end to end.
type Config struct {
	APIKey           string
	BaseURL          string
	ClassifierModel  model.ClassifierModelConfig
	RoleModel        model.RoleModelConfig
	Conversation     model.ConversationConfig
	Pipeline         model.PipelineConfig
	ConversationRepo model.ConversationRepository
	Catalog          *catalog.Catalog
	ProfileSource    profile.Source
}

// Answer is the outcome of one handled turn.
type Answer struct {
	RunID      string
	Content    string
	Workflow   model.WorkflowType
	Incomplete bool
	CostUSD    float64
}

// Service is the orchestrating facade over the whole pipeline.
type Service struct {
	classifier *classify.Classifier
	executor   *pipeline.Executor
	messages   *conversations.MessagesManager
	judge      judge.Judge
	source     profile.Source
	runTimeout time.Duration
}

// New builds the service: chat models, toolbox, runner, executor, judge.
func New(ctx context.Context, cfg Config) (*Service, error) {
	if cfg.ConversationRepo == nil {
		return nil, fmt.Errorf("conversation repo is nil")
	}
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	if cfg.ProfileSource == nil {
		return nil, fmt.Errorf("profile source is nil")
	}

	observers.Install()

	cms, err := llm.NewChatModels(ctx, llm.ChatModelConfig{
		APIKey:           cfg.APIKey,
		BaseURL:          cfg.BaseURL,
		ClassifierConfig: &cfg.ClassifierModel,
		RoleConfig:       &cfg.RoleModel,
	})
	if err != nil {
		return nil, err
	}

	toolbox := tools.NewToolbox(cfg.Catalog, cfg.ProfileSource)
	runner := roles.NewRunner(cms.Role, cms.RoleModelName, toolbox, cfg.Pipeline.RoleToolMaxCalls)

	runTimeout, err := time.ParseDuration(cfg.Pipeline.RunTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse run timeout: %w", err)
	}

	svc := &Service{
		classifier: classify.New(cms.Classifier, cms.ClassifierModelName),
		executor:   pipeline.NewExecutor(runner, cms.Role, cms.RoleModelName),
		messages:   conversations.NewMessagesManager(cfg.ConversationRepo, cfg.Conversation),
		judge:      judge.NewLLMJudge(cms.Classifier),
		source:     cfg.ProfileSource,
		runTimeout: runTimeout,
	}
	logx.Debug().Msg("agent service assembled")
	return svc, nil
}

// Handle drives one user turn end to end.
func (s *Service) Handle(ctx context.Context, in model.QueryInput) (*Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	historyContext, err := s.messages.RecordUserMessage(ctx, in.ConversationID, in.Query)
	if err != nil {
		// History is a nicety; classification works from the raw query alone.
		logx.Warn().Err(err).Str("conversation_id", in.ConversationID).Msg("history unavailable, continuing without it")
		historyContext = ""
	}

	sel := s.classifier.Classify(ctx, in.Query, historyContext)
	tasks := plan.Plan(sel)

	result, err := s.executor.Execute(ctx, sel, tasks, in.Query)
	if err != nil {
		return nil, err
	}

	answer := result.Answer
	answer = s.screen(ctx, answer)

	if err := s.messages.SaveResponse(ctx, in.ConversationID, answer); err != nil {
		logx.Warn().Err(err).Str("conversation_id", in.ConversationID).Msg("failed to persist assistant turn")
	}

	return &Answer{
		RunID:      result.RunID,
		Content:    answer,
		Workflow:   sel.Type,
		Incomplete: result.Incomplete,
		CostUSD:    result.CostUSD,
	}, nil
}

// screen runs the persona safety judge over the final answer. A rejection
// does not block the reply; it appends an explicit caution instead.
func (s *Service) screen(ctx context.Context, answer string) string {
	prefs, err := s.source.Preferences(ctx)
	if err != nil {
		logx.Warn().Err(err).Msg("preferences unavailable, skipping answer screening")
		return answer
	}

	verdict, err := s.judge.Judge(ctx, answer, prefs)
	if err != nil {
		logx.Warn().Err(err).Msg("judge unavailable, skipping answer screening")
		return answer
	}
	if verdict.Accept {
		return answer
	}

	logx.Warn().Str("reason", verdict.Reason).Msg("answer flagged by judge")
	return answer + "\n\n⚠️ " + verdict.Reason
}
