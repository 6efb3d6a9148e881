package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/mealpick-core/server/internal/profile"
	logx "github.com/mealpick-core/server/pkg/logger"
)

const llmJudgeSystemPrompt = `You judge whether a recommended menu suits a specific user.
Reject menus that conflict with allergies, dietary restrictions, health conditions or stated dislikes.
Answer with a single JSON object: {"accept": true|false, "reason": "one line"}.
Output JSON only, no other text.`

// LLMJudge asks a chat model for the verdict, screening with the rule judge
// first so obvious conflicts never cost a model call.
type LLMJudge struct {
	cm    einomodel.BaseChatModel
	rules *RuleJudge
}

func NewLLMJudge(cm einomodel.BaseChatModel) *LLMJudge {
	return &LLMJudge{cm: cm, rules: NewRuleJudge()}
}

func (j *LLMJudge) Judge(ctx context.Context, candidate string, persona *profile.Preferences) (Verdict, error) {
	if v, err := j.rules.Judge(ctx, candidate, persona); err == nil && !v.Accept {
		return v, nil
	}

	personaJSON, err := json.Marshal(persona)
	if err != nil {
		return Verdict{}, fmt.Errorf("marshal persona: %w", err)
	}

	out, err := j.cm.Generate(ctx, []*schema.Message{
		schema.SystemMessage(llmJudgeSystemPrompt),
		schema.UserMessage(fmt.Sprintf("Candidate menu:\n%s\n\nUser persona:\n%s", candidate, personaJSON)),
	})
	if err != nil {
		logx.Error().Err(err).Msg("judge model call failed")
		return Verdict{}, err
	}

	var verdict Verdict
	content := stripCodeFence(out.Content)
	if err := json.Unmarshal([]byte(content), &verdict); err != nil {
		logx.Warn().Str("content", content).Msg("unparseable judge verdict; accepting by default")
		return Verdict{Accept: true, Reason: "judge output unparseable; accepted by default"}, nil
	}
	return verdict, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

var _ Judge = (*LLMJudge)(nil)
