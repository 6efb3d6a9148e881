package judge

import (
	"context"
	"errors"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealpick-core/server/internal/profile"
)

type fakeChatModel struct {
	content string
	err     error
	calls   int
}

func (f *fakeChatModel) Generate(ctx context.Context, msgs []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.content, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, msgs []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	resp, err := f.Generate(ctx, msgs, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{resp}), nil
}

func testPersona() *profile.Preferences {
	return &profile.Preferences{
		Allergies: []string{"땅콩"},
		Dislikes:  []string{"오이"},
		DietaryRestrictions: map[string]string{
			"religion": "돼지고기",
		},
	}
}

func TestRuleJudgeRejectsAllergen(t *testing.T) {
	v, err := NewRuleJudge().Judge(context.Background(), "땅콩 소스를 곁들인 샐러드", testPersona())
	require.NoError(t, err)
	assert.False(t, v.Accept)
	assert.Contains(t, v.Reason, "땅콩")
}

func TestRuleJudgeRejectsDislikeAndRestriction(t *testing.T) {
	v, err := NewRuleJudge().Judge(context.Background(), "오이 무침", testPersona())
	require.NoError(t, err)
	assert.False(t, v.Accept)

	v, err = NewRuleJudge().Judge(context.Background(), "돼지고기 김치찌개", testPersona())
	require.NoError(t, err)
	assert.False(t, v.Accept)
}

func TestRuleJudgeAcceptsCleanCandidate(t *testing.T) {
	v, err := NewRuleJudge().Judge(context.Background(), "닭가슴살 샐러드", testPersona())
	require.NoError(t, err)
	assert.True(t, v.Accept)
}

func TestRuleJudgeNilPersonaAccepts(t *testing.T) {
	v, err := NewRuleJudge().Judge(context.Background(), "아무거나", nil)
	require.NoError(t, err)
	assert.True(t, v.Accept)
}

func TestLLMJudgeRuleScreenSkipsModel(t *testing.T) {
	fake := &fakeChatModel{content: `{"accept": true, "reason": "ok"}`}
	j := NewLLMJudge(fake)

	v, err := j.Judge(context.Background(), "땅콩죽", testPersona())
	require.NoError(t, err)
	assert.False(t, v.Accept)
	assert.Zero(t, fake.calls, "rule rejection avoids the model call")
}

func TestLLMJudgeModelVerdict(t *testing.T) {
	fake := &fakeChatModel{content: "```json\n{\"accept\": false, \"reason\": \"위염에 맵다\"}\n```"}
	j := NewLLMJudge(fake)

	v, err := j.Judge(context.Background(), "불닭볶음면", testPersona())
	require.NoError(t, err)
	assert.False(t, v.Accept)
	assert.Equal(t, "위염에 맵다", v.Reason)
}

func TestLLMJudgeUnparseableAcceptsByDefault(t *testing.T) {
	j := NewLLMJudge(&fakeChatModel{content: "글쎄요, 괜찮을 것 같은데요"})

	v, err := j.Judge(context.Background(), "비빔밥", testPersona())
	require.NoError(t, err)
	assert.True(t, v.Accept)
}

func TestLLMJudgeModelErrorPropagates(t *testing.T) {
	j := NewLLMJudge(&fakeChatModel{err: errors.New("unavailable")})

	_, err := j.Judge(context.Background(), "비빔밥", testPersona())
	assert.Error(t, err)
}
