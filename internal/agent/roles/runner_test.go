package roles

import (
	"context"
	"errors"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealpick-core/server/internal/agent/model"
	"github.com/mealpick-core/server/internal/agent/tools"
	"github.com/mealpick-core/server/internal/catalog"
	"github.com/mealpick-core/server/internal/profile"
)

// scriptedModel replays a fixed sequence of responses.
type scriptedModel struct {
	responses []*schema.Message
	err       error
	i         int
}

func (m *scriptedModel) Generate(ctx context.Context, msgs []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.i >= len(m.responses) {
		return nil, errors.New("no scripted response left")
	}
	resp := m.responses[m.i]
	m.i++
	return resp, nil
}

func (m *scriptedModel) Stream(ctx context.Context, msgs []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	resp, err := m.Generate(ctx, msgs, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{resp}), nil
}

func (m *scriptedModel) WithTools(infos []*schema.ToolInfo) (einomodel.ToolCallingChatModel, error) {
	return m, nil
}

// fakeSource serves in-memory persona data, optionally failing.
type fakeSource struct {
	fail bool
}

func (s *fakeSource) Preferences(ctx context.Context) (*profile.Preferences, error) {
	if s.fail {
		return nil, errors.New("profile store down")
	}
	return &profile.Preferences{FavoriteCuisines: []string{"한식"}, SpicyLevel: "중간"}, nil
}

func (s *fakeSource) Schedule(ctx context.Context) (*profile.Schedule, error) {
	if s.fail {
		return nil, errors.New("profile store down")
	}
	return &profile.Schedule{AvailableTimeMinutes: 40, MealSlot: "저녁"}, nil
}

func (s *fakeSource) Budget(ctx context.Context) (*profile.Budget, error) {
	if s.fail {
		return nil, errors.New("profile store down")
	}
	return &profile.Budget{DailyLimit: 20000, SpentToday: 8000}, nil
}

func (s *fakeSource) MealHistory(ctx context.Context, days int) ([]profile.MealRecord, error) {
	if s.fail {
		return nil, errors.New("profile store down")
	}
	return []profile.MealRecord{{Date: "2025-09-01", Item: "제육볶음", Cost: 6500}}, nil
}

func intPtr(n int) *int { return &n }

func testToolbox(src profile.Source) *tools.Toolbox {
	cat := catalog.New([]catalog.Venue{
		{
			Name:             "분식집",
			Menu:             []catalog.MenuItem{{Name: "김밥", Price: intPtr(4000)}},
			DeliveryDuration: "25분",
			DineInDuration:   "15분",
		},
	})
	return tools.NewToolbox(cat, src)
}

func toolCallMsg(id, name, args string) *schema.Message {
	return schema.AssistantMessage("", []schema.ToolCall{
		{ID: id, Function: schema.FunctionCall{Name: name, Arguments: args}},
	})
}

func task(role model.Role) model.TaskSpec {
	return model.TaskSpec{Role: role, WriteKey: string(role)}
}

func TestRunToolLoopThenAnswer(t *testing.T) {
	cm := &scriptedModel{responses: []*schema.Message{
		toolCallMsg("call-1", tools.ToolGetPreferences, `{}`),
		schema.AssistantMessage("한식 위주로 분식집 김밥을 추천해요.", nil),
	}}
	r := NewRunner(cm, "test-model", testToolbox(&fakeSource{}), 3)

	finding, err := r.Run(context.Background(), task(model.RoleTaste), "뭐 먹을까?", "")
	require.NoError(t, err)

	assert.Equal(t, model.RoleTaste, finding.Role)
	assert.Equal(t, "한식 위주로 분식집 김밥을 추천해요.", finding.Content)
	assert.Equal(t, 1, finding.ToolCalls)
	assert.False(t, finding.Degraded)
	assert.False(t, finding.Incomplete)
}

func TestRunDegradedSentinel(t *testing.T) {
	cm := &scriptedModel{responses: []*schema.Message{
		schema.AssistantMessage("insufficient data", nil),
	}}
	r := NewRunner(cm, "test-model", testToolbox(&fakeSource{}), 3)

	finding, err := r.Run(context.Background(), task(model.RoleNutrition), "영양은?", "")
	require.NoError(t, err)
	assert.True(t, finding.Degraded)
}

func TestRunToolFailureMarksIncomplete(t *testing.T) {
	cm := &scriptedModel{responses: []*schema.Message{
		toolCallMsg("call-1", tools.ToolGetBudget, `{}`),
		schema.AssistantMessage("예산 데이터 없이 대략 답변합니다.", nil),
	}}
	r := NewRunner(cm, "test-model", testToolbox(&fakeSource{fail: true}), 3)

	finding, err := r.Run(context.Background(), task(model.RoleBudget), "예산 괜찮아?", "")
	require.NoError(t, err)
	assert.True(t, finding.Incomplete, "tool failures degrade the finding, not the run")
	assert.False(t, finding.Degraded)
}

func TestRunHallucinatedToolMarksIncomplete(t *testing.T) {
	cm := &scriptedModel{responses: []*schema.Message{
		toolCallMsg("call-1", "order_pizza", `{}`),
		schema.AssistantMessage("알 수 없는 도구라 기존 정보로 답합니다.", nil),
	}}
	r := NewRunner(cm, "test-model", testToolbox(&fakeSource{}), 3)

	finding, err := r.Run(context.Background(), task(model.RoleTaste), "뭐 먹을까?", "")
	require.NoError(t, err)
	assert.True(t, finding.Incomplete)
}

func TestRunToolCapForcesWrapUp(t *testing.T) {
	// with a cap of 1 the second response comes after the wrap-up notice and
	// must be taken as final even though the model keeps asking for tools
	cm := &scriptedModel{responses: []*schema.Message{
		toolCallMsg("call-1", tools.ToolGetPreferences, `{}`),
		schema.AssistantMessage("지금까지 모은 정보로 김밥을 추천해요.", nil),
	}}
	r := NewRunner(cm, "test-model", testToolbox(&fakeSource{}), 1)

	finding, err := r.Run(context.Background(), task(model.RoleTaste), "뭐 먹을까?", "")
	require.NoError(t, err)
	assert.Equal(t, 1, finding.ToolCalls)
	assert.Equal(t, "지금까지 모은 정보로 김밥을 추천해요.", finding.Content)
}

func TestRunModelErrorPropagates(t *testing.T) {
	cm := &scriptedModel{err: errors.New("model unavailable")}
	r := NewRunner(cm, "test-model", testToolbox(&fakeSource{}), 3)

	_, err := r.Run(context.Background(), task(model.RoleTaste), "뭐 먹을까?", "")
	assert.Error(t, err)
}

func TestRunEmptyAnswerBecomesDegraded(t *testing.T) {
	cm := &scriptedModel{responses: []*schema.Message{
		schema.AssistantMessage("", nil),
	}}
	r := NewRunner(cm, "test-model", testToolbox(&fakeSource{}), 3)

	finding, err := r.Run(context.Background(), task(model.RoleChef), "레시피 알려줘", "")
	require.NoError(t, err)
	assert.True(t, finding.Degraded)
}
