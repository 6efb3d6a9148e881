package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealpick-core/server/internal/agent/model"
)

func TestBlackboardWriteOnce(t *testing.T) {
	b := NewBlackboard()
	require.NoError(t, b.Write("taste", Entry{Role: model.RoleTaste, Content: "한식"}))

	err := b.Write("taste", Entry{Role: model.RoleTaste, Content: "덮어쓰기"})
	assert.Error(t, err)

	e, ok := b.Read("taste")
	require.True(t, ok)
	assert.Equal(t, "한식", e.Content, "first write survives")
}

func TestBlackboardEntriesKeepWriteOrder(t *testing.T) {
	b := NewBlackboard()
	require.NoError(t, b.Write("budget", Entry{Role: model.RoleBudget, Content: "만원 남음"}))
	require.NoError(t, b.Write("schedule", Entry{Role: model.RoleSchedule, Content: "40분 가능"}))

	entries := b.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, model.RoleBudget, entries[0].Role)
	assert.Equal(t, model.RoleSchedule, entries[1].Role)
}

func TestRenderForSkipsDegradedAndLabelsPartial(t *testing.T) {
	b := NewBlackboard()
	require.NoError(t, b.Write("taste", Entry{Role: model.RoleTaste, Content: "한식 선호"}))
	require.NoError(t, b.Write("nutrition", Entry{Role: model.RoleNutrition, Content: "insufficient data", Degraded: true}))
	require.NoError(t, b.Write("budget", Entry{Role: model.RoleBudget, Content: "만원 이하 추천", Incomplete: true}))

	out := b.RenderFor([]model.Role{model.RoleTaste, model.RoleNutrition, model.RoleBudget})
	assert.Contains(t, out, "[taste]")
	assert.Contains(t, out, "한식 선호")
	assert.NotContains(t, out, "insufficient data")
	assert.Contains(t, out, "budget (partial, some lookups failed)")
}

func TestRenderForUnknownRoleIsEmpty(t *testing.T) {
	b := NewBlackboard()
	assert.Empty(t, b.RenderFor([]model.Role{model.RoleChef}))
}
