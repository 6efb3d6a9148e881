package repo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, ttl time.Duration) (*RedisConversationRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisConversationRepository(rdb, ttl), mr
}

func TestAddMessageAndLoadHistory(t *testing.T) {
	repo, _ := newTestRepo(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.AddMessage(ctx, "conv-1", schema.UserMessage("뭐 먹을까?")))
	require.NoError(t, repo.AddMessage(ctx, "conv-1", schema.AssistantMessage("김밥 어떠세요?", nil)))

	history, err := repo.LoadHistory(ctx, "conv-1")
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, schema.User, history.Messages[0].Role)
	assert.Equal(t, "뭐 먹을까?", history.Messages[0].Content)
	assert.Equal(t, schema.Assistant, history.Messages[1].Role)
}

func TestLoadHistoryEmptyConversation(t *testing.T) {
	repo, _ := newTestRepo(t, time.Minute)

	history, err := repo.LoadHistory(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, history.Messages)
}

func TestAddMessageSetsTTL(t *testing.T) {
	repo, mr := newTestRepo(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.AddMessage(ctx, "conv-ttl", schema.UserMessage("hi")))
	assert.Greater(t, mr.TTL("session:conv-ttl:messages"), time.Duration(0))

	mr.FastForward(2 * time.Minute)
	history, err := repo.LoadHistory(ctx, "conv-ttl")
	require.NoError(t, err)
	assert.Empty(t, history.Messages, "history expires with the session")
}

func TestClearHistory(t *testing.T) {
	repo, _ := newTestRepo(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.AddMessage(ctx, "conv-2", schema.UserMessage("hello")))
	require.NoError(t, repo.ClearHistory(ctx, "conv-2"))

	n, err := repo.GetMessageCount(ctx, "conv-2")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGetMessageCount(t *testing.T) {
	repo, _ := newTestRepo(t, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.AddMessage(ctx, "conv-3", schema.UserMessage("msg")))
	}
	n, err := repo.GetMessageCount(ctx, "conv-3")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
