package service

import (
	"context"
	"os"
	"testing"
	"time"

	"edu_platform_backend/internal/config"
	"edu_platform_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// liveRedis 连接 EDU_TEST_REDIS_ADDR 指向的 Redis（使用 15 号库并在前后清空），未配置或不可达时跳过
func liveRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("EDU_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("EDU_TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		t.Skipf("redis at %s unavailable: %v", addr, err)
	}
	require.NoError(t, rdb.FlushDB(context.Background()).Err())
	t.Cleanup(func() {
		rdb.FlushDB(context.Background())
		rdb.Close()
	})
	return rdb
}

// deadRedis 指向一个不会有服务监听的地址
func deadRedis(t *testing.T) *redis.Client {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestPathCacheRoundTrip(t *testing.T) {
	rdb := liveRedis(t)
	ctx := context.Background()
	edu := config.NewEducationStore(config.DefaultEducationalConfig())
	c := NewPathCache(rdb, edu)

	p := &model.LearningPath{UUIDBase: model.UUIDBase{ID: "p1"}, Title: "DNS Fundamentals", Status: model.StatusPublished}
	c.SetPath(ctx, p)
	got, ok := c.GetPath(ctx, "p1")
	require.True(t, ok)
	assert.Equal(t, "DNS Fundamentals", got.Title)

	f := model.SearchFilters{Query: "dns"}
	pg := model.DefaultPagination()
	c.SetList(ctx, f, pg, model.NewPageResult([]model.LearningPath{*p}, 1, pg))
	list, ok := c.GetList(ctx, f, pg)
	require.True(t, ok)
	assert.EqualValues(t, 1, list.Total)
	_, ok = c.GetList(ctx, model.SearchFilters{Query: "tls"}, pg)
	assert.False(t, ok)

	c.SetStatistics(ctx, &model.LearningStatistics{})
	_, ok = c.GetStatistics(ctx, "")
	assert.True(t, ok)

	c.InvalidatePath(ctx, "p1")
	_, ok = c.GetPath(ctx, "p1")
	assert.False(t, ok)
	_, ok = c.GetList(ctx, f, pg)
	assert.False(t, ok, "list entries from the previous version are unreachable")

	c.SetPath(ctx, p)
	ttl, err := rdb.TTL(ctx, pathKeyPrefix+"p1").Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, edu.Load().Cache.PathTTL())
	assert.Positive(t, ttl)

	off := config.DefaultEducationalConfig()
	off.Cache.PathTTLSeconds = 0
	edu.Store(off)
	_, ok = c.GetPath(ctx, "p1")
	assert.False(t, ok, "a zero TTL disables the cache")
}

func TestPathCacheUnreachableRedisMisses(t *testing.T) {
	ctx := context.Background()
	c := NewPathCache(deadRedis(t), config.NewEducationStore(config.DefaultEducationalConfig()))

	c.SetPath(ctx, &model.LearningPath{UUIDBase: model.UUIDBase{ID: "p1"}})
	_, ok := c.GetPath(ctx, "p1")
	assert.False(t, ok)
	_, ok = c.GetList(ctx, model.SearchFilters{}, model.DefaultPagination())
	assert.False(t, ok)
	c.InvalidatePath(ctx, "p1")
}

func TestKnowledgeBaseViewsDedupedPerVisitor(t *testing.T) {
	f := newFixture(t)
	f.kb.Redis = liveRedis(t)
	ctx := context.Background()
	a, err := f.kb.Create(ctx, instructor, newArticle("Memory acquisition", model.StatusPublished))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := f.kb.Get(ctx, student, a.ID, "10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, 1, got.Views)
	}
	got, err := f.kb.Get(ctx, student2, a.ID, "10.0.0.2")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Views)

	ttl, err := f.kb.Redis.TTL(ctx, articleViewKeyPrefix+a.ID+":10.0.0.1").Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, articleViewWindow)
	assert.Positive(t, ttl)
}

func TestKnowledgeBaseViewsCountWhenRedisUnreachable(t *testing.T) {
	f := newFixture(t)
	f.kb.Redis = deadRedis(t)
	ctx := context.Background()
	a, err := f.kb.Create(ctx, instructor, newArticle("Chain of custody", model.StatusPublished))
	require.NoError(t, err)

	for i := 1; i <= 2; i++ {
		got, err := f.kb.Get(ctx, student, a.ID, "10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, i, got.Views)
	}
}
