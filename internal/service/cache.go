package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"edu_platform_backend/internal/config"
	"edu_platform_backend/internal/model"
	"edu_platform_backend/pkg/logger"
	"edu_platform_backend/pkg/monitoring"
	"edu_platform_backend/pkg/tracing"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	pathKeyPrefix     = "edu:path:"
	pathListKeyPrefix = "edu:paths:list:"
	pathListVersion   = "edu:paths:list:version"
)

// PathCache 学习路径的旁路缓存。Redis 为 nil 时所有操作都是空操作。
// 列表缓存的键里带版本号，任何写操作只需递增版本即可让旧列表失效。
type PathCache struct {
	Redis *redis.Client
	Edu   *config.EducationStore
}

func NewPathCache(rdb *redis.Client, edu *config.EducationStore) *PathCache {
	return &PathCache{Redis: rdb, Edu: edu}
}

func (c *PathCache) enabled() bool {
	return c != nil && c.Redis != nil && c.Edu.Load().Cache.PathTTLSeconds > 0
}

func (c *PathCache) ttl() time.Duration {
	return c.Edu.Load().Cache.PathTTL()
}

func (c *PathCache) get(ctx context.Context, name, key string, dest any) bool {
	ctx, span := tracing.Start(ctx, "cache.get", attribute.String("cache.key", key))
	defer span.End()

	val, err := c.Redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		monitoring.CacheRequests.WithLabelValues(name, "miss").Inc()
		return false
	}
	if err != nil {
		monitoring.CacheRequests.WithLabelValues(name, "error").Inc()
		logger.Log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(val, dest); err != nil {
		monitoring.CacheRequests.WithLabelValues(name, "error").Inc()
		c.Redis.Del(ctx, key)
		return false
	}
	monitoring.CacheRequests.WithLabelValues(name, "hit").Inc()
	return true
}

func (c *PathCache) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Log.Warn("Cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.Redis.Set(ctx, key, data, c.ttl()).Err(); err != nil {
		logger.Log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *PathCache) GetPath(ctx context.Context, id string) (*model.LearningPath, bool) {
	if !c.enabled() {
		return nil, false
	}
	var p model.LearningPath
	if !c.get(ctx, "path", pathKeyPrefix+id, &p) {
		return nil, false
	}
	return &p, true
}

func (c *PathCache) SetPath(ctx context.Context, p *model.LearningPath) {
	if !c.enabled() {
		return
	}
	c.set(ctx, pathKeyPrefix+p.ID, p)
}

// InvalidatePath 删除单条缓存并让所有列表缓存失效
func (c *PathCache) InvalidatePath(ctx context.Context, id string) {
	if c == nil || c.Redis == nil {
		return
	}
	pipe := c.Redis.TxPipeline()
	pipe.Del(ctx, pathKeyPrefix+id)
	pipe.Incr(ctx, pathListVersion)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log.Warn("Cache invalidation failed", zap.String("pathId", id), zap.Error(err))
	}
}

func (c *PathCache) listKey(ctx context.Context, f model.SearchFilters, p model.Pagination) string {
	version, err := c.Redis.Get(ctx, pathListVersion).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		version = -1
	}
	raw, _ := json.Marshal(struct {
		F model.SearchFilters
		P model.Pagination
	}{f, p})
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("%s%d:%s", pathListKeyPrefix, version, hex.EncodeToString(sum[:12]))
}

func (c *PathCache) GetList(ctx context.Context, f model.SearchFilters, p model.Pagination) (*model.PageResult[model.LearningPath], bool) {
	if !c.enabled() {
		return nil, false
	}
	var out model.PageResult[model.LearningPath]
	if !c.get(ctx, "path_list", c.listKey(ctx, f, p), &out) {
		return nil, false
	}
	return &out, true
}

func (c *PathCache) SetList(ctx context.Context, f model.SearchFilters, p model.Pagination, page model.PageResult[model.LearningPath]) {
	if !c.enabled() {
		return
	}
	c.set(ctx, c.listKey(ctx, f, p), page)
}

const statsKeyPrefix = "edu:stats:"

// GetStatistics 统计结果缓存，键为路径 ID，全局统计使用 "all"
func (c *PathCache) GetStatistics(ctx context.Context, pathID string) (*model.LearningStatistics, bool) {
	if !c.enabled() {
		return nil, false
	}
	var s model.LearningStatistics
	if !c.get(ctx, "statistics", statsKeyPrefix+statsScope(pathID), &s) {
		return nil, false
	}
	return &s, true
}

func (c *PathCache) SetStatistics(ctx context.Context, s *model.LearningStatistics) {
	if !c.enabled() {
		return
	}
	c.set(ctx, statsKeyPrefix+statsScope(s.PathID), s)
}

func statsScope(pathID string) string {
	if pathID == "" {
		return "all"
	}
	return pathID
}
