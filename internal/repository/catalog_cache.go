package repository

import (
	"context"
	"encoding/json"
	"time"

	"prepos_backend/internal/model"
	"prepos_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	catalogExamsKey    = "prepos:catalog:exams"
	catalogSyllabusKey = "prepos:catalog:syllabus:"
	defaultCatalogTTL  = 30 * time.Minute
)

// CatalogCache 考试目录只读，读穿 Redis 缓存；Redis 未配置或出错时直接查库
type CatalogCache struct {
	Repo  *CatalogRepository
	Redis *redis.Client
	TTL   time.Duration
}

func NewCatalogCache(repo *CatalogRepository, rdb *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &CatalogCache{Repo: repo, Redis: rdb, TTL: ttl}
}

func (c *CatalogCache) ListExams(ctx context.Context) ([]model.Exam, error) {
	var exams []model.Exam
	if c.get(ctx, catalogExamsKey, &exams) {
		return exams, nil
	}

	exams, err := c.Repo.ListExams()
	if err != nil {
		return nil, err
	}
	c.set(ctx, catalogExamsKey, exams)
	return exams, nil
}

// GetSyllabus 不存在的考试不缓存
func (c *CatalogCache) GetSyllabus(ctx context.Context, examID string) (*model.Syllabus, error) {
	key := catalogSyllabusKey + examID
	var syllabus model.Syllabus
	if c.get(ctx, key, &syllabus) {
		return &syllabus, nil
	}

	found, err := c.Repo.GetExamWithSyllabus(examID)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, found)
	return found, nil
}

// Invalidate 目录导入后清空缓存
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if c.Redis == nil {
		return nil
	}
	keys := []string{catalogExamsKey}
	iter := c.Redis.Scan(ctx, 0, catalogSyllabusKey+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.Redis.Del(ctx, keys...).Err()
}

func (c *CatalogCache) get(ctx context.Context, key string, dest interface{}) bool {
	if c.Redis == nil {
		return false
	}
	raw, err := c.Redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Log.Warn("Catalog cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *CatalogCache) set(ctx context.Context, key string, value interface{}) {
	if c.Redis == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.Redis.Set(ctx, key, raw, c.TTL).Err(); err != nil {
		logger.Log.Warn("Catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
