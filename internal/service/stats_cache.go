package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/interviewprep-api/internal/domain/repository"
	apperrors "github.com/yourusername/interviewprep-api/internal/pkg/errors"
	"github.com/yourusername/interviewprep-api/internal/pkg/logger"
)

const (
	generationCacheKeyFmt = "user:%s:cache_gen"
	resultsCacheKeyFmt    = "user:%s:results:g%d"
	statsCacheKeyFmt      = "user:%s:stats:g%d"
)

// StatsCache кеширует производные данные пользователя (аналитику и статистику).
// Ключи содержат поколение пользователя: Invalidate увеличивает его, поэтому
// запоздавшая запись читателя, начавшего загрузку до инвалидации, попадает
// в ключ старого поколения и больше не читается.
// Ошибки кеша логируются и не влияют на ответ.
type StatsCache struct {
	repo repository.CacheRepository
	ttl  time.Duration
	log  *logger.Logger
}

// NewStatsCache создает кеш статистики. repo == nil отключает кеширование.
func NewStatsCache(repo repository.CacheRepository, ttl time.Duration, log *logger.Logger) *StatsCache {
	return &StatsCache{repo: repo, ttl: ttl, log: log}
}

func generationCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf(generationCacheKeyFmt, userID)
}

func resultsCacheKey(userID uuid.UUID, gen int64) string {
	return fmt.Sprintf(resultsCacheKeyFmt, userID, gen)
}

func statsCacheKey(userID uuid.UUID, gen int64) string {
	return fmt.Sprintf(statsCacheKeyFmt, userID, gen)
}

// generation возвращает текущее поколение кеша пользователя (0, если его нет)
func (c *StatsCache) generation(ctx context.Context, userID uuid.UUID) int64 {
	if c == nil || c.repo == nil {
		return 0
	}
	var gen int64
	if err := c.repo.GetJSON(ctx, generationCacheKey(userID), &gen); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		c.log.Warn("[StatsCache] generation read failed", "user_id", userID, "error", err)
	}
	return gen
}

// resultsKey и statsKey нужно получить до чтения из БД
func (c *StatsCache) resultsKey(ctx context.Context, userID uuid.UUID) string {
	if !c.enabled() {
		return ""
	}
	return resultsCacheKey(userID, c.generation(ctx, userID))
}

func (c *StatsCache) statsKey(ctx context.Context, userID uuid.UUID) string {
	if !c.enabled() {
		return ""
	}
	return statsCacheKey(userID, c.generation(ctx, userID))
}

func (c *StatsCache) enabled() bool {
	return c != nil && c.repo != nil && c.ttl > 0
}

// load возвращает true, если значение найдено в кеше
func (c *StatsCache) load(ctx context.Context, key string, dest interface{}) bool {
	if !c.enabled() {
		return false
	}
	err := c.repo.GetJSON(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		c.log.Warn("[StatsCache] read failed", "key", key, "error", err)
	}
	return false
}

func (c *StatsCache) store(ctx context.Context, key string, value interface{}) {
	if !c.enabled() {
		return
	}
	if err := c.repo.SetJSON(ctx, key, value, c.ttl); err != nil {
		c.log.Warn("[StatsCache] write failed", "key", key, "error", err)
	}
}

// Invalidate переводит пользователя на новое поколение кеша и удаляет
// данные текущего
func (c *StatsCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c == nil || c.repo == nil {
		return
	}
	prev := c.generation(ctx, userID)
	if _, err := c.repo.Incr(ctx, generationCacheKey(userID)); err != nil {
		c.log.Warn("[StatsCache] generation bump failed", "user_id", userID, "error", err)
	}
	if err := c.repo.Delete(ctx, resultsCacheKey(userID, prev), statsCacheKey(userID, prev)); err != nil {
		c.log.Warn("[StatsCache] invalidate failed", "user_id", userID, "error", err)
	}
}
