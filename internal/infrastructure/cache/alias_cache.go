package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/student-portal/internal/domain/repository"
	"github.com/oksasatya/student-portal/pkg/helpers"
)

// AliasCache memoizes path alias lookups in Redis. Redis errors fall
// through to the wrapped repository.
type AliasCache struct {
	next   repository.PathAliasRepository
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logrus.FieldLogger
}

func NewAliasCache(next repository.PathAliasRepository, rdb redis.Cmdable, ttl time.Duration, logger logrus.FieldLogger) *AliasCache {
	return &AliasCache{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func aliasKey(path string) string { return "path:alias:" + path }

func (c *AliasCache) AliasFor(ctx context.Context, path string) (string, error) {
	if c.rdb == nil || c.ttl <= 0 {
		return c.next.AliasFor(ctx, path)
	}
	var alias string
	hit, err := helpers.RedisGetJSON(ctx, c.rdb, aliasKey(path), &alias)
	if err != nil && c.logger != nil {
		c.logger.WithError(err).WithField("path", path).Warn("alias cache read failed")
	}
	if hit {
		return alias, nil
	}
	alias, err = c.next.AliasFor(ctx, path)
	if err != nil {
		return "", err
	}
	if err := helpers.RedisSetJSON(ctx, c.rdb, aliasKey(path), alias, c.ttl); err != nil && c.logger != nil {
		c.logger.WithError(err).WithField("path", path).Warn("alias cache write failed")
	}
	return alias, nil
}

var _ repository.PathAliasRepository = (*AliasCache)(nil)
