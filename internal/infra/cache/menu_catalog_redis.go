package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"
	"github.com/Ryavnn/Restaurant-Management-System/internal/usecase"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const menuItemKeyPrefix = "menu:item:"

// RedisMenuCatalog はMenuCatalogの前に置くread-throughキャッシュ。
// redisが落ちていてもDB側にフォールバックする。
type RedisMenuCatalog struct {
	client *redis.Client
	next   usecase.MenuCatalog
	ttl    time.Duration
	log    *log.Entry
}

func NewRedisMenuCatalog(client *redis.Client, next usecase.MenuCatalog, ttl time.Duration, logger *log.Entry) *RedisMenuCatalog {
	return &RedisMenuCatalog{
		client: client,
		next:   next,
		ttl:    ttl,
		log:    logger.WithField("component", "menu-cache"),
	}
}

func (c *RedisMenuCatalog) Lookup(ctx context.Context, id int64) (model.MenuItem, error) {
	key := menuItemKey(id)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var m model.MenuItem
		if jerr := json.Unmarshal(raw, &m); jerr == nil {
			return m, nil
		}
		c.log.WithField("key", key).Warn("broken cache entry, reloading")
	case errors.Is(err, redis.Nil):
		// miss
	default:
		c.log.WithError(err).WithField("key", key).Warn("redis get failed, falling back to store")
	}

	m, err := c.next.Lookup(ctx, id)
	if err != nil {
		return model.MenuItem{}, err
	}

	if data, jerr := json.Marshal(m); jerr == nil {
		if serr := c.client.Set(ctx, key, data, c.ttl).Err(); serr != nil {
			c.log.WithError(serr).WithField("key", key).Warn("redis set failed")
		}
	}
	return m, nil
}

func menuItemKey(id int64) string {
	return menuItemKeyPrefix + strconv.FormatInt(id, 10)
}
