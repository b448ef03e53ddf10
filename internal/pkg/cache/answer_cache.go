package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"ai-docassist-be/internal/dto"
	"ai-docassist-be/internal/pkg/logger"
)

// AnswerCache keeps recent answers in Redis so repeated questions skip the
// full pipeline. A nil Redis client disables caching; every method becomes
// a no-op miss.
type AnswerCache struct {
	rdb *redis.Client
	ttl time.Duration
	log logger.ILogger
}

func NewAnswerCache(rdb *redis.Client, ttl time.Duration, log logger.ILogger) *AnswerCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &AnswerCache{
		rdb: rdb,
		ttl: ttl,
		log: log,
	}
}

// key hashes query + filter so two queries only share a cache entry when
// they would hit the index identically
func (c *AnswerCache) key(query, filterExpr string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query)) + "|" + filterExpr))
	return "answer:" + hex.EncodeToString(sum[:])
}

func (c *AnswerCache) Get(ctx context.Context, query, filterExpr string) (*dto.RAGResponse, bool) {
	if c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, c.key(query, filterExpr)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache", "answer cache read failed", map[string]interface{}{"error": err.Error()})
		}
		return nil, false
	}

	var response dto.RAGResponse
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		return nil, false
	}
	return &response, true
}

func (c *AnswerCache) Set(ctx context.Context, query, filterExpr string, response *dto.RAGResponse) {
	if c.rdb == nil || response == nil {
		return
	}

	raw, err := json.Marshal(response)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(query, filterExpr), raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache", "answer cache write failed", map[string]interface{}{"error": err.Error()})
	}
}
