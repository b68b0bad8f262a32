package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"ai-chat-backend/internal/models"
)

// HistoryCache caches the role/content turns of a thread so resuming a
// conversation does not re-read every chat row. Entries are dropped whenever
// a new exchange is persisted on the thread.
type HistoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewHistoryCache(client *redis.Client, ttl time.Duration) *HistoryCache {
	return &HistoryCache{client: client, ttl: ttl}
}

func historyKey(threadID uuid.UUID) string {
	return fmt.Sprintf("thread_history:%s", threadID)
}

func (c *HistoryCache) Get(ctx context.Context, threadID uuid.UUID) ([]models.UpstreamMessage, bool) {
	raw, err := c.client.Get(ctx, historyKey(threadID)).Bytes()
	if err != nil {
		return nil, false
	}

	var turns []models.UpstreamMessage
	if err := json.Unmarshal(raw, &turns); err != nil {
		return nil, false
	}
	return turns, true
}

func (c *HistoryCache) Set(ctx context.Context, threadID uuid.UUID, turns []models.UpstreamMessage) {
	raw, err := json.Marshal(turns)
	if err != nil {
		return
	}
	c.client.Set(ctx, historyKey(threadID), raw, c.ttl)
}

func (c *HistoryCache) Invalidate(ctx context.Context, threadID uuid.UUID) {
	c.client.Del(ctx, historyKey(threadID))
}
