// internal/assistant/orchestrator/history.go
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"banking-assistant/internal/models"
)

// HistoryStore keeps per-session conversation transcripts.
type HistoryStore interface {
	Append(ctx context.Context, sessionID string, entries ...models.ConversationEntry) error
	History(ctx context.Context, sessionID string) ([]models.ConversationEntry, error)
	Clear(ctx context.Context, sessionID string) (bool, error)
}

// MemoryHistoryStore keeps transcripts in process memory. Suitable for tests
// and single-instance deployments without Redis.
type MemoryHistoryStore struct {
	mu            sync.RWMutex
	conversations map[string][]models.ConversationEntry
}

func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{conversations: make(map[string][]models.ConversationEntry)}
}

func (m *MemoryHistoryStore) Append(_ context.Context, sessionID string, entries ...models.ConversationEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conversations[sessionID] = append(m.conversations[sessionID], entries...)
	return nil
}

func (m *MemoryHistoryStore) History(_ context.Context, sessionID string) ([]models.ConversationEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := m.conversations[sessionID]
	out := make([]models.ConversationEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func (m *MemoryHistoryStore) Clear(_ context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.conversations[sessionID]; !ok {
		return false, nil
	}
	delete(m.conversations, sessionID)
	return true, nil
}

// RedisHistoryStore keeps transcripts in Redis lists, one list per session.
type RedisHistoryStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisHistoryStore(client *redis.Client, ttl time.Duration) *RedisHistoryStore {
	return &RedisHistoryStore{client: client, ttl: ttl}
}

func historyKey(sessionID string) string {
	return fmt.Sprintf("conversation:%s", sessionID)
}

func (r *RedisHistoryStore) Append(ctx context.Context, sessionID string, entries ...models.ConversationEntry) error {
	if len(entries) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(entries))
	for _, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		values = append(values, data)
	}

	key := historyKey(sessionID)
	pipe := r.client.Pipeline()
	pipe.RPush(ctx, key, values...)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisHistoryStore) History(ctx context.Context, sessionID string) ([]models.ConversationEntry, error) {
	raw, err := r.client.LRange(ctx, historyKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]models.ConversationEntry, 0, len(raw))
	for _, item := range raw {
		var entry models.ConversationEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *RedisHistoryStore) Clear(ctx context.Context, sessionID string) (bool, error) {
	deleted, err := r.client.Del(ctx, historyKey(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}
