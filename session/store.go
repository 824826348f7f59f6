package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"readira/rdx"

	"github.com/redis/go-redis/v9"
)

const sessionTTL = 7 * 24 * time.Hour

// Store loads and saves sessions. Writes are last-write-wins.
type Store interface {
	Load(ctx context.Context, userID string) (*Session, error)
	Save(ctx context.Context, s *Session) error
}

// RedisStore keeps each session as a JSON blob under session:<userid>.
type RedisStore struct{}

func NewRedisStore() *RedisStore { return &RedisStore{} }

func sessionKey(userID string) string { return "session:" + userID }

func (rs *RedisStore) Load(ctx context.Context, userID string) (*Session, error) {
	raw, err := rdx.Conn.Get(ctx, sessionKey(userID)).Result()
	if err == redis.Nil {
		return New(userID), nil
	}
	if err != nil {
		return nil, err
	}

	s := New(userID)
	if err := json.Unmarshal([]byte(raw), s); err != nil {
		// Corrupt session data is dropped rather than wedging the user
		return New(userID), nil
	}
	s.UserID = userID
	return s, nil
}

func (rs *RedisStore) Save(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := rdx.Conn.Set(ctx, sessionKey(s.UserID), raw, sessionTTL).Err(); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// MemoryStore is an in-process Store for tests and single-node dev runs.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]byte)}
}

func (ms *MemoryStore) Load(ctx context.Context, userID string) (*Session, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	raw, ok := ms.sessions[userID]
	if !ok {
		return New(userID), nil
	}
	s := New(userID)
	if err := json.Unmarshal(raw, s); err != nil {
		return nil, err
	}
	s.UserID = userID
	return s, nil
}

func (ms *MemoryStore) Save(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	ms.mu.Lock()
	ms.sessions[s.UserID] = raw
	ms.mu.Unlock()
	s.dirty = false
	return nil
}
