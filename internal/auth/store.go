package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisTokenStore keeps sessions in Redis so they survive restarts and
// expire server-side.
type RedisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (s *RedisTokenStore) Save(ctx context.Context, token string, userID int, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKey(token), userID, ttl).Err()
}

func (s *RedisTokenStore) Get(ctx context.Context, token string) (int, error) {
	userID, err := s.rdb.Get(ctx, sessionKey(token)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrInvalidToken
		}
		return 0, err
	}
	return userID, nil
}

// MemoryTokenStore is an in-process store for tests and standalone runs.
// TTLs are checked lazily on Get.
type MemoryTokenStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

type memorySession struct {
	userID    int
	expiresAt time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{sessions: map[string]memorySession{}}
}

func (s *MemoryTokenStore) Save(ctx context.Context, token string, userID int, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = memorySession{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryTokenStore) Get(ctx context.Context, token string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok || time.Now().After(session.expiresAt) {
		delete(s.sessions, token)
		return 0, ErrInvalidToken
	}
	return session.userID, nil
}
