package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"studentia/internal/model"
	"studentia/internal/util"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionRepository 保存进行中的测验会话，只在会话有效期内保留
type SessionRepository interface {
	Save(ctx context.Context, s *model.QuizSession) error
	Get(ctx context.Context, id string) (*model.QuizSession, error)
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemorySessionRepository 进程内存储，按 JSON 快照保存，读写互不共享指针
type MemorySessionRepository struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (r *MemorySessionRepository) Save(ctx context.Context, s *model.QuizSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired()

	entry := memoryEntry{data: data}
	if r.ttl > 0 {
		entry.expiresAt = r.now().Add(r.ttl)
	}
	r.sessions[s.ID] = entry
	return nil
}

func (r *MemorySessionRepository) Get(ctx context.Context, id string) (*model.QuizSession, error) {
	r.mu.Lock()
	entry, ok := r.sessions[id]
	if ok && r.expired(entry) {
		delete(r.sessions, id)
		ok = false
	}
	r.mu.Unlock()

	if !ok {
		return nil, util.ErrQuizNotFound
	}

	var s model.QuizSession
	if err := json.Unmarshal(entry.data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *MemorySessionRepository) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && r.now().After(e.expiresAt)
}

func (r *MemorySessionRepository) evictExpired() {
	for id, e := range r.sessions {
		if r.expired(e) {
			delete(r.sessions, id)
		}
	}
}

// RedisSessionRepository 会话以 JSON 形式保存在 redis，依赖 key 过期实现会话超时
type RedisSessionRepository struct {
	Redis *redis.Client
	ttl   time.Duration
}

func NewRedisSessionRepository(rdb *redis.Client, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{Redis: rdb, ttl: ttl}
}

func sessionKey(id string) string {
	return fmt.Sprintf("quiz:session:%s", id)
}

func (r *RedisSessionRepository) Save(ctx context.Context, s *model.QuizSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.Redis.Set(ctx, sessionKey(s.ID), data, r.ttl).Err()
}

func (r *RedisSessionRepository) Get(ctx context.Context, id string) (*model.QuizSession, error) {
	data, err := r.Redis.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	var s model.QuizSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	return r.Redis.Del(ctx, sessionKey(id)).Err()
}
