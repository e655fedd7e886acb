package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"zela/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "booking:session:"

// SessionStore persists in-progress booking sessions. Sessions expire after
// an inactivity window; an abandoned session is simply dropped by its store,
// with no booking side effects.
type SessionStore interface {
	Save(ctx context.Context, s *models.BookingSession) error
	Get(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps sessions as JSON in Redis with a sliding TTL.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func (r *RedisSessionStore) Save(ctx context.Context, s *models.BookingSession) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := r.Client.Set(ctx, sessionKeyPrefix+s.SessionID, payload, r.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

func (r *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	payload, err := r.Client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, NewFlowError("sessionNotFound", "booking session not found or expired")
		}
		return nil, fmt.Errorf("failed to fetch booking session: %w", err)
	}
	var s models.BookingSession
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return &s, nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return r.Client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
