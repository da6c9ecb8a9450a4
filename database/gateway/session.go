package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "session:"

// Session is the identity snapshot this core consumes. Sessions are
// issued and stored by the identity service; this core only reads them.
type Session struct {
	UserID        string    `json:"userId"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	AccessToken   string    `json:"accessToken,omitempty"`
	ExpiresAt     time.Time `json:"expiresAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// SessionProvider exposes the gateway's session accessor. A nil session
// with a nil error means no active session, which is a valid state.
type SessionProvider interface {
	GetSession(ctx context.Context) (*Session, error)
}

type sessionKey struct{}

// ContextWithSession attaches a session to a request context.
func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// ContextSessionProvider reads the session the auth middleware attached
// to the request context.
type ContextSessionProvider struct{}

func (ContextSessionProvider) GetSession(ctx context.Context) (*Session, error) {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s, nil
}

// RedisSessionStore resolves access-token hashes to sessions in Redis.
type RedisSessionStore struct {
	Client *redis.Client
}

// GetSessionByTokenHash returns the session stored under the given token
// hash, or nil when none exists or it has expired.
func (s *RedisSessionStore) GetSessionByTokenHash(ctx context.Context, tokenHash string) (*Session, error) {
	data, err := s.Client.Get(ctx, sessionPrefix+tokenHash).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
		return nil, nil
	}
	return &session, nil
}

// SaveSession stores a session under the given token hash with a TTL.
// Used by the identity service integration and by tests.
func (s *RedisSessionStore) SaveSession(ctx context.Context, tokenHash string, session Session, ttl time.Duration) error {
	session.LastUpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionPrefix+tokenHash, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// DeleteSession removes a session from Redis.
func (s *RedisSessionStore) DeleteSession(ctx context.Context, tokenHash string) error {
	return s.Client.Del(ctx, sessionPrefix+tokenHash).Err()
}
