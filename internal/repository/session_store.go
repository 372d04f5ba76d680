package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wallet-import/internal/reconcile"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("import session not found")

// SessionStore keeps review sessions in redis until they expire.
type SessionStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{redis: client, ttl: ttl}
}

func sessionKey(code string) string {
	return fmt.Sprintf("import:session:%s", code)
}

func (s *SessionStore) Save(ctx context.Context, session *reconcile.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(session.Code), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, code string) (*reconcile.Session, error) {
	payload, err := s.redis.Get(ctx, sessionKey(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session reconcile.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, code string) error {
	return s.redis.Del(ctx, sessionKey(code)).Err()
}
