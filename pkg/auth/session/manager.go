package session

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Store is the subset of the redis client the manager uses.
type Store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	AccessSessionKey(accessID string) string
}

// Manager tracks live access-token sessions in redis so tokens can be
// revoked before their JWT expiry.
type Manager struct {
	store Store
	ttl   time.Duration
}

// Checker reports whether an access token still has a live session.
type Checker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Create records a session for the given access token id and owner.
func (m *Manager) Create(ctx context.Context, accessID string, userID string) error {
	if accessID == "" {
		return errors.New("access id is required")
	}
	return m.store.Set(ctx, m.store.AccessSessionKey(accessID), userID, m.ttl)
}

// Revoke removes the session, invalidating the token immediately.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if accessID == "" {
		return nil
	}
	return m.store.Del(ctx, m.store.AccessSessionKey(accessID))
}

// HasSession reports whether the access token id maps to a live session.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	if accessID == "" {
		return false, nil
	}
	_, err := m.store.Get(ctx, m.store.AccessSessionKey(accessID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
