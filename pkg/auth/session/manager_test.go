package session

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.values[key] = value.(string)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	v, ok := f.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	if f.err != nil {
		return f.err
	}
	for _, k := range keys {
		delete(f.values, k)
	}
	return nil
}

func (f *fakeStore) AccessSessionKey(accessID string) string {
	return "aero:session:access:" + accessID
}

func TestSessionLifecycle(t *testing.T) {
	store := newFakeStore()
	mgr := NewManager(store, time.Hour)
	ctx := context.Background()

	require.NoError(t, mgr.Create(ctx, "jti-1", "user-1"))
	assert.Equal(t, time.Hour, store.ttls["aero:session:access:jti-1"])

	ok, err := mgr.HasSession(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, mgr.Revoke(ctx, "jti-1"))

	ok, err = mgr.HasSession(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasSessionUnknownID(t *testing.T) {
	mgr := NewManager(newFakeStore(), time.Hour)

	ok, err := mgr.HasSession(context.Background(), "never-created")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmptyAccessID(t *testing.T) {
	mgr := NewManager(newFakeStore(), time.Hour)
	ctx := context.Background()

	assert.Error(t, mgr.Create(ctx, "", "user-1"))
	assert.NoError(t, mgr.Revoke(ctx, ""))

	ok, err := mgr.HasSession(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasSessionStoreError(t *testing.T) {
	store := newFakeStore()
	store.err = assert.AnError
	mgr := NewManager(store, time.Hour)

	ok, err := mgr.HasSession(context.Background(), "jti-1")
	assert.Error(t, err)
	assert.False(t, ok)
}
