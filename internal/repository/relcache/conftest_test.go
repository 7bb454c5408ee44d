package relcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/saucenao/internal/db"
	"github.com/kailas-cloud/saucenao/internal/domain/source"
)

type mockLookuper struct {
	ids   source.Relations
	err   error
	calls int
}

func (m *mockLookuper) Lookup(_ context.Context, _ int) (source.Relations, error) {
	m.calls++
	return m.ids, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedLookuper(t *testing.T, inner *mockLookuper) (*CachedLookuper, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	cl := New(inner, ms, time.Hour, nil, zap.NewNop())
	return cl, ms
}
