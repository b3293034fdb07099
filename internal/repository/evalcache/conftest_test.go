package evalcache

import (
	"context"
	"time"

	"github.com/kailas-cloud/beamdex/internal/db"
	"github.com/kailas-cloud/beamdex/internal/domain/beam"
)

// countingEvaluator delegates to the real model and counts calls.
type countingEvaluator struct {
	calls int
	err   error
}

func (m *countingEvaluator) EvaluateDesign(d beam.Design) (beam.Result, error) {
	m.calls++
	if m.err != nil {
		return beam.Result{}, m.err
	}
	return beam.EvaluateDesign(d)
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

// memStore is a map-backed store for round-trip tests.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: make(map[string][]byte)} }

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}
