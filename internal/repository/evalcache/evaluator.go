package evalcache

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/beamdex/internal/db"
	"github.com/kailas-cloud/beamdex/internal/domain/beam"
)

// DefaultKeyPrefix namespaces cache keys.
const DefaultKeyPrefix = "beamdex:eval:"

// entrySize is the encoded size of a cached result: inertia, volume, g1, g2.
const entrySize = 4 * 8

// store is the consumer interface for the result cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// DesignEvaluator computes a result for a decoded design.
type DesignEvaluator interface {
	EvaluateDesign(d beam.Design) (beam.Result, error)
}

// CachedEvaluator memoises design results in a key-value store.
// Validation always runs locally; only valid designs reach the store.
type CachedEvaluator struct {
	inner      DesignEvaluator
	store      store
	prefix     string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner DesignEvaluator,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedEvaluator {
	return &CachedEvaluator{
		inner:      inner,
		store:      s,
		prefix:     DefaultKeyPrefix,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// WithKeyPrefix overrides the key prefix.
func (c *CachedEvaluator) WithKeyPrefix(prefix string) *CachedEvaluator {
	if prefix != "" {
		c.prefix = prefix
	}
	return c
}

// Evaluate returns a cached result or evaluates the design and stores it.
// Store failures degrade to a plain evaluation.
func (c *CachedEvaluator) Evaluate(ctx context.Context, vector []float64) (beam.Result, error) {
	d, err := beam.Decode(vector)
	if err != nil {
		return beam.Result{}, err
	}

	key := c.cacheKey(d)

	if r, ok := c.getFromCache(ctx, key, d); ok {
		c.incCache("hit")
		return r, nil
	}

	c.incCache("miss")

	r, err := c.inner.EvaluateDesign(d)
	if err != nil {
		return beam.Result{}, fmt.Errorf("evaluate design: %w", err)
	}

	c.putToCache(ctx, key, r)
	return r, nil
}

func (c *CachedEvaluator) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedEvaluator) cacheKey(d beam.Design) string {
	return c.prefix + beam.Fingerprint(d).String()
}

func (c *CachedEvaluator) getFromCache(ctx context.Context, key string, d beam.Design) (beam.Result, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached result", zap.String("key", key), zap.Error(err))
		}
		return beam.Result{}, false
	}

	r, err := decodeResult(d, data)
	if err != nil {
		c.logger.Warn("Failed to parse cached result", zap.String("key", key), zap.Error(err))
		return beam.Result{}, false
	}
	return r, true
}

func (c *CachedEvaluator) putToCache(ctx context.Context, key string, r beam.Result) {
	if err := c.store.SetWithTTL(ctx, key, encodeResult(r), c.ttl); err != nil {
		c.logger.Warn("Failed to cache result", zap.String("key", key), zap.Error(err))
	}
}

func encodeResult(r beam.Result) []byte {
	buf := make([]byte, entrySize)
	for i, f := range [...]float64{r.Inertia(), r.Volume(), r.G1(), r.G2()} {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(f))
	}
	return buf
}

func decodeResult(d beam.Design, data []byte) (beam.Result, error) {
	if len(data) != entrySize {
		return beam.Result{}, fmt.Errorf("invalid result cache data: len=%d, want %d", len(data), entrySize)
	}
	var f [4]float64
	for i := range f {
		f[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return beam.NewResult(d, f[0], f[1], f[2], f[3]), nil
}
