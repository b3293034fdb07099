package beamdex

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/beamdex/internal/db"
	dbRedis "github.com/kailas-cloud/beamdex/internal/db/redis"
	dombatch "github.com/kailas-cloud/beamdex/internal/domain/batch"
	"github.com/kailas-cloud/beamdex/internal/domain/beam"
	"github.com/kailas-cloud/beamdex/internal/domain/problem"
	"github.com/kailas-cloud/beamdex/internal/metrics"
	"github.com/kailas-cloud/beamdex/internal/repository/evalcache"
	evaluationuc "github.com/kailas-cloud/beamdex/internal/usecase/evaluation"
	healthuc "github.com/kailas-cloud/beamdex/internal/usecase/health"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, replaced by mocks in tests.
type evaluationUseCase interface {
	Evaluate(ctx context.Context, vector []float64) (beam.Result, error)
	Fitness(ctx context.Context, vector []float64) (float64, beam.Result, error)
	EvaluateBatch(ctx context.Context, vectors [][]float64) ([]dombatch.Result, error)
	Problem() problem.Metadata
	Constants() problem.Constants
}

// Client is the beamdex SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store // nil when caching is disabled
	evalSvc   evaluationUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client. Without WithValkey or WithRedis it evaluates
// directly; with one of them, ctx bounds the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	if cfg.driver == "" {
		return wireClient(nil, cfg, obs), nil
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("beamdex: cache not ready: %w", err)
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.addrs,
			Password:   cfg.password,
			Standalone: cfg.standalone,
		})
		if err != nil {
			return nil, fmt.Errorf("beamdex: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("beamdex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	direct := evaluationuc.NewDirect()
	var evaluator evaluationuc.Evaluator = direct
	var pinger healthuc.CachePinger
	if store != nil {
		evaluator = evalcache.New(direct, store, cfg.cacheTTL, metrics.EvaluationCacheTotal, zap.NewNop()).
			WithKeyPrefix(cfg.keyPrefix)
		pinger = store
	}

	evalSvc := evaluationuc.New(evaluator, zap.NewNop()).
		WithWorkers(cfg.workers).
		WithMaxBatchSize(cfg.maxBatchSize)

	return &Client{
		store:     store,
		evalSvc:   evalSvc,
		healthSvc: healthuc.New(healthuc.SelfCheck(evaluator.Evaluate), pinger),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}
