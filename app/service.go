// Package app wires the engine from configuration: store, scorer, sinks,
// publisher and the batch processor.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coreflux/dispatchd/config"
	"github.com/coreflux/dispatchd/core/dispatch"
	"github.com/coreflux/dispatchd/core/match"
	coremetrics "github.com/coreflux/dispatchd/core/metrics"
	"github.com/coreflux/dispatchd/core/model"
	"github.com/coreflux/dispatchd/infra/logger"
	"github.com/coreflux/dispatchd/infra/metrics"
	"github.com/coreflux/dispatchd/infra/mqtt"
	"github.com/coreflux/dispatchd/infra/store/postgres"
	"github.com/coreflux/dispatchd/internal/eventbus"
)

// Service owns the wired batch processor and the resources behind it.
type Service struct {
	Processor *dispatch.BatchProcessor
	Requests  *postgres.RequestStore

	pool      *pgxpool.Pool
	publisher *mqtt.PahoPublisher
	bus       eventbus.EventBus
	log       logger.Logger

	promEnabled bool
	promPort    string
	promOnce    sync.Once
}

// New creates a Service from the configuration. The database must be
// reachable; MQTT and metrics sinks are optional.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var publisher *mqtt.PahoPublisher
	if cfg.MQTT.Enabled {
		publisher, err = mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
	}

	bus := eventbus.New()
	requests := postgres.NewRequestStore(pool)
	scorer := match.NewCandidateScorer(postgres.NewHistoryStore(pool), logger.New("scorer"))

	var resultPublisher dispatch.ResultPublisher
	if publisher != nil {
		resultPublisher = publisher
	}
	processor, err := dispatch.NewBatchProcessor(
		requests,
		postgres.NewTechnicianStore(pool),
		postgres.NewCalendarStore(pool),
		scorer,
		cfg.Dispatch,
		logger.New("dispatch"),
		sink,
		bus,
		resultPublisher,
	)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("batch processor: %w", err)
	}

	return &Service{
		Processor:   processor,
		Requests:    requests,
		pool:        pool,
		publisher:   publisher,
		bus:         bus,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// RunBatch executes one batch run. The external scheduler decides when to call
// this.
func (s *Service) RunBatch(ctx context.Context, limit int) (dispatch.BatchResult, error) {
	if s.promEnabled {
		s.startPromServerOnce()
	}
	return s.Processor.Run(ctx, limit)
}

func (s *Service) startPromServerOnce() {
	s.promOnce.Do(func() {
		go func() {
			if err := metrics.StartPromServer(s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	})
}

// RankRequest scores and ranks the eligible candidates for one pending
// request without committing an assignment.
func (s *Service) RankRequest(ctx context.Context, id int64) ([]model.ScoredCandidate, error) {
	return s.Processor.Rank(ctx, id)
}

// Close releases the service resources.
func (s *Service) Close() error {
	if s.publisher != nil {
		s.publisher.Close()
	}
	if s.bus != nil {
		s.bus.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
