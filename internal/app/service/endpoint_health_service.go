package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"wallet_config/internal/app/port"
	"wallet_config/internal/domain/entity"
	"wallet_config/internal/infrastructure/metrics"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// EndpointHealthConfig tunes the health service.
type EndpointHealthConfig struct {
	RateLimit     int
	BurstLimit    int
	CacheTTL      time.Duration
	MaxConcurrent int
}

// endpointHealthServiceImpl implements port.EndpointHealthService.
type endpointHealthServiceImpl struct {
	cfg      *entity.WalletConfig
	prober   port.EndpointProber
	limiter  *rate.Limiter
	results  *cache.Cache // key: chain ID as decimal string -> entity.EndpointHealth
	metrics  *metrics.Metrics
	logger   port.Logger
	parallel int
}

// NewEndpointHealthService creates a new instance of endpointHealthServiceImpl.
func NewEndpointHealthService(
	cfg *entity.WalletConfig,
	prober port.EndpointProber,
	m *metrics.Metrics,
	l port.Logger,
	hc EndpointHealthConfig,
) port.EndpointHealthService {
	if hc.CacheTTL <= 0 {
		hc.CacheTTL = time.Minute
	}
	if hc.RateLimit <= 0 {
		hc.RateLimit = 5
	}
	if hc.BurstLimit <= 0 {
		hc.BurstLimit = 1
	}
	if hc.MaxConcurrent <= 0 {
		hc.MaxConcurrent = len(cfg.TransportChainIDs())
	}
	return &endpointHealthServiceImpl{
		cfg:      cfg,
		prober:   prober,
		limiter:  rate.NewLimiter(rate.Limit(hc.RateLimit), hc.BurstLimit),
		results:  cache.New(hc.CacheTTL, 2*hc.CacheTTL),
		metrics:  m,
		logger:   l,
		parallel: hc.MaxConcurrent,
	}
}

// CheckAll probes every configured transport concurrently and caches the results.
// Unhealthy endpoints are reported in the results, not as an error; the error is
// non-nil only when ctx ends before all probes ran. In that case the probes that did
// finish are returned alongside the error, and only they have updated the cache and metrics.
func (s *endpointHealthServiceImpl) CheckAll(ctx context.Context) ([]entity.EndpointHealth, error) {
	ids := s.cfg.TransportChainIDs()
	results := make([]entity.EndpointHealth, len(ids))
	finished := make([]bool, len(ids))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.parallel)

	for i, chainID := range ids {
		i, chainID := i, chainID
		transport, _ := s.cfg.Transport(chainID)
		eg.Go(func() error {
			if err := s.limiter.Wait(egCtx); err != nil {
				return fmt.Errorf("rate limiter wait for chain %d: %w", chainID, err)
			}
			h := s.prober.Probe(egCtx, chainID, transport)
			results[i] = h
			finished[i] = true
			s.results.Set(cacheKey(chainID), h, cache.DefaultExpiration)
			s.metrics.ObserveProbe(chainID, h.Healthy, h.Latency)

			if h.Healthy {
				s.logger.Debug("Endpoint healthy", "chain_id", chainID, "latency", h.Latency)
			} else {
				s.logger.Warn("Endpoint unhealthy", "chain_id", chainID, "url", h.URL, "error", h.Error)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		partial := make([]entity.EndpointHealth, 0, len(ids))
		for i, ok := range finished {
			if ok {
				partial = append(partial, results[i])
			}
		}
		s.logger.Error("Endpoint health check interrupted", "error", err, "finished", len(partial), "total", len(ids))
		return partial, err
	}
	return results, nil
}

// Latest returns the cached results that have not expired, ordered by chain ID.
func (s *endpointHealthServiceImpl) Latest() []entity.EndpointHealth {
	items := s.results.Items()
	out := make([]entity.EndpointHealth, 0, len(items))
	for _, item := range items {
		if h, ok := item.Object.(entity.EndpointHealth); ok {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChainID < out[j].ChainID })
	return out
}

// Run re-checks all endpoints every interval until ctx is done.
func Run(ctx context.Context, svc port.EndpointHealthService, interval time.Duration, l port.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := svc.CheckAll(ctx); err != nil && ctx.Err() == nil {
			l.Warn("Endpoint health check failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func cacheKey(chainID uint64) string {
	return strconv.FormatUint(chainID, 10)
}
