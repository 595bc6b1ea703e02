package dictionary

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/brucee63/namematch/pkg/redis"
	"github.com/brucee63/namematch/pkg/resilience"
)

// RedisProvider serves the acronym dictionary from a Redis hash, refreshed on
// an interval. Reads are guarded by a circuit breaker; while Redis is
// unreachable the last good dictionary (initially the fallback) stays active.
type RedisProvider struct {
	client   *redis.Client
	key      string
	interval time.Duration
	breaker  *resilience.CircuitBreaker
	logger   *slog.Logger

	mu      sync.RWMutex
	current map[string]string

	// OnRefresh, when set, observes each refresh attempt with its status
	// ("ok", "error", or "skipped") and the active dictionary size.
	OnRefresh func(status string, size int)
}

// NewRedisProvider creates a provider for the given hash key. fallback is the
// dictionary served until the first successful refresh; nil means empty.
func NewRedisProvider(client *redis.Client, key string, interval time.Duration, fallback map[string]string) *RedisProvider {
	current := make(map[string]string, len(fallback))
	maps.Copy(current, fallback)
	return &RedisProvider{
		client:   client,
		key:      key,
		interval: interval,
		breaker:  resilience.NewCircuitBreaker("dictionary-redis", resilience.CircuitBreakerConfig{}),
		logger:   slog.Default().With("component", "dictionary", "key", key),
		current:  current,
	}
}

// Dict returns the active dictionary. The returned map is replaced, never
// mutated, on refresh.
func (p *RedisProvider) Dict() map[string]string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// BreakerState exposes the circuit breaker state for health and metrics.
func (p *RedisProvider) BreakerState() resilience.State {
	return p.breaker.GetState()
}

// Start refreshes immediately and then on every interval tick until ctx is
// cancelled.
func (p *RedisProvider) Start(ctx context.Context) {
	p.refresh(ctx)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("dictionary refresher stopping", "reason", ctx.Err())
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *RedisProvider) refresh(ctx context.Context) {
	var fetched map[string]string
	err := p.breaker.Execute(func() error {
		var err error
		fetched, err = p.client.HGetAll(ctx, p.key)
		return err
	})
	if err != nil {
		status := "error"
		if resilience.IsCircuitOpen(err) {
			status = "skipped"
		}
		p.logger.Warn("dictionary refresh failed, keeping last good dictionary",
			"status", status,
			"error", err,
		)
		p.notify(status)
		return
	}

	p.mu.Lock()
	p.current = fetched
	p.mu.Unlock()
	p.logger.Debug("dictionary refreshed", "entries", len(fetched))
	p.notify("ok")
}

func (p *RedisProvider) notify(status string) {
	if p.OnRefresh == nil {
		return
	}
	p.mu.RLock()
	size := len(p.current)
	p.mu.RUnlock()
	p.OnRefresh(status, size)
}
