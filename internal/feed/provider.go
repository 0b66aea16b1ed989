package feed

import (
	"context"
	"net/http"
	"sync"
	"time"

	"costasight-comparables/internal/apperrors"
	"costasight-comparables/internal/models"
	"costasight-comparables/pkg/logger"
	"costasight-comparables/pkg/metrics"

	"golang.org/x/sync/singleflight"
)

// Snapshot is one immutable load of the feed. Records keep feed order and
// are superseded wholesale on the next load.
type Snapshot struct {
	Records  []models.PropertyRecord
	LoadedAt time.Time
	Degraded bool
	Dropped  int
}

// Provider serves TTL-cached feed snapshots. Concurrent callers during an
// in-flight parse share one result; a failed refresh serves the previous
// snapshot flagged as degraded.
type Provider struct {
	source Source
	ttl    time.Duration

	mu       sync.RWMutex
	snapshot *Snapshot

	group singleflight.Group
	now   func() time.Time
}

func NewProvider(source Source, ttl time.Duration) *Provider {
	return &Provider{
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Load returns the current snapshot, parsing the feed at most once per TTL
// window. Expiry is checked lazily at call time.
func (p *Provider) Load(ctx context.Context) (*Snapshot, error) {
	if snap := p.fresh(); snap != nil {
		metrics.FeedLoadsTotal.WithLabelValues("cached").Inc()
		return snap, nil
	}

	v, err, _ := p.group.Do("feed", func() (interface{}, error) {
		// A waiter queued behind the winning load sees its result here.
		if snap := p.fresh(); snap != nil {
			return snap, nil
		}
		return p.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func (p *Provider) fresh() *Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.snapshot != nil && p.now().Sub(p.snapshot.LoadedAt) < p.ttl {
		return p.snapshot
	}
	return nil
}

func (p *Provider) refresh(ctx context.Context) (*Snapshot, error) {
	// The load is shared by every waiter; detach it from the first
	// caller's cancellation.
	loadCtx := context.WithoutCancel(ctx)
	start := p.now()

	body, err := p.source.Fetch(loadCtx)
	if err != nil {
		return p.staleOrError(err)
	}
	defer body.Close()

	records, dropped, err := ParseListings(body)
	if err != nil {
		return p.staleOrError(err)
	}

	metrics.FeedLoadDuration.Observe(p.now().Sub(start).Seconds())
	metrics.FeedLoadsTotal.WithLabelValues("fresh").Inc()
	metrics.FeedRecordsDropped.Set(float64(dropped))
	if dropped > 0 {
		logger.GlobalLogger.Printf("Feed load dropped %d malformed records", dropped)
	}

	snap := &Snapshot{
		Records:  records,
		LoadedAt: p.now(),
		Dropped:  dropped,
	}
	p.mu.Lock()
	p.snapshot = snap
	p.mu.Unlock()
	return snap, nil
}

// staleOrError serves the previous snapshot flagged degraded, or fails with
// FEED_UNAVAILABLE when there is nothing to fall back to.
func (p *Provider) staleOrError(cause error) (*Snapshot, error) {
	p.mu.RLock()
	prev := p.snapshot
	p.mu.RUnlock()

	if prev != nil {
		metrics.FeedLoadsTotal.WithLabelValues("stale").Inc()
		logger.GlobalLogger.Errorf("Feed refresh failed, serving stale snapshot: error=%v", cause)
		stale := *prev
		stale.Degraded = true
		return &stale, nil
	}

	metrics.FeedLoadsTotal.WithLabelValues("failed").Inc()
	return nil, apperrors.NewAppError(
		"feed load failed with no prior snapshot", apperrors.MsgFeedUnavailable,
		apperrors.ErrCodeFeedUnavailable, http.StatusServiceUnavailable, cause)
}
