package location

import (
	"context"
	"errors"
	"net/http"
	"time"

	"costasight-comparables/internal/apperrors"
	"costasight-comparables/internal/geo"
	"costasight-comparables/internal/models"
	"costasight-comparables/pkg/logger"
	"costasight-comparables/pkg/metrics"

	"golang.org/x/sync/singleflight"
)

// hintConfidenceThreshold decides whether a landmark hint resolved sharply
// enough to be treated as a precise, shareable location.
const hintConfidenceThreshold = 0.7

// Resolver turns address fragments and free-text hints into coordinates with
// a precision classification, caching only results safe to share.
type Resolver struct {
	geocoder   geo.Geocoder
	cache      Cache
	classifier *Classifier
	ttl        time.Duration
	timeout    time.Duration
	group      singleflight.Group
}

func NewResolver(geocoder geo.Geocoder, cache Cache, classifier *Classifier, ttl, timeout time.Duration) *Resolver {
	return &Resolver{
		geocoder:   geocoder,
		cache:      cache,
		classifier: classifier,
		ttl:        ttl,
		timeout:    timeout,
	}
}

// Resolve returns the location for the given input. Broad results are valid
// for this request only and are never written to the shared cache.
func (r *Resolver) Resolve(ctx context.Context, frags models.AddressFragments, hint string) (*models.LocationResult, error) {
	sig := r.classifier.Signature(frags, hint)
	if sig.Text == "" {
		return nil, apperrors.NewAppError(
			"empty location input", apperrors.MsgInvalidSearch,
			apperrors.ErrCodeInvalidSearch, http.StatusBadRequest, nil)
	}

	// Concurrent misses for the same signature collapse into one external
	// call; the check-then-populate sequence runs once per key.
	v, err, _ := r.group.Do(sig.Key, func() (interface{}, error) {
		return r.resolveOnce(ctx, sig)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.LocationResult), nil
}

func (r *Resolver) resolveOnce(ctx context.Context, sig Signature) (*models.LocationResult, error) {
	if sig.Cacheable {
		if cached, ok := r.cache.Get(ctx, sig.Key); ok {
			metrics.LocationCacheHitsTotal.Inc()
			return cached, nil
		}
		metrics.LocationCacheMissesTotal.Inc()
	}

	// The external call is shared by every waiter on this signature, so it
	// must survive the first caller abandoning its request.
	gctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	geocoded, err := r.geocoder.Geocode(gctx, sig.Text)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.GlobalLogger.Errorf("Geocode timed out, returning broad result: input=%s", sig.Text)
			return &models.LocationResult{Precision: models.PrecisionBroad, Degraded: true}, nil
		}
		return nil, apperrors.NewAppError(
			"geocoding failed for "+sig.Text, apperrors.MsgResolutionFailed,
			apperrors.ErrCodeResolutionFailed, http.StatusBadGateway, err)
	}

	result := &models.LocationResult{
		Coordinates: &geocoded.Coordinates,
		Confidence:  geocoded.Confidence,
		Precision:   models.PrecisionBroad,
	}
	if len(geocoded.Landmarks) > 0 {
		result.Landmark = geocoded.Landmarks[0].Name
	}

	precise := sig.Precise
	if sig.FromHint {
		// A hint names a landmark, not a street; trust it only when the
		// resolver pinned it down with high confidence.
		precise = geocoded.Confidence >= hintConfidenceThreshold
	}
	if precise {
		result.Precision = models.PrecisionPrecise
		if err := r.cache.Set(ctx, sig.Key, result, r.ttl); err != nil {
			// Degrade to resolve-fresh rather than failing the request.
			logger.GlobalLogger.Errorf("Location cache write failed: key=%s, error=%v", sig.Key, err)
		}
	}

	return result, nil
}
