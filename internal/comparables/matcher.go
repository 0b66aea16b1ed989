package comparables

import (
	"context"
	"math"
	"sort"

	"costasight-comparables/internal/geo"
	"costasight-comparables/internal/location"
	"costasight-comparables/internal/models"
	"costasight-comparables/pkg/config"
	"costasight-comparables/pkg/logger"
)

// Matcher runs the tiered relaxation search over the current record set.
type Matcher struct {
	tiers          []Tier
	tables         *Tables
	scorer         *Scorer
	maxComparables int
	resolver       *location.Resolver
}

// NewMatcher builds a matcher from the configured ladder and tables. The
// resolver is optional; without it subjects with location hints simply get
// no coordinate metadata.
func NewMatcher(cfg config.Matching, resolver *location.Resolver) *Matcher {
	tables := NewTables(cfg.RelatedTypes, cfg.CityAdjacency)
	return &Matcher{
		tiers:          TiersFromConfig(cfg.Tiers),
		tables:         tables,
		scorer:         NewScorer(cfg.Weights, tables),
		maxComparables: cfg.MaxComparables,
		resolver:       resolver,
	}
}

// FindComparables returns the ranked comparables for the subject, capped at
// the configured maximum. An exhausted ladder yields an empty, degraded
// result, not an error.
func (m *Matcher) FindComparables(ctx context.Context, criteria models.SearchCriteria, records []models.PropertyRecord) (*models.ComparableResult, error) {
	seen := make(map[string]struct{})
	var pool []models.Comparable

	for _, tier := range m.tiers {
		for _, rec := range records {
			if _, dup := seen[rec.Reference]; dup {
				continue
			}
			if !tier.Admits(criteria, rec, m.tables) {
				continue
			}
			seen[rec.Reference] = struct{}{}
			pool = append(pool, models.Comparable{
				Record: rec,
				Score:  m.scorer.Score(criteria, rec),
				Tier:   tier.Level,
			})
		}
		if tier.TargetCount > 0 && len(pool) >= tier.TargetCount {
			break
		}
		if len(pool) >= m.maxComparables {
			break
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Score != pool[j].Score {
			return pool[i].Score > pool[j].Score
		}
		di := math.Abs(pool[i].Record.Price - criteria.Price)
		dj := math.Abs(pool[j].Record.Price - criteria.Price)
		return di < dj
	})
	if len(pool) > m.maxComparables {
		pool = pool[:m.maxComparables]
	}

	result := &models.ComparableResult{
		Comparables: pool,
		Degraded:    len(pool) == 0,
	}
	m.attachSubjectLocation(ctx, criteria, result)
	return result, nil
}

// attachSubjectLocation resolves the subject's free-text hint and annotates
// each comparable with its distance when both coordinates are known. A
// resolution failure degrades to non-geo results for this request.
func (m *Matcher) attachSubjectLocation(ctx context.Context, criteria models.SearchCriteria, result *models.ComparableResult) {
	if m.resolver == nil || criteria.LocationHint == "" {
		return
	}

	loc, err := m.resolver.Resolve(ctx, models.AddressFragments{City: criteria.City}, criteria.LocationHint)
	if err != nil {
		logger.GlobalLogger.Errorf("Subject location resolution failed, proceeding without geo: hint=%s, error=%v", criteria.LocationHint, err)
		return
	}

	result.SubjectLoc = loc
	if loc.Coordinates == nil {
		return
	}
	for i := range result.Comparables {
		if coords := result.Comparables[i].Record.Coordinates; coords != nil {
			km := geo.HaversineKm(*loc.Coordinates, *coords)
			result.Comparables[i].DistanceKm = &km
		}
	}
}
