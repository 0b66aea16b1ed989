package comparables

import (
	"math"
	"strings"

	"costasight-comparables/internal/models"
	"costasight-comparables/pkg/config"
)

// Tier is one relaxation level of the comparable search. Levels must relax
// strictly monotonically: every record a tier admits stays admissible under
// every later tier.
type Tier struct {
	Level                 int
	ExactTypeOnly         bool
	BedroomDelta          int
	BathroomDelta         int
	PriceTolerance        float64
	AreaTolerance         float64
	IncludeAdjacentCities bool
	TargetCount           int
}

// TiersFromConfig maps the configured relaxation ladder into tiers.
func TiersFromConfig(cfgs []config.TierConfig) []Tier {
	tiers := make([]Tier, 0, len(cfgs))
	for _, c := range cfgs {
		tiers = append(tiers, Tier{
			Level:                 c.Level,
			ExactTypeOnly:         c.ExactTypeOnly,
			BedroomDelta:          c.BedroomDelta,
			BathroomDelta:         c.BathroomDelta,
			PriceTolerance:        c.PriceTolerance,
			AreaTolerance:         c.AreaTolerance,
			IncludeAdjacentCities: c.IncludeAdjacentCities,
			TargetCount:           c.TargetCount,
		})
	}
	return tiers
}

// Tables holds the static relatedness and adjacency lookups, injected from
// configuration so the engine stays portable across regions.
type Tables struct {
	related   map[models.PropertyType]map[models.PropertyType]struct{}
	adjacency map[string]map[string]struct{}
}

func NewTables(relatedTypes map[string][]string, cityAdjacency map[string][]string) *Tables {
	related := make(map[models.PropertyType]map[models.PropertyType]struct{}, len(relatedTypes))
	for from, tos := range relatedTypes {
		group := make(map[models.PropertyType]struct{}, len(tos))
		for _, to := range tos {
			group[models.PropertyType(strings.ToLower(to))] = struct{}{}
		}
		related[models.PropertyType(strings.ToLower(from))] = group
	}

	adjacency := make(map[string]map[string]struct{}, len(cityAdjacency))
	for from, tos := range cityAdjacency {
		group := make(map[string]struct{}, len(tos))
		for _, to := range tos {
			group[strings.ToLower(strings.TrimSpace(to))] = struct{}{}
		}
		adjacency[strings.ToLower(strings.TrimSpace(from))] = group
	}

	return &Tables{related: related, adjacency: adjacency}
}

// IsRelated reports whether two property types belong to the same group.
// A type is always related to itself.
func (t *Tables) IsRelated(a, b models.PropertyType) bool {
	if a == b {
		return true
	}
	group, ok := t.related[a]
	if !ok {
		return false
	}
	_, ok = group[b]
	return ok
}

// IsAdjacent reports whether two cities are neighbors in the static table,
// in either direction.
func (t *Tables) IsAdjacent(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if group, ok := t.adjacency[a]; ok {
		if _, ok := group[b]; ok {
			return true
		}
	}
	if group, ok := t.adjacency[b]; ok {
		if _, ok := group[a]; ok {
			return true
		}
	}
	return false
}

// Admits applies the tier's filter predicate to one candidate.
func (tier Tier) Admits(criteria models.SearchCriteria, rec models.PropertyRecord, tables *Tables) bool {
	if !rec.Eligible() {
		return false
	}

	sameCity := cityMatches(criteria.City, rec.City)
	if tier.IncludeAdjacentCities {
		if !sameCity && !tables.IsAdjacent(criteria.City, rec.City) {
			return false
		}
	} else if !sameCity {
		return false
	}

	if tier.ExactTypeOnly {
		if rec.Type != criteria.PropertyType {
			return false
		}
	} else if !tables.IsRelated(criteria.PropertyType, rec.Type) {
		return false
	}

	if tier.BedroomDelta >= 0 && abs(rec.Bedrooms-criteria.Bedrooms) > tier.BedroomDelta {
		return false
	}
	if tier.BathroomDelta >= 0 && abs(rec.Bathrooms-criteria.Bathrooms) > tier.BathroomDelta {
		return false
	}
	if tier.PriceTolerance > 0 && relativeDeviation(rec.Price, criteria.Price) > tier.PriceTolerance {
		return false
	}
	if tier.AreaTolerance > 0 && relativeDeviation(rec.BuildArea, criteria.BuildArea) > tier.AreaTolerance {
		return false
	}

	return true
}

// cityMatches is case-insensitive and substring-tolerant in both directions,
// so "Marbella" matches "Marbella Este".
func cityMatches(subject, candidate string) bool {
	a := strings.ToLower(strings.TrimSpace(subject))
	b := strings.ToLower(strings.TrimSpace(candidate))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func relativeDeviation(candidate, subject float64) float64 {
	if subject <= 0 {
		return math.Inf(1)
	}
	return math.Abs(candidate-subject) / subject
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
