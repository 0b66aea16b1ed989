package comparables

import (
	"strings"

	"costasight-comparables/internal/models"
	"costasight-comparables/pkg/config"
)

// Scorer computes the relevance score of a candidate against the subject.
// The score is a weighted sum of four sub-scores, each in [0,1], with
// weights summing to 1.0, so the result is bounded to [0,1].
type Scorer struct {
	weights config.ScoreWeights
	tables  *Tables
}

func NewScorer(weights config.ScoreWeights, tables *Tables) *Scorer {
	return &Scorer{weights: weights, tables: tables}
}

// Score is deterministic given the criteria and the record.
func (s *Scorer) Score(criteria models.SearchCriteria, rec models.PropertyRecord) float64 {
	return s.weights.Location*s.locationScore(criteria, rec) +
		s.weights.Type*s.typeScore(criteria, rec) +
		s.weights.Size*sizeScore(criteria, rec) +
		s.weights.Price*priceScore(criteria, rec)
}

func (s *Scorer) locationScore(criteria models.SearchCriteria, rec models.PropertyRecord) float64 {
	switch {
	case cityMatches(criteria.City, rec.City):
		return 1.0
	case sameSuburb(criteria.Suburb, rec.Suburb):
		return 0.8
	case s.tables.IsAdjacent(criteria.City, rec.City):
		return 0.6
	default:
		return 0.4
	}
}

func (s *Scorer) typeScore(criteria models.SearchCriteria, rec models.PropertyRecord) float64 {
	switch {
	case rec.Type == criteria.PropertyType:
		return 1.0
	case s.tables.IsRelated(criteria.PropertyType, rec.Type):
		return 0.8
	default:
		return 0.3
	}
}

func sizeScore(criteria models.SearchCriteria, rec models.PropertyRecord) float64 {
	switch abs(rec.Bedrooms - criteria.Bedrooms) {
	case 0:
		return 1.0
	case 1:
		return 0.8
	case 2:
		return 0.6
	default:
		return 0.3
	}
}

func priceScore(criteria models.SearchCriteria, rec models.PropertyRecord) float64 {
	deviation := relativeDeviation(rec.Price, criteria.Price)
	switch {
	case deviation <= 0.20:
		return 1.0
	case deviation <= 0.50:
		return 0.8
	case deviation <= 1.00:
		return 0.6
	default:
		return 0.3
	}
}

func sameSuburb(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	return a != "" && a == b
}
