// Package stats computes descriptive market statistics over a filtered
// record subset. Purely a reduction: no caching, no external calls.
package stats

import (
	"strings"

	"costasight-comparables/internal/models"

	"github.com/montanaflynn/stats"
)

// Aggregator computes market statistics for one city/type scope.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Compute filters records by case-insensitive partial city match and property
// type, requiring a positive price. An empty scope yields a zero-count
// result, never an error.
func (a *Aggregator) Compute(city string, propertyType models.PropertyType, records []models.PropertyRecord) models.MarketStatistics {
	needle := strings.ToLower(strings.TrimSpace(city))

	var prices []float64
	var pricesPerM2 []float64
	for _, rec := range records {
		if rec.Price <= 0 {
			continue
		}
		if propertyType != "" && rec.Type != propertyType {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(rec.City), needle) {
			continue
		}
		prices = append(prices, rec.Price)
		if rec.BuildArea > 0 {
			pricesPerM2 = append(pricesPerM2, rec.Price/rec.BuildArea)
		}
	}

	if len(prices) == 0 {
		return models.MarketStatistics{}
	}

	mean, _ := stats.Mean(prices)
	min, _ := stats.Min(prices)
	max, _ := stats.Max(prices)
	result := models.MarketStatistics{
		Count:        len(prices),
		AveragePrice: mean,
		MinPrice:     min,
		MaxPrice:     max,
	}
	if len(pricesPerM2) > 0 {
		meanPerM2, _ := stats.Mean(pricesPerM2)
		result.AveragePricePerM2 = meanPerM2
	}
	return result
}
