package stats

import (
	"testing"

	"costasight-comparables/internal/models"

	"github.com/stretchr/testify/assert"
)

func sampleRecords() []models.PropertyRecord {
	return []models.PropertyRecord{
		{Reference: "M-1", City: "Marbella", Type: models.TypeApartment, Price: 400000, BuildArea: 100, Active: true},
		{Reference: "M-2", City: "Marbella", Type: models.TypeApartment, Price: 600000, BuildArea: 150, Active: true},
		{Reference: "M-3", City: "Marbella Este", Type: models.TypeVilla, Price: 1200000, BuildArea: 300, Active: true},
		{Reference: "M-4", City: "Marbella", Type: models.TypeApartment, Price: 0, BuildArea: 90, Active: true},
		{Reference: "E-1", City: "Estepona", Type: models.TypeApartment, Price: 350000, BuildArea: 100, Active: true},
	}
}

func TestComputeCityAndTypeScope(t *testing.T) {
	result := NewAggregator().Compute("Marbella", models.TypeApartment, sampleRecords())

	assert.Equal(t, 2, result.Count)
	assert.InDelta(t, 500000, result.AveragePrice, 1e-9)
	assert.InDelta(t, 400000, result.MinPrice, 1e-9)
	assert.InDelta(t, 600000, result.MaxPrice, 1e-9)
	// (4000 + 4000) / 2
	assert.InDelta(t, 4000, result.AveragePricePerM2, 1e-9)
}

func TestComputeEmptyTypeMatchesAll(t *testing.T) {
	result := NewAggregator().Compute("Marbella", "", sampleRecords())

	assert.Equal(t, 3, result.Count)
	assert.InDelta(t, 1200000, result.MaxPrice, 1e-9)
}

func TestComputePartialCityMatchIsCaseInsensitive(t *testing.T) {
	result := NewAggregator().Compute("marb", models.TypeApartment, sampleRecords())
	assert.Equal(t, 2, result.Count)
}

func TestComputeZeroPriceRecordsExcluded(t *testing.T) {
	records := []models.PropertyRecord{
		{Reference: "A", City: "Marbella", Type: models.TypeApartment, Price: 0, BuildArea: 100},
	}
	result := NewAggregator().Compute("Marbella", models.TypeApartment, records)
	assert.Zero(t, result.Count)
	assert.Zero(t, result.AveragePrice)
}

func TestComputeNoMatchesYieldsZeroValue(t *testing.T) {
	result := NewAggregator().Compute("Granada", "", sampleRecords())
	assert.Equal(t, models.MarketStatistics{}, result)
}

func TestComputeMissingAreaSkipsPerM2Only(t *testing.T) {
	records := []models.PropertyRecord{
		{Reference: "A", City: "Marbella", Type: models.TypePlot, Price: 200000},
		{Reference: "B", City: "Marbella", Type: models.TypePlot, Price: 250000, BuildArea: 50},
	}
	result := NewAggregator().Compute("Marbella", models.TypePlot, records)

	assert.Equal(t, 2, result.Count)
	assert.InDelta(t, 225000, result.AveragePrice, 1e-9)
	assert.InDelta(t, 5000, result.AveragePricePerM2, 1e-9, "only records with a build area contribute")
}
