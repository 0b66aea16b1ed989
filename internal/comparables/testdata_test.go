package comparables

import (
	"fmt"
	"io"

	"costasight-comparables/internal/models"
	"costasight-comparables/pkg/config"
	"costasight-comparables/pkg/logger"
)

func init() {
	logger.InitLogger(io.Discard, "ERROR")
}

func testMatching() config.Matching {
	return config.Matching{
		MaxComparables: 10,
		Weights:        config.DefaultWeights(),
		Tiers:          config.DefaultTiers(),
		RelatedTypes:   config.DefaultRelatedTypes(),
		CityAdjacency: map[string][]string{
			"marbella": {"estepona", "mijas", "benahavis"},
			"ronda":    {"marbella"},
		},
	}
}

func testTables() *Tables {
	cfg := testMatching()
	return NewTables(cfg.RelatedTypes, cfg.CityAdjacency)
}

func subjectCriteria() models.SearchCriteria {
	return models.SearchCriteria{
		City:         "Marbella",
		PropertyType: models.TypeApartment,
		Bedrooms:     3,
		Bathrooms:    2,
		Price:        500000,
		BuildArea:    120,
	}
}

func record(ref, city string, t models.PropertyType, beds, baths int, price, area float64) models.PropertyRecord {
	return models.PropertyRecord{
		Reference: ref,
		City:      city,
		Type:      t,
		Bedrooms:  beds,
		Bathrooms: baths,
		Price:     price,
		BuildArea: area,
		Active:    true,
	}
}

// marbellaFeed builds a spread of Marbella apartments around the subject
// plus listings from neighboring and unrelated cities.
func marbellaFeed() []models.PropertyRecord {
	var records []models.PropertyRecord
	for i := 0; i < 8; i++ {
		records = append(records, record(
			fmt.Sprintf("MARB-%d", i), "Marbella", models.TypeApartment,
			3, 2, 450000+float64(i)*15000, 110+float64(i)*3))
	}
	records = append(records,
		record("MARB-PH", "Marbella", models.TypePenthouse, 4, 3, 700000, 150),
		record("MARB-V", "Marbella", models.TypeVilla, 5, 4, 1500000, 300),
		record("EST-1", "Estepona", models.TypeApartment, 3, 2, 480000, 115),
		record("MIJ-1", "Mijas", models.TypeApartment, 2, 2, 350000, 95),
		record("MAD-1", "Madrid", models.TypeApartment, 3, 2, 500000, 120),
	)
	return records
}
