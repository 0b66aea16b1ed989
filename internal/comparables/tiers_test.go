package comparables

import (
	"fmt"
	"testing"

	"costasight-comparables/internal/models"
	"costasight-comparables/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every record admitted at tier k must remain admissible at tier k+1: the
// ladder relaxes, it never re-excludes.
func TestTiersRelaxMonotonically(t *testing.T) {
	tiers := TiersFromConfig(config.DefaultTiers())
	tables := testTables()
	criteria := subjectCriteria()

	var records []models.PropertyRecord
	cities := []string{"Marbella", "Estepona", "Mijas", "Madrid"}
	types := []models.PropertyType{models.TypeApartment, models.TypePenthouse, models.TypeVilla, models.TypeTownhouse}
	prices := []float64{100000, 420000, 500000, 740000, 1100000, 2500000}
	i := 0
	for _, city := range cities {
		for _, typ := range types {
			for _, price := range prices {
				for beds := 0; beds <= 5; beds++ {
					records = append(records, record(
						fmt.Sprintf("R-%d", i), city, typ, beds, beds, price, 80+float64(beds)*25))
					i++
				}
			}
		}
	}

	for k := 0; k < len(tiers)-1; k++ {
		for _, rec := range records {
			if tiers[k].Admits(criteria, rec, tables) {
				assert.True(t, tiers[k+1].Admits(criteria, rec, tables),
					"record %s admitted at tier %d but excluded at tier %d", rec.Reference, tiers[k].Level, tiers[k+1].Level)
			}
		}
	}
}

func TestTierOneIsStrict(t *testing.T) {
	tier := TiersFromConfig(config.DefaultTiers())[0]
	tables := testTables()
	criteria := subjectCriteria()

	tests := []struct {
		name    string
		rec     models.PropertyRecord
		admits  bool
	}{
		{"exact match", record("A", "Marbella", models.TypeApartment, 3, 2, 500000, 120), true},
		{"price at +20%", record("B", "Marbella", models.TypeApartment, 3, 2, 600000, 120), true},
		{"price beyond +20%", record("C", "Marbella", models.TypeApartment, 3, 2, 601000, 120), false},
		{"area beyond +30%", record("D", "Marbella", models.TypeApartment, 3, 2, 500000, 160), false},
		{"related but not exact type", record("E", "Marbella", models.TypePenthouse, 3, 2, 500000, 120), false},
		{"bedroom delta 1", record("F", "Marbella", models.TypeApartment, 4, 2, 500000, 120), false},
		{"neighboring city", record("G", "Estepona", models.TypeApartment, 3, 2, 500000, 120), false},
		{"substring city match", record("H", "Marbella Este", models.TypeApartment, 3, 2, 500000, 120), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.admits, tier.Admits(criteria, tt.rec, tables))
		})
	}
}

func TestTierFourUsesAdjacency(t *testing.T) {
	tiers := TiersFromConfig(config.DefaultTiers())
	tier4 := tiers[len(tiers)-1]
	tables := testTables()
	criteria := subjectCriteria()

	assert.True(t, tier4.Admits(criteria, record("A", "Estepona", models.TypeApartment, 1, 1, 90000, 40), tables))
	assert.False(t, tier4.Admits(criteria, record("B", "Madrid", models.TypeApartment, 3, 2, 500000, 120), tables))
}

func TestIneligibleRecordsNeverAdmitted(t *testing.T) {
	tiers := TiersFromConfig(config.DefaultTiers())
	tables := testTables()
	criteria := subjectCriteria()

	noPrice := record("A", "Marbella", models.TypeApartment, 3, 2, 0, 120)
	noArea := record("B", "Marbella", models.TypeApartment, 3, 2, 500000, 0)
	inactive := record("C", "Marbella", models.TypeApartment, 3, 2, 500000, 120)
	inactive.Active = false

	for _, tier := range tiers {
		for _, rec := range []models.PropertyRecord{noPrice, noArea, inactive} {
			assert.False(t, tier.Admits(criteria, rec, tables), "tier %d admitted ineligible record %s", tier.Level, rec.Reference)
		}
	}
}

func TestRelatedTypeTable(t *testing.T) {
	tables := testTables()

	require.True(t, tables.IsRelated(models.TypeVilla, models.TypeCountryHouse))
	require.True(t, tables.IsRelated(models.TypeVilla, models.TypePlot))
	require.True(t, tables.IsRelated(models.TypeApartment, models.TypePenthouse))
	require.True(t, tables.IsRelated(models.TypeTownhouse, models.TypeSemiDetached))
	require.True(t, tables.IsRelated(models.TypePlot, models.TypePlot), "a type is always related to itself")
	require.False(t, tables.IsRelated(models.TypeApartment, models.TypeVilla))
}

func TestAdjacencyIsSymmetric(t *testing.T) {
	tables := testTables()

	assert.True(t, tables.IsAdjacent("Marbella", "Estepona"))
	assert.True(t, tables.IsAdjacent("Estepona", "Marbella"))
	assert.True(t, tables.IsAdjacent("MARBELLA", "mijas"))
	assert.False(t, tables.IsAdjacent("Marbella", "Madrid"))
}
