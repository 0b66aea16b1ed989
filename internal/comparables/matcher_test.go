package comparables

import (
	"context"
	"fmt"
	"testing"

	"costasight-comparables/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher() *Matcher {
	return NewMatcher(testMatching(), nil)
}

func TestFindComparablesStaysInSubjectCity(t *testing.T) {
	matcher := newTestMatcher()
	result, err := matcher.FindComparables(context.Background(), subjectCriteria(), marbellaFeed())
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(result.Comparables), 5, "early tiers should satisfy the target band")
	assert.False(t, result.Degraded)
	for _, comp := range result.Comparables {
		assert.Equal(t, "Marbella", comp.Record.City, "no comparable should come from outside the subject city")
		assert.LessOrEqual(t, comp.Tier, 3)
	}
}

func TestFindComparablesRankedByScoreThenPriceGap(t *testing.T) {
	matcher := newTestMatcher()
	criteria := subjectCriteria()
	result, err := matcher.FindComparables(context.Background(), criteria, marbellaFeed())
	require.NoError(t, err)
	require.NotEmpty(t, result.Comparables)

	for i := 1; i < len(result.Comparables); i++ {
		prev, cur := result.Comparables[i-1], result.Comparables[i]
		if prev.Score == cur.Score {
			prevGap := abs64(prev.Record.Price - criteria.Price)
			curGap := abs64(cur.Record.Price - criteria.Price)
			assert.LessOrEqual(t, prevGap, curGap)
		} else {
			assert.Greater(t, prev.Score, cur.Score)
		}
	}
}

func TestFindComparablesDeduplicatesByReference(t *testing.T) {
	matcher := newTestMatcher()
	result, err := matcher.FindComparables(context.Background(), subjectCriteria(), marbellaFeed())
	require.NoError(t, err)

	seen := make(map[string]struct{})
	for _, comp := range result.Comparables {
		_, dup := seen[comp.Record.Reference]
		assert.False(t, dup, "reference %s returned twice", comp.Record.Reference)
		seen[comp.Record.Reference] = struct{}{}
	}
}

func TestFindComparablesCapsResultCount(t *testing.T) {
	matcher := newTestMatcher()
	var records []models.PropertyRecord
	for i := 0; i < 40; i++ {
		records = append(records, record(
			fmt.Sprintf("CAP-%d", i), "Marbella", models.TypeApartment, 3, 2, 500000, 120))
	}

	result, err := matcher.FindComparables(context.Background(), subjectCriteria(), records)
	require.NoError(t, err)
	assert.Len(t, result.Comparables, 10)
}

// Subject city absent from the feed: tier 4 may only reach into cities from
// the adjacency table.
func TestFallbackTierUsesOnlyAdjacentCities(t *testing.T) {
	matcher := newTestMatcher()
	criteria := subjectCriteria()
	criteria.City = "Ronda"

	records := []models.PropertyRecord{
		record("MARB-1", "Marbella", models.TypeApartment, 3, 2, 480000, 115),
		record("MARB-2", "Marbella", models.TypePenthouse, 4, 3, 800000, 160),
		record("MAD-1", "Madrid", models.TypeApartment, 3, 2, 500000, 120),
	}

	result, err := matcher.FindComparables(context.Background(), criteria, records)
	require.NoError(t, err)
	require.NotEmpty(t, result.Comparables)
	assert.False(t, result.Degraded)
	for _, comp := range result.Comparables {
		assert.Equal(t, "Marbella", comp.Record.City)
		assert.Equal(t, 4, comp.Tier)
	}
}

func TestNoCandidatesYieldsEmptyDegradedResult(t *testing.T) {
	matcher := newTestMatcher()
	criteria := subjectCriteria()
	criteria.City = "Granada"

	records := []models.PropertyRecord{
		record("MAD-1", "Madrid", models.TypeApartment, 3, 2, 500000, 120),
	}

	result, err := matcher.FindComparables(context.Background(), criteria, records)
	require.NoError(t, err)
	assert.Empty(t, result.Comparables)
	assert.True(t, result.Degraded)
}

func TestEarlyTierAdmissionIsKept(t *testing.T) {
	matcher := newTestMatcher()

	// Only two near-exact matches exist; escalation past tier 1 must not
	// re-filter or re-tier them.
	records := []models.PropertyRecord{
		record("T1-A", "Marbella", models.TypeApartment, 3, 2, 510000, 118),
		record("T1-B", "Marbella", models.TypeApartment, 3, 2, 490000, 122),
		record("T3-A", "Marbella", models.TypePenthouse, 5, 4, 900000, 190),
	}

	result, err := matcher.FindComparables(context.Background(), subjectCriteria(), records)
	require.NoError(t, err)

	tiers := make(map[string]int)
	for _, comp := range result.Comparables {
		tiers[comp.Record.Reference] = comp.Tier
	}
	assert.Equal(t, 1, tiers["T1-A"])
	assert.Equal(t, 1, tiers["T1-B"])
	assert.Equal(t, 3, tiers["T3-A"])
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
