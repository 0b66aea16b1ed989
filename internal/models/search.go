package models

// SearchCriteria describes the subject property a comparable search runs
// against. Constructed per request, never persisted.
type SearchCriteria struct {
	City         string       `json:"city"`
	Suburb       string       `json:"suburb,omitempty"`
	PropertyType PropertyType `json:"property_type"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    int          `json:"bathrooms"`
	Price        float64      `json:"price"`
	BuildArea    float64      `json:"build_area"`
	LocationHint string       `json:"location_hint,omitempty"`
}

// Comparable pairs a candidate record with its relevance score and the tier
// that admitted it.
type Comparable struct {
	Record     PropertyRecord `json:"record"`
	Score      float64        `json:"score"`
	Tier       int            `json:"tier"`
	DistanceKm *float64       `json:"distance_km,omitempty"`
}

// ComparableResult is the ranked outcome of a tiered search. An empty list is
// not an error; Degraded tells the caller no tier produced candidates.
type ComparableResult struct {
	Comparables []Comparable    `json:"comparables"`
	Degraded    bool            `json:"degraded"`
	SubjectLoc  *LocationResult `json:"subject_location,omitempty"`
}

// ComparablesResponse is the combined response body for a comparable search.
type ComparablesResponse struct {
	Comparables     []Comparable     `json:"comparables"`
	Degraded        bool             `json:"degraded"`
	SubjectLocation *LocationResult  `json:"subject_location,omitempty"`
	MarketStats     MarketStatistics `json:"market_stats"`
	FeedDegraded    bool             `json:"feed_degraded,omitempty"`
}

// ResolveRequest is the request body for the location resolution endpoint.
type ResolveRequest struct {
	Address AddressFragments `json:"address"`
	Hint    string           `json:"hint,omitempty"`
}
