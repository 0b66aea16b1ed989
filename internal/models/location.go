package models

// Precision classifies whether a resolved coordinate may be reused for other
// properties sharing the same textual reference.
type Precision string

const (
	// PrecisionPrecise marks street-level results safe to share across
	// properties with the same normalized signature.
	PrecisionPrecise Precision = "precise"
	// PrecisionBroad marks district-level results that must never enter the
	// shared cache; they are valid only for the request that produced them.
	PrecisionBroad Precision = "broad"
)

// AddressFragments are the structured address fields of a property.
type AddressFragments struct {
	Street       string `json:"street,omitempty"`
	Urbanization string `json:"urbanization,omitempty"`
	Area         string `json:"area,omitempty"`
	City         string `json:"city"`
}

// LocationResult is a resolved coordinate with its precision classification.
type LocationResult struct {
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Precision   Precision    `json:"precision"`
	Landmark    string       `json:"landmark,omitempty"`
	Confidence  float64      `json:"confidence,omitempty"`
	Degraded    bool         `json:"degraded,omitempty"`
}
