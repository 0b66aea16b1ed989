package models

// PropertyType enumerates the listing types carried by the feed.
type PropertyType string

const (
	TypeVilla        PropertyType = "villa"
	TypeApartment    PropertyType = "apartment"
	TypeTownhouse    PropertyType = "townhouse"
	TypePenthouse    PropertyType = "penthouse"
	TypePlot         PropertyType = "plot"
	TypeCountryHouse PropertyType = "country-house"
	TypeSemiDetached PropertyType = "semi-detached"
)

// Coordinates is a WGS84 lat/lng pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PropertyRecord is one listing from the feed. Records are immutable within a
// load cycle and superseded wholesale on the next load.
type PropertyRecord struct {
	Reference    string            `json:"reference"`
	City         string            `json:"city"`
	Suburb       string            `json:"suburb,omitempty"`
	Type         PropertyType      `json:"type"`
	Bedrooms     int               `json:"bedrooms"`
	Bathrooms    int               `json:"bathrooms"`
	BuildArea    float64           `json:"build_area"`
	PlotArea     float64           `json:"plot_area,omitempty"`
	Price        float64           `json:"price"`
	Coordinates  *Coordinates      `json:"coordinates,omitempty"`
	Descriptions map[string]string `json:"descriptions,omitempty"`
	Features     []string          `json:"features,omitempty"`
	Active       bool              `json:"active"`
}

// Eligible reports whether the record can be scored as a comparable candidate.
// Records without a positive price and build area never reach scoring.
func (p *PropertyRecord) Eligible() bool {
	return p.Active && p.Reference != "" && p.Price > 0 && p.BuildArea > 0
}
