package models

// MarketStatistics is a per-request reduction over the records matching one
// city/type scope. Never cached across requests with a different scope.
type MarketStatistics struct {
	Count             int     `json:"count"`
	AveragePrice      float64 `json:"average_price"`
	AveragePricePerM2 float64 `json:"average_price_per_m2"`
	MinPrice          float64 `json:"min_price"`
	MaxPrice          float64 `json:"max_price"`
}
