package feed

import (
	"encoding/xml"
	"io"
	"strings"

	"costasight-comparables/internal/models"
	"costasight-comparables/pkg/logger"
)

// xmlProperty mirrors one <property> element of a Kyero-style listing feed.
type xmlProperty struct {
	Ref            string  `xml:"ref"`
	Type           string  `xml:"type"`
	Town           string  `xml:"town"`
	LocationDetail string  `xml:"location_detail"`
	Status         string  `xml:"status"`
	Beds           int     `xml:"beds"`
	Baths          int     `xml:"baths"`
	Price          float64 `xml:"price"`
	SurfaceArea    struct {
		Built float64 `xml:"built"`
		Plot  float64 `xml:"plot"`
	} `xml:"surface_area"`
	Location struct {
		Latitude  float64 `xml:"latitude"`
		Longitude float64 `xml:"longitude"`
	} `xml:"location"`
	Desc struct {
		En string `xml:"en"`
		Es string `xml:"es"`
	} `xml:"desc"`
	Features struct {
		Feature []string `xml:"feature"`
	} `xml:"features"`
}

// ParseListings decodes a listing feed into property records, dropping
// malformed entries individually so one bad record never aborts the load.
// Returns the ordered records and the count of dropped entries.
func ParseListings(r io.Reader) ([]models.PropertyRecord, int, error) {
	decoder := xml.NewDecoder(r)
	var records []models.PropertyRecord
	dropped := 0

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "property" {
			continue
		}

		var raw xmlProperty
		if err := decoder.DecodeElement(&raw, &start); err != nil {
			dropped++
			logger.GlobalLogger.Debugf("Dropped malformed feed entry: %v", err)
			continue
		}

		record := toRecord(raw)
		if !record.Eligible() {
			dropped++
			continue
		}
		records = append(records, record)
	}

	return records, dropped, nil
}

func toRecord(raw xmlProperty) models.PropertyRecord {
	record := models.PropertyRecord{
		Reference: strings.TrimSpace(raw.Ref),
		City:      strings.TrimSpace(raw.Town),
		Suburb:    strings.TrimSpace(raw.LocationDetail),
		Type:      models.PropertyType(strings.ToLower(strings.TrimSpace(raw.Type))),
		Bedrooms:  raw.Beds,
		Bathrooms: raw.Baths,
		BuildArea: raw.SurfaceArea.Built,
		PlotArea:  raw.SurfaceArea.Plot,
		Price:     raw.Price,
		Features:  raw.Features.Feature,
		Active:    !isInactiveStatus(raw.Status),
	}

	if raw.Location.Latitude != 0 || raw.Location.Longitude != 0 {
		record.Coordinates = &models.Coordinates{
			Latitude:  raw.Location.Latitude,
			Longitude: raw.Location.Longitude,
		}
	}

	descriptions := make(map[string]string)
	if raw.Desc.En != "" {
		descriptions["en"] = raw.Desc.En
	}
	if raw.Desc.Es != "" {
		descriptions["es"] = raw.Desc.Es
	}
	if len(descriptions) > 0 {
		record.Descriptions = descriptions
	}

	return record
}

func isInactiveStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "sold", "inactive", "withdrawn":
		return true
	}
	return false
}
