package places

import (
	"strings"
)

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64
	Lng float64
}

// Place is a single business result from a Places text search, optionally
// enriched with the place details. Location is nil when neither the search
// result, the details nor geocoding produced a coordinate pair.
type Place struct {
	PlaceID      string
	Name         string
	Address      string
	Phone        string
	Website      string
	Types        []string
	Rating       float64
	RatingsTotal int
	Location     *LatLng
}

// Category returns the place types as a single comma-separated value.
func (p Place) Category() string {
	return strings.Join(p.Types, ",")
}

// Merge overlays the fields of a details lookup onto a search result,
// preferring the detail value wherever it is present.
func (p Place) Merge(detail Place) Place {
	merged := p

	if detail.PlaceID != "" {
		merged.PlaceID = detail.PlaceID
	}

	if detail.Name != "" {
		merged.Name = detail.Name
	}

	if detail.Address != "" {
		merged.Address = detail.Address
	}

	if detail.Phone != "" {
		merged.Phone = detail.Phone
	}

	if detail.Website != "" {
		merged.Website = detail.Website
	}

	if len(detail.Types) > 0 {
		merged.Types = detail.Types
	}

	if detail.Rating != 0 {
		merged.Rating = detail.Rating
	}

	if detail.RatingsTotal != 0 {
		merged.RatingsTotal = detail.RatingsTotal
	}

	if detail.Location != nil {
		merged.Location = detail.Location
	}

	return merged
}
