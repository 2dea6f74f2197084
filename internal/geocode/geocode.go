package geocode

import "context"

// Result is the resolved position of a free-text Rwandan address.
// The three fields always travel together: callers must never persist
// one without the others.
type Result struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	GoogleMapURL string  `json:"google_map_url"`
}

type Geocoder interface {
	Geocode(ctx context.Context, description, district, province string) (*Result, error)
}
