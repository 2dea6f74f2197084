package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/httperr"
)

const (
	defaultEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"

	// CodeGeocodeFailed is returned when the provider cannot resolve
	// the address. The write must be aborted, nothing persisted.
	CodeGeocodeFailed = "geocode_failed"
)

type GoogleGeocoder struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// NewGoogleGeocoderWithEndpoint exists for tests pointing at a fake server.
func NewGoogleGeocoderWithEndpoint(apiKey, endpoint string) *GoogleGeocoder {
	g := NewGoogleGeocoder(apiKey)
	g.endpoint = endpoint
	return g
}

type googleResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (g *GoogleGeocoder) Geocode(
	ctx context.Context,
	description, district, province string,
) (*Result, error) {

	address := strings.Join([]string{description, district, province, "Rwanda"}, ", ")

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		g.endpoint+"?"+params.Encode(),
		nil,
	)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	if payload.Status != "OK" || len(payload.Results) == 0 {
		return nil, httperr.ErrBusiness(CodeGeocodeFailed)
	}

	loc := payload.Results[0].Geometry.Location

	return &Result{
		Latitude:     loc.Lat,
		Longitude:    loc.Lng,
		GoogleMapURL: MapURL(loc.Lat, loc.Lng),
	}, nil
}

// MapURL derives the shareable map link for a coordinate pair.
func MapURL(lat, lng float64) string {
	return fmt.Sprintf("https://www.google.com/maps?q=%g,%g", lat, lng)
}
