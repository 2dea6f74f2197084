package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/httperr"
)

func TestGeocodeSuccess(t *testing.T) {
	var gotAddress string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAddress = r.URL.Query().Get("address")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "OK",
			"results": [
				{"geometry": {"location": {"lat": -1.95, "lng": 30.06}}},
				{"geometry": {"location": {"lat": 0, "lng": 0}}}
			]
		}`))
	}))
	defer srv.Close()

	g := NewGoogleGeocoderWithEndpoint("test-key", srv.URL)

	result, err := g.Geocode(context.Background(), "KN 4 Ave", "Nyarugenge", "Kigali")
	if err != nil {
		t.Fatalf("Geocode returned error: %v", err)
	}

	if result.Latitude != -1.95 || result.Longitude != 30.06 {
		t.Fatalf("expected (-1.95, 30.06), got (%v, %v)", result.Latitude, result.Longitude)
	}
	if !strings.Contains(result.GoogleMapURL, "-1.95,30.06") {
		t.Fatalf("expected map URL to contain coordinates, got %s", result.GoogleMapURL)
	}
	if !strings.Contains(gotAddress, "Rwanda") {
		t.Fatalf("expected query to fix the country to Rwanda, got %q", gotAddress)
	}
	if !strings.Contains(gotAddress, "KN 4 Ave") {
		t.Fatalf("expected query to contain the description, got %q", gotAddress)
	}
}

func TestGeocodeZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer srv.Close()

	g := NewGoogleGeocoderWithEndpoint("test-key", srv.URL)

	_, err := g.Geocode(context.Background(), "nowhere", "nowhere", "nowhere")
	if !httperr.IsBusiness(err, CodeGeocodeFailed) {
		t.Fatalf("expected %s, got %v", CodeGeocodeFailed, err)
	}
}

func TestGeocodeOKStatusButEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "OK", "results": []}`))
	}))
	defer srv.Close()

	g := NewGoogleGeocoderWithEndpoint("test-key", srv.URL)

	_, err := g.Geocode(context.Background(), "KN 4 Ave", "Nyarugenge", "Kigali")
	if !httperr.IsBusiness(err, CodeGeocodeFailed) {
		t.Fatalf("expected %s, got %v", CodeGeocodeFailed, err)
	}
}

func TestMapURLFormat(t *testing.T) {
	url := MapURL(-1.95, 30.06)
	if url != "https://www.google.com/maps?q=-1.95,30.06" {
		t.Fatalf("unexpected map URL: %s", url)
	}
}
