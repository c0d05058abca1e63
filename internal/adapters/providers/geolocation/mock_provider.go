package geolocation

import (
	"context"
	"fmt"
	"strings"

	"github.com/lifeline-health/bedfinder/internal/domain/providers"
)

// MockGeolocationProvider implements a mock geolocation provider for
// local development and testing. Unknown addresses resolve to the
// Lucknow city center.
type MockGeolocationProvider struct{}

// NewMockGeolocationProvider creates a new mock geolocation provider
func NewMockGeolocationProvider() providers.GeolocationProvider {
	return &MockGeolocationProvider{}
}

// Geocode converts an address to coordinates (mock implementation)
func (m *MockGeolocationProvider) Geocode(ctx context.Context, address string) (*providers.Coordinates, error) {
	mockCoordinates := map[string]providers.Coordinates{
		"Lucknow":   {Latitude: 26.8467, Longitude: 80.9462},
		"Kanpur":    {Latitude: 26.4499, Longitude: 80.3319},
		"Delhi":     {Latitude: 28.7041, Longitude: 77.1025},
		"Varanasi":  {Latitude: 25.3176, Longitude: 82.9739},
		"Allahabad": {Latitude: 25.4358, Longitude: 81.8463},
	}

	for city, coords := range mockCoordinates {
		if strings.Contains(address, city) {
			return &coords, nil
		}
	}

	// Default to the Lucknow city center
	return &providers.Coordinates{Latitude: 26.8467, Longitude: 80.9462}, nil
}

// ReverseGeocode converts coordinates to an address (mock implementation)
func (m *MockGeolocationProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (*providers.GeocodedAddress, error) {
	return &providers.GeocodedAddress{
		FormattedAddress: fmt.Sprintf("%f, %f", lat, lon),
		City:             "Lucknow",
		State:            "Uttar Pradesh",
		Country:          "India",
		Coordinates: providers.Coordinates{
			Latitude:  lat,
			Longitude: lon,
		},
	}, nil
}
