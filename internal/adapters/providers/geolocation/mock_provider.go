package geolocation

import (
	"context"
	"fmt"
	"strings"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/domain/providers"
)

// MockGeolocationProvider implements a mock geolocation provider for testing
type MockGeolocationProvider struct{}

// NewMockGeolocationProvider creates a new mock geolocation provider
func NewMockGeolocationProvider() providers.GeolocationProvider {
	return &MockGeolocationProvider{}
}

// Geocode converts an address to coordinates (mock implementation)
func (m *MockGeolocationProvider) Geocode(ctx context.Context, address string) (*providers.Coordinates, error) {
	// Known Nagpur localities plus a few metros for cross-city lookups
	mockCoordinates := map[string]providers.Coordinates{
		"Dharampeth":   {Latitude: 21.1355, Longitude: 79.0625},
		"Sitabuldi":    {Latitude: 21.1458, Longitude: 79.0882},
		"Sadar":        {Latitude: 21.1610, Longitude: 79.0725},
		"Manish Nagar": {Latitude: 21.0935, Longitude: 79.0766},
		"Wardha Road":  {Latitude: 21.0900, Longitude: 79.0550},
		"Koradi Road":  {Latitude: 21.2100, Longitude: 79.0900},
		"Nagpur":       {Latitude: 21.1458, Longitude: 79.0882},
		"Mumbai":       {Latitude: 19.0760, Longitude: 72.8777},
		"Pune":         {Latitude: 18.5204, Longitude: 73.8567},
	}

	for locality, coords := range mockCoordinates {
		if strings.Contains(address, locality) {
			return &coords, nil
		}
	}

	// Unknown addresses resolve to the city center
	return &providers.Coordinates{Latitude: 21.1458, Longitude: 79.0882}, nil
}

// ReverseGeocode converts coordinates to an address (mock implementation)
func (m *MockGeolocationProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (*providers.GeocodedAddress, error) {
	return &providers.GeocodedAddress{
		FormattedAddress: fmt.Sprintf("%f, %f", lat, lon),
		Street:           "WHC Road",
		City:             "Nagpur",
		State:            "Maharashtra",
		ZipCode:          "440010",
		Country:          "India",
		Coordinates: providers.Coordinates{
			Latitude:  lat,
			Longitude: lon,
		},
	}, nil
}
