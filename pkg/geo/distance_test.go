package geo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/lifeline-health/bedfinder/pkg/geo"
)

func TestDistanceKm_Identity(t *testing.T) {
	coords := [][2]float64{
		{26.8467, 80.9462},
		{0, 0},
		{-33.8688, 151.2093},
		{90, 0},
	}

	for _, c := range coords {
		assert.Equal(t, 0.0, geo.DistanceKm(c[0], c[1], c[0], c[1]))
	}
}

func TestDistanceKm_Symmetry(t *testing.T) {
	pairs := [][4]float64{
		{26.8467, 80.9462, 26.7431, 80.9385},
		{40.7128, -74.0060, 34.0522, -118.2437},
		{6.5244, 3.3792, 9.0765, 7.3986},
	}

	for _, p := range pairs {
		assert.Equal(t,
			geo.DistanceKm(p[0], p[1], p[2], p[3]),
			geo.DistanceKm(p[2], p[3], p[0], p[1]),
		)
	}
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	// Lucknow center to SGPGI is roughly 11.5 km great-circle.
	d := geo.DistanceKm(26.8467, 80.9462, 26.7431, 80.9385)
	assert.InDelta(t, 11.5, d, 0.5)
}

func TestDistanceKm_OneDecimalPlace(t *testing.T) {
	d := geo.DistanceKm(26.8467, 80.9462, 26.8687, 80.9168)
	assert.Equal(t, math.Round(d*10)/10, d)
}
