package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gotransfer/internal/geo"
)

func TestHaversine_IdenticalPoints(t *testing.T) {
	assert.Equal(t, 0.0, geo.Haversine(34.05, -118.24, 34.05, -118.24))
	assert.Equal(t, 0.0, geo.Haversine(0, 0, 0, 0))
	assert.Equal(t, 0.0, geo.Haversine(-89.9, 179.9, -89.9, 179.9))
}

func TestHaversine_Symmetric(t *testing.T) {
	d1 := geo.Haversine(34.0522, -118.2437, 40.7128, -74.0060)
	d2 := geo.Haversine(40.7128, -74.0060, 34.0522, -118.2437)
	assert.Equal(t, d1, d2)
}

func TestHaversine_LAToNYC(t *testing.T) {
	// Los Angeles → New York: aproximadamente 2445 milhas
	d := geo.Haversine(34.0522, -118.2437, 40.7128, -74.0060)
	assert.InDelta(t, 2445.0, d, 50.0)
}
