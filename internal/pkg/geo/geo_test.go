package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	monas    = Point{Latitude: -6.175392, Longitude: 106.827153}
	bundaran = Point{Latitude: -6.194920, Longitude: 106.823059}
)

func TestDistance(t *testing.T) {
	assert.Zero(t, Distance(monas, monas))
	// Roughly 2.2 km between the two landmarks.
	assert.InDelta(t, 2218, Distance(monas, bundaran), 50)
	assert.InDelta(t, Distance(monas, bundaran), Distance(bundaran, monas), 1e-6)
}

func TestFence_Contains(t *testing.T) {
	fence := Fence{Center: monas, RadiusMeters: 150}

	assert.True(t, fence.Enabled())
	assert.True(t, fence.Contains(Point{Latitude: -6.1760, Longitude: 106.8275}))
	assert.False(t, fence.Contains(bundaran))

	disabled := Fence{Center: monas}
	assert.False(t, disabled.Enabled())
	assert.True(t, disabled.Contains(bundaran))
}
