package mask

import (
	"testing"

	"mask-api/internal/geometry"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolygonFeature(t *testing.T) {
	rings := []geometry.Ring{
		{{Lat: 48, Lon: 2}, {Lat: 48, Lon: 3}, {Lat: 49, Lon: 3}, {Lat: 49, Lon: 2}, {Lat: 48, Lon: 2}},
	}
	p := BuildPolygon(rings, 0, 0)
	f := p.Feature("France")

	poly, ok := f.Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, poly, 2)
	assert.Equal(t, orb.Point{-180, -90}, poly[0][0])
	assert.Equal(t, orb.Point{2, 48}, poly[1][0])
	assert.Equal(t, "France", f.Properties["name"])
	assert.Equal(t, LayerTag, f.Properties["layer"])
}
