package mask

import (
	"testing"

	"mask-api/internal/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoversMaskSemantics(t *testing.T) {
	hole := geometry.Ring{{Lat: 43, Lon: -1}, {Lat: 43, Lon: 7}, {Lat: 50, Lon: 7}, {Lat: 50, Lon: -1}, {Lat: 43, Lon: -1}}
	p := Polygon{Outer: WorldOuterRing(), Holes: []geometry.Ring{hole}}
	// 洞内（国家范围）透明，洞外被遮盖
	assert.False(t, Covers(p, geometry.Point{Lat: 46.5, Lon: 2.5}))
	assert.True(t, Covers(p, geometry.Point{Lat: 0, Lon: -120}))
	assert.True(t, Covers(p, geometry.Point{Lat: 52, Lon: 10}))
}

func TestBuildPolygonCovers(t *testing.T) {
	rings := []geometry.Ring{{{Lat: 43, Lon: -1}, {Lat: 43, Lon: 7}, {Lat: 50, Lon: 7}, {Lat: 50, Lon: -1}, {Lat: 43, Lon: -1}}}
	p := BuildPolygon(rings, 1, 1)
	require.Len(t, p.Holes, 1)
	assert.Equal(t, WorldOuterRing(), p.Outer)
	assert.False(t, Covers(p, geometry.Point{Lat: 46.5, Lon: 2.5}))
	assert.True(t, Covers(p, geometry.Point{Lat: -30, Lon: 100}))
}

func TestWorldOuterRing(t *testing.T) {
	r := WorldOuterRing()
	require.Len(t, r, 5)
	assert.True(t, r.Closed())
	assert.Equal(t, geometry.Point{Lat: -90, Lon: -180}, r[0])
	assert.Equal(t, geometry.Point{Lat: 90, Lon: 180}, r[2])
}
