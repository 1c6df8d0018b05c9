package geometry

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHoleRingsAxisSwap(t *testing.T) {
	f := geojson.NewFeature(orb.Polygon{
		{{2.35, 48.85}, {2.5, 48.85}, {2.5, 49.0}, {2.35, 49.0}, {2.35, 48.85}},
	})
	rings, err := ExtractHoleRings(f)
	require.NoError(t, err)
	require.Len(t, rings, 1)
	// 数据集 [lon, lat] 换轴为 [lat, lon]
	assert.Equal(t, Point{Lat: 48.85, Lon: 2.35}, rings[0][0])
	assert.True(t, rings[0].Closed())
}

func TestExtractHoleRingsPolygonWithHole(t *testing.T) {
	outer := orb.Ring{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}
	hole := orb.Ring{{1, 1}, {2, 1}, {2, 2}, {1, 2}, {1, 1}}
	rings, err := ExtractHoleRings(geojson.NewFeature(orb.Polygon{outer, hole}))
	require.NoError(t, err)
	require.Len(t, rings, 2)
	assert.Equal(t, Point{Lat: 0, Lon: 0}, rings[0][0])
	assert.Equal(t, Point{Lat: 1, Lon: 1}, rings[1][0])
}

func TestExtractHoleRingsMultiPolygonFlatten(t *testing.T) {
	mp := orb.MultiPolygon{
		{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}},
		{
			{{10, 10}, {11, 10}, {11, 11}, {10, 10}},
			{{10.2, 10.2}, {10.4, 10.2}, {10.4, 10.4}, {10.2, 10.2}},
		},
	}
	rings, err := ExtractHoleRings(geojson.NewFeature(mp))
	require.NoError(t, err)
	require.Len(t, rings, 3)
	assert.Equal(t, Point{Lat: 10, Lon: 10}, rings[1][0])
}

func TestExtractHoleRingsUnsupported(t *testing.T) {
	_, err := ExtractHoleRings(geojson.NewFeature(orb.Point{2.35, 48.85}))
	require.ErrorIs(t, err, ErrUnsupportedGeometry)
	_, err = ExtractHoleRings(geojson.NewFeature(orb.LineString{{0, 0}, {1, 1}}))
	require.ErrorIs(t, err, ErrUnsupportedGeometry)
	_, err = ExtractHoleRings(&geojson.Feature{})
	require.ErrorIs(t, err, ErrUnsupportedGeometry)
}
