package layermap

import (
	"context"
	"testing"

	"mask-api/internal/boundary"
	"mask-api/internal/geometry"
	"mask-api/internal/mask"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryAddRemove(t *testing.T) {
	m := New()
	p := mask.Polygon{Outer: mask.WorldOuterRing()}
	l, err := m.AddPolygon(p, mask.DefaultStyle(), mask.LayerTag)
	require.NoError(t, err)
	assert.Equal(t, mask.LayerTag, l.Tag())
	assert.Equal(t, 1, m.Count())

	got, ok := m.Polygon(l)
	require.True(t, ok)
	assert.Equal(t, p.Outer, got.Outer)

	require.NoError(t, m.RemoveLayer(l))
	assert.Equal(t, 0, m.Count())
	assert.Error(t, m.RemoveLayer(l))
}

func TestInMemoryLayersSnapshot(t *testing.T) {
	m := New()
	_, err := m.AddPolygon(mask.Polygon{}, mask.Style{}, "a")
	require.NoError(t, err)
	_, err = m.AddPolygon(mask.Polygon{}, mask.Style{}, "b")
	require.NoError(t, err)
	ls := m.Layers()
	require.Len(t, ls, 2)
	assert.Equal(t, "a", ls[0].Tag())
	assert.Equal(t, "b", ls[1].Tag())
}

func franceFeature() *geojson.Feature {
	f := geojson.NewFeature(orb.Polygon{
		{{-1.0, 43.0}, {7.0, 43.0}, {7.0, 50.0}, {-1.0, 50.0}, {-1.0, 43.0}},
	})
	f.Properties["name"] = "France"
	return f
}

type franceSource struct{}

func (franceSource) FetchCollection(ctx context.Context) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	fc.Append(franceFeature())
	return fc, nil
}

func (franceSource) FetchTargetBoundary(ctx context.Context, name string) (*geojson.Feature, error) {
	if name != "France" {
		return nil, boundary.ErrNotFound
	}
	return franceFeature(), nil
}

// 真实管理器 + 内存地图的端到端链路
func TestInMemoryWithManager(t *testing.T) {
	m := New()
	mgr := mask.NewManager(franceSource{}, 1, 1, mask.DefaultStyle())

	h := mgr.Apply(context.Background(), m, "France")
	require.NotNil(t, h)
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, 1, h.Holes)

	poly, ok := m.Polygon(h.Layer)
	require.True(t, ok)
	assert.False(t, mask.Covers(poly, geometry.Point{Lat: 46.5, Lon: 2.5}))
	assert.True(t, mask.Covers(poly, geometry.Point{Lat: 0, Lon: -120}))

	assert.Equal(t, 1, mgr.Remove(m))
	assert.Equal(t, 0, m.Count())
	assert.Equal(t, 0, mgr.Remove(m))
}
