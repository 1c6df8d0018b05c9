package mask

import (
	"mask-api/internal/geometry"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// toOrbRing：内部环还原为 GeoJSON 顶点序（经度在前）
func toOrbRing(r geometry.Ring) orb.Ring {
	out := make(orb.Ring, 0, len(r))
	for _, p := range r {
		out = append(out, orb.Point{p.Lon, p.Lat})
	}
	return out
}

// Feature：掩膜多边形导出为 GeoJSON Feature，外环在前、孔洞随后
// 背景：接口导出与离线工具落盘复用同一转换；屏幕态样式不参与序列化
func (p Polygon) Feature(name string) *geojson.Feature {
	rings := make([]orb.Ring, 0, 1+len(p.Holes))
	rings = append(rings, toOrbRing(p.Outer))
	for _, h := range p.Holes {
		rings = append(rings, toOrbRing(h))
	}
	f := geojson.NewFeature(orb.Polygon(rings))
	f.Properties["name"] = name
	f.Properties["layer"] = LayerTag
	return f
}
