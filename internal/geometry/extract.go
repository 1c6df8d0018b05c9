package geometry

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrUnsupportedGeometry：边界要素携带了面类型之外的几何
var ErrUnsupportedGeometry = errors.New("unsupported geometry")

// ExtractHoleRings：把边界要素的全部环拍平为洞环集合
// 背景：GeoJSON 坐标顺序为 [lon, lat]，掩膜层按 [lat, lon] 工作，换轴在此处一次完成
// 约束：Polygon 的外环与内环同等入洞（掩膜只需覆盖轮廓，不区分岛屿与湖泊）；
//       MultiPolygon 逐面展开并保持数据集顺序；其余几何类型显式报错而非静默空结果
func ExtractHoleRings(f *geojson.Feature) ([]Ring, error) {
	if f == nil || f.Geometry == nil {
		return nil, fmt.Errorf("%w: nil geometry", ErrUnsupportedGeometry)
	}
	switch g := f.Geometry.(type) {
	case orb.Polygon:
		return ringsOf(g), nil
	case orb.MultiPolygon:
		var out []Ring
		for _, part := range g {
			out = append(out, ringsOf(part)...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedGeometry, g)
	}
}

func ringsOf(p orb.Polygon) []Ring {
	out := make([]Ring, 0, len(p))
	for _, ring := range p {
		rr := make(Ring, 0, len(ring))
		for _, pt := range ring {
			rr = append(rr, Point{Lat: pt.Lat(), Lon: pt.Lon()})
		}
		out = append(out, rr)
	}
	return out
}
