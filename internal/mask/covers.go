package mask

import "mask-api/internal/geometry"

// Covers：判断掩膜是否遮盖该点
// 背景：与渲染端 even-odd 填充语义一致——外环内且不落入任何洞才算遮盖；用于诊断与测试
func Covers(p Polygon, pt geometry.Point) bool {
	if !pointInRing(pt, p.Outer) {
		return false
	}
	for _, h := range p.Holes {
		if pointInRing(pt, h) {
			return false
		}
	}
	return true
}

// 射线法判定点是否在环内
func pointInRing(pt geometry.Point, ring geometry.Ring) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	x := pt.Lon
	y := pt.Lat
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi := ring[i].Lon
		yi := ring[i].Lat
		xj := ring[j].Lon
		yj := ring[j].Lat
		if ((yi > y) != (yj > y)) && (x < (xj-xi)*(y-yi)/(yj-yi+1e-12)+xi) {
			inside = !inside
		}
	}
	return inside
}
