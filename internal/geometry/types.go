// 包 geometry：反选掩膜的几何核心，提供环抽取、质心位移变换与球面距离计算
package geometry

// Point：WGS84 坐标点，纬度在前
// 约束：不做范围归一化与跨线回绕，数据集原值透传
type Point struct {
	Lat float64
	Lon float64
}

// Ring：多边形环，点序与数据集一致
// 约束：合法环首尾点相同且至少四个点；简单性由上游数据集保证，此处不校验
type Ring []Point

// Closed：判断环是否首尾闭合
func (r Ring) Closed() bool {
	if len(r) < 4 {
		return false
	}
	return r[0] == r[len(r)-1]
}

// Centroid：算术平均质心（非面积加权）
// 背景：位移与外扩以质心为参考点；按原始坐标序列求均值，闭合重复点按数据集原样计入
func Centroid(r Ring) Point {
	if len(r) == 0 {
		return Point{}
	}
	var latSum, lonSum float64
	for _, p := range r {
		latSum += p.Lat
		lonSum += p.Lon
	}
	n := float64(len(r))
	return Point{Lat: latSum / n, Lon: lonSum / n}
}
