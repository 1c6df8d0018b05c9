package geometry

import "math"

// 千米与度的换算常量：纬度方向全球近似恒定，经度方向随纬度按 cos 缩放
const (
	latKmPerDeg = 110.574
	lonKmPerDeg = 111.320
)

func kmToDegLat(km float64) float64 { return km / latKmPerDeg }

// kmToDegLon：经度方向千米转度
// 约束：cos 恰为 0 时以 1 代入，避免极点除零
func kmToDegLon(km, cosLat float64) float64 {
	if cosLat == 0 {
		cosLat = 1
	}
	return km / (lonKmPerDeg * cosLat)
}

func cosDeg(latDeg float64) float64 { return math.Cos(latDeg * math.Pi / 180) }

// TransformRing：对单个洞环执行整体西南位移与质心外扩
// 背景：位移让洞环与底图国界产生固定错位，外扩保证洞环完全包住国界描边，
//       两者叠加后掩膜不会在国界处漏出细缝
// 为什么：位移逐点按自身纬度换算经度增量；外扩方向取位移后点相对“未位移质心”的偏移，
//       经度分量按质心纬度换算；偏移距离为零的退化点只位移不外扩，避免除零
// 参数：shiftKm 向南向西各位移的千米数，expandKm 外扩千米数，均可为 0
// 返回：与输入等长的新环，不修改输入
func TransformRing(ring Ring, shiftKm, expandKm float64) Ring {
	if len(ring) == 0 {
		return Ring{}
	}
	c := Centroid(ring)
	expLat := kmToDegLat(expandKm)
	expLon := kmToDegLon(expandKm, cosDeg(c.Lat))
	shiftLat := kmToDegLat(shiftKm)
	out := make(Ring, 0, len(ring))
	for _, p := range ring {
		s := Point{
			Lat: p.Lat - shiftLat,
			Lon: p.Lon - kmToDegLon(shiftKm, cosDeg(p.Lat)),
		}
		dLat := s.Lat - c.Lat
		dLon := s.Lon - c.Lon
		dist := math.Hypot(dLat, dLon)
		if dist == 0 {
			out = append(out, s)
			continue
		}
		out = append(out, Point{
			Lat: s.Lat + dLat/dist*expLat,
			Lon: s.Lon + dLon/dist*expLon,
		})
	}
	return out
}

// CrossesAntimeridian：检测环是否跨越 ±180 经线（相邻点经度跳变超过 180 度）
// 背景：跨线环不做拆分或回绕，位移与外扩按原值计算，产出的洞在跨线处会出现
//       横贯整幅地图的边；调用方据此记录告警，数据集侧可预先切分规避
func CrossesAntimeridian(r Ring) bool {
	for i := 1; i < len(r); i++ {
		if math.Abs(r[i].Lon-r[i-1].Lon) > 180 {
			return true
		}
	}
	return false
}
