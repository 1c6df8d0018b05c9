// 包 mask：反选掩膜的组装与生命周期管理
// 背景：掩膜是一张"全球矩形挖洞"的多边形——外环盖住整幅地图，洞为目标国家边界的
//       变换环；渲染端以 even-odd 填充实现"外环减洞"，国家范围内保持透明
package mask

import (
	"mask-api/internal/geometry"
	"mask-api/internal/logger"
)

// LayerTag：掩膜层识别标签，挂载、检索与清除全部依赖该值
const LayerTag = "country-mask"

// Polygon：掩膜多边形
// 约束：Outer 固定为全球矩形；Holes 为目标国家全部变换环的平铺集合，
//       不区分外环与内环（岛屿与湖泊同等成洞）
type Polygon struct {
	Outer geometry.Ring
	Holes []geometry.Ring
}

// Style：掩膜样式
// 约束：掩膜恒为实心填充、零描边、不拦截指针事件；后两者不可配置，结构上不提供字段
type Style struct {
	FillColor   string
	FillOpacity float64
}

func DefaultStyle() Style { return Style{FillColor: "#303030", FillOpacity: 0.55} }

// Layer：渲染端返回的图层引用
type Layer interface {
	Tag() string
}

// Map：渲染端能力契约，由嵌入方实现
// 约束：实现须并发安全且可比较（管理器以 Map 实例为注册表键）；
//       AddPolygon 挂载的图层不得绘制描边、不得拦截指针事件
type Map interface {
	AddPolygon(p Polygon, s Style, tag string) (Layer, error)
	Layers() []Layer
	RemoveLayer(l Layer) error
}

// WorldOuterRing：全球矩形外环（闭合，纬度在前）
func WorldOuterRing() geometry.Ring {
	return geometry.Ring{
		{Lat: -90, Lon: -180},
		{Lat: -90, Lon: 180},
		{Lat: 90, Lon: 180},
		{Lat: 90, Lon: -180},
		{Lat: -90, Lon: -180},
	}
}

// BuildPolygon：把目标边界环集合逐环变换后组装为掩膜多边形
func BuildPolygon(rings []geometry.Ring, shiftKm, expandKm float64) Polygon {
	holes := make([]geometry.Ring, 0, len(rings))
	for _, r := range rings {
		if geometry.CrossesAntimeridian(r) {
			logger.L().Warn("ring_crosses_antimeridian", "points", len(r))
		}
		holes = append(holes, geometry.TransformRing(r, shiftKm, expandKm))
	}
	return Polygon{Outer: WorldOuterRing(), Holes: holes}
}
