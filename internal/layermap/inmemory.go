// 包 layermap：mask.Map 契约的进程内实现
// 背景：服务侧没有浏览器渲染端，以内存图层表承载掩膜的挂载/枚举/移除语义，
//       供 HTTP 会话与测试使用；真实嵌入方以自己的渲染端实现替换
package layermap

import (
	"errors"
	"sync"

	"mask-api/internal/mask"
)

// layer：内存图层，保留挂载时的多边形与样式
type layer struct {
	id    int
	tag   string
	poly  mask.Polygon
	style mask.Style
}

func (l *layer) Tag() string { return l.tag }

// InMemory：内存地图
// 约束：并发安全；实例指针可比较，可直接作为掩膜管理器的注册表键
type InMemory struct {
	mu     sync.Mutex
	nextID int
	layers []*layer
}

func New() *InMemory { return &InMemory{} }

func (m *InMemory) AddPolygon(p mask.Polygon, s mask.Style, tag string) (mask.Layer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	l := &layer{id: m.nextID, tag: tag, poly: p, style: s}
	m.layers = append(m.layers, l)
	return l, nil
}

func (m *InMemory) Layers() []mask.Layer {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mask.Layer, 0, len(m.layers))
	for _, l := range m.layers {
		out = append(out, l)
	}
	return out
}

func (m *InMemory) RemoveLayer(target mask.Layer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.layers {
		if l == target {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			return nil
		}
	}
	return errors.New("layer not attached")
}

// Polygon：读取图层挂载时的多边形，供导出与诊断
func (m *InMemory) Polygon(target mask.Layer) (mask.Polygon, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.layers {
		if l == target {
			return l.poly, true
		}
	}
	return mask.Polygon{}, false
}

// Count：当前图层总数
func (m *InMemory) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.layers)
}
