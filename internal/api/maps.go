package api

import (
	"sync"

	"mask-api/internal/layermap"
)

// 文档注释：地图会话注册表
// 背景：HTTP 层以字符串 ID 标识地图会话，同一 ID 的请求必须命中同一地图实例，
//       掩膜管理器才能按实例串行化保证单层不变量。
// 约束：条目按需创建，创建后进程内常驻，不做淘汰。
type mapRegistry struct {
	mu   sync.Mutex
	maps map[string]*layermap.InMemory
}

func newMapRegistry() *mapRegistry {
	return &mapRegistry{maps: make(map[string]*layermap.InMemory)}
}

func (r *mapRegistry) getOrCreate(id string) *layermap.InMemory {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.maps[id]
	if !ok {
		m = layermap.New()
		r.maps[id] = m
	}
	return m
}
