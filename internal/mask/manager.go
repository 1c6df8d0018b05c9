package mask

import (
	"context"
	"errors"
	"sync"
	"time"

	"mask-api/internal/boundary"
	"mask-api/internal/geometry"
	"mask-api/internal/logger"
	"mask-api/internal/metrics"
)

// Handle：一次成功 apply 产出的掩膜句柄
type Handle struct {
	Layer     Layer
	Target    string
	Polygon   Polygon
	Holes     int
	AppliedAt time.Time
}

// Manager：掩膜生命周期管理器
// 约束：每张地图同一时刻最多一层掩膜；同一地图的 apply/remove 串行执行（含拉取阶段），
//       并发调用不会叠加图层；注册表以 Map 实例为键，进程内常驻
type Manager struct {
	src      boundary.Source
	shiftKm  float64
	expandKm float64
	style    Style

	mu     sync.Mutex
	states map[Map]*mapState
}

type mapState struct {
	mu     sync.Mutex
	handle *Handle
}

func NewManager(src boundary.Source, shiftKm, expandKm float64, style Style) *Manager {
	return &Manager{
		src:      src,
		shiftKm:  shiftKm,
		expandKm: expandKm,
		style:    style,
		states:   make(map[Map]*mapState),
	}
}

func (m *Manager) state(mp Map) *mapState {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[mp]
	if !ok {
		st = &mapState{}
		m.states[mp] = st
	}
	return st
}

// Apply：对目标国家应用反选掩膜
// 背景：先无条件清除旧掩膜，再走 拉取→抽环→变换→组装→挂载；任何一步失败记录
//       日志与指标后返回 nil，此时旧掩膜已清除、新掩膜未挂载，地图保持无掩膜状态
func (m *Manager) Apply(ctx context.Context, mp Map, target string) *Handle {
	t0 := time.Now()
	metrics.ApplyRequestsTotal.Inc()
	st := m.state(mp)
	st.mu.Lock()
	defer st.mu.Unlock()

	if removed := m.removeLocked(mp, st); removed > 0 {
		logger.L().Debug("mask_replaced", "removed", removed, "target", target)
	}

	f, err := m.src.FetchTargetBoundary(ctx, target)
	if err != nil {
		m.failApply(target, classify(err), err)
		return nil
	}
	rings, err := geometry.ExtractHoleRings(f)
	if err != nil {
		m.failApply(target, classify(err), err)
		return nil
	}
	if len(rings) == 0 {
		m.failApply(target, "geometry", errors.New("boundary has no rings"))
		return nil
	}
	poly := BuildPolygon(rings, m.shiftKm, m.expandKm)
	layer, err := mp.AddPolygon(poly, m.style, LayerTag)
	if err != nil {
		m.failApply(target, "render", err)
		return nil
	}
	h := &Handle{
		Layer:     layer,
		Target:    target,
		Polygon:   poly,
		Holes:     len(poly.Holes),
		AppliedAt: time.Now(),
	}
	st.handle = h
	dur := time.Since(t0).Milliseconds()
	metrics.ApplySuccessTotal.Inc()
	metrics.ApplyDurationMs.Observe(float64(dur))
	logger.L().Info("mask_applied", "target", target, "holes", h.Holes, "duration_ms", dur)
	return h
}

func (m *Manager) failApply(target, reason string, err error) {
	metrics.ApplyFailTotal.WithLabelValues(reason).Inc()
	logger.L().Error("mask_apply_error", "target", target, "reason", reason, "err", err)
}

// classify：错误按来源归类为指标标签
func classify(err error) string {
	switch {
	case errors.Is(err, boundary.ErrNotFound):
		return "not_found"
	case errors.Is(err, boundary.ErrDecode):
		return "decode"
	case errors.Is(err, boundary.ErrTransport):
		return "transport"
	case errors.Is(err, geometry.ErrUnsupportedGeometry):
		return "geometry"
	default:
		return "other"
	}
}

// Remove：清除地图上全部掩膜层，返回清除数量
// 约束：逐层枚举按标签匹配，可清除本管理器之外挂载的同标签残留；
//       单层移除失败吞掉并继续；无掩膜时为空操作，幂等
func (m *Manager) Remove(mp Map) int {
	metrics.RemoveRequestsTotal.Inc()
	st := m.state(mp)
	st.mu.Lock()
	defer st.mu.Unlock()
	return m.removeLocked(mp, st)
}

func (m *Manager) removeLocked(mp Map, st *mapState) int {
	removed := 0
	for _, l := range mp.Layers() {
		if l == nil || l.Tag() != LayerTag {
			continue
		}
		if err := mp.RemoveLayer(l); err != nil {
			logger.L().Warn("mask_remove_layer_error", "err", err)
			continue
		}
		removed++
	}
	st.handle = nil
	if removed > 0 {
		metrics.LayersRemovedTotal.Add(float64(removed))
		logger.L().Info("mask_removed", "layers", removed)
	}
	return removed
}

// Current：返回地图当前掩膜句柄，无掩膜时为 nil
func (m *Manager) Current(mp Map) *Handle {
	m.mu.Lock()
	st, ok := m.states[mp]
	m.mu.Unlock()
	if !ok {
		return nil
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.handle
}

// Source：底层数据源，供列举类旁路接口复用
func (m *Manager) Source() boundary.Source { return m.src }
