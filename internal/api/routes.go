// 包 api：集中注册 HTTP API 路由以解耦主入口，便于后续扩展与替换
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"mask-api/internal/boundary"
	"mask-api/internal/geoip"
	"mask-api/internal/logger"
	"mask-api/internal/mask"
	"mask-api/internal/metrics"
	"mask-api/internal/store"

	"github.com/redis/go-redis/v9"
)

const countriesCacheKey = "countries:names"

// writeJSON：统一响应头与 JSON 编码
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.Header().Set("cache-control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor：数据源错误映射为 HTTP 状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, boundary.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, boundary.ErrTransport), errors.Is(err, boundary.ErrDecode):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// instrument：入口请求计数与耗时观测
func instrument(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t0 := time.Now()
		metrics.RequestsTotal.Inc()
		h(w, r)
		metrics.RequestDurationMs.Observe(float64(time.Since(t0).Milliseconds()))
	}
}

// 构建并返回 API 路由：独立 ServeMux 便于在主入口挂载到 /api 前缀
// 约束：st/rc/geo 允许为 nil，对应能力降级为空操作；mgr 必须非 nil
func BuildRoutes(st *store.Store, rc *redis.Client, mgr *mask.Manager, geo *geoip.Resolver) *http.ServeMux {
	reg := newMapRegistry()
	apiMux := http.NewServeMux()

	apiMux.HandleFunc("/mask/apply", instrument(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		ctx := r.Context()
		mapID := r.URL.Query().Get("map")
		if mapID == "" {
			mapID = "default"
		}
		target := r.URL.Query().Get("country")
		if target == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "missing country"})
			return
		}
		if target == "auto" {
			if geo == nil {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": "geoip not configured"})
				return
			}
			name, err := geo.CountryName(getClientIP(r))
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
				return
			}
			target = name
		}
		h := mgr.Apply(ctx, reg.getOrCreate(mapID), target)
		if h == nil {
			writeJSON(w, http.StatusOK, map[string]any{"applied": false, "map": mapID, "target": target, "holes": 0})
			return
		}
		if st != nil {
			_ = st.IncrApply(ctx, h.Target)
			_ = st.RecordRecent(ctx, h.Target)
		}
		writeJSON(w, http.StatusOK, map[string]any{"applied": true, "map": mapID, "target": h.Target, "holes": h.Holes})
	}))

	apiMux.HandleFunc("/mask/remove", instrument(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		mapID := r.URL.Query().Get("map")
		if mapID == "" {
			mapID = "default"
		}
		n := mgr.Remove(reg.getOrCreate(mapID))
		if st != nil {
			_ = st.IncrRemove(r.Context())
		}
		writeJSON(w, http.StatusOK, map[string]any{"removed": true, "map": mapID, "layers": n})
	}))

	apiMux.HandleFunc("/mask", instrument(func(w http.ResponseWriter, r *http.Request) {
		mapID := r.URL.Query().Get("map")
		if mapID == "" {
			mapID = "default"
		}
		h := mgr.Current(reg.getOrCreate(mapID))
		if h == nil {
			writeJSON(w, http.StatusOK, map[string]any{"present": false, "map": mapID})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"present":    true,
			"map":        mapID,
			"target":     h.Target,
			"holes":      h.Holes,
			"applied_at": h.AppliedAt.UTC().Format(time.RFC3339),
		})
	}))

	apiMux.HandleFunc("/mask/geojson", instrument(func(w http.ResponseWriter, r *http.Request) {
		mapID := r.URL.Query().Get("map")
		if mapID == "" {
			mapID = "default"
		}
		h := mgr.Current(reg.getOrCreate(mapID))
		if h == nil {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "no mask"})
			return
		}
		f := h.Polygon.Feature(h.Target)
		f.Properties["applied_at"] = h.AppliedAt.UTC().Format(time.RFC3339)
		writeJSON(w, http.StatusOK, f)
	}))

	apiMux.HandleFunc("/countries", instrument(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if rc != nil {
			if s, _ := rc.Get(ctx, countriesCacheKey).Result(); s != "" {
				var names []string
				if json.Unmarshal([]byte(s), &names) == nil {
					logger.L().Debug("countries_cache_hit", "count", len(names))
					writeJSON(w, http.StatusOK, map[string]any{"countries": names, "count": len(names)})
					return
				}
			}
		}
		fc, err := mgr.Source().FetchCollection(ctx)
		if err != nil {
			writeJSON(w, statusFor(err), map[string]any{"error": err.Error()})
			return
		}
		names := boundary.Names(fc)
		if rc != nil {
			if b, err := json.Marshal(names); err == nil {
				rc.Set(ctx, countriesCacheKey, string(b), time.Hour)
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"countries": names, "count": len(names)})
	}))

	apiMux.HandleFunc("/stats", instrument(func(w http.ResponseWriter, r *http.Request) {
		m := map[string]any{"total": int64(0), "today": int64(0)}
		if st != nil {
			if t, err := st.GetTotals(r.Context()); err == nil && t != nil {
				m["total"] = t.Total
				m["today"] = t.Today
			}
			if rt, err := st.FetchRecentTargets(r.Context(), 24, 10); err == nil && len(rt) > 0 {
				recent := make([]map[string]any, 0, len(rt))
				for _, e := range rt {
					recent = append(recent, map[string]any{"target": e.Target, "applies": e.Applies})
				}
				m["recent"] = recent
			}
		}
		writeJSON(w, http.StatusOK, m)
	}))

	return apiMux
}
