package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "maskapi_requests_total",
		Help: "Total number of mask API requests",
	})
	RequestDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "maskapi_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	ApplyRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "maskapi_apply_requests_total",
		Help: "Total mask apply attempts",
	})
	ApplySuccessTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "maskapi_apply_success_total",
		Help: "Total mask apply successes",
	})
	ApplyFailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "maskapi_apply_fail_total",
		Help: "Total mask apply failures by reason",
	}, []string{"reason"})
	ApplyDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "maskapi_apply_duration_ms",
		Help:    "Mask apply duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000},
	})
	RemoveRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "maskapi_remove_requests_total",
		Help: "Total mask remove requests",
	})
	LayersRemovedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "maskapi_layers_removed_total",
		Help: "Total tagged layers removed from maps",
	})
	FetchRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "maskapi_boundary_fetch_total",
		Help: "Total boundary dataset fetches by source",
	}, []string{"source"})
	FetchFailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "maskapi_boundary_fetch_fail_total",
		Help: "Total boundary dataset fetch failures by source",
	}, []string{"source"})
	FetchDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "maskapi_boundary_fetch_duration_ms",
		Help:    "Boundary dataset fetch duration in milliseconds",
		Buckets: []float64{5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000},
	})
	DatasetCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "maskapi_dataset_cache_hits_total",
		Help: "Total dataset cache hits",
	})
	DatasetCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "maskapi_dataset_cache_misses_total",
		Help: "Total dataset cache misses",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(ApplyRequestsTotal)
	prometheus.MustRegister(ApplySuccessTotal)
	prometheus.MustRegister(ApplyFailTotal)
	prometheus.MustRegister(ApplyDurationMs)
	prometheus.MustRegister(RemoveRequestsTotal)
	prometheus.MustRegister(LayersRemovedTotal)
	prometheus.MustRegister(FetchRequestsTotal)
	prometheus.MustRegister(FetchFailTotal)
	prometheus.MustRegister(FetchDurationMs)
	prometheus.MustRegister(DatasetCacheHitsTotal)
	prometheus.MustRegister(DatasetCacheMissesTotal)
}

// 文档注释：返回 Prometheus 指标监听器
// 背景：统一暴露注册指标到 /metrics 路径，供 Prometheus 抓取；在主入口挂载。
func Handler() http.Handler { return promhttp.Handler() }
