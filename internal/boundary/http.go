package boundary

import (
	"context"
	"fmt"
	"io"
	"mask-api/internal/logger"
	"mask-api/internal/metrics"
	"net/http"
	"time"

	"github.com/paulmach/orb/geojson"
)

// HTTPSource：HTTP 数据源
// 约束：每次调用发起一次 GET；不重试、不内置超时、不缓存，超时策略由注入的 client 承载；
//       非 2xx 与网络错误归为 ErrTransport，响应体解析失败归为 ErrDecode
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if url == "" {
		url = DefaultDatasetURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{URL: url, Client: client}
}

func (s *HTTPSource) FetchCollection(ctx context.Context) (*geojson.FeatureCollection, error) {
	t0 := time.Now()
	metrics.FetchRequestsTotal.WithLabelValues("http").Inc()
	logger.L().Debug("boundary_fetch_begin", "url", s.URL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		metrics.FetchFailTotal.WithLabelValues("http").Inc()
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		logger.L().Error("boundary_http_error", "err", err)
		metrics.FetchFailTotal.WithLabelValues("http").Inc()
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.L().Error("boundary_http_status", "status", resp.StatusCode, "url", s.URL)
		metrics.FetchFailTotal.WithLabelValues("http").Inc()
		return nil, fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.L().Error("boundary_read_error", "err", err)
		metrics.FetchFailTotal.WithLabelValues("http").Inc()
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	fc, err := decodeCollection(body)
	if err != nil {
		logger.L().Error("boundary_decode_error", "err", err)
		metrics.FetchFailTotal.WithLabelValues("http").Inc()
		return nil, err
	}
	dur := time.Since(t0).Milliseconds()
	metrics.FetchDurationMs.Observe(float64(dur))
	logger.L().Debug("boundary_fetch_ok", "features", len(fc.Features), "bytes", len(body), "duration_ms", dur)
	return fc, nil
}

func (s *HTTPSource) FetchTargetBoundary(ctx context.Context, name string) (*geojson.Feature, error) {
	fc, err := s.FetchCollection(ctx)
	if err != nil {
		return nil, err
	}
	return findTarget(fc, name)
}
