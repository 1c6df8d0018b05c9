package boundary

import (
	"context"
	"fmt"
	"mask-api/internal/logger"
	"mask-api/internal/metrics"
	"os"

	"github.com/paulmach/orb/geojson"
)

// FileSource：本地数据集文件
// 背景：内网与离线工具场景；每次调用重新读盘，文件替换后下一次 apply 即生效
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource { return &FileSource{Path: path} }

func (s *FileSource) FetchCollection(ctx context.Context) (*geojson.FeatureCollection, error) {
	metrics.FetchRequestsTotal.WithLabelValues("file").Inc()
	b, err := os.ReadFile(s.Path)
	if err != nil {
		logger.L().Error("boundary_file_error", "path", s.Path, "err", err)
		metrics.FetchFailTotal.WithLabelValues("file").Inc()
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	fc, err := decodeCollection(b)
	if err != nil {
		logger.L().Error("boundary_file_decode_error", "path", s.Path, "err", err)
		metrics.FetchFailTotal.WithLabelValues("file").Inc()
		return nil, err
	}
	logger.L().Debug("boundary_file_ok", "path", s.Path, "features", len(fc.Features))
	return fc, nil
}

func (s *FileSource) FetchTargetBoundary(ctx context.Context, name string) (*geojson.Feature, error) {
	fc, err := s.FetchCollection(ctx)
	if err != nil {
		return nil, err
	}
	return findTarget(fc, name)
}
