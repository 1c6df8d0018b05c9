package boundary

import (
	"context"
	"errors"
	"fmt"
	"mask-api/internal/logger"

	"github.com/paulmach/orb/geojson"
)

// ChainSource：多源按序回退
// 约束：传输与解码失败继续尝试下一个源；ErrNotFound 为最终结果不再回退——
//       数据集已成功取到，目标不存在属于数据问题而非源故障
type ChainSource struct {
	list []Source
}

func NewChainSource(list ...Source) *ChainSource { return &ChainSource{list: list} }

func (s *ChainSource) FetchCollection(ctx context.Context) (*geojson.FeatureCollection, error) {
	var lastErr error
	for _, src := range s.list {
		if src == nil {
			continue
		}
		fc, err := src.FetchCollection(ctx)
		if err == nil {
			return fc, nil
		}
		logger.L().Warn("boundary_source_fallback", "err", err)
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("%w: no source configured", ErrTransport)
	}
	return nil, lastErr
}

func (s *ChainSource) FetchTargetBoundary(ctx context.Context, name string) (*geojson.Feature, error) {
	var lastErr error
	for _, src := range s.list {
		if src == nil {
			continue
		}
		f, err := src.FetchTargetBoundary(ctx, name)
		if err == nil {
			return f, nil
		}
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		logger.L().Warn("boundary_source_fallback", "err", err)
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("%w: no source configured", ErrTransport)
	}
	return nil, lastErr
}
