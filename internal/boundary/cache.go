package boundary

import (
	"context"
	"encoding/json"
	"mask-api/internal/logger"
	"mask-api/internal/metrics"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/redis/go-redis/v9"
)

// CachedSource：Redis 数据集缓存装饰器
// 背景：基础契约是每次 apply 真实拉取；数据集大且 apply 频繁时由运维显式开启 TTL 缓存
// 约束：缓存读写任一失败都降级为直透拉取，Redis 故障不阻断主流程；缓存体损坏按未命中处理
type CachedSource struct {
	Inner Source
	RC    *redis.Client
	TTL   time.Duration
	Key   string
}

func NewCachedSource(inner Source, rc *redis.Client, ttl time.Duration) *CachedSource {
	return &CachedSource{Inner: inner, RC: rc, TTL: ttl, Key: "boundary:dataset"}
}

func (s *CachedSource) FetchCollection(ctx context.Context) (*geojson.FeatureCollection, error) {
	if s.RC != nil {
		if b, _ := s.RC.Get(ctx, s.Key).Bytes(); len(b) > 0 {
			if fc, err := decodeCollection(b); err == nil {
				metrics.DatasetCacheHitsTotal.Inc()
				logger.L().Debug("dataset_cache_hit", "bytes", len(b))
				return fc, nil
			}
			logger.L().Warn("dataset_cache_corrupt", "key", s.Key)
		}
		metrics.DatasetCacheMissesTotal.Inc()
		logger.L().Debug("dataset_cache_miss", "key", s.Key)
	}
	fc, err := s.Inner.FetchCollection(ctx)
	if err != nil {
		return nil, err
	}
	if s.RC != nil {
		if b, err := json.Marshal(fc); err == nil {
			ttl := s.TTL
			if ttl <= 0 {
				ttl = time.Hour
			}
			_ = s.RC.Set(ctx, s.Key, b, ttl).Err()
		}
	}
	return fc, nil
}

func (s *CachedSource) FetchTargetBoundary(ctx context.Context, name string) (*geojson.Feature, error) {
	fc, err := s.FetchCollection(ctx)
	if err != nil {
		return nil, err
	}
	return findTarget(fc, name)
}

// Purge：清除缓存的数据集，供管理端点调用
func (s *CachedSource) Purge(ctx context.Context) error {
	if s.RC == nil {
		return nil
	}
	return s.RC.Del(ctx, s.Key).Err()
}
