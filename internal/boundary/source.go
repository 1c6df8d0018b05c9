// 包 boundary：国家边界数据源。统一契约下提供 HTTP、本地文件、Redis 缓存与多源回退实现
package boundary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/paulmach/orb/geojson"
)

// DefaultDatasetURL：世界国家边界数据集（GeoJSON FeatureCollection，properties.name 为国家名）
const DefaultDatasetURL = "https://raw.githubusercontent.com/johan/world.geo.json/master/countries.geo.json"

// 错误分类：上层按此归类失败原因
var (
	ErrTransport = errors.New("boundary transport error")
	ErrDecode    = errors.New("boundary decode error")
	ErrNotFound  = errors.New("boundary not found")
)

// Source：边界数据源契约
// 背景：基础实现每次调用发起一次真实拉取，不重试、不缓存；缓存与回退通过装饰器叠加，
//       掩膜管理器只面向此契约
type Source interface {
	FetchCollection(ctx context.Context) (*geojson.FeatureCollection, error)
	FetchTargetBoundary(ctx context.Context, name string) (*geojson.Feature, error)
}

// decodeCollection：解析数据集字节为 FeatureCollection
func decodeCollection(b []byte) (*geojson.FeatureCollection, error) {
	fc := &geojson.FeatureCollection{}
	if err := json.Unmarshal(b, fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return fc, nil
}

// findTarget：按 properties.name 精确匹配目标要素
// 约束：区分大小写、不做裁剪或模糊化，命中第一个；未命中返回 ErrNotFound
func findTarget(fc *geojson.FeatureCollection, name string) (*geojson.Feature, error) {
	for _, f := range fc.Features {
		if v, ok := f.Properties["name"].(string); ok && v == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Names：数据集内全部要素名，去重排序
func Names(fc *geojson.FeatureCollection) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range fc.Features {
		if v, ok := f.Properties["name"].(string); ok && v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
