package main

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"time"

	"mask-api/internal/boundary"
	"mask-api/internal/geometry"
	"mask-api/internal/logger"
	"mask-api/internal/mask"

	"github.com/joho/godotenv"
)

// 文档注释：离线导出掩膜 GeoJSON
// 背景：排障与前端联调时需要不起服务就能检查某国掩膜的实际几何；从数据源取边界，
//       走与服务端相同的变换管线，落盘为单个 Feature 文件。
// 约束：变换参数与服务端同名环境变量一致；输出路径缺省 mask.geojson。
func main() {
	_ = godotenv.Load(".env")
	l := logger.Setup()
	target := os.Getenv("MASK_TARGET")
	if target == "" {
		l.Error("mask_target_missing")
		os.Exit(1)
	}
	out := os.Getenv("MASK_OUT")
	if out == "" {
		out = "mask.geojson"
	}
	shiftKm := 1.0
	if s := os.Getenv("MASK_SHIFT_KM"); s != "" {
		if v, e := strconv.ParseFloat(s, 64); e == nil && v >= 0 {
			shiftKm = v
		}
	}
	expandKm := 1.0
	if s := os.Getenv("MASK_EXPAND_KM"); s != "" {
		if v, e := strconv.ParseFloat(s, 64); e == nil && v >= 0 {
			expandKm = v
		}
	}
	src := sourceFromEnv()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	f, err := src.FetchTargetBoundary(ctx, target)
	if err != nil {
		l.Error("boundary_fetch_error", "target", target, "err", err)
		os.Exit(1)
	}
	rings, err := geometry.ExtractHoleRings(f)
	if err != nil {
		l.Error("ring_extract_error", "target", target, "err", err)
		os.Exit(1)
	}
	poly := mask.BuildPolygon(rings, shiftKm, expandKm)
	feat := poly.Feature(target)
	b, err := json.MarshalIndent(feat, "", "  ")
	if err != nil {
		l.Error("feature_marshal_error", "err", err)
		os.Exit(1)
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		l.Error("feature_write_error", "path", out, "err", err)
		os.Exit(1)
	}
	l.Info("mask_exported", "target", target, "holes", len(poly.Holes), "path", out)
}

func sourceFromEnv() boundary.Source {
	var list []boundary.Source
	if p := os.Getenv("DATASET_FILE"); p != "" {
		list = append(list, boundary.NewFileSource(p))
	}
	list = append(list, boundary.NewHTTPSource(os.Getenv("DATASET_URL"), nil))
	if len(list) == 1 {
		return list[0]
	}
	return boundary.NewChainSource(list...)
}
