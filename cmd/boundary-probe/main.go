package main

import (
	"context"
	"os"
	"time"

	"mask-api/internal/boundary"
	"mask-api/internal/geometry"
	"mask-api/internal/logger"

	"github.com/joho/godotenv"
)

// 文档注释：数据集巡检工具
// 背景：更换数据源或排查 not found 时，列出数据集内全部国家名与几何类型；
//       指定 PROBE_TARGET 时额外输出该国抽环后的环数、顶点规模与跨经线环数。
func main() {
	_ = godotenv.Load(".env")
	l := logger.Setup()
	src := sourceFromEnv()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	fc, err := src.FetchCollection(ctx)
	if err != nil {
		l.Error("boundary_fetch_error", "err", err)
		os.Exit(1)
	}
	names := boundary.Names(fc)
	l.Info("dataset_summary", "features", len(fc.Features), "names", len(names))
	for _, f := range fc.Features {
		name, _ := f.Properties["name"].(string)
		gtype := ""
		if f.Geometry != nil {
			gtype = f.Geometry.GeoJSONType()
		}
		l.Debug("dataset_feature", "name", name, "type", gtype)
	}
	target := os.Getenv("PROBE_TARGET")
	if target == "" {
		return
	}
	f, err := src.FetchTargetBoundary(ctx, target)
	if err != nil {
		l.Error("probe_target_error", "target", target, "err", err)
		os.Exit(1)
	}
	rings, err := geometry.ExtractHoleRings(f)
	if err != nil {
		l.Error("probe_extract_error", "target", target, "err", err)
		os.Exit(1)
	}
	pts := 0
	crossings := 0
	for _, r := range rings {
		pts += len(r)
		if geometry.CrossesAntimeridian(r) {
			crossings++
		}
	}
	l.Info("probe_target_ok", "target", target, "rings", len(rings), "points", pts, "antimeridian_rings", crossings)
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
