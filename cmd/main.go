// 程序入口：仅负责读取配置、初始化依赖并启动服务；API 注册在 internal/api 以便扩展
package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"mask-api/internal/api"
	"mask-api/internal/boundary"
	"mask-api/internal/geoip"
	"mask-api/internal/logger"
	"mask-api/internal/mask"
	"mask-api/internal/metrics"
	"mask-api/internal/middleware"
	"mask-api/internal/migrate"
	"mask-api/internal/store"
	"mask-api/internal/utils"
	"mask-api/internal/version"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
	// 日志初始化
	l := logger.Setup()
	l.Debug("log_init_ok")
	apiBase := os.Getenv("API_BASE")
	if apiBase == "" {
		apiBase = "/api"
	}
	l.Debug("config_api_base", "base", apiBase)
	ui := os.Getenv("UI_DIST")
	if ui == "" {
		ui = filepath.Join("ui", "dist")
	}
	l.Debug("config_ui_dir", "dir", ui)

	db, err := utils.OpenPostgresFromEnv()
	if err != nil {
		l.Error("db_open_error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	l.Info("db_open_ok")
	if err := db.Ping(); err != nil {
		l.Error("db_ping_error", "err", err)
	} else {
		l.Info("db_ping_ok")
	}
	st := store.AttachDB(db)
	if err := migrate.EnsureSchema(db); err != nil {
		l.Error("schema_error", "err", err)
		os.Exit(1)
	}

	var rc *redis.Client
	if os.Getenv("REDIS_ENABLED") != "false" {
		rc = utils.OpenRedisFromEnv()
	}
	if rc == nil {
		l.Info("redis_disabled")
	} else {
		if err := rc.Ping(context.Background()).Err(); err != nil {
			l.Error("redis_ping_error", "err", err)
		} else {
			l.Info("redis_ping_ok")
		}
	}

	// 边界数据源：本地文件优先，HTTP 兜底
	datasetURL := os.Getenv("DATASET_URL")
	if datasetURL == "" {
		datasetURL = boundary.DefaultDatasetURL
	}
	var hc *http.Client
	if s := os.Getenv("DATASET_HTTP_TIMEOUT_S"); s != "" {
		if n, e := strconv.Atoi(s); e == nil && n > 0 {
			hc = &http.Client{Timeout: time.Duration(n) * time.Second}
		}
	}
	var sources []boundary.Source
	if p := os.Getenv("DATASET_FILE"); p != "" {
		sources = append(sources, boundary.NewFileSource(p))
		l.Info("dataset_file_source", "path", p)
	}
	sources = append(sources, boundary.NewHTTPSource(datasetURL, hc))
	l.Debug("config_dataset_url", "url", datasetURL)
	var src boundary.Source
	if len(sources) == 1 {
		src = sources[0]
	} else {
		src = boundary.NewChainSource(sources...)
	}
	// 可选数据集缓存：基础契约是每次 apply 真实拉取，TTL 缓存需显式开启
	var dcache *boundary.CachedSource
	if s := os.Getenv("DATASET_CACHE_TTL_S"); s != "" && rc != nil {
		if n, e := strconv.Atoi(s); e == nil && n > 0 {
			dcache = boundary.NewCachedSource(src, rc, time.Duration(n)*time.Second)
			src = dcache
			l.Info("dataset_cache_enabled", "ttl_s", n)
		}
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
	style := mask.DefaultStyle()
	if c := os.Getenv("MASK_FILL_COLOR"); c != "" {
		style.FillColor = c
	}
	if s := os.Getenv("MASK_FILL_OPACITY"); s != "" {
		if v, e := strconv.ParseFloat(s, 64); e == nil && v >= 0 && v <= 1 {
			style.FillOpacity = v
		}
	}
	l.Debug("config_mask", "shift_km", shiftKm, "expand_km", expandKm, "fill", style.FillColor)

	// 可选 GeoLite2 解析器：未配置路径时 country=auto 能力整体关闭
	var geo *geoip.Resolver
	if p := os.Getenv("GEOIP_MMDB_PATH"); p != "" {
		g, err := geoip.Open(p)
		if err != nil {
			l.Error("geoip_open_error", "path", p, "err", err)
		} else {
			geo = g
			defer geo.Close()
		}
	}

	mgr := mask.NewManager(src, shiftKm, expandKm, style)

	mux := http.NewServeMux()
	apiMux := api.BuildRoutes(st, rc, mgr, geo)
	mux.Handle(apiBase+"/", http.StripPrefix(apiBase, apiMux))
	mux.Handle(apiBase+"/metrics", metrics.Handler())
	mux.HandleFunc(apiBase+"/purge-dataset-cache", func(w http.ResponseWriter, r *http.Request) {
		t := r.Header.Get("x-admin-token")
		if t == "" || t != os.Getenv("ADMIN_TOKEN") {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if dcache == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := dcache.Purge(r.Context()); err != nil {
			l.Error("dataset_cache_purge_error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		l.Info("dataset_cache_purged")
		w.WriteHeader(http.StatusNoContent)
	})

	fs := http.FileServer(http.Dir(ui))
	mux.Handle("/", fs)

	// NOTE: 向前端暴露 API 基础路径，避免硬编码；生产环境由后端统一提供
	mux.HandleFunc("/config.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/javascript; charset=utf-8")
		w.Header().Set("cache-control", "no-store")
		_, _ = w.Write([]byte("window.__API_BASE__='" + apiBase + "'"))
		_, _ = w.Write([]byte("\n"))
		_, _ = w.Write([]byte("window.__DATA_SOURCE__='world.geo.json'"))
		_, _ = w.Write([]byte("\n"))
		_, _ = w.Write([]byte("window.__DATA_SOURCE_URL__='" + datasetURL + "'"))
		_, _ = w.Write([]byte("\n"))
		_, _ = w.Write([]byte("window.__COMMIT_SHA__='" + version.Commit + "'"))
	})

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	handler := logger.AccessMiddleware(l)(mux)
	handler = middleware.Wrap(handler)
	s := &http.Server{Addr: addr, Handler: handler}
	tlsEnable := os.Getenv("TLS_ENABLE")
	if tlsEnable == "" || tlsEnable == "true" {
		certPath := os.Getenv("TLS_CERT_PATH")
		keyPath := os.Getenv("TLS_KEY_PATH")
		if certPath == "" {
			certPath = filepath.Join("data", "certs", "server.crt")
		}
		if keyPath == "" {
			keyPath = filepath.Join("data", "certs", "server.key")
		}
		_ = utils.EnsureSelfSignedCert(certPath, keyPath, "mask-api.local")
		// 可选：启动HTTP重定向到HTTPS（不改变HTTPS运行端口）
		if os.Getenv("TLS_REDIRECT_ENABLE") == "true" {
			redirAddr := os.Getenv("TLS_REDIRECT_ADDR")
			if redirAddr == "" {
				redirAddr = ":80"
			}
			go func() {
				httpRedir := http.NewServeMux()
				httpRedir.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
					httpsPort := strings.TrimPrefix(addr, ":")
					baseHost := r.Host
					if i := strings.LastIndex(baseHost, ":"); i != -1 {
						baseHost = baseHost[:i]
					}
					targetHost := baseHost
					if httpsPort != "" {
						targetHost = baseHost + ":" + httpsPort
					}
					target := "https://" + targetHost + r.URL.RequestURI()
					http.Redirect(w, r, target, http.StatusMovedPermanently)
					l.Debug("http_redirect", "from", r.Host, "to", target)
				})
				l.Info("http_redirect_listening", "addr", redirAddr, "to", "https"+addr)
				_ = http.ListenAndServe(redirAddr, logger.AccessMiddleware(l)(httpRedir))
			}()
		}
		l.Info("listening_tls", "addr", addr, "cert", certPath)
		_ = s.ListenAndServeTLS(certPath, keyPath)
		return
	}
	l.Info("listening", "addr", addr)
	_ = s.ListenAndServe()
}
