// 包 logger：进程级日志器的初始化与获取；级别与格式由环境变量决定，避免各模块各自配置
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// 进程级默认日志器：全局复用，保证输出格式一致
var defaultLogger *slog.Logger

// parseLevel：解析 LOG_LEVEL 文本，未识别时回退 info
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup：初始化默认日志器
// 背景：集中化日志配置，按环境统一调整级别（LOG_LEVEL）与格式（LOG_FORMAT=json|text）
// 约束：输出固定到标准错误；文件落盘与外部聚合不在此层处理
func Setup() *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(os.Getenv("LOG_LEVEL"))}
	var h slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	defaultLogger = slog.New(h)
	return defaultLogger
}

// L：获取默认日志器；未初始化时回退到 Setup
func L() *slog.Logger {
	if defaultLogger == nil {
		return Setup()
	}
	return defaultLogger
}
