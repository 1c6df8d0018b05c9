// 包 version：构建信息注入点；值由构建脚本通过 -ldflags 覆盖，默认值用于本地开发
package version

var (
	Version = "0.0.0-dev"
	Commit  = "unknown"
)
