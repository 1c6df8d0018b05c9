// 包 geoip：客户端 IP 到国家名的解析，供 country=auto 场景使用
package geoip

import (
	"errors"
	"net"

	"mask-api/internal/logger"

	"github.com/oschwald/geoip2-golang"
)

// Resolver：GeoLite2 国家库查询器
// 背景：apply 接口允许 country=auto，以访问者 IP 推断目标国家；库文件路径由环境变量
//       指定，未配置时该能力整体关闭
type Resolver struct {
	db *geoip2.Reader
}

func Open(path string) (*Resolver, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	logger.L().Info("geoip_open_ok", "path", path)
	return &Resolver{db: db}, nil
}

func (r *Resolver) Close() error { return r.db.Close() }

// CountryName：解析 IP 的国家英文名
// 约束：返回名与数据集 properties.name 按原值比对，不做别名映射；解析不到返回错误
func (r *Resolver) CountryName(ipText string) (string, error) {
	ip := net.ParseIP(ipText)
	if ip == nil {
		return "", errors.New("bad ip")
	}
	rec, err := r.db.Country(ip)
	if err != nil {
		return "", err
	}
	name := rec.Country.Names["en"]
	if name == "" {
		return "", errors.New("country unresolved")
	}
	logger.L().Debug("geoip_resolved", "ip", ipText, "country", name)
	return name, nil
}
