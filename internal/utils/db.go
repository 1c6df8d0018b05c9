package utils

import (
	"database/sql"
	"os"

	_ "github.com/lib/pq"
)

// OpenPostgres：按 DSN 打开 PostgreSQL 连接池
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	return db, nil
}

// BuildPostgresDSNFromEnv：从 PG_* 环境变量拼接 DSN
// 约束：密码为空时省略冒号段；sslmode 缺省 disable
func BuildPostgresDSNFromEnv() string {
	host := envOr("PG_HOST", "localhost")
	port := envOr("PG_PORT", "5432")
	user := envOr("PG_USER", "postgres")
	pass := os.Getenv("PG_PASSWORD")
	name := envOr("PG_DB", "maskapi")
	ssl := envOr("PG_SSLMODE", "disable")
	dsn := "postgres://" + user
	if pass != "" {
		dsn += ":" + pass
	}
	dsn += "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
	return dsn
}

// OpenPostgresFromEnv：从环境变量打开连接池，连接数可经 PG_MAX_* 覆盖
func OpenPostgresFromEnv() (*sql.DB, error) {
	db, err := sql.Open("postgres", BuildPostgresDSNFromEnv())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(envInt("PG_MAX_OPEN_CONNS", 50))
	db.SetMaxIdleConns(envInt("PG_MAX_IDLE_CONNS", 25))
	return db, nil
}
