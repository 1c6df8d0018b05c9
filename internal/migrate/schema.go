package migrate

import (
	"database/sql"
	"mask-api/internal/logger"
)

// 背景：首次运行自动创建统计所需表，保障后续写入与查询
// 约束：使用 IF NOT EXISTS 避免与既有结构冲突；仅创建最小必需结构
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS _mask_stats_total (
            id INT PRIMARY KEY,
            total_applies BIGINT NOT NULL DEFAULT 0,
            total_removes BIGINT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS _mask_stats_daily (
            day DATE PRIMARY KEY,
            applies BIGINT NOT NULL DEFAULT 0,
            removes BIGINT NOT NULL DEFAULT 0
        )`,
		`INSERT INTO _mask_stats_total(id, total_applies, total_removes)
         VALUES(1, 0, 0)
         ON CONFLICT (id) DO NOTHING`,
		`CREATE TABLE IF NOT EXISTS _mask_recent_targets (
            target TEXT PRIMARY KEY,
            last_seen TIMESTAMPTZ NOT NULL DEFAULT now(),
            applies BIGINT NOT NULL DEFAULT 0
        )`,
		`CREATE INDEX IF NOT EXISTS idx_recent_targets_seen ON _mask_recent_targets(last_seen DESC)`,
	}
	for i, s := range stmts {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	logger.L().Debug("schema_done")
	return nil
}
