// 包 store: PostgreSQL 数据访问层，保存掩膜操作统计与最近目标
package store

import (
	"context"
	"database/sql"
	"mask-api/internal/logger"

	_ "github.com/lib/pq"
)

// Store: 数据库访问入口，持有连接池并提供统计读写
type Store struct {
	db *sql.DB
}

func AttachDB(db *sql.DB) *Store { return &Store{db: db} }

// Open: 使用 DSN 打开数据库连接并配置连接池参数
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	return &Store{db: db}, nil
}

// Close: 关闭数据库连接
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

// IncrApply: apply 成功后递增总计与当日计数
// 约束：尽力而为，统计写入失败不影响主流程
func (s *Store) IncrApply(ctx context.Context, target string) error {
	_, _ = s.db.ExecContext(ctx, "UPDATE _mask_stats_total SET total_applies=total_applies+1 WHERE id=1")
	_, _ = s.db.ExecContext(ctx, "INSERT INTO _mask_stats_daily(day, applies) VALUES(current_date, 1) ON CONFLICT (day) DO UPDATE SET applies=_mask_stats_daily.applies+1")
	logger.L().Debug("stats_incr_apply", "target", target)
	return nil
}

// IncrRemove: remove 调用计数
func (s *Store) IncrRemove(ctx context.Context) error {
	_, _ = s.db.ExecContext(ctx, "UPDATE _mask_stats_total SET total_removes=total_removes+1 WHERE id=1")
	_, _ = s.db.ExecContext(ctx, "INSERT INTO _mask_stats_daily(day, removes) VALUES(current_date, 1) ON CONFLICT (day) DO UPDATE SET removes=_mask_stats_daily.removes+1")
	return nil
}

// Totals: 统计返回结构，包含累计与当日 apply 次数
type Totals struct {
	Total int64
	Today int64
}

// GetTotals: 读取累计与当日 apply 次数，用于接口返回
func (s *Store) GetTotals(ctx context.Context) (*Totals, error) {
	var t Totals
	row := s.db.QueryRowContext(ctx, "SELECT total_applies FROM _mask_stats_total WHERE id=1")
	_ = row.Scan(&t.Total)
	row2 := s.db.QueryRowContext(ctx, "SELECT applies FROM _mask_stats_daily WHERE day=current_date")
	_ = row2.Scan(&t.Today)
	logger.L().Debug("stats_totals", "total", t.Total, "today", t.Today)
	return &t, nil
}

// 文档注释：记录最近 apply 的目标国家（去重累加）
// 背景：用于观察热门目标与数据集覆盖缺口；不影响主流程。
// 约束：空目标静默跳过；仅更新 last_seen 与计数。
func (s *Store) RecordRecent(ctx context.Context, target string) error {
	if target == "" {
		return nil
	}
	_, _ = s.db.ExecContext(ctx, `INSERT INTO _mask_recent_targets(target, last_seen, applies)
        VALUES($1, now(), 1)
        ON CONFLICT (target) DO UPDATE SET last_seen=now(), applies=_mask_recent_targets.applies+1`, target)
	return nil
}

// RecentTarget: 最近目标条目
type RecentTarget struct {
	Target  string
	Applies int64
}

// 文档注释：获取最近窗口内 apply 过的目标国家
// 参数：hours 为最近窗口小时数，limit 为最大返回数量。
// 返回：按最近访问排序的目标列表；异常时返回 error。
func (s *Store) FetchRecentTargets(ctx context.Context, hours int, limit int) ([]RecentTarget, error) {
	if hours <= 0 {
		hours = 24
	}
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT target, applies
        FROM _mask_recent_targets
        WHERE last_seen >= now() - make_interval(hours => $1)
        ORDER BY last_seen DESC
        LIMIT $2`, hours, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RecentTarget
	for rows.Next() {
		var rt RecentTarget
		if err := rows.Scan(&rt.Target, &rt.Applies); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, nil
}
