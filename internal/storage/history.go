package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS round_results (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	match_id    TEXT    NOT NULL,
	table_id    TEXT    NOT NULL,
	round       INTEGER NOT NULL,
	player_id   TEXT    NOT NULL,
	player_name TEXT    NOT NULL,
	computer    INTEGER NOT NULL DEFAULT 0,
	bid         INTEGER NOT NULL,
	won         INTEGER NOT NULL,
	bonus       INTEGER NOT NULL,
	score       INTEGER NOT NULL,
	total       INTEGER NOT NULL,
	played_at   DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_round_results_player ON round_results(player_id);
CREATE INDEX IF NOT EXISTS idx_round_results_match ON round_results(match_id);
`

// RoundEntry 一名玩家一回合的结算记录
type RoundEntry struct {
	PlayerID   string
	PlayerName string
	Computer   bool
	Bid        int
	Won        int
	Bonus      int
	Score      int
	Total      int
}

// RoundRecord 一回合所有玩家的结算
type RoundRecord struct {
	MatchID string
	TableID string
	Round   int
	Entries []RoundEntry
}

// RoundRow 查询返回的单条记录
type RoundRow struct {
	MatchID string
	TableID string
	Round   int
	RoundEntry
	PlayedAt time.Time
}

// PlayerSummary 玩家的回合统计
type PlayerSummary struct {
	Rounds       int
	BidsHit      int
	AverageScore float64
}

// History 基于 sqlite 的回合成绩存档
type History struct {
	db *sql.DB
}

// OpenHistory 打开（或创建）存档，path 可以是 ":memory:"
func OpenHistory(path string) (*History, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("创建存档目录失败: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("打开成绩存档失败: %w", err)
	}
	// 内存库每个连接都是独立的数据库
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(historySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("初始化成绩存档失败: %w", err)
	}
	return &History{db: db}, nil
}

// Close 关闭存档
func (h *History) Close() error {
	return h.db.Close()
}

// RecordRound 在一个事务中写入一回合的所有结算
func (h *History) RecordRound(ctx context.Context, rec RoundRecord) (err error) {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO round_results
		(match_id, table_id, round, player_id, player_name, computer, bid, won, bonus, score, total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range rec.Entries {
		if _, err = stmt.ExecContext(ctx, rec.MatchID, rec.TableID, rec.Round,
			e.PlayerID, e.PlayerName, e.Computer, e.Bid, e.Won, e.Bonus, e.Score, e.Total); err != nil {
			return fmt.Errorf("写入回合成绩失败: %w", err)
		}
	}
	return tx.Commit()
}

const rowColumns = `match_id, table_id, round, player_id, player_name, computer, bid, won, bonus, score, total, played_at`

func scanRows(rows *sql.Rows) ([]RoundRow, error) {
	defer func() { _ = rows.Close() }()

	var out []RoundRow
	for rows.Next() {
		var r RoundRow
		if err := rows.Scan(&r.MatchID, &r.TableID, &r.Round, &r.PlayerID, &r.PlayerName, &r.Computer,
			&r.Bid, &r.Won, &r.Bonus, &r.Score, &r.Total, &r.PlayedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// MatchRounds 一场对局的全部记录，按回合排序
func (h *History) MatchRounds(ctx context.Context, matchID string) ([]RoundRow, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT `+rowColumns+` FROM round_results WHERE match_id = ? ORDER BY round, id`, matchID)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

// PlayerSummary 玩家所有回合的命中率与平均分
func (h *History) PlayerSummary(ctx context.Context, playerID string) (PlayerSummary, error) {
	var s PlayerSummary
	var avg sql.NullFloat64
	var hit sql.NullInt64
	err := h.db.QueryRowContext(ctx,
		`SELECT COUNT(*), SUM(CASE WHEN bid = won THEN 1 ELSE 0 END), AVG(score)
		 FROM round_results WHERE player_id = ?`, playerID).Scan(&s.Rounds, &hit, &avg)
	if err != nil {
		return s, err
	}
	s.BidsHit = int(hit.Int64)
	s.AverageScore = avg.Float64
	return s, nil
}
