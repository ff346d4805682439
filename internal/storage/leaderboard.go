package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key
	playerStatsKey    = "player:stats:"
	leaderboardKey    = "leaderboard:rating"
	dailyLeaderboard  = "leaderboard:daily:"
	weeklyLeaderboard = "leaderboard:weekly:"
)

// 排行榜类型
const (
	BoardTotal  = "total"
	BoardDaily  = "daily"
	BoardWeekly = "weekly"
)

// PlayerStats 玩家统计数据
type PlayerStats struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`

	// 总计
	TotalMatches int `json:"total_matches"` // 总场次
	Wins         int `json:"wins"`          // 第一名次数
	Podiums      int `json:"podiums"`       // 前三名次数

	// 对局得分
	TotalPoints int `json:"total_points"` // 所有场次得分之和
	BestScore   int `json:"best_score"`   // 单场最高分
	RoundsBid   int `json:"rounds_bid"`   // 预测过的回合数
	BidsHit     int `json:"bids_hit"`     // 预测命中的回合数

	// 积分
	Rating int `json:"rating"` // 排行榜积分

	// 连胜
	CurrentStreak int `json:"current_streak"` // 连续拿第一的场次
	MaxWinStreak  int `json:"max_win_streak"` // 最大连胜

	// 时间
	LastPlayedAt int64 `json:"last_played_at"` // 最后游戏时间
	CreatedAt    int64 `json:"created_at"`     // 首次游戏时间
}

// 积分规则
const (
	RatingFirst  = 30  // 第一名
	RatingSecond = 15  // 第二名
	RatingThird  = 5   // 第三名
	RatingLast   = -10 // 最后一名

	// 连胜加成
	StreakBonus3  = 5  // 3 连胜加成
	StreakBonus5  = 10 // 5 连胜加成
	StreakBonus10 = 20 // 10 连胜加成
)

// MatchResult 一名人类玩家一场对局的结果
type MatchResult struct {
	PlayerID   string
	PlayerName string
	Rank       int // 1 开始
	Seats      int // 本场总座位数（含电脑）
	Score      int // 本场累计得分
	RoundsBid  int
	BidsHit    int
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Rating     int     `json:"rating"`
	Wins       int     `json:"wins"`
	Matches    int     `json:"matches"`
	WinRate    float64 `json:"win_rate"`
	BestScore  int     `json:"best_score"`
}

// LeaderboardManager 排行榜管理器
type LeaderboardManager struct {
	redis *redis.Client
	now   func() time.Time
}

// NewLeaderboardManager 创建排行榜管理器
func NewLeaderboardManager(client *redis.Client) *LeaderboardManager {
	return &LeaderboardManager{redis: client, now: time.Now}
}

// GetPlayerStats 获取玩家统计，未上榜时返回 nil
func (lm *LeaderboardManager) GetPlayerStats(ctx context.Context, playerID string) (*PlayerStats, error) {
	data, err := lm.redis.Get(ctx, playerStatsKey+playerID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SavePlayerStats 保存玩家统计
func (lm *LeaderboardManager) SavePlayerStats(ctx context.Context, stats *PlayerStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return lm.redis.Set(ctx, playerStatsKey+stats.PlayerID, data, 0).Err()
}

func (lm *LeaderboardManager) getOrCreateStats(ctx context.Context, playerID, playerName string) (*PlayerStats, error) {
	stats, err := lm.GetPlayerStats(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &PlayerStats{
			PlayerID:   playerID,
			PlayerName: playerName,
			CreatedAt:  lm.now().Unix(),
		}
	}
	return stats, nil
}

// placementRating 按名次给出基础积分变化
func placementRating(rank, seats int) int {
	switch {
	case rank == 1:
		return RatingFirst
	case rank == seats:
		return RatingLast
	case rank == 2:
		return RatingSecond
	case rank == 3:
		return RatingThird
	default:
		return 0
	}
}

// calculateStreakBonus 计算连胜加成
func calculateStreakBonus(streak int) int {
	switch {
	case streak >= 10:
		return StreakBonus10
	case streak >= 5:
		return StreakBonus5
	case streak >= 3:
		return StreakBonus3
	default:
		return 0
	}
}

// RecordMatchResult 记录一场对局结果并更新排行榜
func (lm *LeaderboardManager) RecordMatchResult(ctx context.Context, result MatchResult) error {
	stats, err := lm.getOrCreateStats(ctx, result.PlayerID, result.PlayerName)
	if err != nil {
		return err
	}

	stats.PlayerName = result.PlayerName
	stats.TotalMatches++
	stats.TotalPoints += result.Score
	if stats.TotalMatches == 1 || result.Score > stats.BestScore {
		stats.BestScore = result.Score
	}
	stats.RoundsBid += result.RoundsBid
	stats.BidsHit += result.BidsHit
	stats.LastPlayedAt = lm.now().Unix()

	if result.Rank == 1 {
		stats.Wins++
		stats.CurrentStreak++
	} else {
		stats.CurrentStreak = 0
	}
	if result.Rank <= 3 {
		stats.Podiums++
	}
	stats.MaxWinStreak = max(stats.MaxWinStreak, stats.CurrentStreak)

	change := placementRating(result.Rank, result.Seats)
	if result.Rank == 1 {
		change += calculateStreakBonus(stats.CurrentStreak)
	}
	stats.Rating = max(0, stats.Rating+change)

	if err := lm.SavePlayerStats(ctx, stats); err != nil {
		return err
	}
	return lm.UpdateLeaderboard(ctx, stats)
}

func (lm *LeaderboardManager) boardKey(boardType string) string {
	now := lm.now()
	switch boardType {
	case BoardDaily:
		return dailyLeaderboard + now.Format("2006-01-02")
	case BoardWeekly:
		year, week := now.ISOWeek()
		return fmt.Sprintf("%s%d-W%02d", weeklyLeaderboard, year, week)
	default:
		return leaderboardKey
	}
}

// UpdateLeaderboard 更新总榜、日榜和周榜
func (lm *LeaderboardManager) UpdateLeaderboard(ctx context.Context, stats *PlayerStats) error {
	member := redis.Z{Score: float64(stats.Rating), Member: stats.PlayerID}

	pipe := lm.redis.TxPipeline()
	pipe.ZAdd(ctx, leaderboardKey, member)

	dailyKey := lm.boardKey(BoardDaily)
	pipe.ZAdd(ctx, dailyKey, member)
	pipe.Expire(ctx, dailyKey, 48*time.Hour)

	weeklyKey := lm.boardKey(BoardWeekly)
	pipe.ZAdd(ctx, weeklyKey, member)
	pipe.Expire(ctx, weeklyKey, 8*24*time.Hour)

	_, err := pipe.Exec(ctx)
	return err
}

// GetLeaderboard 获取排行榜（从高到低）
func (lm *LeaderboardManager) GetLeaderboard(ctx context.Context, boardType string, offset, limit int) ([]LeaderboardEntry, error) {
	results, err := lm.redis.ZRevRangeWithScores(ctx, lm.boardKey(boardType), int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, result := range results {
		playerID, ok := result.Member.(string)
		if !ok {
			continue
		}
		stats, err := lm.GetPlayerStats(ctx, playerID)
		if err != nil || stats == nil {
			continue
		}

		winRate := 0.0
		if stats.TotalMatches > 0 {
			winRate = float64(stats.Wins) / float64(stats.TotalMatches) * 100
		}

		entries = append(entries, LeaderboardEntry{
			Rank:       offset + i + 1,
			PlayerID:   playerID,
			PlayerName: stats.PlayerName,
			Rating:     int(result.Score),
			Wins:       stats.Wins,
			Matches:    stats.TotalMatches,
			WinRate:    winRate,
			BestScore:  stats.BestScore,
		})
	}
	return entries, nil
}

// GetPlayerRank 获取玩家在总榜的排名，未上榜返回 -1
func (lm *LeaderboardManager) GetPlayerRank(ctx context.Context, playerID string) (int64, error) {
	rank, err := lm.redis.ZRevRank(ctx, leaderboardKey, playerID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return -1, err
	}
	return rank + 1, nil
}
