package handler

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/protocol/codec"
	"github.com/palemoky/skull-king/internal/storage"
	"github.com/palemoky/skull-king/internal/types"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 50
)

// handlePing 处理心跳消息
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// --- 排行榜处理 ---

// handleGetStats 获取个人统计
func (h *Handler) handleGetStats(client types.ClientInterface) {
	if h.leaderboard == nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "排行榜未启用"))
		return
	}

	ctx := context.Background()
	stats, err := h.leaderboard.GetPlayerStats(ctx, client.GetID())
	if err != nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "获取统计失败"))
		return
	}

	if stats == nil {
		// 还没有完成过对局
		client.SendMessage(codec.MustNewMessage(protocol.MsgStatsResult, protocol.StatsResultPayload{
			PlayerID:   client.GetID(),
			PlayerName: client.GetName(),
			Rank:       -1,
		}))
		return
	}

	rank, _ := h.leaderboard.GetPlayerRank(ctx, client.GetID())
	payload := statsPayload(stats, rank)
	if h.history != nil {
		if summary, err := h.history.PlayerSummary(ctx, client.GetID()); err == nil {
			payload.AverageRound = summary.AverageScore
		} else {
			log.Warn("读取成绩存档失败", "player", client.GetName(), "err", err)
		}
	}
	client.SendMessage(codec.MustNewMessage(protocol.MsgStatsResult, payload))
}

func statsPayload(s *storage.PlayerStats, rank int64) protocol.StatsResultPayload {
	payload := protocol.StatsResultPayload{
		PlayerID:      s.PlayerID,
		PlayerName:    s.PlayerName,
		TotalMatches:  s.TotalMatches,
		Wins:          s.Wins,
		Podiums:       s.Podiums,
		BestScore:     s.BestScore,
		TotalPoints:   s.TotalPoints,
		Rating:        s.Rating,
		Rank:          int(rank),
		CurrentStreak: s.CurrentStreak,
		MaxWinStreak:  s.MaxWinStreak,
	}
	if s.TotalMatches > 0 {
		payload.WinRate = float64(s.Wins) / float64(s.TotalMatches) * 100
	}
	if s.RoundsBid > 0 {
		payload.HitRate = float64(s.BidsHit) / float64(s.RoundsBid) * 100
	}
	return payload
}

// handleGetLeaderboard 获取排行榜
func (h *Handler) handleGetLeaderboard(client types.ClientInterface, msg *protocol.Message) {
	if h.leaderboard == nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "排行榜未启用"))
		return
	}

	payload, err := codec.ParsePayload[protocol.GetLeaderboardPayload](msg)
	if err != nil {
		// 默认获取总榜前 10
		payload = &protocol.GetLeaderboardPayload{Type: storage.BoardTotal, Limit: defaultLeaderboardLimit}
	}

	switch payload.Type {
	case storage.BoardTotal, storage.BoardDaily, storage.BoardWeekly:
	default:
		payload.Type = storage.BoardTotal
	}
	if payload.Limit <= 0 || payload.Limit > maxLeaderboardLimit {
		payload.Limit = defaultLeaderboardLimit
	}
	payload.Offset = max(payload.Offset, 0)

	entries, err := h.leaderboard.GetLeaderboard(context.Background(), payload.Type, payload.Offset, payload.Limit)
	if err != nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "获取排行榜失败"))
		return
	}

	result := make([]protocol.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, protocol.LeaderboardEntry{
			Rank:       e.Rank,
			PlayerID:   e.PlayerID,
			PlayerName: e.PlayerName,
			Rating:     e.Rating,
			Wins:       e.Wins,
			Matches:    e.Matches,
			WinRate:    e.WinRate,
			BestScore:  e.BestScore,
		})
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgLeaderboardResult, protocol.LeaderboardResultPayload{
		Type:    payload.Type,
		Entries: result,
	}))
}
