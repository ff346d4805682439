package handler

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/palemoky/skull-king/internal/game/match"
	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/protocol/codec"
	"github.com/palemoky/skull-king/internal/protocol/convert"
	"github.com/palemoky/skull-king/internal/session"
	"github.com/palemoky/skull-king/internal/storage"
)

// seatMessage 只发给一名玩家的消息
type seatMessage struct {
	playerID string
	msg      *protocol.Message
}

// outbox 一次状态转换产生的待发送内容。
// 在牌桌锁内生成并投递，存档在锁外异步写入。
type outbox struct {
	broadcasts []*protocol.Message
	seats      []seatMessage
	rounds     []storage.RoundRecord
	results    []storage.MatchResult
}

// tableView 渲染时需要的牌桌信息，在进入牌桌锁之前读取
type tableView struct {
	tableID string
	hostID  string
	matchID string
}

func viewOf(t *session.Table) tableView {
	return tableView{tableID: t.ID, hostID: t.HostID(), matchID: t.MatchID()}
}

// render 把事件渲染为广播，并给每名在座玩家附上最新的牌桌状态
func render(m *match.Match, v tableView, events []match.Event) *outbox {
	out := &outbox{}
	for _, e := range events {
		switch e := e.(type) {
		case match.EventDealt:
			out.broadcast(protocol.MsgDealt, protocol.DealtPayload{Round: e.Round, Recycled: e.Recycled})

		case match.EventBidsComplete:
			out.broadcast(protocol.MsgBidsComplete, protocol.BidsCompletePayload{
				Round: e.Round,
				Bids:  convert.BidsToProto(e.Bids),
			})

		case match.EventCardPlayed:
			out.broadcast(protocol.MsgCardPlayed, protocol.CardPlayedPayload{
				PlayerID:   e.PlayerID,
				PlayerName: e.Name,
				Card:       convert.CardToInfo(e.Card),
			})

		case match.EventTrickResolved:
			out.broadcast(protocol.MsgTrickResult, protocol.TrickResultPayload{
				WinnerID:   e.WinnerID,
				WinnerName: e.WinnerName,
				Card:       convert.CardToInfo(e.Card),
				Kraken:     e.HasKraken,
				Trick:      convert.TrickEntriesToProto(e.Trick),
			})

		case match.EventRoundScored:
			out.broadcast(protocol.MsgRoundResult, protocol.RoundResultPayload{
				Round:   e.Round,
				Results: convert.RoundScoresToProto(e.Results),
			})
			out.rounds = append(out.rounds, roundRecord(v, e))

		case match.EventMatchFinished:
			out.broadcast(protocol.MsgMatchOver, protocol.MatchOverPayload{
				Standings: convert.StandingsToProto(e.Standings),
			})
			out.results = append(out.results, matchResults(e.Standings)...)
		}
	}

	for _, p := range m.Humans() {
		out.seats = append(out.seats, seatMessage{
			playerID: p.ID,
			msg:      codec.MustNewMessage(protocol.MsgState, buildState(m, v, p.ID)),
		})
	}
	return out
}

func (o *outbox) broadcast(t protocol.MessageType, payload any) {
	o.broadcasts = append(o.broadcasts, codec.MustNewMessage(t, payload))
}

// buildState 一名玩家视角下的牌桌状态，只包含自己的手牌
func buildState(m *match.Match, v tableView, playerID string) protocol.StatePayload {
	state := protocol.StatePayload{
		TableID:        v.tableID,
		HostID:         v.hostID,
		Phase:          m.Phase().String(),
		Round:          m.Round(),
		MaxRounds:      m.MaxRounds(),
		Players:        convert.PlayersToInfos(m.Players(), v.hostID),
		Hand:           convert.HandToProto(m.RenderHand(playerID)),
		Trick:          convert.TrickEntriesToProto(m.RenderTrick()),
		PendingBidders: m.PendingBidders(),
		Computers:      m.ComputerCount(),
	}
	if p := m.Current(); p != nil {
		state.CurrentTurn = p.ID
	}
	if c, ok := m.LeadColor(); ok {
		state.LeadColor = convert.ColorCode(c)
	}
	return state
}

func roundRecord(v tableView, e match.EventRoundScored) storage.RoundRecord {
	rec := storage.RoundRecord{
		MatchID: v.matchID,
		TableID: v.tableID,
		Round:   e.Round,
		Entries: make([]storage.RoundEntry, 0, len(e.Results)),
	}
	for _, r := range e.Results {
		rec.Entries = append(rec.Entries, storage.RoundEntry{
			PlayerID:   r.PlayerID,
			PlayerName: r.Name,
			Computer:   r.Computer,
			Bid:        r.Bid,
			Won:        r.Won,
			Bonus:      r.Bonus.Total(),
			Score:      r.Score,
			Total:      r.Total,
		})
	}
	return rec
}

// matchResults 只有人类玩家计入排行榜
func matchResults(standings []match.Standing) []storage.MatchResult {
	var results []storage.MatchResult
	for _, s := range standings {
		if s.Computer {
			continue
		}
		results = append(results, storage.MatchResult{
			PlayerID:   s.PlayerID,
			PlayerName: s.Name,
			Rank:       s.Rank,
			Seats:      len(standings),
			Score:      s.Score,
			RoundsBid:  len(s.History),
			BidsHit:    s.BidsHit,
		})
	}
	return results
}

// post 在牌桌锁内投递，先广播再发各座位的状态
func (o *outbox) post(p session.Post) {
	for _, msg := range o.broadcasts {
		p.Broadcast(msg)
	}
	for _, s := range o.seats {
		p.Send(s.playerID, s.msg)
	}
}

// persist 释放牌桌锁后保存牌桌概要并异步存档
func (h *Handler) persist(t *session.Table, out *outbox) {
	if len(out.rounds) > 0 || len(out.results) > 0 {
		h.tables.Save(t)
	}
	h.archive(out)
}

// archive 异步写入回合存档和排行榜
func (h *Handler) archive(out *outbox) {
	if h.history != nil && len(out.rounds) > 0 {
		rounds := out.rounds
		go func() {
			for _, rec := range rounds {
				if err := h.history.RecordRound(context.Background(), rec); err != nil {
					log.Warn("写入回合存档失败", "match", rec.MatchID, "round", rec.Round, "err", err)
				}
			}
		}()
	}

	if h.leaderboard != nil && len(out.results) > 0 {
		results := out.results
		go func() {
			for _, r := range results {
				if err := h.leaderboard.RecordMatchResult(context.Background(), r); err != nil {
					log.Warn("更新排行榜失败", "player", r.PlayerName, "err", err)
				}
			}
		}()
	}
}
