package client

import (
	"fmt"
	"slices"

	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/protocol/codec"
)

const maxEvents = 8

// 对局阶段的线上编码
const (
	PhaseReady     = "ready"
	PhaseExpecting = "expecting"
	PhasePutting   = "putting"
	PhaseFinished  = "finished"
)

// GameState 客户端根据服务端消息维护的局面
type GameState struct {
	MyID   string
	MyName string

	// 牌桌
	TableID   string
	HostID    string
	MaxSeats  int
	Computers int
	Players   []protocol.PlayerInfo

	// 对局进度
	Phase          string
	Round          int
	MaxRounds      int
	CurrentTurn    string
	LeadColor      string
	Hand           []protocol.HandCard
	Trick          []protocol.TrickCard
	PendingBidders []string

	LastTrick *protocol.TrickResultPayload
	LastRound *protocol.RoundResultPayload
	Standings []protocol.StandingInfo

	// 大厅
	Tables      []protocol.TableListItem
	Stats       *protocol.StatsResultPayload
	Leaderboard *protocol.LeaderboardResultPayload
	Maintenance bool

	LastError *protocol.ErrorPayload
	Events    []string

	CardCounter *CardCounter
}

func NewGameState() *GameState {
	return &GameState{CardCounter: NewCardCounter()}
}

// Apply 根据一条服务端消息更新局面
func (gs *GameState) Apply(msg *protocol.Message) error {
	switch msg.Type {
	case protocol.MsgConnected:
		return apply(msg, func(p *protocol.ConnectedPayload) {
			gs.MyID, gs.MyName = p.PlayerID, p.PlayerName
		})
	case protocol.MsgTableJoined:
		return apply(msg, gs.onTableJoined)
	case protocol.MsgPlayerJoined:
		return apply(msg, func(p *protocol.PlayerJoinedPayload) {
			gs.Players = append(gs.Players, p.Player)
			gs.event("%s 加入了牌桌", p.Player.Name)
		})
	case protocol.MsgPlayerLeft:
		return apply(msg, func(p *protocol.PlayerLeftPayload) {
			gs.Players = slices.DeleteFunc(gs.Players, func(pi protocol.PlayerInfo) bool { return pi.ID == p.PlayerID })
			gs.event("%s 离开了牌桌", p.PlayerName)
		})
	case protocol.MsgComputersSet:
		return apply(msg, func(p *protocol.ComputersSetPayload) {
			gs.Computers = p.Count
			gs.event("电脑玩家数设为 %d", p.Count)
		})
	case protocol.MsgTableClosed:
		return apply(msg, func(p *protocol.TableClosedPayload) {
			gs.LeaveTable()
			gs.event("牌桌 %s 已解散：%s", p.TableID, p.Reason)
		})
	case protocol.MsgState:
		return apply(msg, gs.onState)
	case protocol.MsgDealt:
		return apply(msg, func(p *protocol.DealtPayload) {
			gs.CardCounter.Reset()
			gs.LastTrick = nil
			gs.Standings = nil
			if p.Recycled {
				gs.event("第 %d 回合发牌（弃牌堆已洗回）", p.Round)
			} else {
				gs.event("第 %d 回合发牌", p.Round)
			}
		})
	case protocol.MsgBidsComplete:
		return apply(msg, func(p *protocol.BidsCompletePayload) {
			for _, b := range p.Bids {
				gs.event("%s 预测 %d 墩", b.PlayerName, b.Bid)
			}
		})
	case protocol.MsgCardPlayed:
		return apply(msg, func(p *protocol.CardPlayedPayload) {
			gs.CardCounter.Deduct(p.Card)
			gs.event("%s 打出 %s", p.PlayerName, p.Card.Label)
		})
	case protocol.MsgTrickResult:
		return apply(msg, func(p *protocol.TrickResultPayload) {
			gs.LastTrick = p
			if p.Kraken {
				gs.event("海怪吞掉了这一墩，%s 下一墩先出", p.WinnerName)
			} else {
				gs.event("%s 用 %s 赢得这一墩", p.WinnerName, p.Card.Label)
			}
		})
	case protocol.MsgRoundResult:
		return apply(msg, func(p *protocol.RoundResultPayload) {
			gs.LastRound = p
			gs.event("第 %d 回合结束", p.Round)
		})
	case protocol.MsgMatchOver:
		return apply(msg, func(p *protocol.MatchOverPayload) {
			gs.Standings = p.Standings
			if len(p.Standings) > 0 {
				gs.event("对局结束，%s 获胜", p.Standings[0].PlayerName)
			}
		})
	case protocol.MsgTigresChanged:
		return apply(msg, func(p *protocol.TigresChangedPayload) {
			gs.event("蒂格雷丝将作为 %s 打出", p.As)
		})
	case protocol.MsgTableListResult:
		return apply(msg, func(p *protocol.TableListResultPayload) { gs.Tables = p.Tables })
	case protocol.MsgStatsResult:
		return apply(msg, func(p *protocol.StatsResultPayload) { gs.Stats = p })
	case protocol.MsgLeaderboardResult:
		return apply(msg, func(p *protocol.LeaderboardResultPayload) { gs.Leaderboard = p })
	case protocol.MsgMaintenance:
		return apply(msg, func(p *protocol.MaintenancePayload) {
			gs.Maintenance = p.Maintenance
			gs.event("%s", p.Message)
		})
	case protocol.MsgError:
		return apply(msg, func(p *protocol.ErrorPayload) { gs.LastError = p })
	}
	return nil
}

func apply[T any](msg *protocol.Message, fn func(*T)) error {
	p, err := codec.ParsePayload[T](msg)
	if err != nil {
		return fmt.Errorf("%s: %w", msg.Type, err)
	}
	fn(p)
	return nil
}

func (gs *GameState) onTableJoined(p *protocol.TableJoinedPayload) {
	gs.LeaveTable()
	gs.TableID = p.TableID
	gs.HostID = p.HostID
	gs.Players = p.Players
	gs.Computers = p.Computers
	gs.MaxSeats = p.MaxSeats
	gs.Phase = PhaseReady
	gs.event("进入牌桌 %s", p.TableID)
}

func (gs *GameState) onState(p *protocol.StatePayload) {
	gs.TableID = p.TableID
	gs.HostID = p.HostID
	gs.Phase = p.Phase
	gs.Round = p.Round
	gs.MaxRounds = p.MaxRounds
	gs.Players = p.Players
	gs.CurrentTurn = p.CurrentTurn
	gs.LeadColor = p.LeadColor
	gs.Hand = p.Hand
	gs.Trick = p.Trick
	gs.PendingBidders = p.PendingBidders
	gs.Computers = p.Computers
	gs.LastError = nil
}

func (gs *GameState) event(format string, args ...any) {
	gs.Events = append(gs.Events, fmt.Sprintf(format, args...))
	if len(gs.Events) > maxEvents {
		gs.Events = gs.Events[len(gs.Events)-maxEvents:]
	}
}

// LeaveTable 清空牌桌相关状态，保留身份与大厅数据
func (gs *GameState) LeaveTable() {
	gs.TableID = ""
	gs.HostID = ""
	gs.MaxSeats = 0
	gs.Computers = 0
	gs.Players = nil
	gs.Phase = ""
	gs.Round = 0
	gs.MaxRounds = 0
	gs.CurrentTurn = ""
	gs.LeadColor = ""
	gs.Hand = nil
	gs.Trick = nil
	gs.PendingBidders = nil
	gs.LastTrick = nil
	gs.LastRound = nil
	gs.Standings = nil
	gs.CardCounter.Reset()
}

func (gs *GameState) InTable() bool { return gs.TableID != "" }

func (gs *GameState) IsHost() bool { return gs.MyID != "" && gs.HostID == gs.MyID }

func (gs *GameState) IsMyTurn() bool {
	return gs.Phase == PhasePutting && gs.CurrentTurn == gs.MyID
}

// NeedsBid 本回合自己是否还没预测
func (gs *GameState) NeedsBid() bool {
	return gs.Phase == PhaseExpecting && slices.Contains(gs.PendingBidders, gs.MyID)
}

// HoldsUnresolvedTigres 手里的蒂格雷丝尚未声明身份
func (gs *GameState) HoldsUnresolvedTigres() bool {
	return slices.ContainsFunc(gs.Hand, func(h protocol.HandCard) bool {
		return h.Card.Kind == "tigres" && h.Card.Tigres == ""
	})
}

// PlayerName 按 ID 查昵称
func (gs *GameState) PlayerName(id string) string {
	for _, p := range gs.Players {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}

// Unseen 本回合对手可能持有的关键牌数量
func (gs *GameState) Unseen() map[Category]int {
	return gs.CardCounter.Unseen(gs.Hand)
}
