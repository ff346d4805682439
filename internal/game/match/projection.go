package match

import (
	"slices"

	"github.com/palemoky/skull-king/internal/game/card"
	"github.com/palemoky/skull-king/internal/game/rule"
)

// HandEntry 手牌中的一张及其当前是否可出
type HandEntry struct {
	Card  card.Card
	Label string
	Legal bool
}

// TrickEntry 本墩已出的一张牌
type TrickEntry struct {
	PlayerID  string
	OwnerName string
	Label     string
	Card      card.Card
}

func (m *Match) Phase() Phase { return m.phase }
func (m *Match) Round() int   { return m.round }

// MaxRounds 一场的回合数
func (m *Match) MaxRounds() int { return m.cfg.MaxRounds }

// MaxSeats 座位上限
func (m *Match) MaxSeats() int { return m.cfg.MaxSeats }

// seats 对局中为出牌顺序，否则为在座的人类玩家
func (m *Match) seats() []*Player {
	if m.idle() {
		return m.humans
	}
	return m.order
}

// Players 当前座位上的玩家，对局中按出牌顺序排列
func (m *Match) Players() []*Player {
	return slices.Clone(m.seats())
}

// Humans 在座的人类玩家
func (m *Match) Humans() []*Player {
	return slices.Clone(m.humans)
}

// Player 按 ID 查找座位上的玩家
func (m *Match) Player(id string) *Player {
	for _, p := range m.seats() {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (m *Match) human(id string) *Player {
	for _, p := range m.humans {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Current 出牌阶段轮到的玩家
func (m *Match) Current() *Player {
	if m.phase != PhasePutting {
		return nil
	}
	return m.order[m.turn]
}

// LeadColor 本墩首攻花色
func (m *Match) LeadColor() (card.Color, bool) {
	return rule.LeadColor(m.trick)
}

// Trick 本墩已出的牌
func (m *Match) Trick() []card.Card {
	return slices.Clone(m.trick)
}

// DrawCount 牌堆剩余张数
func (m *Match) DrawCount() int { return len(m.draw) }

// DiscardCount 弃牌堆张数
func (m *Match) DiscardCount() int { return len(m.discard) }

// RenderHand 手牌及可出标记，出牌阶段之外全部可出
func (m *Match) RenderHand(playerID string) []HandEntry {
	p := m.Player(playerID)
	if p == nil {
		return nil
	}
	var legal []bool
	if m.phase == PhasePutting {
		legal = rule.LegalPlays(p.Hand, m.trick)
	}
	entries := make([]HandEntry, len(p.Hand))
	for i, c := range p.Hand {
		entries[i] = HandEntry{Card: c, Label: c.Label(), Legal: legal == nil || legal[i]}
	}
	return entries
}

// RenderTrick 本墩已出的牌及出牌者
func (m *Match) RenderTrick() []TrickEntry {
	entries := make([]TrickEntry, 0, len(m.trick))
	for _, c := range m.trick {
		name := ""
		if p := m.Player(c.Owner); p != nil {
			name = p.Name
		}
		entries = append(entries, TrickEntry{PlayerID: c.Owner, OwnerName: name, Label: c.Label(), Card: c})
	}
	return entries
}

// IsRoundComplete 所有座位的手牌都已打完
func (m *Match) IsRoundComplete() bool {
	for _, p := range m.seats() {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

// PendingBidders 预测阶段尚未预测的玩家名
func (m *Match) PendingBidders() []string {
	if m.phase != PhaseExpecting {
		return nil
	}
	var names []string
	for _, p := range m.order {
		if !p.HasBid() {
			names = append(names, p.Name)
		}
	}
	return names
}

// Leaderboard 按累计得分降序的排名，整场结束后为最终排名
func (m *Match) Leaderboard() []Standing {
	if m.phase == PhaseFinished {
		return slices.Clone(m.standings)
	}
	return rank(m.seats())
}
