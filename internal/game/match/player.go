package match

import (
	"github.com/palemoky/skull-king/internal/game/card"
	"github.com/palemoky/skull-king/internal/game/rule"
)

// NoBid 尚未预测
const NoBid = -1

// Player 座位上的玩家
type Player struct {
	ID       string
	Name     string
	Computer bool

	// 整场累计
	Score   int
	History []int
	Hits    int // 预测命中的回合数

	// 本回合
	Hand      []card.Card
	Bid       int
	Won       int
	Collected []card.Card
	LastBonus rule.Bonus
}

func newPlayer(id, name string, computer bool) *Player {
	return &Player{ID: id, Name: name, Computer: computer, Bid: NoBid}
}

// HasBid 本回合是否已预测
func (p *Player) HasBid() bool {
	return p.Bid != NoBid
}

// resetRound 回合开始前清空回合内状态，返回需要回收的牌
func (p *Player) resetRound() []card.Card {
	collected := p.Collected
	for i := range collected {
		collected[i].Reset()
	}
	p.Hand = nil
	p.Bid = NoBid
	p.Won = 0
	p.Collected = nil
	return collected
}

// resetMatch 新一场开始前清空累计分数
func (p *Player) resetMatch() {
	p.resetRound()
	p.Score = 0
	p.History = nil
	p.Hits = 0
	p.LastBonus = rule.Bonus{}
}

// tigresIndex 手中蒂格雷丝的下标
func (p *Player) tigresIndex() int {
	for i, c := range p.Hand {
		if c.IsTigres() {
			return i
		}
	}
	return -1
}
