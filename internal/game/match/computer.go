package match

import (
	"github.com/palemoky/skull-king/internal/game/card"
)

// Policy 电脑玩家的决策
type Policy interface {
	// Bid 返回 [0, round] 内的预测
	Bid(round int) int
	// Choose 从 legal 中选出要打的手牌下标
	Choose(hand []card.Card, legal []int) int
	// ResolveTigres 决定蒂格雷丝的身份
	ResolveTigres() card.TigresAs
}

// RandomPolicy 均匀随机地预测和出牌
type RandomPolicy struct {
	src card.Source
}

func NewRandomPolicy(src card.Source) *RandomPolicy {
	return &RandomPolicy{src: src}
}

func (p *RandomPolicy) Bid(round int) int {
	return p.src.IntN(round + 1)
}

func (p *RandomPolicy) Choose(_ []card.Card, legal []int) int {
	return legal[p.src.IntN(len(legal))]
}

func (p *RandomPolicy) ResolveTigres() card.TigresAs {
	if p.src.IntN(2) == 0 {
		return card.TigresPirate
	}
	return card.TigresEscape
}
