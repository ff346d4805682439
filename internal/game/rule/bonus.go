package rule

import (
	"github.com/palemoky/skull-king/internal/game/card"
)

// 奖励分值
const (
	MermaidBonus   = 50 // 美人鱼每压过一张骷髅王
	SkullKingBonus = 30 // 骷髅王每压过一张海盗
	GoldBonus      = 20 // 金币的获得方与给予方各得
)

// RoundResult 一名玩家在一回合结束时的成绩
type RoundResult struct {
	PlayerID  string
	Bid       int
	Won       int
	Collected []card.Card // 本回合赢得的牌，Owner 为打出者
}

// Success 预测是否命中
func (r RoundResult) Success() bool {
	return r.Bid == r.Won
}

// Bonus 一名玩家一回合的奖励明细
type Bonus struct {
	Fourteens      map[card.Color]int `json:"fourteens,omitempty"`
	Mermaid        int                `json:"mermaid,omitempty"`
	SkullKing      int                `json:"skull_king,omitempty"`
	GoldGet        int                `json:"gold_get,omitempty"`
	GoldGive       int                `json:"gold_give,omitempty"`
	GoldCardsGiven int                `json:"gold_cards_given,omitempty"`
}

// Total 奖励合计
func (b Bonus) Total() int {
	total := b.Mermaid + b.SkullKing + b.GoldGet + b.GoldGive
	for _, v := range b.Fourteens {
		total += v
	}
	return total
}

// BeatenCount 统计胜出的美人鱼之前的骷髅王数，或胜出的骷髅王之前的海盗数。
// 其它种类的胜者返回 0。
func BeatenCount(trick []card.Card, winnerIndex int) int {
	if winnerIndex < 0 || winnerIndex >= len(trick) {
		return 0
	}
	var target func(card.Card) bool
	switch trick[winnerIndex].Kind() {
	case card.KindMermaid:
		target = card.Card.IsSkullKing
	case card.KindSkullKing:
		target = card.Card.IsPirate
	default:
		return 0
	}

	count := 0
	for _, c := range trick[:winnerIndex] {
		if target(c) {
			count++
		}
	}
	return count
}

// RoundBonuses 计算一回合内每位玩家的奖励。
// 只有预测命中的玩家拿奖励；金币要求打出者与赢得者都命中，
// 赢得者得 GoldGet，打出者得 GoldGive，自己收回自己的金币两者都拿。
func RoundBonuses(results []RoundResult) map[string]Bonus {
	success := make(map[string]bool, len(results))
	for _, r := range results {
		success[r.PlayerID] = r.Success()
	}

	bonuses := make(map[string]Bonus, len(results))
	given := make(map[string]int)
	for _, r := range results {
		b := Bonus{}
		if !r.Success() {
			bonuses[r.PlayerID] = b
			continue
		}
		for _, c := range card.Sorted(r.Collected) {
			switch {
			case c.FourteenBonus() > 0:
				color, _ := c.Color()
				if b.Fourteens == nil {
					b.Fourteens = make(map[card.Color]int)
				}
				b.Fourteens[color] += c.FourteenBonus()
			case c.IsMermaid():
				b.Mermaid += c.BeatenCount * MermaidBonus
			case c.IsSkullKing():
				b.SkullKing += c.BeatenCount * SkullKingBonus
			case c.IsGold() && success[c.Owner]:
				b.GoldGet += GoldBonus
				given[c.Owner]++
			}
		}
		bonuses[r.PlayerID] = b
	}

	for id, n := range given {
		b := bonuses[id]
		b.GoldCardsGiven = n
		b.GoldGive = n * GoldBonus
		bonuses[id] = b
	}
	return bonuses
}
