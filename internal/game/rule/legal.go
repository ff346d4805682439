package rule

import (
	"github.com/palemoky/skull-king/internal/game/card"
)

// LeadColor 本墩第一张数字牌的花色
func LeadColor(trick []card.Card) (card.Color, bool) {
	for _, c := range trick {
		if color, ok := c.Color(); ok {
			return color, true
		}
	}
	return 0, false
}

// LegalPlays 标记手牌中哪些可以出。
// 持有首攻花色时必须跟该花色，特殊牌与逃跑牌随时可出。
func LegalPlays(hand, trick []card.Card) []bool {
	legal := make([]bool, len(hand))
	lead, led := LeadColor(trick)
	mustFollow := false
	if led {
		for _, c := range hand {
			if color, ok := c.Color(); ok && color == lead {
				mustFollow = true
				break
			}
		}
	}
	for i, c := range hand {
		color, isSuit := c.Color()
		legal[i] = !mustFollow || !isSuit || color == lead
	}
	return legal
}

// LegalIndexes 返回可出手牌的下标
func LegalIndexes(hand, trick []card.Card) []int {
	var indexes []int
	for i, ok := range LegalPlays(hand, trick) {
		if ok {
			indexes = append(indexes, i)
		}
	}
	return indexes
}
