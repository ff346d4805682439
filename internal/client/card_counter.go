package client

import (
	"github.com/palemoky/skull-king/internal/game/card"
	"github.com/palemoky/skull-king/internal/protocol"
	"github.com/palemoky/skull-king/internal/protocol/convert"
)

// Category 记牌器的分类：特殊牌按种类，数字牌只记 14
type Category string

const (
	CatSkullKing Category = "skull_king"
	CatPirate    Category = "pirate"
	CatMermaid   Category = "mermaid"
	CatTigres    Category = "tigres"
	CatEscape    Category = "escape"
	CatGold      Category = "gold"
	CatKraken    Category = "kraken"
	CatGreen14   Category = "green_14"
	CatYellow14  Category = "yellow_14"
	CatPurple14  Category = "purple_14"
	CatBlack14   Category = "black_14"
)

// Categories 记牌器的显示顺序
var Categories = []Category{
	CatSkullKing, CatPirate, CatTigres, CatMermaid, CatKraken, CatGold, CatEscape,
	CatBlack14, CatGreen14, CatYellow14, CatPurple14,
}

// CategoryOf 牌属于哪个分类，普通数字牌不计
func CategoryOf(c protocol.CardInfo) (Category, bool) {
	switch c.Kind {
	case "suit":
		if c.Number != card.MaxNumber {
			return "", false
		}
		return Category(c.Color + "_14"), true
	case "escape":
		switch c.Escape {
		case "gold":
			return CatGold, true
		case "kraken":
			return CatKraken, true
		}
		return CatEscape, true
	case "":
		return "", false
	}
	return Category(c.Kind), true
}

// CardCounter 记录本回合还没打出的关键牌
type CardCounter struct {
	remaining map[Category]int
}

func NewCardCounter() *CardCounter {
	cc := &CardCounter{remaining: make(map[Category]int)}
	cc.Reset()
	return cc
}

// Reset 按整副牌重新计数
func (cc *CardCounter) Reset() {
	clear(cc.remaining)
	for _, info := range convert.CardsToInfos(card.Catalog()) {
		if cat, ok := CategoryOf(info); ok {
			cc.remaining[cat]++
		}
	}
}

// Deduct 扣除一张已打出的牌
func (cc *CardCounter) Deduct(c protocol.CardInfo) {
	if cat, ok := CategoryOf(c); ok && cc.remaining[cat] > 0 {
		cc.remaining[cat]--
	}
}

// Unseen 尚未打出且不在 hand 中的数量，即可能在对手手里或没发出的牌
func (cc *CardCounter) Unseen(hand []protocol.HandCard) map[Category]int {
	out := make(map[Category]int, len(cc.remaining))
	for cat, n := range cc.remaining {
		out[cat] = n
	}
	for _, h := range hand {
		if cat, ok := CategoryOf(h.Card); ok && out[cat] > 0 {
			out[cat]--
		}
	}
	return out
}

func (cc *CardCounter) Remaining(cat Category) int {
	return cc.remaining[cat]
}
