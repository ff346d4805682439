package card

import (
	"math/rand/v2"
	"slices"
)

// DeckSize 完整牌堆的张数
const DeckSize = 70

// Source 洗牌与电脑玩家使用的随机源，*rand.Rand 满足该接口
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource 使用全局随机数生成器
func DefaultSource() Source {
	return globalSource{}
}

// NewSource 由种子创建可复现的随机源
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Catalog 按固定顺序生成 70 张牌，ID 即其下标
func Catalog() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, color := range Colors {
		for n := 1; n <= MaxNumber; n++ {
			cards = append(cards, NewSuitCard(color, n))
		}
	}
	cards = append(cards, NewSpecialCard(KindSkullKing))
	for range 5 {
		cards = append(cards, NewSpecialCard(KindPirate))
	}
	for range 2 {
		cards = append(cards, NewSpecialCard(KindMermaid))
	}
	cards = append(cards, NewSpecialCard(KindTigres))
	for range 5 {
		cards = append(cards, NewEscapeCard(EscapePlain))
	}
	for range 2 {
		cards = append(cards, NewEscapeCard(EscapeGold))
	}
	cards = append(cards, NewEscapeCard(EscapeKraken))

	for i := range cards {
		cards[i].ID = i
	}
	return cards
}

// NewDeck 返回洗好的完整牌堆
func NewDeck(src Source) []Card {
	return Shuffle(Catalog(), src)
}

// Shuffle 每次从剩余牌中均匀抽出一张追加到结果末尾，返回新切片
func Shuffle(cards []Card, src Source) []Card {
	rest := slices.Clone(cards)
	out := make([]Card, 0, len(cards))
	for len(rest) > 0 {
		i := src.IntN(len(rest))
		out = append(out, rest[i])
		rest = slices.Delete(rest, i, i+1)
	}
	return out
}
