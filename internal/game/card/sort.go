package card

import (
	"cmp"
	"slices"
)

// 特殊牌之间的展示顺序
var specialRank = map[Kind]int{
	KindPirate:    0,
	KindMermaid:   1,
	KindSkullKing: 2,
	KindTigres:    3,
}

// bucket 数字牌 < 特殊牌 < 逃跑牌
func (c Card) bucket() int {
	switch c.kind {
	case KindSuit:
		return 0
	case KindEscape:
		return 2
	}
	return 1
}

// Compare 得分明细的展示顺序，与判定无关
func Compare(a, b Card) int {
	if r := cmp.Compare(a.bucket(), b.bucket()); r != 0 {
		return r
	}
	switch a.kind {
	case KindSuit:
		if r := cmp.Compare(a.color, b.color); r != 0 {
			return r
		}
		return cmp.Compare(a.number, b.number)
	case KindEscape:
		return cmp.Compare(a.escape, b.escape)
	}
	return cmp.Compare(specialRank[a.kind], specialRank[b.kind])
}

// Less 报告 a 是否排在 b 之前
func Less(a, b Card) bool {
	return Compare(a, b) < 0
}

// Sort 原地按展示顺序排序
func Sort(cards []Card) {
	slices.SortStableFunc(cards, Compare)
}

// Sorted 返回排好序的副本
func Sorted(cards []Card) []Card {
	out := slices.Clone(cards)
	Sort(out)
	return out
}
