package rule

import (
	"fmt"

	"github.com/palemoky/skull-king/internal/apperrors"
	"github.com/palemoky/skull-king/internal/game/card"
)

// Judgement 一墩牌的判定结果
type Judgement struct {
	WinnerIndex int       // 胜者在出牌顺序中的下标
	Winner      card.Card // 胜出的牌，Owner 即胜者
	HasKraken   bool      // 出现克拉肯，本墩作废
}

// Judge 判定一墩牌的胜者。
// 海盗、美人鱼、骷髅王同时出现时第一张美人鱼直接获胜；
// 否则从第一张牌开始依次比较，只有后出的牌严格更大才会取代当前胜者。
// 出现克拉肯时仍然给出胜者，由调用方作废本墩。
func Judge(trick []card.Card) (Judgement, error) {
	if len(trick) == 0 {
		return Judgement{}, apperrors.ErrEmptyTrick
	}
	for i, c := range trick {
		if c.Identity() == card.IdentityUnresolved {
			return Judgement{}, fmt.Errorf("%w: 第 %d 张牌", apperrors.ErrUnresolvedTigres, i+1)
		}
	}

	winner, ok := mermaidOverride(trick)
	if !ok {
		winner = 0
		for i := 1; i < len(trick); i++ {
			if CanBeat(trick[i], trick[winner]) {
				winner = i
			}
		}
	}

	return Judgement{
		WinnerIndex: winner,
		Winner:      trick[winner],
		HasKraken:   HasKraken(trick),
	}, nil
}

// CanBeat 报告后出的 candidate 能否取代当前胜者 winner
func CanBeat(candidate, winner card.Card) bool {
	return beatsByColor(candidate, winner) || beatsBySpecial(candidate, winner)
}

// HasKraken 本墩是否出现克拉肯
func HasKraken(trick []card.Card) bool {
	for _, c := range trick {
		if c.IsKraken() {
			return true
		}
	}
	return false
}

// mermaidOverride 三种特殊牌齐聚时返回第一张美人鱼的位置
func mermaidOverride(trick []card.Card) (int, bool) {
	mermaid := -1
	var pirate, skullKing bool
	for i, c := range trick {
		switch {
		case c.IsMermaid():
			if mermaid < 0 {
				mermaid = i
			}
		case c.IsPirate():
			pirate = true
		case c.IsSkullKing():
			skullKing = true
		}
	}
	if mermaid >= 0 && pirate && skullKing {
		return mermaid, true
	}
	return 0, false
}

func beatsByColor(candidate, winner card.Card) bool {
	cc, ok := candidate.Color()
	if !ok {
		return false
	}
	if wc, ok := winner.Color(); ok {
		if cc == wc {
			return candidate.Number() > winner.Number()
		}
		return cc == card.Black
	}
	return winner.IsEscape()
}

// beatsBySpecial 骷髅王 > 海盗 > 美人鱼 > 骷髅王，逃跑永远不胜
func beatsBySpecial(candidate, winner card.Card) bool {
	if candidate.IsSuit() || candidate.IsEscape() {
		return false
	}
	if winner.IsSuit() || winner.IsEscape() {
		return true
	}
	switch {
	case candidate.IsPirate():
		return winner.IsMermaid()
	case candidate.IsMermaid():
		return winner.IsSkullKing()
	case candidate.IsSkullKing():
		return winner.IsPirate()
	}
	return false
}
