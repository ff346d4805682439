package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/skull-king/internal/protocol"
)

func TestCategoryOf(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		card protocol.CardInfo
		want Category
		ok   bool
	}{
		{"black 14", protocol.CardInfo{Kind: "suit", Color: "black", Number: 14}, CatBlack14, true},
		{"plain suit", protocol.CardInfo{Kind: "suit", Color: "green", Number: 9}, "", false},
		{"skull king", protocol.CardInfo{Kind: "skull_king"}, CatSkullKing, true},
		{"pirate", protocol.CardInfo{Kind: "pirate"}, CatPirate, true},
		{"tigres", protocol.CardInfo{Kind: "tigres", Tigres: "escape"}, CatTigres, true},
		{"plain escape", protocol.CardInfo{Kind: "escape", Escape: "plain"}, CatEscape, true},
		{"gold", protocol.CardInfo{Kind: "escape", Escape: "gold"}, CatGold, true},
		{"kraken", protocol.CardInfo{Kind: "escape", Escape: "kraken"}, CatKraken, true},
		{"empty", protocol.CardInfo{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := CategoryOf(tt.card)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCardCounter_Reset(t *testing.T) {
	t.Parallel()
	cc := NewCardCounter()

	want := map[Category]int{
		CatSkullKing: 1, CatPirate: 5, CatMermaid: 2, CatTigres: 1,
		CatEscape: 5, CatGold: 2, CatKraken: 1,
		CatGreen14: 1, CatYellow14: 1, CatPurple14: 1, CatBlack14: 1,
	}
	for cat, n := range want {
		assert.Equal(t, n, cc.Remaining(cat), cat)
	}
	assert.Len(t, Categories, len(want))
}

func TestCardCounter_DeductAndUnseen(t *testing.T) {
	t.Parallel()
	cc := NewCardCounter()

	cc.Deduct(protocol.CardInfo{Kind: "pirate"})
	cc.Deduct(protocol.CardInfo{Kind: "skull_king"})
	cc.Deduct(protocol.CardInfo{Kind: "skull_king"}) // 不会减到负数
	cc.Deduct(protocol.CardInfo{Kind: "suit", Color: "yellow", Number: 3})

	assert.Equal(t, 4, cc.Remaining(CatPirate))
	assert.Equal(t, 0, cc.Remaining(CatSkullKing))

	hand := []protocol.HandCard{
		{Card: protocol.CardInfo{Kind: "pirate"}},
		{Card: protocol.CardInfo{Kind: "mermaid"}},
		{Card: protocol.CardInfo{Kind: "suit", Color: "black", Number: 14}},
	}
	unseen := cc.Unseen(hand)
	assert.Equal(t, 3, unseen[CatPirate])
	assert.Equal(t, 1, unseen[CatMermaid])
	assert.Equal(t, 0, unseen[CatBlack14])
	// 计数本身不受手牌影响
	assert.Equal(t, 4, cc.Remaining(CatPirate))

	cc.Reset()
	assert.Equal(t, 1, cc.Remaining(CatSkullKing))
}
