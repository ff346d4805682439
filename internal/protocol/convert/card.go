package convert

import (
	"fmt"

	"github.com/palemoky/skull-king/internal/game/card"
	"github.com/palemoky/skull-king/internal/protocol"
)

var kindCodes = map[card.Kind]string{
	card.KindSuit:      "suit",
	card.KindSkullKing: "skull_king",
	card.KindPirate:    "pirate",
	card.KindMermaid:   "mermaid",
	card.KindEscape:    "escape",
	card.KindTigres:    "tigres",
}

var colorCodes = map[card.Color]string{
	card.Green:  "green",
	card.Yellow: "yellow",
	card.Purple: "purple",
	card.Black:  "black",
}

var escapeCodes = map[card.EscapeType]string{
	card.EscapePlain:  "plain",
	card.EscapeGold:   "gold",
	card.EscapeKraken: "kraken",
}

func lookup[K comparable](codes map[K]string, code string) (K, bool) {
	for k, v := range codes {
		if v == code {
			return k, true
		}
	}
	var zero K
	return zero, false
}

// ColorCode 花色的线上编码
func ColorCode(c card.Color) string {
	return colorCodes[c]
}

// CardToInfo 将 card.Card 转换为 protocol.CardInfo
func CardToInfo(c card.Card) protocol.CardInfo {
	info := protocol.CardInfo{
		ID:    c.ID,
		Kind:  kindCodes[c.Kind()],
		Label: c.Label(),
	}
	if color, ok := c.Color(); ok {
		info.Color = colorCodes[color]
		info.Number = c.Number()
	}
	if e, ok := c.Escape(); ok {
		info.Escape = escapeCodes[e]
	}
	if c.IsTigres() && c.TigresAs() != card.TigresUnset {
		info.Tigres = c.TigresAs().String()
	}
	return info
}

// CardsToInfos 将 []card.Card 转换为 []protocol.CardInfo
func CardsToInfos(cards []card.Card) []protocol.CardInfo {
	infos := make([]protocol.CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = CardToInfo(c)
	}
	return infos
}

// InfoToCard 将 protocol.CardInfo 还原为 card.Card
func InfoToCard(info protocol.CardInfo) (card.Card, error) {
	kind, ok := lookup(kindCodes, info.Kind)
	if !ok {
		return card.Card{}, fmt.Errorf("未知的牌种类: %q", info.Kind)
	}

	var c card.Card
	switch kind {
	case card.KindSuit:
		color, ok := lookup(colorCodes, info.Color)
		if !ok || info.Number < 1 || info.Number > card.MaxNumber {
			return card.Card{}, fmt.Errorf("无效的数字牌: %s%d", info.Color, info.Number)
		}
		c = card.NewSuitCard(color, info.Number)
	case card.KindEscape:
		e, ok := lookup(escapeCodes, info.Escape)
		if !ok {
			return card.Card{}, fmt.Errorf("未知的逃跑牌: %q", info.Escape)
		}
		c = card.NewEscapeCard(e)
	default:
		c = card.NewSpecialCard(kind)
		if kind == card.KindTigres && info.Tigres != "" {
			as, err := card.ParseTigresAs(info.Tigres)
			if err != nil {
				return card.Card{}, err
			}
			c.ResolveTigres(as)
		}
	}
	c.ID = info.ID
	return c, nil
}

// InfosToCards 将 []protocol.CardInfo 还原为 []card.Card
func InfosToCards(infos []protocol.CardInfo) ([]card.Card, error) {
	cards := make([]card.Card, len(infos))
	for i, info := range infos {
		c, err := InfoToCard(info)
		if err != nil {
			return nil, err
		}
		cards[i] = c
	}
	return cards, nil
}
