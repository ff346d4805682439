package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/skull-king/internal/game/card"
	"github.com/palemoky/skull-king/internal/protocol"
)

func TestCardRoundTrip_Catalog(t *testing.T) {
	t.Parallel()

	catalog := card.Catalog()
	infos := CardsToInfos(catalog)
	results, err := InfosToCards(infos)
	require.NoError(t, err)
	assert.Equal(t, catalog, results)
}

func TestCardToInfo(t *testing.T) {
	t.Parallel()

	black14 := card.NewSuitCard(card.Black, 14)
	info := CardToInfo(black14)
	assert.Equal(t, "suit", info.Kind)
	assert.Equal(t, "black", info.Color)
	assert.Equal(t, 14, info.Number)
	assert.Empty(t, info.Escape)
	assert.Equal(t, black14.Label(), info.Label)

	kraken := CardToInfo(card.NewEscapeCard(card.EscapeKraken))
	assert.Equal(t, "escape", kraken.Kind)
	assert.Equal(t, "kraken", kraken.Escape)
	assert.Empty(t, kraken.Color)
	assert.Zero(t, kraken.Number)

	tigres := card.NewSpecialCard(card.KindTigres)
	assert.Empty(t, CardToInfo(tigres).Tigres)
	tigres.ResolveTigres(card.TigresEscape)
	assert.Equal(t, "escape", CardToInfo(tigres).Tigres)
}

func TestInfoToCard_ResolvedTigres(t *testing.T) {
	t.Parallel()

	c, err := InfoToCard(protocol.CardInfo{ID: 69, Kind: "tigres", Tigres: "pirate"})
	require.NoError(t, err)
	assert.Equal(t, 69, c.ID)
	assert.True(t, c.IsPirate())
}

func TestInfoToCard_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info protocol.CardInfo
	}{
		{"unknown kind", protocol.CardInfo{Kind: "joker"}},
		{"unknown color", protocol.CardInfo{Kind: "suit", Color: "red", Number: 3}},
		{"number too large", protocol.CardInfo{Kind: "suit", Color: "green", Number: 15}},
		{"number zero", protocol.CardInfo{Kind: "suit", Color: "green"}},
		{"unknown escape", protocol.CardInfo{Kind: "escape", Escape: "silver"}},
		{"bad tigres", protocol.CardInfo{Kind: "tigres", Tigres: "mermaid"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := InfoToCard(tt.info)
			assert.Error(t, err)
		})
	}

	_, err := InfosToCards([]protocol.CardInfo{{Kind: "pirate"}, {Kind: "joker"}})
	assert.Error(t, err)
}

func TestEmptyCards(t *testing.T) {
	t.Parallel()

	assert.Empty(t, CardsToInfos([]card.Card{}))
	cards, err := InfosToCards([]protocol.CardInfo{})
	require.NoError(t, err)
	assert.Empty(t, cards)
}
