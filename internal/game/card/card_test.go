package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Composition(t *testing.T) {
	t.Parallel()

	cards := Catalog()
	require.Len(t, cards, DeckSize)

	kinds := map[Kind]int{}
	escapes := map[EscapeType]int{}
	suits := map[Color]map[int]int{}
	for i, c := range cards {
		assert.Equal(t, i, c.ID)
		kinds[c.Kind()]++
		if e, ok := c.Escape(); ok {
			escapes[e]++
		}
		if color, ok := c.Color(); ok {
			if suits[color] == nil {
				suits[color] = map[int]int{}
			}
			suits[color][c.Number()]++
		}
	}

	assert.Equal(t, 56, kinds[KindSuit])
	assert.Equal(t, 1, kinds[KindSkullKing])
	assert.Equal(t, 5, kinds[KindPirate])
	assert.Equal(t, 2, kinds[KindMermaid])
	assert.Equal(t, 1, kinds[KindTigres])
	assert.Equal(t, 8, kinds[KindEscape])
	assert.Equal(t, map[EscapeType]int{EscapePlain: 5, EscapeGold: 2, EscapeKraken: 1}, escapes)

	for _, color := range Colors {
		require.Len(t, suits[color], MaxNumber, "color %v", color)
		for n := 1; n <= MaxNumber; n++ {
			assert.Equal(t, 1, suits[color][n])
		}
	}
}

func TestNewDeck_IsPermutationOfCatalog(t *testing.T) {
	t.Parallel()

	deck := NewDeck(NewSource(42))
	require.Len(t, deck, DeckSize)

	seen := make(map[int]bool, DeckSize)
	for _, c := range deck {
		assert.False(t, seen[c.ID], "duplicate id %d", c.ID)
		seen[c.ID] = true
	}
	assert.Len(t, seen, DeckSize)
	assert.NotEqual(t, Catalog(), deck)
}

func TestShuffle_Deterministic(t *testing.T) {
	t.Parallel()

	a := NewDeck(NewSource(7))
	b := NewDeck(NewSource(7))
	assert.Equal(t, a, b)
}

func TestShuffle_ReachesEveryPermutation(t *testing.T) {
	t.Parallel()

	cards := []Card{NewSuitCard(Green, 1), NewSuitCard(Green, 2), NewSuitCard(Green, 3)}
	src := NewSource(99)
	counts := map[[3]int]int{}
	const samples = 6000
	for range samples {
		out := Shuffle(cards, src)
		counts[[3]int{out[0].Number(), out[1].Number(), out[2].Number()}]++
	}

	require.Len(t, counts, 6)
	for perm, n := range counts {
		assert.InDelta(t, samples/6, n, 200, "permutation %v", perm)
	}
	assert.Equal(t, 1, cards[0].Number(), "input must not be modified")
}

func TestFourteenBonus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		card Card
		want int
	}{
		{"black 14", NewSuitCard(Black, 14), 20},
		{"green 14", NewSuitCard(Green, 14), 10},
		{"purple 14", NewSuitCard(Purple, 14), 10},
		{"yellow 13", NewSuitCard(Yellow, 13), 0},
		{"pirate", NewSpecialCard(KindPirate), 0},
		{"gold", NewEscapeCard(EscapeGold), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.card.FourteenBonus())
		})
	}
}

func TestFourteenBonus_SurvivesReset(t *testing.T) {
	t.Parallel()

	c := NewSuitCard(Black, 14)
	c.Owner = "p1"
	c.Reset()
	assert.Equal(t, 20, c.FourteenBonus())
	assert.Empty(t, c.Owner)
}

func TestIdentity_Tigres(t *testing.T) {
	t.Parallel()

	c := NewSpecialCard(KindTigres)
	assert.Equal(t, IdentityUnresolved, c.Identity())
	assert.False(t, c.IsPirate())
	assert.False(t, c.IsEscape())

	assert.False(t, c.ResolveTigres(TigresUnset))
	require.True(t, c.ResolveTigres(TigresPirate))
	assert.True(t, c.IsPirate())
	assert.Equal(t, "🦸 蒂格雷丝 (⚔️ 海盗)", c.Label())

	require.True(t, c.ResolveTigres(TigresEscape))
	assert.True(t, c.IsEscape())

	c.BeatenCount = 2
	c.Reset()
	assert.Equal(t, TigresUnset, c.TigresAs())
	assert.Zero(t, c.BeatenCount)
}

func TestAccessors_IgnoreForeignPayload(t *testing.T) {
	t.Parallel()

	pirate := NewSpecialCard(KindPirate)
	_, ok := pirate.Color()
	assert.False(t, ok)
	assert.Zero(t, pirate.Number())
	_, ok = pirate.Escape()
	assert.False(t, ok)
	assert.False(t, pirate.ResolveTigres(TigresPirate))

	suit := NewSuitCard(Purple, 9)
	assert.Equal(t, TigresUnset, suit.TigresAs())
	assert.False(t, suit.IsKraken())
	assert.Panics(t, func() { NewSpecialCard(KindEscape) })
}

func TestSort_DisplayOrder(t *testing.T) {
	t.Parallel()

	want := []Card{
		NewSuitCard(Green, 3),
		NewSuitCard(Green, 12),
		NewSuitCard(Yellow, 1),
		NewSuitCard(Black, 14),
		NewSpecialCard(KindPirate),
		NewSpecialCard(KindMermaid),
		NewSpecialCard(KindSkullKing),
		NewSpecialCard(KindTigres),
		NewEscapeCard(EscapePlain),
		NewEscapeCard(EscapeGold),
		NewEscapeCard(EscapeKraken),
	}
	shuffled := Shuffle(want, NewSource(3))
	assert.Equal(t, want, Sorted(shuffled))
	assert.True(t, Less(NewSuitCard(Black, 1), NewSpecialCard(KindPirate)))
}

func TestParseTigresAs(t *testing.T) {
	t.Parallel()

	as, err := ParseTigresAs("pirate")
	require.NoError(t, err)
	assert.Equal(t, TigresPirate, as)

	as, err = ParseTigresAs(TigresEscape.String())
	require.NoError(t, err)
	assert.Equal(t, TigresEscape, as)

	_, err = ParseTigresAs("mermaid")
	assert.Error(t, err)
}
