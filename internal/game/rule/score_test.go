package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                   string
		bid, won, round, bonus int
		want                   int
	}{
		{"zero bid success", 0, 0, 7, 0, 70},
		{"zero bid failed", 0, 2, 7, 0, -70},
		{"zero bid failed ignores bonus", 0, 1, 3, 50, -30},
		{"bid hit", 3, 3, 5, 0, 60},
		{"bid hit with bonus", 2, 2, 5, 50, 90},
		{"bid over", 4, 1, 5, 0, -30},
		{"bid under", 1, 3, 5, 20, -20},
		{"zero bid success with bonus", 0, 0, 2, 20, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RoundScore(tt.bid, tt.won, tt.round, tt.bonus))
		})
	}
}

func TestRoundScore_ZeroBidRoundTrip(t *testing.T) {
	t.Parallel()

	for round := 1; round <= 10; round++ {
		assert.Equal(t, round*10, RoundScore(0, 0, round, 0))
		assert.Equal(t, -round*10, RoundScore(0, round, round, 0))
	}
}
