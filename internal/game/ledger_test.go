package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceBet(t *testing.T) {
	tests := []struct {
		name      string
		chips     int
		requested int
		want      int
	}{
		{"full amount", 100, 20, 20},
		{"clamped to chips", 15, 20, 15},
		{"broke", 0, 20, 0},
		{"zero request", 100, 0, 0},
		{"negative request", 100, -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Ledger
			s := &Seat{Chips: tt.chips}

			got := l.PlaceBet(s, tt.requested)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.chips-tt.want, s.Chips)
			assert.Equal(t, tt.want, s.TotalContribution)
			assert.Equal(t, tt.want, l.Pot)
			assert.GreaterOrEqual(t, s.Chips, 0)
		})
	}
}

func TestAwardAndContributions(t *testing.T) {
	var l Ledger
	a, b := &Seat{Chips: 50}, &Seat{Chips: 50}
	l.PlaceBet(a, 10)
	l.PlaceBet(b, 30)

	assert.Equal(t, 40, l.Pot)
	assert.Equal(t, l.Pot, Contributions([]*Seat{a, b}))

	l.Award(a, l.Pot)
	assert.Equal(t, 80, a.Chips)
	assert.Equal(t, 40, l.Pot, "pot keeps its total for reporting")

	l.Award(b, -10)
	assert.Equal(t, 20, b.Chips)
}

func TestStakeAmounts(t *testing.T) {
	s := &Seat{IsBlind: true}
	assert.Equal(t, 5, s.CallAmount(5))
	assert.Equal(t, 10, s.RaiseAmount(5))

	s.IsBlind = false
	assert.Equal(t, 10, s.CallAmount(5))
	assert.Equal(t, 20, s.RaiseAmount(5))
}
