package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seatsFolded(folded ...bool) []*Seat {
	seats := make([]*Seat, len(folded))
	for i, f := range folded {
		seats[i] = &Seat{ID: i, HasFolded: f}
	}
	return seats
}

func TestNextSeat(t *testing.T) {
	tests := []struct {
		name    string
		folded  []bool
		current int
		want    int
	}{
		{"next in order", []bool{false, false, false}, 0, 1},
		{"wraps around", []bool{false, false, false}, 2, 0},
		{"skips folded", []bool{false, true, false}, 0, 2},
		{"skips folded across wrap", []bool{true, false, false}, 2, 1},
		{"only self left", []bool{true, false, true}, 1, 1},
		{"current folded", []bool{false, true, false}, 1, 2},
		{"nobody left", []bool{true, true, true}, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextSeat(seatsFolded(tt.folded...), tt.current))
		})
	}
}

func TestContenders(t *testing.T) {
	assert.Equal(t, []int{0, 2}, Contenders(seatsFolded(false, true, false)))
	assert.Empty(t, Contenders(seatsFolded(true, true)))
}
