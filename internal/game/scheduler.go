package game

// NextSeat returns the first non-folded seat after current in seating order,
// wrapping around. It checks each seat at most once and returns -1 when every
// seat has folded.
func NextSeat(seats []*Seat, current int) int {
	n := len(seats)
	for step := 1; step <= n; step++ {
		i := (current + step) % n
		if !seats[i].HasFolded {
			return i
		}
	}
	return -1
}

// Contenders returns the indexes of seats that have not folded, in seating
// order.
func Contenders(seats []*Seat) []int {
	var out []int
	for i, s := range seats {
		if !s.HasFolded {
			out = append(out, i)
		}
	}
	return out
}
