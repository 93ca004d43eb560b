package game

// Ledger moves chips between seats and the pot. It never looks at the stake;
// callers work out how much a seat owes before calling PlaceBet.
type Ledger struct {
	Pot int
}

// PlaceBet takes up to requested chips from s into the pot and returns the
// amount actually moved. A seat never goes negative: the bet is clamped to
// the seat's chips, and a clamped amount of zero moves nothing.
func (l *Ledger) PlaceBet(s *Seat, requested int) int {
	actual := min(requested, s.Chips)
	if actual <= 0 {
		return 0
	}
	s.Chips -= actual
	s.TotalContribution += actual
	l.Pot += actual
	return actual
}

// Award credits amount to s. The pot total is left as-is so the finished
// round still reports what was played for.
func (l *Ledger) Award(s *Seat, amount int) {
	if amount > 0 {
		s.Chips += amount
	}
}

// Contributions sums what every seat has put in this round.
func Contributions(seats []*Seat) int {
	total := 0
	for _, s := range seats {
		total += s.TotalContribution
	}
	return total
}
