package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/teenpatti/internal/deck"
	"github.com/lox/teenpatti/internal/evaluator"
	"github.com/lox/teenpatti/internal/game"
)

// RoundResult represents the outcome of a single round from the tracked
// seat's point of view.
type RoundResult struct {
	NetChips        int                // Chips won or lost by the tracked seat
	Seed            int64              // Table seed (for replay)
	Round           int                // Round number on that table
	Position        int                // Seats after the dealer, 1 = first to act
	Outcome         game.OutcomeKind   // How the round ended
	Won             bool               // Tracked seat took some of the pot
	Pot             int                // Final pot size in chips
	Actions         int                // Betting actions applied
	WinningCategory evaluator.Category // Best revealed category, 0 without a show
	Unclaimed       int                // Chips moved to unclaimed by a void round
	Conserved       bool               // Chip total unchanged after settlement
}

// PositionStats tracks statistics for a specific table position
type PositionStats struct {
	Rounds   int
	SumChips float64
}

// Statistics tracks aggregate simulation results
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Store all values for median/percentile calculation

	// Where the tracked seat's results came from, wins and losses alike
	ShowdownWins int
	DefaultWins  int
	ShowdownNet  float64
	DefaultNet   float64
	AllNet       float64

	Outcomes        map[game.OutcomeKind]int
	CategoryWins    [evaluator.Trail + 1]int // Index 0 unused
	VoidRounds      int
	UnclaimedChips  int
	Actions         int
	MaxPot          int
	ConservationBad int

	PositionResults [deck.MaxSeats + 1]PositionStats // Index 0 unused
}

// Mean returns the arithmetic mean of net chips per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	net := float64(result.NetChips)
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	showdown := result.Outcome == game.Showdown || result.Outcome == game.Split
	if result.Won {
		if showdown {
			s.ShowdownWins++
		} else {
			s.DefaultWins++
		}
	}
	if showdown {
		s.ShowdownNet += net
	} else {
		s.DefaultNet += net
	}
	s.AllNet += net

	if s.Outcomes == nil {
		s.Outcomes = make(map[game.OutcomeKind]int)
	}
	s.Outcomes[result.Outcome]++
	if result.Outcome == game.Void {
		s.VoidRounds++
	}
	s.UnclaimedChips += result.Unclaimed

	if c := result.WinningCategory; c >= evaluator.HighCard && c <= evaluator.Trail {
		s.CategoryWins[c]++
	}

	s.Actions += result.Actions
	if result.Pot > s.MaxPot {
		s.MaxPot = result.Pot
	}
	if !result.Conserved {
		s.ConservationBad++
	}

	if pos := result.Position; pos >= 1 && pos <= deck.MaxSeats {
		s.PositionResults[pos].Rounds++
		s.PositionResults[pos].SumChips += net
	}
}

// Merge folds other into s. Values keep their order, s first.
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)

	s.ShowdownWins += other.ShowdownWins
	s.DefaultWins += other.DefaultWins
	s.ShowdownNet += other.ShowdownNet
	s.DefaultNet += other.DefaultNet
	s.AllNet += other.AllNet

	if s.Outcomes == nil {
		s.Outcomes = make(map[game.OutcomeKind]int)
	}
	for k, n := range other.Outcomes {
		s.Outcomes[k] += n
	}
	for c, n := range other.CategoryWins {
		s.CategoryWins[c] += n
	}
	s.VoidRounds += other.VoidRounds
	s.UnclaimedChips += other.UnclaimedChips
	s.Actions += other.Actions
	s.MaxPot = max(s.MaxPot, other.MaxPot)
	s.ConservationBad += other.ConservationBad

	for pos := range s.PositionResults {
		s.PositionResults[pos].Rounds += other.PositionResults[pos].Rounds
		s.PositionResults[pos].SumChips += other.PositionResults[pos].SumChips
	}
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PositionMean returns the mean result for a position (1 = first to act)
func (s *Statistics) PositionMean(position int) float64 {
	if position < 1 || position > deck.MaxSeats {
		return 0
	}
	ps := s.PositionResults[position]
	if ps.Rounds == 0 {
		return 0
	}
	return ps.SumChips / float64(ps.Rounds)
}

// OutcomeShare returns the fraction of rounds that ended with kind
func (s *Statistics) OutcomeShare(kind game.OutcomeKind) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Outcomes[kind]) / float64(s.Rounds)
}

// AverageActions returns betting actions per round
func (s *Statistics) AverageActions() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Actions) / float64(s.Rounds)
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllNet-s.ShowdownNet-s.DefaultNet) <= 1e-6
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllNet=%.2f, ShowdownNet=%.2f, DefaultNet=%.2f",
			s.AllNet, s.ShowdownNet, s.DefaultNet)
	}

	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	if wins := s.ShowdownWins + s.DefaultWins; wins > s.Rounds {
		return fmt.Errorf("total wins (%d) exceeds total rounds (%d)", wins, s.Rounds)
	}

	outcomes := 0
	for _, n := range s.Outcomes {
		outcomes += n
	}
	if outcomes != s.Rounds {
		return fmt.Errorf("outcome total (%d) does not match total rounds (%d)", outcomes, s.Rounds)
	}

	positions := 0
	for _, ps := range s.PositionResults {
		positions += ps.Rounds
	}
	if positions != s.Rounds {
		return fmt.Errorf("position rounds total (%d) does not match total rounds (%d)",
			positions, s.Rounds)
	}

	if s.ConservationBad > 0 {
		return fmt.Errorf("chip conservation failed in %d rounds", s.ConservationBad)
	}

	return nil
}
