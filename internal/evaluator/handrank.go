// Package evaluator ranks three-card Teen Patti hands.
//
// Categories, strongest first: Trail (three of a kind), Pure Sequence
// (straight flush), Sequence (straight), Color (flush), Pair and High Card.
// Unlike hold'em, a sequence outranks a color.
package evaluator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lox/teenpatti/internal/deck"
)

// Category is the coarse strength of a hand; higher is stronger.
type Category int

const (
	HighCard Category = iota + 1
	Pair
	Color
	Sequence
	PureSequence
	Trail
)

// String returns the readable name of the category
func (c Category) String() string {
	switch c {
	case Trail:
		return "Trail"
	case PureSequence:
		return "Pure Sequence"
	case Sequence:
		return "Sequence"
	case Color:
		return "Color"
	case Pair:
		return "Pair"
	case HighCard:
		return "High Card"
	default:
		return "Unknown"
	}
}

// HandRank is the derived strength of a hand: its category plus the rank
// values that break ties within the category, most significant first.
type HandRank struct {
	Category Category `json:"category"`
	Tiebreak []int    `json:"tiebreak"`
}

// Name returns the category name, e.g. "Pure Sequence".
func (h HandRank) Name() string {
	return h.Category.String()
}

// String renders the rank with its tiebreak ranks, e.g. "Pair (K, 7)".
func (h HandRank) String() string {
	parts := make([]string, len(h.Tiebreak))
	for i, v := range h.Tiebreak {
		if v == 1 {
			// low ace in A-2-3
			v = int(deck.Ace)
		}
		parts[i] = deck.Rank(v).String()
	}
	return fmt.Sprintf("%s (%s)", h.Category, strings.Join(parts, ", "))
}

// lowAce is the value an ace takes inside the A-2-3 sequence.
const lowAce = 1

// Evaluate ranks a three-card hand. It panics if cards does not hold exactly
// three cards; seats only ever hold zero or three.
func Evaluate(cards []deck.Card) HandRank {
	if len(cards) != deck.HandSize {
		panic(fmt.Sprintf("evaluator: hand must have %d cards, got %d", deck.HandSize, len(cards)))
	}

	values := []int{cards[0].Value(), cards[1].Value(), cards[2].Value()}
	slices.SortFunc(values, func(a, b int) int { return b - a })

	sameSuit := cards[0].Suit == cards[1].Suit && cards[1].Suit == cards[2].Suit
	consecutive := values[0] == values[1]+1 && values[1] == values[2]+1
	aceLow := values[0] == int(deck.Ace) && values[1] == int(deck.Three) && values[2] == int(deck.Two)

	switch {
	case values[0] == values[1] && values[1] == values[2]:
		return HandRank{Category: Trail, Tiebreak: values}

	case consecutive || aceLow:
		key := values
		if aceLow {
			key = []int{int(deck.Three), int(deck.Two), lowAce}
		}
		if sameSuit {
			return HandRank{Category: PureSequence, Tiebreak: key}
		}
		return HandRank{Category: Sequence, Tiebreak: key}

	case sameSuit:
		return HandRank{Category: Color, Tiebreak: values}

	case values[0] == values[1]:
		return HandRank{Category: Pair, Tiebreak: []int{values[0], values[2]}}

	case values[1] == values[2]:
		return HandRank{Category: Pair, Tiebreak: []int{values[1], values[0]}}
	}

	return HandRank{Category: HighCard, Tiebreak: values}
}

// Compare returns a positive number if a outranks b, negative if b outranks
// a, and 0 for an exact tie. Categories are compared first, then tiebreak
// values pairwise, with a missing trailing value counting as -1.
func Compare(a, b HandRank) int {
	if a.Category != b.Category {
		return sign(int(a.Category) - int(b.Category))
	}

	for i := range max(len(a.Tiebreak), len(b.Tiebreak)) {
		av, bv := at(a.Tiebreak, i), at(b.Tiebreak, i)
		if av != bv {
			return sign(av - bv)
		}
	}
	return 0
}

// CompareCards evaluates both hands and compares them.
func CompareCards(a, b []deck.Card) int {
	return Compare(Evaluate(a), Evaluate(b))
}

func at(key []int, i int) int {
	if i < len(key) {
		return key[i]
	}
	return -1
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
