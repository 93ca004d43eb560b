package main

import (
	"fmt"
	"strings"

	"github.com/lox/teenpatti/internal/deck"
	"github.com/lox/teenpatti/internal/evaluator"
	"github.com/lox/teenpatti/internal/tui"
)

// RankCmd evaluates a hand, optionally against another
type RankCmd struct {
	Cards []string `arg:"" help:"Three cards, e.g. As Kh 4d"`
	Vs    string   `help:"Compare against this hand, e.g. 'Qs Qd 2c'"`
}

func (c *RankCmd) Run(*Globals) error {
	hand, err := deck.ParseHand(strings.Join(c.Cards, " "))
	if err != nil {
		return err
	}
	rank := evaluator.Evaluate(hand)
	fmt.Printf("%s  %s\n", tui.FormatCards(hand), tui.CategoryStyle(rank.Category).Render(rank.String()))

	if c.Vs == "" {
		return nil
	}
	other, err := deck.ParseHand(c.Vs)
	if err != nil {
		return fmt.Errorf("--vs: %w", err)
	}
	otherRank := evaluator.Evaluate(other)
	fmt.Printf("%s  %s\n", tui.FormatCards(other), tui.CategoryStyle(otherRank.Category).Render(otherRank.String()))

	switch evaluator.Compare(rank, otherRank) {
	case 1:
		fmt.Println(tui.SuccessStyle.Render("First hand wins"))
	case -1:
		fmt.Println(tui.SuccessStyle.Render("Second hand wins"))
	default:
		fmt.Println(tui.WarningStyle.Render("Hands tie"))
	}
	return nil
}
