package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/teenpatti/internal/deck"
	"github.com/lox/teenpatti/internal/evaluator"
)

// Table palette.
const (
	colorText   = lipgloss.Color("#FAFAFA")
	colorMuted  = lipgloss.Color("#626262")
	colorFelt   = lipgloss.Color("#1E6F50")
	colorGold   = lipgloss.Color("#FFD700")
	colorRed    = lipgloss.Color("#FF6B6B")
	colorMint   = lipgloss.Color("#96CEB4")
	colorSand   = lipgloss.Color("#FFEAA7")
	colorAccent = lipgloss.Color("#04B575")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorFelt).
			Bold(true).
			Padding(0, 1)

	GameLogStyle    = lipgloss.NewStyle().Foreground(colorText)
	PlayerInfoStyle = lipgloss.NewStyle().Foreground(colorText)
	InfoStyle       = lipgloss.NewStyle().Foreground(colorMuted)

	HandInfoStyle = lipgloss.NewStyle().Foreground(colorMint).Bold(true)
	ActionsStyle  = lipgloss.NewStyle().Foreground(colorGold).Bold(true)
	SuccessStyle  = lipgloss.NewStyle().Foreground(colorMint).Bold(true)
	ErrorStyle    = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	WarningStyle  = lipgloss.NewStyle().Foreground(colorSand).Bold(true)

	RedCardStyle    = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	BlackCardStyle  = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	HiddenCardStyle = lipgloss.NewStyle().Foreground(colorMuted)

	ActivePlayerStyle = lipgloss.NewStyle().Foreground(colorGold).Bold(true)
	FoldedPlayerStyle = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)

	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
	FocusedPaneStyle = PaneStyle.BorderForeground(colorAccent)
)

// CardStyle colors hearts and diamonds red.
func CardStyle(c deck.Card) lipgloss.Style {
	if c.IsRed() {
		return RedCardStyle
	}
	return BlackCardStyle
}

// CategoryStyle highlights stronger hands: gold for a sequence or better,
// mint for a color or pair.
func CategoryStyle(c evaluator.Category) lipgloss.Style {
	switch {
	case c >= evaluator.Sequence:
		return ActionsStyle
	case c >= evaluator.Pair:
		return HandInfoStyle
	default:
		return PlayerInfoStyle
	}
}
