package tui

import "github.com/charmbracelet/lipgloss"

// theme holds the styles for one palette.
type theme struct {
	dark bool

	text      lipgloss.Style
	muted     lipgloss.Style
	accent    lipgloss.Style
	correct   lipgloss.Style
	incorrect lipgloss.Style
	missing   lipgloss.Style
	footer    lipgloss.Style
	errorText lipgloss.Style

	activeNav   lipgloss.Style
	inactiveNav lipgloss.Style
	card        lipgloss.Style

	tableHeader   lipgloss.Color
	tableSelected lipgloss.Color
	border        lipgloss.Color
}

type palette struct {
	text, muted, accent, correct, incorrect, footer, border, selected lipgloss.Color
}

var (
	darkPalette = palette{
		text:      "#F0F0F0",
		muted:     "#8C8C8C",
		accent:    "#C89A3A",
		correct:   "#52C41A",
		incorrect: "#FF4D4F",
		footer:    "#6E6E6E",
		border:    "#4A4A4A",
		selected:  "#F0F0F0",
	}
	lightPalette = palette{
		text:      "#1F1F1F",
		muted:     "#737373",
		accent:    "#9A6B00",
		correct:   "#237804",
		incorrect: "#CF1322",
		footer:    "#8C8C8C",
		border:    "#BFBFBF",
		selected:  "#000000",
	}
)

func newTheme(dark bool) theme {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	text := lipgloss.NewStyle().Foreground(p.text)
	return theme{
		dark:      dark,
		text:      text,
		muted:     lipgloss.NewStyle().Foreground(p.muted),
		accent:    lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		correct:   lipgloss.NewStyle().Foreground(p.correct),
		incorrect: lipgloss.NewStyle().Foreground(p.incorrect),
		missing:   lipgloss.NewStyle().Foreground(p.incorrect).Underline(true),
		footer:    lipgloss.NewStyle().Foreground(p.footer),
		errorText: lipgloss.NewStyle().Foreground(p.incorrect),
		activeNav: lipgloss.NewStyle().
			Foreground(p.text).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.accent),
		inactiveNav: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.border),
		card: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.border),
		tableHeader:   p.muted,
		tableSelected: p.selected,
		border:        p.border,
	}
}
