package tui

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes lines the attempt up against the word letter by letter.
// Letters that match ignoring case use the correct style, wrong and extra
// letters the incorrect style, and letters the attempt is missing show as
// underscores.
func buildStyledRunes(word, attempt []rune, th theme) []styledRune {
	n := len(word)
	if len(attempt) > n {
		n = len(attempt)
	}
	out := make([]styledRune, 0, n)
	for i := 0; i < n; i++ {
		var displayed rune
		style := th.incorrect
		switch {
		case i >= len(attempt):
			displayed = '_'
			style = th.missing
		case i >= len(word):
			displayed = attempt[i]
		default:
			displayed = attempt[i]
			if unicode.ToLower(attempt[i]) == unicode.ToLower(word[i]) {
				style = th.correct
			}
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: displayed == ' ',
		})
	}
	return out
}

// maskWord renders one underscore per letter.
func maskWord(word string) string {
	runes := []rune(word)
	parts := make([]string, len(runes))
	for i := range runes {
		parts[i] = "_"
	}
	return strings.Join(parts, " ")
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
