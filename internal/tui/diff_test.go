package tui

import "testing"

func TestBuildStyledRunesMarksMistakes(t *testing.T) {
	th := newTheme(true)
	runes := buildStyledRunes([]rune("quiz"), []rune("Qiz"), th)
	if len(runes) != 4 {
		t.Fatalf("expected 4 runes, got %d", len(runes))
	}
	if runes[0].s != th.correct.Render("Q") {
		t.Fatalf("expected case-insensitive match for first letter")
	}
	if runes[1].s != th.incorrect.Render("i") {
		t.Fatalf("expected incorrect style for second letter")
	}
	if runes[3].s != th.missing.Render("_") {
		t.Fatalf("expected missing marker for last letter")
	}
}

func TestBuildStyledRunesExtraLetters(t *testing.T) {
	th := newTheme(false)
	runes := buildStyledRunes([]rune("to"), []rune("too"), th)
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if runes[2].s != th.incorrect.Render("o") {
		t.Fatalf("expected extra letter to be incorrect")
	}
}

func TestWrapStyledRunesAtSpaces(t *testing.T) {
	runes := []styledRune{
		{s: "a", width: 1},
		{s: "b", width: 1},
		{s: " ", width: 1, isSpace: true},
		{s: "c", width: 1},
		{s: "d", width: 1},
	}
	got := wrapStyledRunes(runes, 3)
	if got != "ab\ncd" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapStyledRunesLongWord(t *testing.T) {
	runes := []styledRune{
		{s: "a", width: 1},
		{s: "b", width: 1},
		{s: "c", width: 1},
		{s: "d", width: 1},
	}
	got := wrapStyledRunes(runes, 3)
	if got != "abc\nd" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestMaskWord(t *testing.T) {
	if got := maskWord("cat"); got != "_ _ _" {
		t.Fatalf("unexpected mask: %q", got)
	}
}
