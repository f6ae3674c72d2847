// Package settings normalizes user preferences.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/verte-zerg/tuispell/internal/model"
)

// Theme values stored under the theme key.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Rates lists the selectable speech rates, slowest first.
var Rates = []model.SpeechRate{model.RateSlow, model.RateNormal, model.RateFast}

// Normalize clamps volume to [0,100] and replaces an unknown rate with normal.
func Normalize(s model.Settings) model.Settings {
	s.Volume = ClampVolume(s.Volume)
	if !ValidRate(s.SpeechRate) {
		s.SpeechRate = model.RateNormal
	}
	return s
}

// ClampVolume bounds v to [0,100].
func ClampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ValidRate reports whether r is one of Rates.
func ValidRate(r model.SpeechRate) bool {
	for _, rate := range Rates {
		if rate == r {
			return true
		}
	}
	return false
}

// ParseRate accepts a rate value ("0.75") or label ("slow").
func ParseRate(s string) (model.SpeechRate, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "slow":
		return model.RateSlow, nil
	case "normal":
		return model.RateNormal, nil
	case "fast":
		return model.RateFast, nil
	}
	if ValidRate(model.SpeechRate(s)) {
		return model.SpeechRate(s), nil
	}
	return "", fmt.Errorf("unknown speech rate %q (want slow, normal, fast, 0.75, 1 or 1.25)", s)
}

// RateLabel returns the display name of r.
func RateLabel(r model.SpeechRate) string {
	switch r {
	case model.RateSlow:
		return "Slow"
	case model.RateFast:
		return "Fast"
	default:
		return "Normal"
	}
}

// NextRate cycles to the next rate, wrapping after fast.
func NextRate(r model.SpeechRate) model.SpeechRate {
	for i, rate := range Rates {
		if rate == r {
			return Rates[(i+1)%len(Rates)]
		}
	}
	return model.RateNormal
}

// PrevRate cycles to the previous rate, wrapping before slow.
func PrevRate(r model.SpeechRate) model.SpeechRate {
	for i, rate := range Rates {
		if rate == r {
			return Rates[(i+len(Rates)-1)%len(Rates)]
		}
	}
	return model.RateNormal
}

// RateFactor returns r as a multiplier.
func RateFactor(r model.SpeechRate) float64 {
	f, err := strconv.ParseFloat(string(r), 64)
	if err != nil || f <= 0 {
		return 1
	}
	return f
}

// Theme returns the theme value for s.
func Theme(s model.Settings) string {
	if s.DarkMode {
		return ThemeDark
	}
	return ThemeLight
}

// ApplyTheme lets a saved theme value override the dark mode flag.
func ApplyTheme(s model.Settings, theme string) model.Settings {
	switch strings.TrimSpace(theme) {
	case ThemeDark:
		s.DarkMode = true
	case ThemeLight:
		s.DarkMode = false
	}
	return s
}
