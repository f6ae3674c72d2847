package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuispell/internal/model"
)

func TestNormalize(t *testing.T) {
	got := Normalize(model.Settings{Volume: 140, SpeechRate: "2"})
	assert.Equal(t, 100, got.Volume)
	assert.Equal(t, model.RateNormal, got.SpeechRate)

	got = Normalize(model.Settings{Volume: -5, SpeechRate: model.RateFast, DarkMode: true})
	assert.Equal(t, model.Settings{Volume: 0, SpeechRate: model.RateFast, DarkMode: true}, got)
}

func TestParseRate(t *testing.T) {
	for in, want := range map[string]model.SpeechRate{
		"slow": model.RateSlow, "0.75": model.RateSlow,
		"Normal": model.RateNormal, "1": model.RateNormal,
		"fast": model.RateFast, " 1.25 ": model.RateFast,
	} {
		got, err := ParseRate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseRate("1.5")
	assert.Error(t, err)
}

func TestNextRateCycles(t *testing.T) {
	assert.Equal(t, model.RateNormal, NextRate(model.RateSlow))
	assert.Equal(t, model.RateFast, NextRate(model.RateNormal))
	assert.Equal(t, model.RateSlow, NextRate(model.RateFast))
	assert.Equal(t, model.RateNormal, NextRate("bogus"))
	assert.Equal(t, model.RateFast, PrevRate(model.RateSlow))
	assert.Equal(t, model.RateSlow, PrevRate(model.RateNormal))
}

func TestRateFactor(t *testing.T) {
	assert.InDelta(t, 0.75, RateFactor(model.RateSlow), 1e-9)
	assert.InDelta(t, 1.0, RateFactor("bogus"), 1e-9)
	assert.Equal(t, "Fast", RateLabel(model.RateFast))
}

func TestTheme(t *testing.T) {
	s := model.DefaultSettings()
	assert.Equal(t, ThemeLight, Theme(s))
	s = ApplyTheme(s, "dark")
	assert.True(t, s.DarkMode)
	assert.Equal(t, ThemeDark, Theme(s))
	assert.True(t, ApplyTheme(s, "").DarkMode)
	assert.False(t, ApplyTheme(s, "light").DarkMode)
}
