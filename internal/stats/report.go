package stats

import (
	"io"

	"github.com/verte-zerg/tuispell/internal/game"
	"github.com/verte-zerg/tuispell/internal/model"
)

// DefaultWindow is the rolling window for the accuracy trend.
const DefaultWindow = 5

// Report contains precomputed data for stats rendering.
type Report struct {
	Account  *model.Account
	Progress model.Progress
	Accuracy int
	Percent  int
	Trend    []float64
	Window   int
	Missed   []MissedWord
}

// BuildReport prepares the report from a game snapshot. last limits the trend
// to the most recent attempts when positive.
func BuildReport(v game.View, window, last, missed int) Report {
	if window <= 0 {
		window = DefaultWindow
	}
	history := v.History
	if last > 0 && len(history) > last {
		history = history[:last]
	}
	return Report{
		Account:  v.Account,
		Progress: v.Progress,
		Accuracy: v.Accuracy,
		Percent:  v.Percent,
		Trend:    AccuracyTrend(history, window),
		Window:   window,
		Missed:   MostMissed(v.History, missed),
	}
}

// Render prints every report section.
func Render(w io.Writer, r Report) error {
	if err := RenderSummary(w, r); err != nil {
		return err
	}
	if err := RenderTrend(w, r); err != nil {
		return err
	}
	return RenderMissed(w, r)
}
