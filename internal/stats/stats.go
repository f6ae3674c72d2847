// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/tuispell/internal/identity"
	"github.com/verte-zerg/tuispell/internal/model"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// AccuracyTrend turns a newest-first history into a rolling accuracy
// percentage per attempt, oldest first.
func AccuracyTrend(history []model.HistoryEntry, window int) []float64 {
	values := make([]float64, len(history))
	for i, entry := range history {
		if entry.IsCorrect {
			values[len(history)-1-i] = 100
		}
	}
	return MovingAverage(values, window)
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the counters for the report.
func RenderSummary(w io.Writer, r Report) error {
	lines := []string{"Summary"}
	if r.Account != nil {
		lines = append(lines, fmt.Sprintf("Account: %s <%s>", r.Account.Name, r.Account.Email))
		lines = append(lines, fmt.Sprintf("Streak: %d", r.Account.Stats.Streak))
		if r.Account.Stats.LastPlayed != nil {
			lines = append(lines, fmt.Sprintf("Last played: %s", r.Account.Stats.LastPlayed.Local().Format(time.DateTime)))
		}
	} else {
		lines = append(lines, "Account: (not logged in)")
	}
	lines = append(lines,
		fmt.Sprintf("Correct: %d / %d", r.Progress.Correct, r.Progress.Total),
		fmt.Sprintf("Accuracy: %d%%", r.Accuracy),
		fmt.Sprintf("Goal: %d%% of %d", r.Percent, r.Progress.Target),
		"",
	)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTrend prints the rolling accuracy sparkline.
func RenderTrend(w io.Writer, r Report) error {
	if len(r.Trend) == 0 {
		_, err := fmt.Fprintln(w, "No attempts yet.")
		return err
	}
	last := r.Trend[len(r.Trend)-1]
	if _, err := fmt.Fprintf(w, "Accuracy trend (last %d attempts, window %d)\n", len(r.Trend), r.Window); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "[%s] %.0f%%\n\n", Sparkline(r.Trend), last); err != nil {
		return err
	}
	return nil
}

// RenderMissed prints the most-missed words table.
func RenderMissed(w io.Writer, r Report) error {
	if len(r.Missed) == 0 {
		_, err := fmt.Fprintln(w, "No missed words.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Most Missed"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(r.Missed))
	for _, m := range r.Missed {
		rows = append(rows, []string{
			m.Word,
			fmt.Sprintf("%d", m.Misses),
			fmt.Sprintf("%d", m.Attempts),
			m.LastAttempt,
		})
	}
	return writeTable(w, []string{"Word", "Misses", "Attempts", "Last Attempt"}, rows, map[int]bool{1: true, 2: true})
}

// RenderHistory prints up to limit history entries, newest first. A
// non-positive limit prints everything.
func RenderHistory(w io.Writer, history []model.HistoryEntry, limit int) error {
	if len(history) == 0 {
		_, err := fmt.Fprintln(w, "No history yet.")
		return err
	}
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	rows := make([][]string, 0, len(history))
	for _, e := range history {
		result := "wrong"
		if e.IsCorrect {
			result = "correct"
		}
		rows = append(rows, []string{
			e.Time().Local().Format(time.DateTime),
			e.Word,
			e.Attempt,
			result,
		})
	}
	return writeTable(w, []string{"Time", "Word", "Attempt", "Result"}, rows, nil)
}

// RenderLeaderboard prints leaderboard standings.
func RenderLeaderboard(w io.Writer, period identity.Period, rows []identity.Standing) error {
	if _, err := fmt.Fprintf(w, "Leaderboard (%s)\n", period); err != nil {
		return err
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No players in this period.")
		return err
	}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			fmt.Sprintf("%d", r.Rank),
			r.Name,
			fmt.Sprintf("%d", r.Correct),
			fmt.Sprintf("%d", r.Total),
			fmt.Sprintf("%d%%", r.Accuracy),
			fmt.Sprintf("%d", r.Streak),
		})
	}
	return writeTable(w, []string{"#", "Name", "Correct", "Total", "Accuracy", "Streak"}, tableRows,
		map[int]bool{0: true, 2: true, 3: true, 4: true, 5: true})
}

func writeTable(w io.Writer, headers []string, rows [][]string, rightAlign map[int]bool) error {
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
