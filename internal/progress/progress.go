// Package progress accumulates attempt counters and history.
package progress

import (
	"math"
	"time"

	"github.com/verte-zerg/tuispell/internal/model"
)

// Aggregator holds the counters and the newest-first attempt history.
type Aggregator struct {
	counters model.Progress
	history  []model.HistoryEntry
}

// New returns an Aggregator seeded with saved counters and history.
func New(counters model.Progress, history []model.HistoryEntry) *Aggregator {
	a := &Aggregator{}
	a.Restore(counters, history)
	return a
}

// RecordAttempt counts an attempt and prepends it to the history.
func (a *Aggregator) RecordAttempt(word, attempt string, isCorrect bool, at time.Time) model.HistoryEntry {
	a.counters.Total++
	if isCorrect {
		a.counters.Correct++
	}
	entry := model.HistoryEntry{
		Word:      word,
		Attempt:   attempt,
		IsCorrect: isCorrect,
		Timestamp: at.UnixMilli(),
	}
	history := make([]model.HistoryEntry, 0, len(a.history)+1)
	history = append(history, entry)
	a.history = append(history, a.history...)
	return entry
}

// Reset zeroes the counters and clears the history. The target is kept.
func (a *Aggregator) Reset() {
	a.counters.Correct = 0
	a.counters.Total = 0
	a.history = []model.HistoryEntry{}
}

// ClearHistory drops the history and leaves the counters alone.
func (a *Aggregator) ClearHistory() {
	a.history = []model.HistoryEntry{}
}

// Restore replaces counters and history.
func (a *Aggregator) Restore(counters model.Progress, history []model.HistoryEntry) {
	a.counters = counters
	a.history = make([]model.HistoryEntry, len(history))
	copy(a.history, history)
}

// Counters returns the current counters.
func (a *Aggregator) Counters() model.Progress {
	return a.counters
}

// History returns a copy of the history, newest first.
func (a *Aggregator) History() []model.HistoryEntry {
	out := make([]model.HistoryEntry, len(a.history))
	copy(out, a.history)
	return out
}

// Accuracy is round(correct/total*100), or 0 with no attempts.
func (a *Aggregator) Accuracy() int {
	return Accuracy(a.counters)
}

// Percent is round(correct/target*100), or 0 without a target.
func (a *Aggregator) Percent() int {
	return Percent(a.counters)
}

// Accuracy computes the rounded accuracy percentage for p.
func Accuracy(p model.Progress) int {
	return ratio(p.Correct, p.Total)
}

// Percent computes the rounded percent-to-target for p.
func Percent(p model.Progress) int {
	return ratio(p.Correct, p.Target)
}

func ratio(num, den int) int {
	if den <= 0 {
		return 0
	}
	return int(math.Round(float64(num) / float64(den) * 100))
}
