package stats

import (
	"sort"
	"strings"

	"github.com/verte-zerg/tuispell/internal/model"
)

// MissedWord counts misses for one word.
type MissedWord struct {
	Word        string
	Misses      int
	Attempts    int
	LastAttempt string
}

// MostMissed returns the top N words by miss count from a newest-first
// history. Words are grouped case-insensitively.
func MostMissed(history []model.HistoryEntry, n int) []MissedWord {
	if n <= 0 || len(history) == 0 {
		return nil
	}
	byWord := map[string]*MissedWord{}
	for _, e := range history {
		key := strings.ToLower(e.Word)
		item, ok := byWord[key]
		if !ok {
			item = &MissedWord{Word: e.Word}
			byWord[key] = item
		}
		item.Attempts++
		if !e.IsCorrect {
			item.Misses++
			if item.LastAttempt == "" {
				item.LastAttempt = e.Attempt
			}
		}
	}
	items := make([]MissedWord, 0, len(byWord))
	for _, item := range byWord {
		if item.Misses > 0 {
			items = append(items, *item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Misses == items[j].Misses {
			return items[i].Word < items[j].Word
		}
		return items[i].Misses > items[j].Misses
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
