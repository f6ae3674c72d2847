// Package model defines shared data structures.
package model

import "time"

// DefaultTarget is the number of correct answers the progress bar counts toward.
const DefaultTarget = 100

// Config defines practice settings resolved from flags and the config file.
type Config struct {
	Lang        string `flag:"lang" validate:"required"`
	WordsFile   string `flag:"words-file"`
	ShuffleSeed int64  `flag:"shuffle-seed"`
	DBPath      string `flag:"db" validate:"required_unless=Ephemeral true"`
	Ephemeral   bool   `flag:"ephemeral"`
	LogLevel    string `flag:"log-level" validate:"omitempty,oneof=debug info warn error"`
	LogFile     string `flag:"log-file" validate:"required"`
}

// Account is a registered user. Password is kept in cleartext for
// compatibility with previously saved data.
type Account struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Stats    AccountStats `json:"stats"`
}

// AccountStats mirrors the account's progress.
type AccountStats struct {
	Correct    int        `json:"correct"`
	Total      int        `json:"total"`
	Streak     int        `json:"streak"`
	LastPlayed *time.Time `json:"lastPlayed"`
}

// Progress holds the correct/total counters and the goal.
type Progress struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
	Target  int `json:"target"`
}

// DefaultProgress returns zeroed counters with the default target.
func DefaultProgress() Progress {
	return Progress{Target: DefaultTarget}
}

// HistoryEntry records a single attempt. Timestamp is Unix milliseconds.
type HistoryEntry struct {
	Word      string `json:"word"`
	Attempt   string `json:"attempt"`
	IsCorrect bool   `json:"isCorrect"`
	Timestamp int64  `json:"timestamp"`
}

// Time returns the entry timestamp as a time.Time.
func (e HistoryEntry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// SpeechRate is one of the fixed pronunciation speeds.
type SpeechRate string

const (
	RateSlow   SpeechRate = "0.75"
	RateNormal SpeechRate = "1"
	RateFast   SpeechRate = "1.25"
)

// Settings are user preferences.
type Settings struct {
	DarkMode   bool       `json:"darkMode"`
	Volume     int        `json:"volume"`
	SpeechRate SpeechRate `json:"speechRate"`
}

// DefaultSettings returns the settings used when nothing is saved.
func DefaultSettings() Settings {
	return Settings{
		DarkMode:   false,
		Volume:     75,
		SpeechRate: RateNormal,
	}
}
