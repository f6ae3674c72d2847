// Package identity keeps the registered accounts and the active one.
package identity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/verte-zerg/tuispell/internal/model"
	"github.com/verte-zerg/tuispell/internal/progress"
)

// Sentinel causes carried by ValidationError and AuthError.
var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError rejects a registration.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AuthError rejects a login.
type AuthError struct {
	Email string
	Err   error
}

func (e *AuthError) Error() string {
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Registration is the signup form.
type Registration struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"required"`
}

// IDFunc produces a new account id.
type IDFunc func() string

// NewID returns a time-ordered UUIDv7 string.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Store holds the account list and the active account id.
type Store struct {
	accounts []model.Account
	activeID string
	newID    IDFunc
	validate *validator.Validate
}

// New returns a Store over accounts. active may be nil or an account that is
// not in the list; in the latter case it is appended so the pointer stays
// valid.
func New(accounts []model.Account, active *model.Account, newID IDFunc) *Store {
	if newID == nil {
		newID = NewID
	}
	s := &Store{
		accounts: append([]model.Account(nil), accounts...),
		newID:    newID,
		validate: validator.New(),
	}
	if active != nil && active.ID != "" {
		if _, ok := s.index(active.ID); !ok {
			s.accounts = append(s.accounts, *active)
		}
		s.activeID = active.ID
	}
	return s
}

// Register validates the form, appends a new account with zeroed stats and
// activates it.
func (s *Store) Register(r Registration) (model.Account, error) {
	if r.Password != r.ConfirmPassword {
		return model.Account{}, &ValidationError{Field: "confirmPassword", Err: ErrPasswordMismatch}
	}
	if err := s.validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return model.Account{}, &ValidationError{
				Field: lowerFirst(fe.Field()),
				Err:   fmt.Errorf("failed %q check", fe.Tag()),
			}
		}
		return model.Account{}, &ValidationError{Err: err}
	}
	for _, acc := range s.accounts {
		if acc.Email == r.Email {
			return model.Account{}, &ValidationError{Field: "email", Err: ErrEmailExists}
		}
	}
	acc := model.Account{
		ID:       s.newID(),
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
	s.accounts = append(s.accounts, acc)
	s.activeID = acc.ID
	return acc, nil
}

// Authenticate activates the account matching email and password exactly.
func (s *Store) Authenticate(email, password string) (model.Account, error) {
	for _, acc := range s.accounts {
		if acc.Email == email && acc.Password == password {
			s.activeID = acc.ID
			return acc, nil
		}
	}
	return model.Account{}, &AuthError{Email: email, Err: ErrInvalidCredentials}
}

// Logout clears the active account and returns it.
func (s *Store) Logout() (model.Account, bool) {
	acc, ok := s.Active()
	s.activeID = ""
	return acc, ok
}

// Active returns the active account.
func (s *Store) Active() (model.Account, bool) {
	if s.activeID == "" {
		return model.Account{}, false
	}
	i, ok := s.index(s.activeID)
	if !ok {
		return model.Account{}, false
	}
	return s.accounts[i], true
}

// UpdateActive applies fn to the active account's stats.
func (s *Store) UpdateActive(fn func(*model.AccountStats)) (model.Account, bool) {
	i, ok := s.index(s.activeID)
	if !ok || s.activeID == "" {
		return model.Account{}, false
	}
	fn(&s.accounts[i].Stats)
	return s.accounts[i], true
}

// Accounts returns a copy of the account list.
func (s *Store) Accounts() []model.Account {
	out := make([]model.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

func (s *Store) index(id string) (int, bool) {
	for i, acc := range s.accounts {
		if acc.ID == id {
			return i, true
		}
	}
	return 0, false
}

// Period filters leaderboard standings by last activity.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodAllTime Period = "all-time"
)

// ParsePeriod accepts daily, weekly and all-time.
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodDaily:
		return PeriodDaily, nil
	case PeriodWeekly:
		return PeriodWeekly, nil
	case PeriodAllTime, "":
		return PeriodAllTime, nil
	}
	return "", fmt.Errorf("unknown period %q (want daily, weekly or all-time)", s)
}

// Standing is one leaderboard row.
type Standing struct {
	Rank     int
	Name     string
	Correct  int
	Total    int
	Accuracy int
	Streak   int
}

// Leaderboard ranks accounts by correct answers, then accuracy, then name.
// Accounts that have not played within the period are left out.
func Leaderboard(accounts []model.Account, period Period, now time.Time) []Standing {
	var cutoff time.Time
	switch period {
	case PeriodDaily:
		cutoff = now.Add(-24 * time.Hour)
	case PeriodWeekly:
		cutoff = now.Add(-7 * 24 * time.Hour)
	}
	rows := make([]Standing, 0, len(accounts))
	for _, acc := range accounts {
		if !cutoff.IsZero() && (acc.Stats.LastPlayed == nil || acc.Stats.LastPlayed.Before(cutoff)) {
			continue
		}
		rows = append(rows, Standing{
			Name:     acc.Name,
			Correct:  acc.Stats.Correct,
			Total:    acc.Stats.Total,
			Accuracy: progress.Accuracy(model.Progress{Correct: acc.Stats.Correct, Total: acc.Stats.Total}),
			Streak:   acc.Stats.Streak,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Correct != rows[j].Correct {
			return rows[i].Correct > rows[j].Correct
		}
		if rows[i].Accuracy != rows[j].Accuracy {
			return rows[i].Accuracy > rows[j].Accuracy
		}
		return rows[i].Name < rows[j].Name
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
