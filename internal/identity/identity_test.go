package identity

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuispell/internal/model"
)

func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func validRegistration() Registration {
	return Registration{
		Name:            "Ada",
		Email:           "ada@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
	}
}

func TestRegisterActivatesNewAccount(t *testing.T) {
	s := New(nil, nil, sequentialIDs())
	acc, err := s.Register(validRegistration())
	require.NoError(t, err)

	assert.Equal(t, "id-1", acc.ID)
	assert.Equal(t, model.AccountStats{}, acc.Stats)
	active, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, acc, active)
	assert.Len(t, s.Accounts(), 1)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	s := New(nil, nil, sequentialIDs())
	r := validRegistration()
	r.ConfirmPassword = "different"

	_, err := s.Register(r)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Empty(t, s.Accounts())
	_, ok := s.Active()
	assert.False(t, ok)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := New(nil, nil, sequentialIDs())
	_, err := s.Register(validRegistration())
	require.NoError(t, err)

	r := validRegistration()
	r.Name = "Other"
	_, err = s.Register(r)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Len(t, s.Accounts(), 1)
}

func TestRegisterRequiresFields(t *testing.T) {
	s := New(nil, nil, sequentialIDs())
	r := validRegistration()
	r.Name = ""
	_, err := s.Register(r)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	r = validRegistration()
	r.Email = "not-an-email"
	_, err = s.Register(r)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
	assert.Empty(t, s.Accounts())
}

func TestAuthenticate(t *testing.T) {
	s := New(nil, nil, sequentialIDs())
	acc, err := s.Register(validRegistration())
	require.NoError(t, err)
	s.Logout()

	_, err = s.Authenticate("ada@example.com", "wrong")
	var aerr *AuthError
	require.ErrorAs(t, err, &aerr)
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
	assert.Equal(t, "invalid email or password", err.Error())
	_, ok := s.Active()
	assert.False(t, ok)

	_, err = s.Authenticate("nobody@example.com", "secret")
	require.ErrorAs(t, err, &aerr)

	got, err := s.Authenticate("ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)
	active, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, acc.ID, active.ID)
}

func TestLogout(t *testing.T) {
	s := New(nil, nil, sequentialIDs())
	acc, err := s.Register(validRegistration())
	require.NoError(t, err)

	out, ok := s.Logout()
	require.True(t, ok)
	assert.Equal(t, acc.ID, out.ID)
	_, ok = s.Active()
	assert.False(t, ok)

	_, ok = s.Logout()
	assert.False(t, ok)
}

func TestUpdateActive(t *testing.T) {
	s := New(nil, nil, sequentialIDs())
	_, ok := s.UpdateActive(func(st *model.AccountStats) { st.Correct = 5 })
	assert.False(t, ok)

	_, err := s.Register(validRegistration())
	require.NoError(t, err)
	acc, ok := s.UpdateActive(func(st *model.AccountStats) {
		st.Correct = 5
		st.Total = 6
	})
	require.True(t, ok)
	assert.Equal(t, 5, acc.Stats.Correct)
	assert.Equal(t, 6, s.Accounts()[0].Stats.Total)
}

func TestNewKeepsActiveMissingFromList(t *testing.T) {
	active := model.Account{ID: "solo", Email: "solo@example.com", Password: "pw"}
	s := New(nil, &active, sequentialIDs())
	got, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, "solo", got.ID)
	assert.Len(t, s.Accounts(), 1)
}

func TestNewIDIsUnique(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}

func TestLeaderboard(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-2 * time.Hour)
	lastWeek := now.Add(-3 * 24 * time.Hour)
	old := now.Add(-30 * 24 * time.Hour)
	accounts := []model.Account{
		{Name: "Cy", Stats: model.AccountStats{Correct: 10, Total: 20, LastPlayed: &old}},
		{Name: "Bo", Stats: model.AccountStats{Correct: 10, Total: 10, LastPlayed: &lastWeek}},
		{Name: "Al", Stats: model.AccountStats{Correct: 4, Total: 4, LastPlayed: &recent}},
		{Name: "Di", Stats: model.AccountStats{}},
	}

	all := Leaderboard(accounts, PeriodAllTime, now)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"Bo", "Cy", "Al", "Di"}, names(all))
	assert.Equal(t, 1, all[0].Rank)
	assert.Equal(t, 100, all[0].Accuracy)
	assert.Equal(t, 50, all[1].Accuracy)

	weekly := Leaderboard(accounts, PeriodWeekly, now)
	assert.Equal(t, []string{"Bo", "Al"}, names(weekly))

	daily := Leaderboard(accounts, PeriodDaily, now)
	assert.Equal(t, []string{"Al"}, names(daily))
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("Weekly")
	require.NoError(t, err)
	assert.Equal(t, PeriodWeekly, p)
	p, err = ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodAllTime, p)
	_, err = ParsePeriod("monthly")
	assert.Error(t, err)
}

func names(rows []Standing) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}
