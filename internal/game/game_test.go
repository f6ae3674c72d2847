package game

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuispell/internal/identity"
	"github.com/verte-zerg/tuispell/internal/model"
	"github.com/verte-zerg/tuispell/internal/session"
	"github.com/verte-zerg/tuispell/internal/storage"
	"github.com/verte-zerg/tuispell/internal/store"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func sequentialIDs() identity.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("acct-%d", n)
	}
}

func newGame(t *testing.T, kv *store.Memory, words ...string) *Game {
	t.Helper()
	return New(context.Background(), Options{
		Words:   words,
		Storage: storage.New(kv, nil),
		Now:     func() time.Time { return testNow },
		NewID:   sequentialIDs(),
	})
}

func register(t *testing.T, g *Game, name, email, password string) model.Account {
	t.Helper()
	acc, err := g.Register(context.Background(), identity.Registration{
		Name:            name,
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	})
	require.NoError(t, err)
	return acc
}

func raw(t *testing.T, kv *store.Memory, key string) (string, bool) {
	t.Helper()
	v, ok, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	return v, ok
}

func TestCorrectAnswerAdvancesAfterTransitions(t *testing.T) {
	ctx := context.Background()
	g := newGame(t, store.NewMemory(), "cat", "dog")

	out := g.Submit(ctx, "cat")
	require.True(t, out.Accepted)
	require.True(t, out.Correct)
	require.NotNil(t, out.Follow)
	assert.Equal(t, session.CorrectDelay, out.Follow.After)

	v := g.View()
	assert.Equal(t, model.Progress{Correct: 1, Total: 1, Target: 100}, v.Progress)
	require.Len(t, v.History, 1)
	assert.Equal(t, "cat", v.History[0].Word)
	assert.True(t, v.History[0].IsCorrect)
	assert.Equal(t, testNow.UnixMilli(), v.History[0].Timestamp)
	assert.True(t, v.Session.FeedbackVisible)

	next := g.Fire(ctx, *out.Follow)
	require.NotNil(t, next)
	assert.Equal(t, session.SkipDelay, next.After)
	assert.True(t, g.View().Session.Transitioning)
	assert.Nil(t, g.Fire(ctx, *next))

	v = g.View()
	assert.Equal(t, 1, v.Session.WordIndex)
	assert.Equal(t, "dog", g.Word())
	assert.False(t, v.Session.FeedbackVisible)
	assert.False(t, v.Session.Transitioning)
	assert.Nil(t, v.Session.CurrentAttempt)
}

func TestIncorrectAnswerKeepsWord(t *testing.T) {
	ctx := context.Background()
	g := newGame(t, store.NewMemory(), "cat", "dog")

	out := g.Submit(ctx, "xyz")
	assert.False(t, out.Correct)
	assert.Nil(t, out.Follow)

	v := g.View()
	assert.Equal(t, model.Progress{Correct: 0, Total: 1, Target: 100}, v.Progress)
	require.Len(t, v.History, 1)
	assert.False(t, v.History[0].IsCorrect)
	assert.Equal(t, "xyz", v.History[0].Attempt)
	assert.Equal(t, 0, v.Session.WordIndex)
	assert.True(t, v.Session.FeedbackVisible)
	require.NotNil(t, v.Session.CurrentAttempt)
	assert.Equal(t, "xyz", *v.Session.CurrentAttempt)
	assert.Equal(t, 0, v.Accuracy)

	g.Dismiss(ctx)
	assert.False(t, g.View().Session.FeedbackVisible)
}

func TestRegisterRejectsMismatchedPasswords(t *testing.T) {
	kv := store.NewMemory()
	g := newGame(t, kv, "cat")

	_, err := g.Register(context.Background(), identity.Registration{
		Name: "Ann", Email: "ann@example.com", Password: "a", ConfirmPassword: "b",
	})
	require.ErrorIs(t, err, identity.ErrPasswordMismatch)
	var verr *identity.ValidationError
	require.ErrorAs(t, err, &verr)

	assert.Empty(t, g.Accounts())
	_, ok := g.Account()
	assert.False(t, ok)
	_, ok = raw(t, kv, storage.KeyCurrentUser)
	assert.False(t, ok)
}

func TestLoginWithWrongPassword(t *testing.T) {
	ctx := context.Background()
	g := newGame(t, store.NewMemory(), "cat")
	register(t, g, "Ann", "ann@example.com", "secret")
	g.Logout(ctx)

	_, err := g.Login(ctx, "ann@example.com", "nope")
	var aerr *identity.AuthError
	require.ErrorAs(t, err, &aerr)
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	_, ok := g.Account()
	assert.False(t, ok)
}

func TestLogoutThenLoginRestoresProgress(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	g := newGame(t, kv, "cat", "dog")
	acc := register(t, g, "Ann", "ann@example.com", "secret")

	g.Submit(ctx, "cat")
	before := g.View()

	logged, ok := g.Logout(ctx)
	require.True(t, ok)
	assert.Equal(t, acc.ID, logged.ID)

	v := g.View()
	assert.Nil(t, v.Account)
	assert.Equal(t, model.DefaultProgress(), v.Progress)
	assert.Empty(t, v.History)
	_, ok = raw(t, kv, storage.KeyCurrentUser)
	assert.False(t, ok)
	_, ok = raw(t, kv, storage.ProgressKey(acc.ID))
	assert.True(t, ok)
	_, ok = raw(t, kv, storage.HistoryKey(acc.ID))
	assert.True(t, ok)

	_, err := g.Login(ctx, "ann@example.com", "secret")
	require.NoError(t, err)
	after := g.View()
	assert.Equal(t, before.Progress, after.Progress)
	assert.Equal(t, before.History, after.History)
	require.NotNil(t, after.Account)
	assert.Equal(t, 1, after.Account.Stats.Correct)
	assert.Equal(t, 1, after.Account.Stats.Total)
}

func TestLoginWithoutSnapshotKeepsCurrentProgress(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	g := newGame(t, kv, "cat", "dog")
	register(t, g, "Ann", "ann@example.com", "secret")
	require.NoError(t, kv.Delete(ctx, storage.KeyCurrentUser))

	g = newGame(t, kv, "cat", "dog")
	g.Submit(ctx, "xyz")
	_, err := g.Login(ctx, "ann@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, 1, g.View().Progress.Total)
}

func TestRegisterWhileLoggedInKeepsPreviousAccount(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	g := newGame(t, kv, "cat", "dog")
	ann := register(t, g, "Ann", "ann@example.com", "secret")
	g.Submit(ctx, "cat")
	g.Submit(ctx, "xyz")
	annHistory := g.View().History

	bob := register(t, g, "Bob", "bob@example.com", "secret")
	v := g.View()
	require.NotNil(t, v.Account)
	assert.Equal(t, bob.ID, v.Account.ID)
	assert.Equal(t, 0, v.Account.Stats.Correct)
	assert.Equal(t, 0, v.Account.Stats.Total)
	assert.Equal(t, model.DefaultProgress(), v.Progress)
	assert.Empty(t, v.History)
	_, ok := raw(t, kv, storage.ProgressKey(ann.ID))
	assert.True(t, ok)

	g.Logout(ctx)
	_, err := g.Login(ctx, "ann@example.com", "secret")
	require.NoError(t, err)
	v = g.View()
	assert.Equal(t, 1, v.Progress.Correct)
	assert.Equal(t, 2, v.Progress.Total)
	assert.Equal(t, annHistory, v.History)
	assert.Equal(t, 1, v.Account.Stats.Correct)
	assert.Equal(t, 2, v.Account.Stats.Total)
}

func TestLoginWhileLoggedInSwitchesAccounts(t *testing.T) {
	ctx := context.Background()
	g := newGame(t, store.NewMemory(), "cat", "dog")
	register(t, g, "Ann", "ann@example.com", "secret")
	g.Logout(ctx)
	register(t, g, "Bob", "bob@example.com", "secret")
	g.Submit(ctx, "cat")

	ann, err := g.Login(ctx, "ann@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Ann", ann.Name)
	assert.Equal(t, 0, ann.Stats.Total)
	assert.Equal(t, 0, g.View().Progress.Total)

	_, err = g.Login(ctx, "bob@example.com", "secret")
	require.NoError(t, err)
	v := g.View()
	assert.Equal(t, 1, v.Progress.Correct)
	assert.Equal(t, 1, v.Account.Stats.Correct)

	rows := g.Leaderboard(identity.PeriodAllTime)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bob", rows[0].Name)
	assert.Equal(t, 0, rows[1].Total)
}

func TestFailedLoginKeepsActiveAccount(t *testing.T) {
	ctx := context.Background()
	g := newGame(t, store.NewMemory(), "cat", "dog")
	register(t, g, "Ann", "ann@example.com", "secret")
	g.Submit(ctx, "cat")

	_, err := g.Login(ctx, "ann@example.com", "nope")
	require.Error(t, err)
	acc, ok := g.Account()
	require.True(t, ok)
	assert.Equal(t, "Ann", acc.Name)
	assert.Equal(t, 1, g.View().Progress.Correct)
}

func TestReloadRoundTrips(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	g := newGame(t, kv, "cat", "dog", "fish")
	register(t, g, "Ann", "ann@example.com", "secret")

	out := g.Submit(ctx, "cat")
	next := g.Fire(ctx, *out.Follow)
	g.Fire(ctx, *next)
	g.Submit(ctx, "dgo")
	g.UpdateSettings(ctx, model.Settings{DarkMode: true, Volume: 40, SpeechRate: model.RateSlow})
	want := g.View()

	reloaded := newGame(t, kv, "cat", "dog", "fish")
	got := reloaded.View()
	assert.Equal(t, want.Progress, got.Progress)
	assert.Equal(t, want.History, got.History)
	assert.Equal(t, want.Settings, got.Settings)
	assert.Equal(t, want.Session.WordIndex, got.Session.WordIndex)
	require.NotNil(t, got.Session.CurrentAttempt)
	assert.Equal(t, "dgo", *got.Session.CurrentAttempt)
	assert.False(t, got.Session.FeedbackVisible)
	require.NotNil(t, got.Account)
	assert.Equal(t, want.Account.ID, got.Account.ID)
	assert.Len(t, reloaded.Accounts(), 1)
}

func TestPersistedLayout(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	g := newGame(t, kv, "cat", "dog")
	g.Submit(ctx, "cat")

	v, ok := raw(t, kv, storage.KeyProgress)
	require.True(t, ok)
	assert.JSONEq(t, `{"correct":1,"total":1,"target":100}`, v)

	v, _ = raw(t, kv, storage.KeyUsers)
	assert.Equal(t, "[]", v)
	v, _ = raw(t, kv, storage.KeyWordIndex)
	assert.Equal(t, "0", v)
	v, _ = raw(t, kv, storage.KeyLastAttempt)
	assert.Equal(t, `"cat"`, v)
	v, _ = raw(t, kv, storage.KeyTheme)
	assert.Equal(t, "light", v)
	v, _ = raw(t, kv, storage.KeySettings)
	assert.JSONEq(t, `{"darkMode":false,"volume":75,"speechRate":"1"}`, v)
}

func TestResetClearsProgressAndAdvances(t *testing.T) {
	ctx := context.Background()
	g := newGame(t, store.NewMemory(), "cat", "dog")
	g.Submit(ctx, "cat")
	g.Submit(ctx, "nope")

	tr := g.Reset(ctx)
	v := g.View()
	assert.Equal(t, model.DefaultProgress(), v.Progress)
	assert.NotNil(t, v.History)
	assert.Empty(t, v.History)
	assert.True(t, v.Session.Transitioning)

	g.Fire(ctx, tr)
	assert.Equal(t, "dog", g.Word())
}

func TestStreakAndLastPlayed(t *testing.T) {
	ctx := context.Background()
	g := newGame(t, store.NewMemory(), "cat", "dog")
	register(t, g, "Ann", "ann@example.com", "secret")

	out := g.Submit(ctx, "cat")
	next := g.Fire(ctx, *out.Follow)
	g.Fire(ctx, *next)
	g.Submit(ctx, "dog")

	acc, ok := g.Account()
	require.True(t, ok)
	assert.Equal(t, 2, acc.Stats.Streak)
	require.NotNil(t, acc.Stats.LastPlayed)
	assert.True(t, testNow.Equal(*acc.Stats.LastPlayed))

	g.Dismiss(ctx)
	g.Submit(ctx, "dgo")
	acc, _ = g.Account()
	assert.Equal(t, 0, acc.Stats.Streak)
	assert.Equal(t, 2, acc.Stats.Correct)
	assert.Equal(t, 3, acc.Stats.Total)
}

func TestLeaderboard(t *testing.T) {
	ctx := context.Background()
	g := newGame(t, store.NewMemory(), "cat", "dog")
	register(t, g, "Ann", "ann@example.com", "secret")
	g.Submit(ctx, "cat")
	g.Logout(ctx)
	register(t, g, "Bob", "bob@example.com", "secret")

	rows := g.Leaderboard(identity.PeriodAllTime)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ann", rows[0].Name)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 100, rows[0].Accuracy)

	daily := g.Leaderboard(identity.PeriodDaily)
	require.Len(t, daily, 1)
	assert.Equal(t, "Ann", daily[0].Name)
}

func TestThemeKeyOverridesSettings(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, storage.KeySettings, `{"darkMode":false,"volume":30,"speechRate":"1.25"}`))
	require.NoError(t, kv.Set(ctx, storage.KeyTheme, "dark"))

	g := newGame(t, kv, "cat")
	s := g.Settings()
	assert.True(t, s.DarkMode)
	assert.Equal(t, 30, s.Volume)
	assert.Equal(t, model.RateFast, s.SpeechRate)
	assert.InDelta(t, 1.25, g.SpeechOptions().Rate, 1e-9)
}

func TestCorruptedValuesFallBackToDefaults(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, storage.KeyProgress, "{not json"))
	require.NoError(t, kv.Set(ctx, storage.KeyHistory, "null"))
	require.NoError(t, kv.Set(ctx, storage.KeyWordIndex, "7"))

	g := newGame(t, kv, "cat", "dog")
	v := g.View()
	assert.Equal(t, model.DefaultProgress(), v.Progress)
	assert.Empty(t, v.History)
	assert.Equal(t, 0, v.Session.WordIndex)
	assert.Equal(t, "cat", g.Word())
}

func TestPracticeJumpsToWord(t *testing.T) {
	ctx := context.Background()
	g := newGame(t, store.NewMemory(), "cat", "dog")
	assert.True(t, g.Practice(ctx, "DOG"))
	assert.Equal(t, "dog", g.Word())
	assert.False(t, g.Practice(ctx, "bird"))
}

func TestDefaultWordList(t *testing.T) {
	g := New(context.Background(), Options{})
	assert.Len(t, g.Words(), 20)
	assert.Equal(t, "example", g.Word())
	out := g.Submit(context.Background(), "Example")
	assert.True(t, out.Correct)
}

func TestStaleTransitionIgnored(t *testing.T) {
	ctx := context.Background()
	g := newGame(t, store.NewMemory(), "cat", "dog", "fish")
	out := g.Submit(ctx, "cat")
	skip := g.Skip(ctx)

	assert.Nil(t, g.Fire(ctx, *out.Follow))
	g.Fire(ctx, skip)
	assert.Equal(t, "dog", g.Word())
}
