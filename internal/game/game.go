// Package game ties the practice session, progress, accounts and settings
// together and mirrors them into storage after every change.
package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/verte-zerg/tuispell/internal/identity"
	"github.com/verte-zerg/tuispell/internal/model"
	"github.com/verte-zerg/tuispell/internal/progress"
	"github.com/verte-zerg/tuispell/internal/session"
	"github.com/verte-zerg/tuispell/internal/settings"
	"github.com/verte-zerg/tuispell/internal/speech"
	"github.com/verte-zerg/tuispell/internal/storage"
	"github.com/verte-zerg/tuispell/internal/wordlist"
)

// Options configure a Game.
type Options struct {
	// Words is the practice list; empty uses wordlist.Default.
	Words   []string
	Storage *storage.Adapter
	Logger  *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
	// NewID defaults to identity.NewID.
	NewID identity.IDFunc
}

// View is a read-only snapshot for rendering.
type View struct {
	Session  session.State
	Progress model.Progress
	Accuracy int
	Percent  int
	History  []model.HistoryEntry
	Settings model.Settings
	Account  *model.Account
}

// Game is the single practice session object.
type Game struct {
	store    *storage.Adapter
	log      *slog.Logger
	now      func() time.Time
	machine  *session.Machine
	progress *progress.Aggregator
	accounts *identity.Store
	settings model.Settings
}

// New builds a Game seeded from storage.
func New(ctx context.Context, opts Options) *Game {
	words := opts.Words
	if len(words) == 0 {
		words = wordlist.Default()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	st := opts.Storage
	if st == nil {
		st = storage.New(discardKV{}, log)
	}

	current := storage.Load[*model.Account](ctx, st, storage.KeyCurrentUser, nil)
	users := storage.Load(ctx, st, storage.KeyUsers, []model.Account{})
	index := storage.Load(ctx, st, storage.KeyWordIndex, 0)
	if index < 0 || index >= len(words) {
		log.Warn("saved word index out of range, starting over", "index", index, "words", len(words))
		index = 0
	}
	lastAttempt := storage.Load[*string](ctx, st, storage.KeyLastAttempt, nil)
	counters := storage.Load(ctx, st, storage.KeyProgress, model.DefaultProgress())
	history := storage.Load(ctx, st, storage.KeyHistory, []model.HistoryEntry{})
	prefs := storage.Load(ctx, st, storage.KeySettings, model.DefaultSettings())
	if theme, ok := st.LoadRaw(ctx, storage.KeyTheme); ok {
		prefs = settings.ApplyTheme(prefs, theme)
	}

	return &Game{
		store:    st,
		log:      log,
		now:      now,
		machine:  session.New(words, index, lastAttempt),
		progress: progress.New(counters, history),
		accounts: identity.New(users, current, opts.NewID),
		settings: settings.Normalize(prefs),
	}
}

// View returns the current state.
func (g *Game) View() View {
	v := View{
		Session:  g.machine.State(),
		Progress: g.progress.Counters(),
		Accuracy: g.progress.Accuracy(),
		Percent:  g.progress.Percent(),
		History:  g.progress.History(),
		Settings: g.settings,
	}
	if acc, ok := g.accounts.Active(); ok {
		v.Account = &acc
	}
	return v
}

// Word returns the word being practiced.
func (g *Game) Word() string {
	return g.machine.Word()
}

// Words returns the practice list.
func (g *Game) Words() []string {
	return g.machine.Words()
}

// Settings returns the current settings.
func (g *Game) Settings() model.Settings {
	return g.settings
}

// Account returns the active account.
func (g *Game) Account() (model.Account, bool) {
	return g.accounts.Active()
}

// Accounts returns every registered account.
func (g *Game) Accounts() []model.Account {
	return g.accounts.Accounts()
}

// Leaderboard ranks the registered accounts.
func (g *Game) Leaderboard(period identity.Period) []identity.Standing {
	g.syncActive()
	return identity.Leaderboard(g.accounts.Accounts(), period, g.now())
}

// SpeechOptions converts the settings for a Speaker.
func (g *Game) SpeechOptions() speech.Options {
	return speech.Options{
		Rate:   settings.RateFactor(g.settings.SpeechRate),
		Volume: g.settings.Volume,
	}
}

// Submit scores an attempt for the current word and records it.
func (g *Game) Submit(ctx context.Context, text string) session.Outcome {
	out := g.machine.Submit(text)
	if !out.Accepted {
		return out
	}
	at := g.now()
	g.progress.RecordAttempt(out.Word, out.Attempt, out.Correct, at)
	g.accounts.UpdateActive(func(st *model.AccountStats) {
		if out.Correct {
			st.Streak++
		} else {
			st.Streak = 0
		}
		played := at.UTC()
		st.LastPlayed = &played
	})
	g.log.Debug("attempt recorded", "word", out.Word, "correct", out.Correct)
	g.persist(ctx)
	return out
}

// Skip starts advancing to the next word.
func (g *Game) Skip(ctx context.Context) session.Transition {
	t := g.machine.Skip()
	g.persist(ctx)
	return t
}

// Fire applies a delayed transition; see session.Machine.Fire.
func (g *Game) Fire(ctx context.Context, t session.Transition) *session.Transition {
	next := g.machine.Fire(t)
	g.persist(ctx)
	return next
}

// Dismiss hides the feedback for the current attempt.
func (g *Game) Dismiss(ctx context.Context) {
	g.machine.Dismiss()
	g.persist(ctx)
}

// Practice jumps to word if it is in the list.
func (g *Game) Practice(ctx context.Context, word string) bool {
	if !g.machine.Jump(word) {
		return false
	}
	g.persist(ctx)
	return true
}

// Reset zeroes progress, clears history and moves on to the next word.
func (g *Game) Reset(ctx context.Context) session.Transition {
	g.progress.Reset()
	g.log.Info("progress reset")
	t := g.machine.Skip()
	g.persist(ctx)
	return t
}

// ClearHistory drops the attempt history.
func (g *Game) ClearHistory(ctx context.Context) {
	g.progress.ClearHistory()
	g.persist(ctx)
}

// UpdateSettings replaces the settings.
func (g *Game) UpdateSettings(ctx context.Context, s model.Settings) model.Settings {
	g.settings = settings.Normalize(s)
	g.persist(ctx)
	return g.settings
}

// Register creates and activates an account. An account that was active
// before is snapshotted first, as on logout. The new account starts from
// empty progress.
func (g *Game) Register(ctx context.Context, r identity.Registration) (model.Account, error) {
	prev, hadPrev := g.syncActive()
	acc, err := g.accounts.Register(r)
	if err != nil {
		g.log.Info("registration rejected", "email", r.Email, "err", err)
		return model.Account{}, err
	}
	g.log.Info("account registered", "id", acc.ID)
	if hadPrev {
		g.snapshot(ctx, prev)
	}
	g.progress.Restore(model.DefaultProgress(), nil)
	g.persist(ctx)
	acc, _ = g.accounts.Active()
	return acc, nil
}

// Login activates the account matching email and password and restores its
// saved progress and history. Switching away from another account snapshots
// that account first and does not carry its progress over.
func (g *Game) Login(ctx context.Context, email, password string) (model.Account, error) {
	prev, hadPrev := g.syncActive()
	acc, err := g.accounts.Authenticate(email, password)
	if err != nil {
		g.log.Info("login rejected", "email", email)
		return model.Account{}, err
	}
	g.log.Info("logged in", "id", acc.ID)
	if hadPrev {
		g.snapshot(ctx, prev)
		g.progress.Restore(model.DefaultProgress(), nil)
	}
	g.restore(ctx, acc)
	g.persist(ctx)
	acc, _ = g.accounts.Active()
	return acc, nil
}

// Logout snapshots the active account's progress and history, clears the
// active account and resets progress and history.
func (g *Game) Logout(ctx context.Context) (model.Account, bool) {
	acc, ok := g.syncActive()
	if ok {
		g.snapshot(ctx, acc)
	}
	g.accounts.Logout()
	g.store.Remove(ctx, storage.KeyCurrentUser)
	g.progress.Restore(model.DefaultProgress(), nil)
	g.persist(ctx)
	if ok {
		g.log.Info("logged out", "id", acc.ID)
	}
	return acc, ok
}

// snapshot saves the in-memory progress and history under acc's keys.
func (g *Game) snapshot(ctx context.Context, acc model.Account) {
	g.store.Save(ctx, storage.ProgressKey(acc.ID), g.progress.Counters())
	g.store.Save(ctx, storage.HistoryKey(acc.ID), g.progress.History())
}

func (g *Game) restore(ctx context.Context, acc model.Account) {
	counters := g.progress.Counters()
	history := g.progress.History()
	if saved := storage.Load[*model.Progress](ctx, g.store, storage.ProgressKey(acc.ID), nil); saved != nil {
		counters = *saved
	}
	if saved := storage.Load[*[]model.HistoryEntry](ctx, g.store, storage.HistoryKey(acc.ID), nil); saved != nil {
		history = *saved
	}
	g.progress.Restore(counters, history)
}

// syncActive mirrors the counters into the active account's stats.
func (g *Game) syncActive() (model.Account, bool) {
	counters := g.progress.Counters()
	return g.accounts.UpdateActive(func(st *model.AccountStats) {
		st.Correct = counters.Correct
		st.Total = counters.Total
	})
}

func (g *Game) persist(ctx context.Context) {
	if acc, ok := g.syncActive(); ok {
		g.store.Save(ctx, storage.KeyCurrentUser, acc)
	}
	g.store.Save(ctx, storage.KeyUsers, g.accounts.Accounts())
	g.store.Save(ctx, storage.KeyWordIndex, g.machine.Index())
	g.store.Save(ctx, storage.KeyLastAttempt, g.machine.LastAttempt())
	g.store.Save(ctx, storage.KeyProgress, g.progress.Counters())
	g.store.Save(ctx, storage.KeyHistory, g.progress.History())
	g.store.Save(ctx, storage.KeySettings, g.settings)
	g.store.SaveRaw(ctx, storage.KeyTheme, settings.Theme(g.settings))
}

type discardKV struct{}

func (discardKV) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (discardKV) Set(context.Context, string, string) error         { return nil }
func (discardKV) Delete(context.Context, string) error              { return nil }
