// Package storage reads and writes typed records on top of a key-value store.
// Every failure is logged and swallowed: loads fall back to the caller's
// default and saves are best-effort.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// Persisted keys. The layout is shared with data written by earlier versions.
const (
	KeyCurrentUser = "currentUser"
	KeyUsers       = "users"
	KeyWordIndex   = "wordIndex"
	KeyProgress    = "progress"
	KeyHistory     = "history"
	KeySettings    = "settings"
	KeyLastAttempt = "lastAttempt"
	KeyTheme       = "theme"
)

// ProgressKey returns the per-account progress snapshot key.
func ProgressKey(accountID string) string {
	return "progress_" + accountID
}

// HistoryKey returns the per-account history snapshot key.
func HistoryKey(accountID string) string {
	return "history_" + accountID
}

// KV is the raw key-value backend.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// StorageError describes a swallowed storage failure.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Adapter is the typed view over a KV.
type Adapter struct {
	kv  KV
	log *slog.Logger
}

// New returns an Adapter. A nil logger discards diagnostics.
func New(kv KV, log *slog.Logger) *Adapter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Adapter{kv: kv, log: log}
}

// Load decodes the JSON value stored under key. Missing, empty, null or
// malformed values yield def.
func Load[T any](ctx context.Context, a *Adapter, key string, def T) T {
	raw, ok := a.LoadRaw(ctx, key)
	if !ok {
		return def
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return def
	}
	var v T
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		a.report(&StorageError{Op: "load", Key: key, Err: err})
		return def
	}
	return v
}

// LoadRaw returns the undecoded value stored under key.
func (a *Adapter) LoadRaw(ctx context.Context, key string) (string, bool) {
	raw, ok, err := a.kv.Get(ctx, key)
	if err != nil {
		a.report(&StorageError{Op: "load", Key: key, Err: err})
		return "", false
	}
	return raw, ok
}

// Save encodes value as JSON and stores it under key.
func (a *Adapter) Save(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		a.report(&StorageError{Op: "save", Key: key, Err: err})
		return
	}
	a.SaveRaw(ctx, key, string(data))
}

// SaveRaw stores value under key without encoding.
func (a *Adapter) SaveRaw(ctx context.Context, key, value string) {
	if err := a.kv.Set(ctx, key, value); err != nil {
		a.report(&StorageError{Op: "save", Key: key, Err: err})
	}
}

// Remove deletes key.
func (a *Adapter) Remove(ctx context.Context, key string) {
	if err := a.kv.Delete(ctx, key); err != nil {
		a.report(&StorageError{Op: "remove", Key: key, Err: err})
	}
}

func (a *Adapter) report(err *StorageError) {
	a.log.Warn("storage failure", "op", err.Op, "key", err.Key, "err", err.Err)
}
