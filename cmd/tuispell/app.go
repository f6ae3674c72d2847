package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuispell/internal/config"
	"github.com/verte-zerg/tuispell/internal/game"
	"github.com/verte-zerg/tuispell/internal/logging"
	"github.com/verte-zerg/tuispell/internal/model"
	"github.com/verte-zerg/tuispell/internal/speech"
	"github.com/verte-zerg/tuispell/internal/storage"
	"github.com/verte-zerg/tuispell/internal/store"
	"github.com/verte-zerg/tuispell/internal/wordlist"
)

// app is the wired set of components a command works with.
type app struct {
	cfg     model.Config
	game    *game.Game
	speaker speech.Speaker
	log     *slog.Logger
	closers []io.Closer
}

// openApp merges the config file into opts and builds the components.
func openApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &opts.lang, fileCfg.Practice.Lang)
	applyStringConfig(cmd, "words-file", &opts.wordsFile, fileCfg.Practice.WordsFile)
	applyInt64Config(cmd, "shuffle-seed", &opts.shuffleSeed, fileCfg.Practice.ShuffleSeed)
	applyStringConfig(cmd, "db", &opts.dbPath, fileCfg.Storage.Path)
	applyStringConfig(cmd, "log-level", &opts.logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &opts.logFile, fileCfg.Log.File)
	applyBoolConfig(cmd, "speech", &opts.speech, fileCfg.Speech.Enabled)
	applyStringConfig(cmd, "speech-command", &opts.speechCommand, fileCfg.Speech.Command)

	cfg := model.Config{
		Lang:        opts.lang,
		WordsFile:   opts.wordsFile,
		ShuffleSeed: opts.shuffleSeed,
		DBPath:      opts.dbPath,
		Ephemeral:   opts.ephemeral,
		LogLevel:    opts.logLevel,
		LogFile:     opts.logFile,
	}
	if err := config.ValidateResolved(cfg); err != nil {
		return nil, err
	}

	words, err := loadWords(cfg)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	log, logCloser, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	a.log = log
	a.closers = append(a.closers, logCloser)

	var kv storage.KV
	if cfg.Ephemeral {
		kv = store.NewMemory()
	} else {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to open db: %w", err)
		}
		a.closers = append(a.closers, st)
		kv = st
	}

	a.game = game.New(cmd.Context(), game.Options{
		Words:   words,
		Storage: storage.New(kv, log),
		Logger:  log,
	})
	if opts.speech {
		a.speaker = speech.NewCommand(opts.speechCommand, fileCfg.Speech.Args)
	} else {
		a.speaker = speech.Disabled{}
	}
	log.Debug("started", "command", cmd.Name(), "db", cfg.DBPath, "ephemeral", cfg.Ephemeral, "words", len(words))
	return a, nil
}

// Close releases the database and the log file.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if cerr := a.closers[i].Close(); cerr != nil {
			logErrf("failed to close: %v\n", cerr)
		}
	}
	a.closers = nil
}

func loadWords(cfg model.Config) ([]string, error) {
	words := wordlist.Default()
	if cfg.WordsFile != "" {
		loaded, err := wordlist.LoadWords(cfg.WordsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load word list %s: %w", cfg.WordsFile, err)
		}
		words = wordlist.Filter(loaded, wordlist.FilterForLang(cfg.Lang))
		if len(words) == 0 {
			return nil, fmt.Errorf("word list %s has no %q words", cfg.WordsFile, cfg.Lang)
		}
	}
	return wordlist.Shuffle(words, cfg.ShuffleSeed), nil
}
