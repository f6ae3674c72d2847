// Package config provides configuration helpers and TOML parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Speech   SpeechConfig   `toml:"speech"`
	Storage  StorageConfig  `toml:"storage"`
	Log      LogConfig      `toml:"log"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Lang        *string `toml:"lang" validate:"omitempty,min=2"`
	WordsFile   *string `toml:"words-file" validate:"omitempty,min=1"`
	ShuffleSeed *int64  `toml:"shuffle-seed"`
}

// SpeechConfig selects the text-to-speech command.
type SpeechConfig struct {
	Enabled *bool    `toml:"enabled"`
	Command *string  `toml:"command" validate:"omitempty,min=1"`
	Args    []string `toml:"args"`
}

// StorageConfig maps the database location.
type StorageConfig struct {
	Path *string `toml:"path" validate:"omitempty,min=1"`
}

// LogConfig maps the log level and destination.
type LogConfig struct {
	Level *string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
	File  *string `toml:"file" validate:"omitempty,min=1"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return FileConfig{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

// Validate checks the decoded values.
func (c FileConfig) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid config value for %s: failed %q check", fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("failed to validate config: %w", err)
}
