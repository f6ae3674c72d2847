// Package main provides the CLI entrypoint for tuispell.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuispell/internal/config"
	"github.com/verte-zerg/tuispell/internal/tui"
)

const (
	defaultLang     = "en"
	defaultLogLevel = "info"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	lang          string
	wordsFile     string
	shuffleSeed   int64
	dbPath        string
	ephemeral     bool
	logLevel      string
	logFile       string
	speech        bool
	speechCommand string
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "tuispell",
		Short:         "TUI spelling practice",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPracticeCmd(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.lang, "lang", defaultLang, "language code used to filter --words-file")
	flags.StringVar(&opts.wordsFile, "words-file", "", "word list file, one word per line (default: built-in list)")
	flags.Int64Var(&opts.shuffleSeed, "shuffle-seed", 0, "shuffle the word list with this seed (0 keeps list order)")
	flags.StringVar(&opts.dbPath, "db", config.DefaultDBPath(), "SQLite database path")
	flags.BoolVar(&opts.ephemeral, "ephemeral", false, "keep everything in memory for this run")
	flags.StringVar(&opts.logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFile, "log-file", config.DefaultLogPath(), "log file path")
	flags.BoolVar(&opts.speech, "speech", true, "pronounce words with the speech command")
	flags.StringVar(&opts.speechCommand, "speech-command", "", "text-to-speech command (default: espeak-ng)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSignupCmd(opts))
	rootCmd.AddCommand(newLoginCmd(opts))
	rootCmd.AddCommand(newLogoutCmd(opts))
	rootCmd.AddCommand(newWhoamiCmd(opts))
	rootCmd.AddCommand(newStatsCmd(opts))
	rootCmd.AddCommand(newHistoryCmd(opts))
	rootCmd.AddCommand(newResetCmd(opts))
	rootCmd.AddCommand(newSettingsCmd(opts))
	rootCmd.AddCommand(newLeaderboardCmd(opts))
	rootCmd.AddCommand(newWordsCmd(opts))
	rootCmd.AddCommand(newSayCmd(opts))

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, opts *rootOptions) error {
	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	model := tui.NewModel(cmd.Context(), a.game, a.speaker, a.log)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeConfigTemplate(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeConfigTemplate creates the commented template unless a config exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuispell configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# lang = %q              # Language used to filter words-file
# words-file = "/path/to/words.txt"   # One word per line (default: built-in list)
# shuffle-seed = 0        # Shuffle the list with this seed (0 keeps list order)

[speech]
# enabled = true          # Pronounce words
# command = "espeak-ng"   # Text-to-speech program
# args = ["-s", "{wpm}", "-a", "{amplitude}", "{text}"]
#                         # Placeholders: {text} {wpm} {amplitude} {rate} {volume}

[storage]
# path = %q

[log]
# level = %q             # debug, info, warn or error
# file = %q
`,
		defaultLang,
		config.DefaultDBPath(),
		defaultLogLevel,
		config.DefaultLogPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
