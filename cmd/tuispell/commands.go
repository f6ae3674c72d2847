package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuispell/internal/identity"
	"github.com/verte-zerg/tuispell/internal/model"
	"github.com/verte-zerg/tuispell/internal/settings"
	"github.com/verte-zerg/tuispell/internal/stats"
)

const (
	defaultStatsTop     = 5
	defaultHistoryLimit = 20
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var window, last, top int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show progress, accuracy trend and most-missed words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()
			report := stats.BuildReport(a.game.View(), window, last, top)
			if err := stats.Render(cmd.OutOrStdout(), report); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&window, "window", stats.DefaultWindow, "moving average window for the accuracy trend")
	cmd.Flags().IntVar(&last, "last", 0, "limit the trend to the last N attempts")
	cmd.Flags().IntVar(&top, "top", defaultStatsTop, "number of most-missed words")
	return cmd
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent attempts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := stats.RenderHistory(cmd.OutOrStdout(), a.game.View().History, limit); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", defaultHistoryLimit, "number of entries to show (0 for all)")
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the attempt history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()
			a.game.ClearHistory(cmd.Context())
			return printf(cmd, "History cleared.\n")
		},
	})
	return cmd
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset progress and history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()
			// No UI is waiting on the transition, so apply it right away.
			a.game.Fire(cmd.Context(), a.game.Reset(cmd.Context()))
			return printf(cmd, "Progress reset. Next word: %d of %d.\n", a.game.View().Session.WordIndex+1, len(a.game.Words()))
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	show := func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd, opts)
		if err != nil {
			return err
		}
		defer a.Close()
		return printSettings(cmd, a.game.Settings())
	}
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Args:  cobra.NoArgs,
		RunE:  show,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show settings",
		Args:  cobra.NoArgs,
		RunE:  show,
	})

	var dark bool
	var volume int
	var rate string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()
			s := a.game.Settings()
			if cmd.Flags().Changed("dark") {
				s.DarkMode = dark
			}
			if cmd.Flags().Changed("volume") {
				if volume < 0 || volume > 100 {
					return fmt.Errorf("--volume must be between 0 and 100")
				}
				s.Volume = volume
			}
			if cmd.Flags().Changed("rate") {
				r, err := settings.ParseRate(rate)
				if err != nil {
					return err
				}
				s.SpeechRate = r
			}
			return printSettings(cmd, a.game.UpdateSettings(cmd.Context(), s))
		},
	}
	setCmd.Flags().BoolVar(&dark, "dark", false, "dark mode")
	setCmd.Flags().IntVar(&volume, "volume", 0, "speech volume (0-100)")
	setCmd.Flags().StringVar(&rate, "rate", "", "speech rate (slow, normal, fast)")
	cmd.AddCommand(setCmd)
	return cmd
}

func printSettings(cmd *cobra.Command, s model.Settings) error {
	return printf(cmd, "theme: %s\nvolume: %d\nspeech-rate: %s (%s)\n",
		settings.Theme(s), s.Volume, settings.RateLabel(s.SpeechRate), s.SpeechRate)
}

func newLeaderboardCmd(opts *rootOptions) *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Rank accounts by correct answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := identity.ParsePeriod(period)
			if err != nil {
				return err
			}
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := stats.RenderLeaderboard(cmd.OutOrStdout(), p, a.game.Leaderboard(p)); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&period, "period", string(identity.PeriodAllTime), "daily, weekly or all-time")
	return cmd
}

func newWordsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "words",
		Short: "List the practice words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()
			current := a.game.View().Session.WordIndex
			for i, w := range a.game.Words() {
				marker := " "
				if i == current {
					marker = ">"
				}
				if err := printf(cmd, "%s %3d %s\n", marker, i+1, w); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newSayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "say [word]",
		Short: "Pronounce a word, or the current practice word",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()
			word := a.game.Word()
			if len(args) == 1 {
				word = args[0]
			}
			if err := a.speaker.Speak(cmd.Context(), word, a.game.SpeechOptions()); err != nil {
				a.log.Warn("speech failed", "word", word, "err", err)
				return fmt.Errorf("failed to speak: %w", err)
			}
			return nil
		},
	}
}
