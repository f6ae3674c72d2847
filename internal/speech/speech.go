// Package speech pronounces words through a host text-to-speech command.
package speech

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// ErrDisabled is returned by Disabled.Speak.
var ErrDisabled = errors.New("speech is disabled")

// Options carry the user's speech settings.
type Options struct {
	// Rate is a multiplier; 1 is normal speed.
	Rate float64
	// Volume is 0-100.
	Volume int
}

// Speaker pronounces text.
type Speaker interface {
	Speak(ctx context.Context, text string, opts Options) error
}

// DefaultCommand and DefaultArgs target espeak-ng.
const DefaultCommand = "espeak-ng"

// DefaultArgs are the espeak-ng arguments.
var DefaultArgs = []string{"-s", "{wpm}", "-a", "{amplitude}", "{text}"}

const baseWPM = 175

// Command runs an external program per utterance. Args may contain the
// placeholders {text}, {wpm}, {amplitude}, {rate} and {volume}.
type Command struct {
	Name string
	Args []string
}

// NewCommand returns a Command, falling back to espeak-ng defaults.
func NewCommand(name string, args []string) *Command {
	if strings.TrimSpace(name) == "" {
		name = DefaultCommand
		if len(args) == 0 {
			args = DefaultArgs
		}
	}
	if len(args) == 0 {
		args = []string{"{text}"}
	}
	return &Command{Name: name, Args: append([]string(nil), args...)}
}

// Speak runs the command and waits for it to exit.
func (c *Command) Speak(ctx context.Context, text string, opts Options) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Expand(text, opts)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("failed to run %s: %w: %s", c.Name, err, msg)
		}
		return fmt.Errorf("failed to run %s: %w", c.Name, err)
	}
	return nil
}

// Expand substitutes the placeholders in Args.
func (c *Command) Expand(text string, opts Options) []string {
	rate := opts.Rate
	if rate <= 0 {
		rate = 1
	}
	volume := opts.Volume
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	r := strings.NewReplacer(
		"{text}", text,
		"{wpm}", strconv.Itoa(int(math.Round(baseWPM*rate))),
		"{amplitude}", strconv.Itoa(volume*2),
		"{rate}", strconv.FormatFloat(rate, 'f', -1, 64),
		"{volume}", strconv.Itoa(volume),
	)
	out := make([]string, len(c.Args))
	for i, arg := range c.Args {
		out[i] = r.Replace(arg)
	}
	return out
}

// Disabled is a Speaker that always fails with ErrDisabled.
type Disabled struct{}

// Speak implements Speaker.
func (Disabled) Speak(context.Context, string, Options) error {
	return ErrDisabled
}
