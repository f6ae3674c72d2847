package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuispell/internal/identity"
)

// passwordPrompt reads passwords without echo on a terminal and line by line
// otherwise.
type passwordPrompt struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
}

func newPasswordPrompt(cmd *cobra.Command) *passwordPrompt {
	return &passwordPrompt{in: cmd.InOrStdin(), out: cmd.ErrOrStderr()}
}

func (p *passwordPrompt) read(label string) (string, error) {
	if _, err := fmt.Fprint(p.out, label); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}
	if p.reader == nil {
		p.reader = bufio.NewReader(p.in)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newSignupCmd(opts *rootOptions) *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prompt := newPasswordPrompt(cmd)
			password, err := prompt.read("Password: ")
			if err != nil {
				return err
			}
			confirm, err := prompt.read("Confirm password: ")
			if err != nil {
				return err
			}
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()
			acc, err := a.game.Register(cmd.Context(), identity.Registration{
				Name:            strings.TrimSpace(name),
				Email:           strings.TrimSpace(email),
				Password:        password,
				ConfirmPassword: confirm,
			})
			if err != nil {
				return fmt.Errorf("failed to sign up: %w", err)
			}
			return printf(cmd, "Signed up and logged in as %s <%s>\n", acc.Name, acc.Email)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and restore saved progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := newPasswordPrompt(cmd).read("Password: ")
			if err != nil {
				return err
			}
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()
			acc, err := a.game.Login(cmd.Context(), strings.TrimSpace(email), password)
			if err != nil {
				return fmt.Errorf("failed to log in: %w", err)
			}
			return printf(cmd, "Logged in as %s <%s>\n", acc.Name, acc.Email)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Save progress for the active account and log out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()
			acc, ok := a.game.Logout(cmd.Context())
			if !ok {
				return printf(cmd, "Not logged in.\n")
			}
			return printf(cmd, "Logged out %s.\n", acc.Name)
		},
	}
}

func newWhoamiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()
			acc, ok := a.game.Account()
			if !ok {
				return printf(cmd, "Not logged in.\n")
			}
			return printf(cmd, "%s <%s>\n", acc.Name, acc.Email)
		},
	}
}

func printf(cmd *cobra.Command, format string, args ...any) error {
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
