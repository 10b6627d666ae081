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
)

var (
	loginUser     string
	loginPassword string
)

// cafe login
var loginCmd = &cobra.Command{
	Use:         "login",
	Short:       "Sign in and keep the session for later commands",
	Annotations: standalone,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := bufio.NewReader(cmd.InOrStdin())
		var err error
		if loginUser == "" {
			if loginUser, err = prompt(cmd, in, "Login: "); err != nil {
				return err
			}
		}
		if loginPassword == "" {
			if loginPassword, err = promptSecret(cmd, in, "Password: "); err != nil {
				return err
			}
		}

		p, token, err := app.Auth.Login(cmd.Context(), loginUser, loginPassword)
		if err != nil {
			return err
		}
		if err := sessionFile().Save(token); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s).\n", p.Login, p.Role)
		return nil
	},
}

// cafe logout
var logoutCmd = &cobra.Command{
	Use:         "logout",
	Short:       "Forget the stored session",
	Annotations: map[string]string{annNoSession: "true", annNoBackup: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sessionFile().Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

// cafe whoami
var whoamiCmd = &cobra.Command{
	Use:         "whoami",
	Short:       "Show the signed-in operator",
	Annotations: map[string]string{annNoBackup: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", current.Login, current.Role)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "login name")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (prompted when omitted)")
}

func prompt(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.ToLower(label), ": "), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptSecret reads a password without echo when stdin is a terminal and
// falls back to a plain line read for piped input.
func promptSecret(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return prompt(cmd, in, label)
	}

	fmt.Fprint(cmd.ErrOrStderr(), label)
	secret, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(secret), nil
}
