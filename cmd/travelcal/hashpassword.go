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

	"github.com/pkordes/travel-calendar/internal/middleware"
)

func newHashPasswordCmd(c *cli) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Create AUTH_USER and AUTH_HASH values for Basic Auth",
		Long: `Prompts for a password (twice, without echo on a terminal) and prints the
AUTH_USER and AUTH_HASH settings that protect editing on the server.
The hash is Argon2id.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			reader := bufio.NewReader(cmd.InOrStdin())

			if user == "" {
				fmt.Fprint(out, "Enter username: ")
				line, err := reader.ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("reading username: %w", err)
				}
				user = strings.TrimSpace(line)
			}
			if user == "" {
				return errors.New("username cannot be empty")
			}

			password, err := readPassword(cmd, reader, "Enter password:   ")
			if err != nil {
				return err
			}
			confirm, err := readPassword(cmd, reader, "Confirm password: ")
			if err != nil {
				return err
			}
			if password == "" {
				return errors.New("password cannot be empty")
			}
			if password != confirm {
				return errors.New("passwords do not match")
			}

			hash, err := middleware.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "AUTH_USER=%s\nAUTH_HASH='%s'\n", user, hash)
			return nil
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "Username (prompted when empty)")
	return cmd
}

// readPassword reads one line without echo when stdin is a terminal and as
// plain text otherwise (pipes, tests).
func readPassword(cmd *cobra.Command, reader *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(pw), nil
	}
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
