package cli

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

// readPassword is swapped in tests so they never touch the terminal.
var readPassword = term.ReadPassword

func promptLine(reader *bufio.Reader, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func newLoginCmd(build appBuilder) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := build()
			if err != nil {
				return err
			}
			defer cleanup()

			if email == "" {
				email, err = promptLine(bufio.NewReader(cmd.InOrStdin()), out(cmd), "Email: ")
				if err != nil {
					return err
				}
			}
			if email == "" {
				return errors.New("email is required")
			}

			fmt.Fprint(out(cmd), "Password: ")
			password, err := readPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(out(cmd))
			if err != nil {
				return err
			}

			token, err := app.Auth.Login(cmd.Context(), email, string(password))
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if err = app.Session.SetToken(token); err != nil {
				return fmt.Errorf("unable to store session: %w", err)
			}

			fmt.Fprintln(out(cmd), "Logged in")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	return cmd
}
