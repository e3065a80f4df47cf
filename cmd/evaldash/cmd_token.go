package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/afmlabs/evaldash/internal/auth"
)

// promptCredentials is a test hook for replacing the interactive form.
// It fills in whichever of req's fields are empty.
var promptCredentials = defaultPromptCredentials

func defaultPromptCredentials(in io.Reader, out io.Writer, req *auth.LoginRequest) error {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&req.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&req.Password),
		),
	).WithInput(in).WithOutput(out).Run()
}

func newTokenCommand(a *app) *cobra.Command {
	var req auth.LoginRequest
	var asCookie bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a session token for scripted API access",
		Long: `Check the credentials and print a session token, the value of the
afm-session cookie. Missing credentials are prompted for when stdin is a
terminal.

  curl -b "afm-session=$(evaldash token --email ... --password ...)" localhost:3000/api/kpis`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Email == "" || req.Password == "" {
				if err := promptCredentials(cmd.InOrStdin(), cmd.ErrOrStderr(), &req); err != nil {
					return fmt.Errorf("reading credentials: %w", err)
				}
			}

			user, err := a.cfg.Credentials().Login(req)
			switch {
			case errors.Is(err, auth.ErrValidation):
				return errors.New("email and password are required")
			case errors.Is(err, auth.ErrAuthentication):
				return errors.New("invalid email or password")
			case err != nil:
				return err
			}

			token, err := auth.EncodeToken(user, time.Now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asCookie {
				fmt.Fprintln(out, auth.SessionCookie(token, a.cfg.Production()).String()) //nolint:errcheck
				return nil
			}
			fmt.Fprintln(out, token) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Login email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Login password")
	cmd.Flags().BoolVar(&asCookie, "cookie", false, "Print a full Set-Cookie header value")

	return cmd
}
