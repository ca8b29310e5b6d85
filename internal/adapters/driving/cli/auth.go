package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

var (
	loginEmail    string
	registerEmail string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the knowledge base",
	Long: `Sign in with an existing account. The session is persisted so
later commands run without signing in again.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "account email")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	email, password, err := promptCredentials(cmd, loginEmail)
	if err != nil {
		return err
	}

	session, err := sessionService.SignIn(cmd.Context(), email, password)
	if err != nil {
		return err
	}

	cmd.Printf("Signed in as %s\n", session.Email)
	return nil
}

func runRegister(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	email, password, err := promptCredentials(cmd, registerEmail)
	if err != nil {
		return err
	}
	if len(password) < domain.MinPasswordLength {
		return domain.ErrWeakPassword
	}

	session, err := sessionService.SignUp(cmd.Context(), email, password)
	if err != nil {
		return err
	}

	cmd.Printf("Account created, signed in as %s\n", session.Email)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	if _, err := sessionService.Restore(cmd.Context()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Println("Not signed in.")
			return nil
		}
	}

	if err := sessionService.SignOut(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	session, err := requireSession(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("%s (%s)\n", session.Email, session.UserID)
	return nil
}

// requireSession restores the persisted session or fails with a hint to
// sign in. Data commands call it first; everything is gated on identity.
func requireSession(ctx context.Context) (*domain.Session, error) {
	if sessionService == nil {
		return nil, errors.New("session service not configured")
	}

	session, err := sessionService.Restore(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrNoSession) {
			return nil, errors.New("not signed in, run 'kbs login' first")
		}
		return nil, err
	}
	return session, nil
}

// promptCredentials collects email and password. The password is read
// without echo when stdin is a terminal.
func promptCredentials(cmd *cobra.Command, email string) (string, string, error) {
	reader := bufio.NewReader(cmd.InOrStdin())

	if email == "" {
		cmd.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("reading email: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return "", "", errors.New("email is required")
	}

	password, err := promptPassword(cmd, reader)
	if err != nil {
		return "", "", err
	}
	return email, password, nil
}

func promptPassword(cmd *cobra.Command, reader *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		cmd.Print("Password: ")
		raw, err := term.ReadPassword(fd)
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}

	// Piped input, e.g. in scripts and tests.
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
