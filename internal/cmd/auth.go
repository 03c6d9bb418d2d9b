package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oldbaker/go-storefront/token"
)

var (
	loginPassword string
	loginWorker   bool
)

var loginCmd = &cobra.Command{
	Use:   "login EMAIL",
	Short: "Sign in to the bakery",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := resolvePassword(loginPassword)
		if err != nil {
			return err
		}

		if loginWorker {
			if err := front.WorkerLogin(cmd.Context(), args[0], password); err != nil {
				return err
			}
		} else {
			if err := front.Login(cmd.Context(), args[0], password); err != nil {
				return err
			}
		}

		user := front.Auth.CurrentUser()
		fmt.Println(okStyle.Render(fmt.Sprintf("Signed in as %s (%s)", user.Nombre, user.Rol)))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and empty the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		front.Logout(cmd.Context())
		fmt.Println("Signed out.")
		return nil
	},
}

var (
	registerNombre   string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register EMAIL",
	Short: "Create a customer account",
	Long: `Create a customer account. The backend emails a 6-digit code; confirm it
with "storefront verify CODE" to activate the account and sign in.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := resolvePassword(registerPassword)
		if err != nil {
			return err
		}
		if err := front.Register(cmd.Context(), registerNombre, args[0], password); err != nil {
			return err
		}
		fmt.Println("Account created. Check your email and run: storefront verify CODE")
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify CODE",
	Short: "Confirm the emailed verification code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := front.VerifyPendingUser(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println(okStyle.Render("Account verified, you are signed in."))
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		user := front.Auth.CurrentUser()
		if user == nil || !front.Auth.IsValid() {
			fmt.Println(warnStyle.Render("No active session."))
			return nil
		}

		fmt.Println(titleStyle.Render("Session"))
		fmt.Printf("  %s %s\n", mutedStyle.Render("User:"), user.Nombre)
		fmt.Printf("  %s %s\n", mutedStyle.Render("Email:"), user.Email)
		fmt.Printf("  %s %s\n", mutedStyle.Render("Role:"), user.Rol)
		fmt.Printf("  %s %s\n", mutedStyle.Render("Token valid for:"),
			token.TimeRemaining(front.Auth.RawToken()).Round(time.Second).String())
		return nil
	},
}

var deactivateCmd = &cobra.Command{
	Use:   "deactivate",
	Short: "Deactivate the account and clear local data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		fmt.Print("Type the account email to confirm deactivation: ")
		var confirmation string
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &confirmation); err != nil {
			return err
		}
		if !strings.EqualFold(confirmation, front.Auth.CurrentUser().Email) {
			return fmt.Errorf("confirmation does not match the account email")
		}
		if err := front.DeactivateAccount(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Account deactivated.")
		return nil
	},
}

func resolvePassword(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (prompted when omitted)")
	loginCmd.Flags().BoolVar(&loginWorker, "worker", false, "sign in as warehouse or admin staff")
	registerCmd.Flags().StringVarP(&registerNombre, "name", "n", "", "full name")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "password (prompted when omitted)")
	_ = registerCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd, verifyCmd, statusCmd, deactivateCmd)
}
