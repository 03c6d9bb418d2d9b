package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oldbaker/go-storefront/api"
)

// sessionCmd keeps the client running the way the web storefront does:
// every line of input counts as activity, one idle minute signs you out,
// and the liveness check retires an expired token in the background.
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Run an interactive session with idle sign-out",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		front.Start()
		defer front.Stop()

		unsubscribe := front.Auth.Subscribe(func(user *api.User) {
			if user == nil {
				fmt.Println()
				fmt.Println(warnStyle.Render("Session ended."))
			}
		})
		defer unsubscribe()

		fmt.Println(titleStyle.Render("Interactive session"))
		fmt.Println(mutedStyle.Render("Commands: status, cart, quit. Any input resets the idle timer."))

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			front.Activity()

			if front.ConsumeSessionExpired() || front.Auth.CurrentUser() == nil {
				return nil
			}

			switch strings.TrimSpace(scanner.Text()) {
			case "quit", "exit":
				return nil
			case "status":
				_ = statusCmd.RunE(cmd, nil)
			case "cart":
				_ = cartShowCmd.RunE(cmd, nil)
			case "":
			default:
				fmt.Println(mutedStyle.Render("Unknown command. Try: status, cart, quit."))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}
