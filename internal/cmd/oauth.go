package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oldbaker/go-storefront/oauthlogin"
)

var googleCmd = &cobra.Command{
	Use:   "google",
	Short: "Sign in with Google",
}

var googleURLCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the Google sign-in URL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := front.Config
		if cfg.GetOAuthClientID() == "" {
			return fmt.Errorf("no OAuth client configured, set oauth.client_id in %s", cfgFile)
		}

		flow, err := oauthlogin.NewFlow(cmd.Context(),
			cfg.GetOAuthIssuer(), cfg.GetOAuthClientID(), cfg.GetOAuthClientSecret(), cfg.GetOAuthRedirectURL())
		if err != nil {
			return err
		}

		state := oauthlogin.NewState()
		fmt.Println("Open this URL in a browser:")
		fmt.Println(flow.AuthURL(state))
		fmt.Println(mutedStyle.Render("Then run: storefront google callback PAYLOAD"))
		return nil
	},
}

var googleCallbackCmd = &cobra.Command{
	Use:   "callback PAYLOAD",
	Short: "Complete the sign-in with the backend's callback payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if err := front.HandleOAuthCallback(args[0]); err != nil {
			return err
		}
		if user := front.Auth.CurrentUser(); user != nil {
			fmt.Println(okStyle.Render(fmt.Sprintf("Signed in as %s", user.Nombre)))
		} else {
			fmt.Println("Account needs verification. Run: storefront verify CODE")
		}
		return nil
	},
}

func init() {
	googleCmd.AddCommand(googleURLCmd, googleCallbackCmd)
	rootCmd.AddCommand(googleCmd)
}
