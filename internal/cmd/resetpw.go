package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var forgotCmd = &cobra.Command{
	Use:   "forgot EMAIL",
	Short: "Start a password reset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := front.BeginPasswordReset(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Reset code sent. Run: storefront reset CODE --new-password ...")
		return nil
	},
}

var resetNewPassword string

var resetCmd = &cobra.Command{
	Use:   "reset CODE",
	Short: "Finish a password reset with the emailed code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := front.VerifyResetCode(cmd.Context(), args[0]); err != nil {
			front.AbandonPasswordReset()
			return err
		}

		newPassword, err := resolvePassword(resetNewPassword)
		if err != nil {
			return err
		}
		if err := front.CompletePasswordReset(cmd.Context(), newPassword); err != nil {
			return err
		}
		fmt.Println(okStyle.Render("Password updated, sign in with the new one."))
		return nil
	},
}

func init() {
	resetCmd.Flags().StringVar(&resetNewPassword, "new-password", "", "new password (prompted when omitted)")
	rootCmd.AddCommand(forgotCmd, resetCmd)
}
