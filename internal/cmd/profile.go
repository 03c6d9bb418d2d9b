package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oldbaker/go-storefront/api"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the signed-in user's profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		front.Activity()

		user := front.Auth.CurrentUser()
		fmt.Println(titleStyle.Render(user.Nombre))
		fmt.Printf("  %s %s\n", mutedStyle.Render("Email:"), user.Email)
		if user.Telefono != "" {
			fmt.Printf("  %s %s\n", mutedStyle.Render("Phone:"), user.Telefono)
		}

		direccion, err := front.API.Direccion(cmd.Context())
		if err == nil && direccion != "" {
			fmt.Printf("  %s %s\n", mutedStyle.Render("Address:"), direccion)
		}
		return nil
	},
}

var (
	profileNombre    string
	profileTelefono  string
	profileDireccion string
)

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		front.Activity()

		var update api.ProfileUpdate
		if cmd.Flags().Changed("name") {
			update.Nombre = &profileNombre
		}
		if cmd.Flags().Changed("phone") {
			update.Telefono = &profileTelefono
		}
		if cmd.Flags().Changed("address") {
			update.Direccion = &profileDireccion
		}
		if update.Nombre == nil && update.Telefono == nil && update.Direccion == nil {
			return fmt.Errorf("nothing to update, pass --name, --phone or --address")
		}

		user, err := front.API.UpdateProfile(cmd.Context(), update)
		if err != nil {
			return err
		}
		fmt.Println(okStyle.Render(fmt.Sprintf("Profile updated for %s.", user.Email)))
		return nil
	},
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileNombre, "name", "", "full name")
	profileUpdateCmd.Flags().StringVar(&profileTelefono, "phone", "", "phone number")
	profileUpdateCmd.Flags().StringVar(&profileDireccion, "address", "", "delivery address")

	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}
