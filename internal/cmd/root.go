// Package cmd contains the storefront CLI commands.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oldbaker/go-storefront/app"
	"github.com/oldbaker/go-storefront/internal/config"
	"github.com/oldbaker/go-storefront/storage"
)

var (
	cfgFile string
	front   *app.App
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "OldBaker bakery storefront",
	Long: `storefront is the OldBaker bakery's terminal client. It signs in against
the bakery backend, keeps the session alive while you shop, and drops it
after a minute without activity, exactly like the web storefront does.`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", defaultConfigPath(), "config file")
}

func initApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	store, err := storage.NewFileStore(cfg.GetStoragePath())
	if err != nil {
		return fmt.Errorf("open session storage: %w", err)
	}

	front = app.New(cfg, store)
	front.Auth.Initialize()
	return nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "storefront.yaml"
	}
	return filepath.Join(home, ".oldbaker", "storefront.yaml")
}

// requireSession fails the command early when no valid session exists.
func requireSession() error {
	if !front.Auth.IsValid() {
		return fmt.Errorf("no active session, run %q first", "storefront login")
	}
	return nil
}
