package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZaidRasheed/backend-admin-panel/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample admin panel configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/adminpanel/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  adminpanel init

  # Initialize with custom path
  adminpanel init --config /etc/adminpanel/config.yaml

  # Force overwrite existing config
  adminpanel init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, err := config.InitConfig(GetConfigFile(), initForce)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to customize your setup")
	fmt.Println("  2. Start the server with: adminpanel start")
	fmt.Printf("  3. Or specify custom config: adminpanel start --config %s\n", configPath)
	fmt.Println("\nThe default configuration uses the in-memory backend for local")
	fmt.Println("development. Switch upstream.backend to \"firebase\" and fill in the")
	fmt.Println("project settings before pointing clients at real data.")

	return nil
}
