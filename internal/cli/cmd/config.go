package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/dockyard/internal/infrastructure/config"
)

var configYes bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and reset the configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show where dockyard keeps its files",
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		logDir, err := config.GetLogDir()
		if err != nil {
			return err
		}
		t := a.Theme
		fmt.Printf("%s %s\n", t.Subtle.Render("config  "), a.ConfigManager.ConfigFile())
		fmt.Printf("%s %s\n", t.Subtle.Render("database"), a.Config.Storage.DatabasePath)
		fmt.Printf("%s %s\n", t.Subtle.Render("logs    "), logDir)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Long: `Print the configuration after defaults and DOCKYARD_* environment
overrides are applied.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		data, err := config.EncodeTOML(a.Config)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Overwrite the config file with the defaults",
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		path := a.ConfigManager.ConfigFile()
		if !configYes {
			ok, err := confirm(a.Theme, fmt.Sprintf("Reset %s to defaults?", path))
			if err != nil || !ok {
				return err
			}
		}
		if err := a.ConfigManager.Save(config.DefaultConfig()); err != nil {
			return err
		}
		fmt.Println(a.Theme.SuccessStyle.Render("reset " + path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configShowCmd, configResetCmd)
	configResetCmd.Flags().BoolVarP(&configYes, "yes", "y", false, "skip confirmation prompt")
}
