package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/dockyard/internal/infrastructure/config"
)

const filePerm = 0o644

var schemaOutput string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print JSON Schemas",
	Long:  `Print the JSON Schema of layout documents or of the config file.`,
}

var schemaLayoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "JSON Schema of layout documents",
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		data, err := a.Codec.Schema()
		if err != nil {
			return err
		}
		return writeOutput(data)
	},
}

var schemaConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "JSON Schema of config.toml",
	Long: `Print the JSON Schema of the config file. With --write it is stored
next to the config file for editors that validate TOML against a schema.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		if write, _ := cmd.Flags().GetBool("write"); write {
			path, err := config.WriteSchemaFile(a.ConfigManager.ConfigFile())
			if err != nil {
				return err
			}
			fmt.Println(a.Theme.SuccessStyle.Render("wrote " + path))
			return nil
		}
		data, err := config.Schema()
		if err != nil {
			return err
		}
		return writeOutput(data)
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaLayoutCmd, schemaConfigCmd)
	schemaCmd.PersistentFlags().StringVarP(&schemaOutput, "output", "o", "", "write to a file instead of stdout")
	schemaConfigCmd.Flags().Bool("write", false, "write the schema next to the config file")
}

func writeOutput(data []byte) error {
	if schemaOutput == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(schemaOutput, data, filePerm)
}
