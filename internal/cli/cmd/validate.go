package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dockyard/internal/cli/styles"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate [file|-]",
	Short: "Check a layout document",
	Long: `Load a layout document the way the engine would and report what had to
be repaired: unknown content types, dropped or placeholder tabs, and values
coerced into range.

Content types are checked against [codec] content_types when it is set.

Examples:
  dockyard validate layout.json
  cat layout.json | dockyard validate -
  dockyard validate --strict layout.json   # fail on any repair`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "fail when the document needed repairs")
}

func runValidate(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	data, source, err := readDocument(a, args, "")
	if err != nil {
		return err
	}

	_, report, err := a.Codec.Decode(a.Ctx(), data)
	if err != nil {
		fmt.Println(a.Theme.ErrorStyle.Render(styles.IconX + " " + source + ": " + err.Error()))
		return fmt.Errorf("invalid layout")
	}

	fmt.Println(a.Theme.LoadReport(source, report))
	if validateStrict && !report.Clean() {
		return fmt.Errorf("layout needed repairs")
	}
	return nil
}
