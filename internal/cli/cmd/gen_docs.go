package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/bnema/dockyard/internal/infrastructure/config"
)

const dirPerm = 0o755

var (
	genDocsOutputDir string
	genDocsFormat    string
)

var genDocsCmd = &cobra.Command{
	Use:   "gen-docs",
	Short: "Generate documentation from CLI commands",
	Long: `Generate man pages or markdown from the command definitions.

Man pages go to $XDG_DATA_HOME/man/man1 by default so 'man dockyard' works
without root. Run 'mandb' if it does not show up.

Examples:
  dockyard gen-docs                      # install man pages
  dockyard gen-docs --format markdown    # write ./docs/*.md
  dockyard gen-docs --output ./man`,
	Hidden: true,
	RunE:   runGenDocs,
}

func init() {
	rootCmd.AddCommand(genDocsCmd)
	genDocsCmd.Flags().StringVarP(&genDocsOutputDir, "output", "o", "", "output directory")
	genDocsCmd.Flags().StringVarP(&genDocsFormat, "format", "f", "man", "output format: man, markdown")
}

func runGenDocs(_ *cobra.Command, _ []string) error {
	outputDir := genDocsOutputDir
	if outputDir == "" {
		switch genDocsFormat {
		case "man":
			dirs, err := config.GetXDGDirs()
			if err != nil {
				return fmt.Errorf("resolve man directory: %w", err)
			}
			outputDir = filepath.Join(filepath.Dir(dirs.DataHome), "man", "man1")
		case "markdown":
			outputDir = "./docs"
		}
	}
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Reproducible output
	rootCmd.DisableAutoGenTag = true

	var ext string
	switch genDocsFormat {
	case "man":
		date := time.Now()
		header := &doc.GenManHeader{
			Title:   "DOCKYARD",
			Section: "1",
			Source:  "dockyard " + buildInfo.Version,
			Manual:  "Dockyard Manual",
			Date:    &date,
		}
		if err := doc.GenManTree(rootCmd, header, outputDir); err != nil {
			return fmt.Errorf("generate man pages: %w", err)
		}
		ext = ".1"
	case "markdown":
		if err := doc.GenMarkdownTree(rootCmd, outputDir); err != nil {
			return fmt.Errorf("generate markdown docs: %w", err)
		}
		ext = ".md"
	default:
		return fmt.Errorf("unsupported format %q (use: man, markdown)", genDocsFormat)
	}

	fmt.Printf("Generated docs in %s\n", outputDir)
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ext {
			fmt.Printf("  - %s\n", e.Name())
		}
	}
	return nil
}
