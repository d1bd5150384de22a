package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dockyard/internal/cli/styles"
	"github.com/bnema/dockyard/internal/domain/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run: func(_ *cobra.Command, _ []string) {
		t := styles.NewTheme()
		row := func(label, value string) {
			fmt.Printf("  %s %s\n", t.Subtle.Render(fmt.Sprintf("%-8s", label)), t.Normal.Render(value))
		}
		fmt.Println(t.Highlight.Render(styles.IconLayout + " dockyard " + buildInfo.Version))
		row("commit", buildInfo.Commit)
		row("built", buildInfo.BuildDate)
		row("go", buildInfo.GoVersion)
		row("repo", build.RepoURL())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
