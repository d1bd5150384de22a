package cmd

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/bnema/dockyard/internal/app/dock"
	"github.com/bnema/dockyard/internal/cli/render"
)

var (
	previewSession string
	previewWidth   int
	previewHeight  int
	previewPixels  bool
	previewPlain   bool
)

var previewCmd = &cobra.Command{
	Use:   "preview [file|-]",
	Short: "Draw a layout in the terminal",
	Long: `Resolve a layout document and draw its panels as text.

By default the layout is measured in terminal cells. With --pixels it is
resolved with the [layout] pixel metrics and scaled down, one cell per
tab_char_width by header_height pixels, which shows how a graphical host
would split the same area.

Examples:
  dockyard preview layout.json
  dockyard preview --session work --width 160 --height 40
  dockyard preview --pixels --plain layout.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringVarP(&previewSession, "session", "s", "", "preview the stored layout of a session")
	previewCmd.Flags().IntVar(&previewWidth, "width", 100, "width in cells")
	previewCmd.Flags().IntVar(&previewHeight, "height", 30, "height in cells")
	previewCmd.Flags().BoolVar(&previewPixels, "pixels", false, "resolve with the configured pixel metrics")
	previewCmd.Flags().BoolVar(&previewPlain, "plain", false, "no colors")
}

func runPreview(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if previewWidth <= 0 || previewHeight <= 0 {
		return fmt.Errorf("width and height must be positive")
	}
	data, source, err := readDocument(a, args, previewSession)
	if err != nil {
		return err
	}

	opts, err := a.EngineOptions(!previewPixels)
	if err != nil {
		return err
	}
	scale := image.Pt(1, 1)
	if previewPixels {
		scale = image.Pt(a.Config.Layout.TabCharWidth, a.Config.Layout.HeaderHeight)
	}
	opts.Bounds = image.Rect(0, 0, previewWidth*scale.X, previewHeight*scale.Y)

	ctx := a.Ctx()
	engine := dock.NewEngine(ctx, opts)
	report, err := engine.Deserialize(ctx, data)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	renderOpts := render.Options{Scale: scale, Active: engine.ActiveTabset()}
	if !previewPlain {
		renderOpts.Styles = a.Theme.Panes()
	}
	fmt.Println(render.Frame(engine.Frame(), engine.Layout(), renderOpts).String(renderOpts.Styles))
	if !report.Clean() {
		fmt.Println()
		fmt.Println(a.Theme.LoadReport(source, report))
	}
	return nil
}
