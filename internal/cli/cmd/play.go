package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/dockyard/internal/app/dock"
	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/cli/model"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/infrastructure/snapshot"
	"github.com/bnema/dockyard/internal/logging"
)

var playSession string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Drive the layout engine with the mouse",
	Long: `Open an interactive layout in the terminal.

Click tabs to select them, drag them onto other panels to re-dock, drag
splitters to resize, double-click a header to maximize, and shift-drag a
floating header to dock it back. Changes are saved to the session as you go
and restored the next time.

Logs go to $XDG_STATE_HOME/dockyard/logs/play.log.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVarP(&playSession, "session", "s", "play", "session to restore and save")
}

func runPlay(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	session := entity.SessionID(playSession)
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %q", err, playSession)
	}

	logPath, err := a.LogToFile("play")
	if err != nil {
		return err
	}
	ctx := logging.WithSessionID(a.Ctx(), playSession)
	log := logging.FromContext(ctx)

	opts, err := a.EngineOptions(true)
	if err != nil {
		return err
	}
	engine := dock.NewEngine(ctx, opts)

	stored, err := a.LoadLayoutUC.Execute(ctx, session)
	switch {
	case err == nil:
		if _, err := engine.Deserialize(ctx, stored.Record.Document); err != nil {
			log.Warn().Err(err).Msg("stored layout not restored")
		}
	case errors.Is(err, usecase.ErrLayoutNotFound):
		log.Info().Msg("starting with an empty layout")
	default:
		return err
	}

	snap := snapshot.NewService(a.SaveLayoutUC, session, a.SnapshotInterval())
	snap.Start(logging.WithComponent(ctx, "snapshot"))
	unsubscribe := engine.Subscribe(snap)
	snap.SetReady()

	m := model.NewPlayModel(ctx, a.Theme, model.PlayModelConfig{
		Engine:       engine,
		ContentTypes: opts.Registry.Types(),
	})
	_, runErr := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()

	unsubscribe()
	if err := snap.Stop(ctx); err != nil {
		return errors.Join(runErr, fmt.Errorf("save layout: %w", err))
	}
	if runErr != nil {
		return runErr
	}
	fmt.Println(a.Theme.Subtle.Render(fmt.Sprintf("layout saved to session %s (log: %s)", session, logPath)))
	return nil
}
