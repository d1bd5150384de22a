package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/dockyard/internal/app/api"
	"github.com/bnema/dockyard/internal/infrastructure/config"
	"github.com/bnema/dockyard/internal/logging"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored layouts over HTTP",
	Long: `Run the layout HTTP API.

Routes:
  GET    /healthz
  GET    /api/layouts              list stored layouts (?limit=N)
  GET    /api/layouts/{session}    fetch a layout document
  PUT    /api/layouts/{session}    validate and store a layout document
  DELETE /api/layouts/{session}    delete a stored layout
  GET    /api/schema/layout        JSON Schema of layout documents

With --watch the config file is reloaded on change; the log level applies
immediately, server settings on restart.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default [server] listen_addr)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "reload the config file on change")
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(a.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := a.Config
	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.ListenAddr
	}
	srv := api.NewServer(api.Config{
		Addr:             addr,
		ReadTimeout:      time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout:     time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		ShutdownTimeout:  time.Duration(cfg.Server.ShutdownTimeoutSec) * time.Second,
		MaxDocumentBytes: cfg.Server.MaxDocumentBytes,
		SaveLayout:       a.SaveLayoutUC,
		LoadLayout:       a.LoadLayoutUC,
		ListLayouts:      a.ListLayoutsUC,
		DeleteLayout:     a.DeleteLayoutUC,
		Codec:            a.Codec,
	})

	logging.FromContext(ctx).Info().
		Str("database", a.DB.Path()).
		Str("config", a.ConfigManager.ConfigFile()).
		Msg("starting layout server")

	g, gctx := errgroup.WithContext(logging.WithComponent(ctx, "api"))
	g.Go(func() error {
		return srv.ListenAndServe(gctx)
	})
	if serveWatch {
		g.Go(func() error {
			return watchConfig(gctx, a.ConfigManager)
		})
	}
	return g.Wait()
}

// watchConfig applies log level changes until ctx is done.
func watchConfig(ctx context.Context, mgr *config.Manager) error {
	log := logging.FromContext(ctx)
	mgr.OnConfigChange(func(c *config.Config) {
		level, err := logging.ParseLevel(c.Logging.Level)
		if err != nil {
			log.Warn().Err(err).Msg("ignoring reloaded log level")
			return
		}
		zerolog.SetGlobalLevel(level)
		log.Info().Str("level", level.String()).Msg("configuration reloaded")
	})
	if err := mgr.Watch(); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}
