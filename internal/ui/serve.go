package ui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/jadwal/internal/server"
)

func (a *App) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the timetable over HTTP until interrupted.

Examples:
  jadwal serve
  jadwal serve --addr :9090`,
		RunE: func(_ *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			cfg := a.config.Server
			if addr != "" {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Info("starting server", zap.String("addr", cfg.Addr))
			fmt.Fprintf(a.out, "Listening on %s\n", cfg.Addr)
			return server.New(svc, cfg, a.logger).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
