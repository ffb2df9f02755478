package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/webnotes/notesweb/app"
	"github.com/webnotes/notesweb/pkg/config"
	"github.com/webnotes/notesweb/pkg/logger"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long:  `Run the HTTP server until SIGINT or SIGTERM. Settings come from the environment and an optional .env file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg app.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := app.NewLogger(cfg)
			a, err := app.New(ctx, cfg, app.WithLogger(log))
			if err != nil {
				log.ErrorContext(ctx, "startup failed", logger.Error(err))
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					log.WarnContext(context.WithoutCancel(ctx), "shutdown", logger.Error(err))
				}
			}()
			return a.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address, overrides HTTP_ADDR")

	return cmd
}
