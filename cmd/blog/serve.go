package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bitsbytes/blog/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		port       int
		host       string
		devMode    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the blog server",
		Long: `Start the blog server.

Configuration is read from blog.json, blog.yaml or blog.yml in the
working directory, or from --config. Without a file the defaults apply:
pages from ./content on localhost:3000.

With --dev the pages directory is watched and connected browsers reload
on every change.

Examples:
  blog serve
  blog serve --port=8080 --host=0.0.0.0
  blog serve --dev
  blog serve --config=deploy/blog.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if devMode {
				cfg.Server.Dev = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg.Log, cmd.ErrOrStderr())
			slog.SetDefault(logger)

			srv, err := server.New(cfg, server.WithLogger(logger))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			success(cmd, "Serving on %s", cfg.URL())
			if cfg.Server.Dev {
				success(cmd, "Live reload watching %v", cfg.WatchDirs())
			}
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a configuration file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().BoolVar(&devMode, "dev", false, "Watch pages and live reload browsers")

	return cmd
}
