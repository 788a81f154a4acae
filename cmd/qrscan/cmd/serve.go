package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ericlevine/qrscan/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the decoder over HTTP",
		Long: `Start an HTTP server with the routes:
  POST /v1/decode   decode the image in the body or in a multipart "image" field
  GET  /healthz     liveness
  GET  /metrics     Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.cfg, a.log, Version)
			shutdown := time.Duration(a.cfg.Server.ShutdownTimeout) * time.Second
			return srv.ListenAndServe(ctx, a.cfg.Server.Addr(), shutdown)
		},
	}
	f := cmd.Flags()
	f.String("host", "localhost", "address to listen on")
	f.IntP("port", "p", 8080, "port to listen on")
	f.Int("max-upload-mb", 20, "largest accepted image in MiB")
	f.Int("request-timeout", 30, "per-request decode timeout in seconds")
	f.IntP("workers", "w", 1, "symbols decoded concurrently per image")
	f.Int("max-pixels", 0, "reject images declaring more pixels, 0 for the default, negative for no limit")
	f.Int("max-dimension", 0, "downscale images larger than this before decoding, 0 to keep")
	return cmd
}
