package cmd

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stateful/webnb/internal/config"
	"github.com/stateful/webnb/internal/storage"
	"github.com/stateful/webnb/pkg/document/editor/editorservice"
)

const shutdownTimeout = 10 * time.Second

func serverCmd() *cobra.Command {
	var addr string

	cmd := cobra.Command{
		Use:   "server",
		Short: "Start a server with the parser service.",
		Long: `The server exposes notebook deserialization and serialization over HTTP
for editor hosts:

  POST /v1/deserialize   {"source": "..."}       -> {"notebook": {...}}
  POST /v1/serialize     {"notebook": {...}}     -> {"source": "..."}
  GET  /v1/notebooks                             -> notebooks under the working directory
  GET  /v1/notebooks/{path}                      -> a decoded notebook
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newBuilder().Invoke(func(cfg *config.Config, store *storage.FS, matcher *storage.Matcher, logger *zap.Logger) error {
				if addr == "" {
					addr = cfg.Server.Address
				}

				svc := editorservice.NewService(editorservice.Options{
					Logger:       logger,
					CacheTTL:     cfg.Server.CacheTTL,
					MaxBodyBytes: cfg.Server.MaxBodyBytes,
					Store:        store,
					Matcher:      matcher,
				})

				lis, err := net.Listen("tcp", addr)
				if err != nil {
					return errors.Wrapf(err, "failed to listen on %s", addr)
				}

				srv := &http.Server{
					Handler:           editorservice.NewRouter(svc),
					ReadHeaderTimeout: time.Second,
					ReadTimeout:       time.Minute,
					WriteTimeout:      time.Minute,
					MaxHeaderBytes:    8 * 1024, // 8KiB
				}

				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				return serve(ctx, srv, lis, logger, cmd.ErrOrStderr())
			})
		},
	}

	setDefaultFlags(&cmd)

	cmd.Flags().StringVarP(&addr, "address", "a", "", "Address to listen on. Defaults to server.address from the configuration.")

	return &cmd
}

// serve runs srv until ctx is done and then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, lis net.Listener, logger *zap.Logger, status io.Writer) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("started listening", zap.String("addr", lis.Addr().String()))
		newPrinter(status).Info("listening on http://%s", lis.Addr())

		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server failed")
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("shutting down")
		return errors.Wrap(srv.Shutdown(shutdownCtx), "failed to shut down")
	})

	return g.Wait()
}
