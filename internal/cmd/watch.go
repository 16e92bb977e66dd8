package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/webnb/internal/storage"
	"github.com/stateful/webnb/internal/watcher"
)

func watchCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "watch",
		Short: "Check notebooks whenever they change.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newBuilder().Invoke(func(store *storage.FS, matcher *storage.Matcher, logger *zap.Logger) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				p := newPrinter(cmd.OutOrStdout())
				p.Info("watching %s", store.Root())

				w := watcher.New(store, matcher, watcher.WithLogger(logger))
				return w.Run(ctx, func(res watcher.Result) {
					switch {
					case res.Removed:
						p.Info("removed %s", res.Path)
					case res.Err != nil:
						p.Fail("%s", formatError(res.Path, res.Err))
					default:
						p.OK("ok %s (%d cells)", res.Path, len(res.Notebook.Cells))
					}
				})
			})
		},
	}

	setDefaultFlags(&cmd)

	return &cmd
}
