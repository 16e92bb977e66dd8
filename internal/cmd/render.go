package cmd

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/webnb/internal/renderer/html"
	"github.com/stateful/webnb/internal/storage"
)

func renderCmd() *cobra.Command {
	var (
		output string
		title  string
		unsafe bool
	)

	cmd := cobra.Command{
		Use:   "render <file>",
		Short: "Render a notebook as an HTML page.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newBuilder().Invoke(func(store *storage.FS, logger *zap.Logger) error {
				data, err := readSource(cmd, store, args[0])
				if err != nil {
					return err
				}

				notebook, err := deserialize(data, logger)
				if err != nil {
					return err
				}

				if title == "" {
					title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				}

				opts := []html.Option{html.WithTitle(title)}
				if unsafe {
					opts = append(opts, html.WithUnsafe())
				}

				var buf bytes.Buffer
				if err := html.New(opts...).Render(&buf, notebook); err != nil {
					return err
				}

				if output == "" {
					_, err = cmd.OutOrStdout().Write(buf.Bytes())
					return errors.Wrap(err, "failed to write to stdout")
				}

				rel, err := relPath(store, output)
				if err != nil {
					return err
				}
				if err := store.Write(rel, buf.Bytes()); err != nil {
					return err
				}

				logger.Info("rendered notebook", zap.String("output", rel))
				return nil
			})
		},
	}

	setDefaultFlags(&cmd)

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the page to a file instead of stdout.")
	cmd.Flags().StringVar(&title, "title", "", "Page title. Defaults to the file name.")
	cmd.Flags().BoolVar(&unsafe, "unsafe", false, "Keep raw HTML from markup cells.")

	return &cmd
}
