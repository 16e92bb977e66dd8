package cmd

import (
	"bytes"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stateful/webnb/internal/config"
	"github.com/stateful/webnb/internal/storage"
	"github.com/stateful/webnb/pkg/document/editor"
)

type formatResult struct {
	path      string
	original  []byte
	formatted []byte
}

func (r formatResult) changed() bool {
	return !bytes.Equal(r.original, r.formatted)
}

func fmtCmd() *cobra.Command {
	var (
		write     bool
		list      bool
		assignIDs bool
	)

	cmd := cobra.Command{
		Use:   "fmt [files...]",
		Short: "Format notebooks into their canonical form.",
		Long: `Fmt decodes and re-encodes notebooks. Without --write or --list, a single
notebook is printed to stdout. "-" reads from stdin and https:// URLs are fetched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newBuilder().Invoke(func(cfg *config.Config, store *storage.FS, matcher *storage.Matcher, logger *zap.Logger) error {
				if !write && !list && len(args) != 1 {
					return errors.New("fmt needs exactly one notebook without --write or --list")
				}

				paths, err := notebookPaths(store, matcher, args)
				if err != nil {
					return err
				}

				assign := assignIDs || cfg.Format.AssignIDs
				results, errs := formatNotebooks(cmd, store, logger, paths, assign)

				if !write && !list {
					if errs[0] != nil {
						return errs[0]
					}
					_, err := cmd.OutOrStdout().Write(results[0].formatted)
					return errors.Wrap(err, "failed to write result")
				}

				for idx, res := range results {
					if errs[idx] != nil || !res.changed() {
						continue
					}
					if list {
						cmd.Println(res.path)
					}
					if !write {
						continue
					}
					if !isLocal(res.path) {
						errs[idx] = errors.New("cannot write back to a remote source")
						continue
					}
					rel, err := relPath(store, res.path)
					if err == nil {
						err = store.Write(rel, res.formatted)
					}
					errs[idx] = err
				}

				return combine(paths, errs)
			})
		},
	}

	setDefaultFlags(&cmd)

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result to the source file instead of stdout.")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List files whose formatting differs.")
	cmd.Flags().BoolVar(&assignIDs, "assign-ids", false, "Assign ids to code cells without one.")

	return &cmd
}

func formatNotebooks(cmd *cobra.Command, store *storage.FS, logger *zap.Logger, paths []string, assignIDs bool) ([]formatResult, []error) {
	results := make([]formatResult, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for idx, path := range paths {
		idx, path := idx, path
		g.Go(func() error {
			data, err := readSource(cmd, store, path)
			if err != nil {
				errs[idx] = err
				return nil
			}

			notebook, err := deserialize(data, logger)
			if err != nil {
				errs[idx] = errors.WithMessage(err, "failed to deserialize source")
				return nil
			}

			if assignIDs {
				notebook.AssignIDs()
			}

			results[idx] = formatResult{
				path:      path,
				original:  data,
				formatted: editor.Serialize(notebook, editor.Options{Logger: logger}),
			}
			return nil
		})
	}

	_ = g.Wait()

	return results, errs
}

func isLocal(path string) bool {
	return path != stdinName && !strings.HasPrefix(path, "https://")
}
