package cmd

import (
	"runtime"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stateful/webnb/internal/storage"
	"github.com/stateful/webnb/pkg/document"
)

func checkCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "check [files...]",
		Short: "Check notebooks for structural errors.",
		Long: `Check decodes every given notebook, or every notebook under the working
directory matched by the configuration, and reports dangling addons and
unresolved references with their line numbers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newBuilder().Invoke(func(store *storage.FS, matcher *storage.Matcher, logger *zap.Logger) error {
				paths, err := notebookPaths(store, matcher, args)
				if err != nil {
					return err
				}

				errs := checkNotebooks(cmd, store, logger, paths)

				p := newPrinter(cmd.OutOrStdout())
				failed := 0
				for idx, path := range paths {
					if errs[idx] == nil {
						continue
					}
					failed++
					p.Fail("%s", formatError(path, errs[idx]))
				}

				if failed > 0 {
					return errors.Errorf("%d of %d notebooks failed", failed, len(paths))
				}

				p.OK("checked %d notebooks", len(paths))
				return nil
			})
		},
	}

	setDefaultFlags(&cmd)

	return &cmd
}

// checkNotebooks decodes paths concurrently. The result is aligned with paths.
func checkNotebooks(cmd *cobra.Command, store *storage.FS, logger *zap.Logger, paths []string) []error {
	errs := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	var mu sync.Mutex
	var stdinUsed bool

	for idx, path := range paths {
		idx, path := idx, path
		g.Go(func() error {
			if path == stdinName {
				mu.Lock()
				used := stdinUsed
				stdinUsed = true
				mu.Unlock()
				if used {
					errs[idx] = errors.New("stdin can be read only once")
					return nil
				}
			}

			data, err := readSource(cmd, store, path)
			if err == nil {
				_, err = deserialize(data, logger)
			}
			errs[idx] = err
			return nil
		})
	}

	_ = g.Wait()

	return errs
}

// formatError renders parse errors as "file:line: message".
func formatError(path string, err error) string {
	var perr *document.ParseError
	if errors.As(err, &perr) {
		msg := perr.Err.Error()
		if perr.ID != "" {
			msg += " (id=" + perr.ID + ")"
		}
		return path + ":" + strconv.Itoa(perr.Line) + ": " + msg
	}
	return path + ": " + err.Error()
}

// combine merges per-file errors into one.
func combine(paths []string, errs []error) error {
	var result error
	for idx, err := range errs {
		if err != nil {
			result = multierr.Append(result, errors.WithMessage(err, paths[idx]))
		}
	}
	return result
}
