package cmd

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/webnb/internal/storage"
	"github.com/stateful/webnb/pkg/document/editor"
)

const stdinName = "-"

// readSource reads a notebook from stdin ("-"), an https:// URL, or a
// path relative to --chdir.
func readSource(cmd *cobra.Command, store *storage.FS, name string) ([]byte, error) {
	switch {
	case name == stdinName:
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, errors.Wrap(err, "failed to read from stdin")

	case strings.HasPrefix(name, "https://"):
		client := http.Client{
			Timeout: time.Second * 10,
		}
		resp, err := client.Get(name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get a file %q", name)
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusOK {
			return nil, errors.Errorf("failed to get a file %q: %s", name, resp.Status)
		}
		data, err := io.ReadAll(resp.Body)
		return data, errors.Wrap(err, "failed to read body")

	default:
		rel, err := relPath(store, name)
		if err != nil {
			return nil, err
		}
		return store.Read(rel)
	}
}

func relPath(store *storage.FS, name string) (string, error) {
	if filepath.IsAbs(name) {
		return store.Rel(name)
	}
	return name, nil
}

func deserialize(data []byte, logger *zap.Logger) (*editor.Notebook, error) {
	return editor.Deserialize(data, editor.Options{Logger: logger})
}

// notebookPaths returns args or, when empty, every notebook under the root.
func notebookPaths(store *storage.FS, matcher *storage.Matcher, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	items, err := store.List("", matcher)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(items))
	for _, item := range items {
		paths = append(paths, item.Path)
	}
	return paths, nil
}

type printer struct {
	w    io.Writer
	ok   *color.Color
	fail *color.Color
	info *color.Color
}

func newPrinter(w io.Writer) *printer {
	p := &printer{
		w:    w,
		ok:   color.New(color.FgGreen),
		fail: color.New(color.FgRed, color.Bold),
		info: color.New(color.FgHiBlack),
	}
	if !isTerminal(w) {
		p.ok.DisableColor()
		p.fail.DisableColor()
		p.info.DisableColor()
	}
	return p
}

func (p *printer) OK(format string, a ...any) {
	_, _ = p.ok.Fprintf(p.w, format+"\n", a...)
}

func (p *printer) Fail(format string, a ...any) {
	_, _ = p.fail.Fprintf(p.w, format+"\n", a...)
}

func (p *printer) Info(format string, a ...any) {
	_, _ = p.info.Fprintf(p.w, format+"\n", a...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
