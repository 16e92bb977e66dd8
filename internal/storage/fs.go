package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// FS implements Provider backed by the local file system.
type FS struct {
	root   string // absolute path
	logger *zap.Logger
}

type FSOption func(*FS)

func WithLogger(logger *zap.Logger) FSOption {
	return func(f *FS) {
		f.logger = logger
	}
}

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string, opts ...FSOption) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, "storage: resolve root")
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrap(err, "storage: stat root")
	}
	if !info.IsDir() {
		return nil, errors.Errorf("storage: root is not a directory: %s", abs)
	}

	f := &FS{root: abs}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	return f, nil
}

func (f *FS) Root() string {
	return f.root
}

// safePath resolves a relative path against the root and rejects
// any result that escapes it.
func (f *FS) safePath(rel string) (string, error) {
	if rel == "" {
		return f.root, nil
	}
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", errors.Errorf("storage: absolute paths not allowed: %s", rel)
	}
	abs, err := filepath.Abs(filepath.Join(f.root, cleaned))
	if err != nil {
		return "", errors.Wrap(err, "storage: resolve path")
	}
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) && abs != f.root {
		return "", errors.Errorf("storage: path escapes root: %s", rel)
	}
	return abs, nil
}

// Rel converts a path given on the command line, absolute or relative
// to the working directory, into a path relative to the root.
func (f *FS) Rel(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(err, "storage: resolve path")
	}
	rel, err := filepath.Rel(f.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", errors.Errorf("storage: path escapes root: %s", path)
	}
	return rel, nil
}

// List walks dir (relative to root) and returns every file accepted by m,
// sorted by path.
func (f *FS) List(dir string, m *Matcher) ([]NotebookInfo, error) {
	base, err := f.safePath(dir)
	if err != nil {
		return nil, err
	}

	var out []NotebookInfo
	err = filepath.WalkDir(base, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(f.root, p)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if m.SkipDir(rel) {
				f.logger.Debug("skipping ignored directory", zap.String("path", rel))
				return filepath.SkipDir
			}
			return nil
		}
		if !m.Match(rel) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		out = append(out, NotebookInfo{
			Path:      rel,
			Checksum:  Checksum(data),
			UpdatedAt: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "storage: list")
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Read returns the raw bytes of a file.
func (f *FS) Read(path string) ([]byte, error) {
	abs, err := f.safePath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "storage: read %s", path)
	}
	return data, nil
}

// Write atomically writes content: tmp file, fsync, rename.
// The mode of an existing file is preserved.
func (f *FS) Write(path string, content []byte) error {
	abs, err := f.safePath(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "storage: mkdir")
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(abs); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, ".webnb-tmp-*")
	if err != nil {
		return errors.Wrap(err, "storage: create temp")
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return errors.Wrap(err, "storage: write temp")
	}
	if err := tmp.Chmod(mode); err != nil {
		return errors.Wrap(err, "storage: chmod temp")
	}
	if err := tmp.Sync(); err != nil {
		return errors.Wrap(err, "storage: fsync")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "storage: close temp")
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return errors.Wrap(err, "storage: rename")
	}
	success = true

	f.logger.Debug("wrote file", zap.String("path", path), zap.Int("size", len(content)))
	return nil
}

func Checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
