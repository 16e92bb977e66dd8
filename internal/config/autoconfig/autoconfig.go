// autoconfig provides a way to create various instances from the [config.Config] like
// [storage.FS], [zap.Logger], or a notebook [storage.Matcher].
//
// For example, to get a logger and the storage, you can write:
//
//	autoconfig.NewBuilder(autoconfig.WithRoot(dir)).Invoke(func(logger *zap.Logger, store *storage.FS) error {
//	    ...
//	})
//
// Treat it as a dependency injection mechanism.
package autoconfig

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/stateful/webnb/internal/config"
	"github.com/stateful/webnb/internal/log"
	"github.com/stateful/webnb/internal/storage"
)

const (
	configName = "webnb"
	configType = "yaml"
)

type Builder struct {
	container *dig.Container

	root       string
	configPath string
	logPath    string
	verbose    bool
}

type BuilderOption func(*Builder)

// WithRoot sets the project root. Defaults to the current working directory.
func WithRoot(root string) BuilderOption {
	return func(b *Builder) {
		b.root = root
	}
}

// WithConfigPath points at a configuration file outside of the project root.
func WithConfigPath(path string) BuilderOption {
	return func(b *Builder) {
		b.configPath = path
	}
}

// WithLogOverrides forces logging regardless of the configuration.
func WithLogOverrides(path string, verbose bool) BuilderOption {
	return func(b *Builder) {
		b.logPath = path
		b.verbose = verbose
	}
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		container: dig.New(),
		root:      ".",
	}

	for _, opt := range opts {
		opt(b)
	}

	mustProvide(b.container.Provide(b.getConfig))
	mustProvide(b.container.Provide(b.getLogger))
	mustProvide(b.container.Provide(b.getStorage))
	mustProvide(b.container.Provide(getMatcher))

	return b
}

func mustProvide(err error) {
	if err != nil {
		panic("failed to provide: " + err.Error())
	}
}

// Invoke is used to invoke the function with the given dependencies.
// The builder will automatically figure out how to instantiate them
// using the available configuration.
func (b *Builder) Invoke(function interface{}, opts ...dig.InvokeOption) error {
	err := b.container.Invoke(function, opts...)
	return dig.RootCause(err)
}

// Decorate replaces a dependency before it is used. Mostly useful in tests.
func (b *Builder) Decorate(decorator interface{}, opts ...dig.DecorateOption) error {
	return b.container.Decorate(decorator, opts...)
}

func (b *Builder) getConfig() (*config.Config, error) {
	if b.configPath != "" {
		data, err := os.ReadFile(b.configPath)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config %q", b.configPath)
		}
		cfg, err := config.ParseYAML(data)
		return cfg, errors.Wrapf(err, "failed to parse %s", filepath.Base(b.configPath))
	}

	loader := config.NewLoader(configName, configType, os.DirFS(b.root))
	return loader.Load()
}

func (b *Builder) getLogger(c *config.Config) *zap.Logger {
	opts := log.Options{
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		Verbose:    b.verbose || c.Log.Verbose && c.Log.Enabled,
	}

	switch {
	case b.logPath != "":
		opts.Path = b.logPath
	case c.Log.Enabled:
		opts.Path = c.Log.Path
	}

	log.Set(opts)
	return log.Get()
}

func (b *Builder) getStorage(logger *zap.Logger) (*storage.FS, error) {
	return storage.NewFS(b.root, storage.WithLogger(logger))
}

func getMatcher(c *config.Config) (*storage.Matcher, error) {
	return storage.NewMatcher(c.Notebooks.Include, c.Notebooks.Ignore)
}
