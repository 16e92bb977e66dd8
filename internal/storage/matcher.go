package storage

import (
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

// Matcher decides which files are notebooks. A path must match one of
// the include patterns and none of the ignore patterns. A nil *Matcher
// matches every file and ignores nothing.
type Matcher struct {
	include []glob.Glob
	ignore  []glob.Glob
}

func NewMatcher(include, ignore []string) (*Matcher, error) {
	inc, err := compileGlobs(include)
	if err != nil {
		return nil, err
	}
	ign, err := compileGlobs(ignore)
	if err != nil {
		return nil, err
	}
	return &Matcher{include: inc, ignore: ign}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, item := range patterns {
		g, err := glob.Compile(item, '/')
		if err != nil {
			return nil, errors.Wrapf(err, "invalid pattern %q", item)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Match reports whether rel, a path relative to the root, is a notebook.
func (m *Matcher) Match(rel string) bool {
	if m == nil {
		return true
	}
	rel = filepath.ToSlash(rel)
	if m.Ignored(rel) {
		return false
	}
	for _, g := range m.include {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func (m *Matcher) Ignored(rel string) bool {
	if m == nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, g := range m.ignore {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// SkipDir reports whether everything below the directory rel is ignored.
func (m *Matcher) SkipDir(rel string) bool {
	if rel == "." || rel == "" {
		return false
	}
	return m.Ignored(filepath.ToSlash(rel) + "/")
}
