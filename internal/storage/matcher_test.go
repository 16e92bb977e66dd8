package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher(t *testing.T) {
	t.Parallel()

	m, err := NewMatcher([]string{"**.md", "notes/*.mdx"}, []string{"node_modules/**", "drafts/*.md"})
	require.NoError(t, err)

	testCases := []struct {
		path  string
		match bool
	}{
		{"README.md", true},
		{"docs/guide/setup.md", true},
		{"notes/a.mdx", true},
		{"notes/deep/a.mdx", false},
		{"main.go", false},
		{"node_modules/pkg/README.md", false},
		{"drafts/wip.md", false},
		{"drafts/old/wip.md", true},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.match, m.Match(tc.path), tc.path)
	}

	assert.True(t, m.SkipDir("node_modules"))
	assert.False(t, m.SkipDir("drafts"))
	assert.False(t, m.SkipDir("."))
}

func TestNewMatcher_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewMatcher([]string{"[a-"}, nil)
	require.ErrorContains(t, err, `invalid pattern "[a-"`)
}

func TestMatcher_Nil(t *testing.T) {
	t.Parallel()

	var m *Matcher
	assert.True(t, m.Match("anything.txt"))
	assert.False(t, m.Ignored("node_modules/"))
	assert.False(t, m.SkipDir("node_modules"))
}
