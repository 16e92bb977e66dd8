package document

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(l ...string) []byte {
	return []byte(strings.Join(l, "\n"))
}

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		source   []byte
		expected []Cell
	}{
		{
			name: "title and code cell with test addon",
			source: lines(
				"# Title",
				"",
				"```{javascript id=1}",
				"console.log(1)",
				"```",
				"```+test",
				"assertOutput()",
				"```",
				"",
			),
			expected: []Cell{
				{
					Kind:               MarkupKind,
					Language:           MarkdownLanguage,
					Content:            "# Title",
					TrailingWhitespace: "\n\n",
				},
				{
					Kind:               CodeKind,
					Language:           "javascript",
					Content:            "console.log(1)",
					TrailingWhitespace: "\n",
					ID:                 "1",
					Addons:             []Addon{{Type: "test", Content: "assertOutput()"}},
					RawCode:            "console.log(1)",
					RawCodeLanguage:    "javascript",
				},
			},
		},
		{
			name:   "interior blank line",
			source: []byte("a\n\nb"),
			expected: []Cell{
				{Kind: MarkupKind, Language: MarkdownLanguage, Content: "a", TrailingWhitespace: "\n\n"},
				{Kind: MarkupKind, Language: MarkdownLanguage, Content: "b"},
			},
		},
		{
			name:   "leading and trailing blank lines",
			source: []byte("\n\n# T\n\n"),
			expected: []Cell{
				{Kind: MarkupKind, Language: MarkdownLanguage, Content: "# T", LeadingWhitespace: "\n\n", TrailingWhitespace: "\n\n"},
			},
		},
		{
			name:   "multi-line paragraph",
			source: []byte("line 1\nline 2\n"),
			expected: []Cell{
				{Kind: MarkupKind, Language: MarkdownLanguage, Content: "line 1\nline 2", TrailingWhitespace: "\n"},
			},
		},
		{
			name:   "plain markdown fence stays markup",
			source: lines("```go", "fmt.Println()", "```"),
			expected: []Cell{
				{Kind: MarkupKind, Language: MarkdownLanguage, Content: "```go\nfmt.Println()\n```"},
			},
		},
		{
			name:   "unknown language passes through",
			source: lines("```{python}", "print(1)", "```"),
			expected: []Cell{
				{Kind: CodeKind, Language: "python", Content: "print(1)", RawCode: "print(1)", RawCodeLanguage: "python"},
			},
		},
		{
			name:   "unterminated fence keeps all lines",
			source: lines("```{css}", "a {}", "b {}"),
			expected: []Cell{
				{Kind: CodeKind, Language: "css", Content: "a {}\nb {}", RawCode: "a {}\nb {}", RawCodeLanguage: "css"},
			},
		},
		{
			name:   "paragraph ends at fence opener",
			source: lines("intro", "```{html}", "<p></p>", "```"),
			expected: []Cell{
				{Kind: MarkupKind, Language: MarkdownLanguage, Content: "intro", TrailingWhitespace: "\n"},
				{Kind: CodeKind, Language: "html", Content: "<p></p>", RawCode: "<p></p>", RawCodeLanguage: "html"},
			},
		},
		{
			name: "indented code cell with addon",
			source: lines(
				"1. item",
				"",
				"    ```{javascript}",
				"    a()",
				"      b()",
				"    ```",
				"    ```+test",
				"    check()",
				"    ```",
				"",
			),
			expected: []Cell{
				{Kind: MarkupKind, Language: MarkdownLanguage, Content: "1. item", TrailingWhitespace: "\n\n"},
				{
					Kind:               CodeKind,
					Language:           "javascript",
					Content:            "a()\n  b()",
					TrailingWhitespace: "\n",
					Indentation:        "    ",
					Addons:             []Addon{{Type: "test", Content: "check()"}},
					RawCode:            "a()\n  b()",
					RawCodeLanguage:    "javascript",
				},
			},
		},
		{
			name:   "code with id becomes markup",
			source: lines("```html id=a", "<p>x</p>", "```", ""),
			expected: []Cell{
				{
					Kind:               MarkupKind,
					Language:           MarkdownLanguage,
					Content:            "```html\n<p>x</p>\n```",
					TrailingWhitespace: "\n",
					ID:                 "a",
					RawCode:            "<p>x</p>",
					RawCodeLanguage:    "html",
				},
			},
		},
		{
			name:   "blank lines after addon belong to the cell",
			source: lines("```{css}", "a {}", "```", "```+test", "t", "```", "", "", "end"),
			expected: []Cell{
				{
					Kind:               CodeKind,
					Language:           "css",
					Content:            "a {}",
					TrailingWhitespace: "\n\n\n",
					Addons:             []Addon{{Type: "test", Content: "t"}},
					RawCode:            "a {}",
					RawCodeLanguage:    "css",
				},
				{Kind: MarkupKind, Language: MarkdownLanguage, Content: "end"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cells, err := Parse(tc.source)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.expected, cells); diff != "" {
				t.Fatalf("unexpected cells (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_BlankLinesBeforeAddon(t *testing.T) {
	cells, err := Parse([]byte("```{css}\na {}\n```\n\n```+test\nt\n```\n"))
	require.NoError(t, err)
	require.Len(t, cells, 1)

	// Only the run after the addon is kept.
	assert.Equal(t, "\n", cells[0].TrailingWhitespace)
	assert.Equal(t, []Addon{{Type: "test", Content: "t"}}, cells[0].Addons)
}

func TestParse_Empty(t *testing.T) {
	cells, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, cells)

	cells, err = Parse([]byte("\n\n"))
	require.NoError(t, err)
	assert.Empty(t, cells)
}

func TestParse_CRLF(t *testing.T) {
	cells, err := Parse([]byte("a\r\n\r\nb\r\n"))
	require.NoError(t, err)
	require.Len(t, cells, 2)
	assert.Equal(t, "a", cells[0].Content)
	assert.Equal(t, "\n\n", cells[0].TrailingWhitespace)
	assert.Equal(t, "b", cells[1].Content)
	assert.Equal(t, "\n", cells[1].TrailingWhitespace)
}

func TestParse_Reference(t *testing.T) {
	t.Parallel()

	t.Run("Snapshot", func(t *testing.T) {
		source := lines(
			"```{html id=a}",
			"<p>x</p>",
			"```",
			"",
			"Anything in between.",
			"",
			"```html id=b",
			"<b>ignored</b>",
			"```",
			"",
			"```{javascript}",
			"render()",
			"```",
			"```+id=a",
			"",
			"```",
		)
		cells, err := Parse(source)
		require.NoError(t, err)
		require.Len(t, cells, 4)

		assert.Empty(t, cells[0].Addons)
		assert.Equal(t, []Addon{{Type: "html", Content: "<p>x</p>", ID: "a"}}, cells[3].Addons)
	})

	t.Run("CodeWithIDTarget", func(t *testing.T) {
		source := lines(
			"```css id=style",
			"p { color: red; }",
			"```",
			"```{html}",
			"<p>red</p>",
			"```",
			"```+id=style",
			"```",
		)
		cells, err := Parse(source)
		require.NoError(t, err)
		require.Len(t, cells, 2)
		assert.Equal(t, []Addon{{Type: "css", Content: "p { color: red; }", ID: "style"}}, cells[1].Addons)
	})

	t.Run("FirstIDWins", func(t *testing.T) {
		source := lines(
			"```{html id=a}",
			"1",
			"```",
			"```{html id=a}",
			"2",
			"```",
			"```+id=a",
			"```",
		)
		cells, err := Parse(source)
		require.NoError(t, err)
		require.Len(t, cells, 2)
		assert.Equal(t, []Addon{{Type: "html", Content: "1", ID: "a"}}, cells[1].Addons)
	})

	t.Run("SelfReference", func(t *testing.T) {
		source := lines("```{css id=s}", "a {}", "```", "```+id=s", "```")
		cells, err := Parse(source)
		require.NoError(t, err)
		require.Len(t, cells, 1)
		assert.Equal(t, []Addon{{Type: "css", Content: "a {}", ID: "s"}}, cells[0].Addons)
	})
}

func TestParse_AddonOrdering(t *testing.T) {
	source := lines(
		"```{javascript id=1}",
		"first()",
		"```",
		"",
		"Prose between blocks.",
		"",
		"```html id=2",
		"<i>shown as markdown</i>",
		"```",
		"```+test",
		"t1()",
		"```",
		"```+css",
		"i {}",
		"```",
		"",
		"```{javascript}",
		"second()",
		"```",
		"```+test",
		"t2()",
		"```",
	)

	cells, err := Parse(source)
	require.NoError(t, err)
	require.Len(t, cells, 4)

	assert.Equal(t, CodeKind, cells[0].Kind)
	assert.Equal(t, []Addon{{Type: "test", Content: "t1()"}, {Type: "css", Content: "i {}"}}, cells[0].Addons)
	assert.Equal(t, MarkupKind, cells[1].Kind)
	assert.Empty(t, cells[1].Addons)
	assert.Equal(t, MarkupKind, cells[2].Kind)
	assert.Equal(t, "2", cells[2].ID)
	assert.Empty(t, cells[2].Addons)
	assert.Equal(t, []Addon{{Type: "test", Content: "t2()"}}, cells[3].Addons)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		source []byte
		err    error
		line   int
		id     string
		msg    string
	}{
		{
			name:   "addon first",
			source: lines("```+test", "foo", "```"),
			err:    ErrDanglingAddon,
			line:   1,
			msg:    "line 1: addon block without a preceding code cell",
		},
		{
			name:   "addon after markup only",
			source: lines("intro", "", "```html id=x", "<p></p>", "```", "```+css", "p {}", "```"),
			err:    ErrDanglingAddon,
			line:   6,
		},
		{
			name:   "reference without code cell",
			source: lines("```html id=x", "<p></p>", "```", "```+id=x", "```"),
			err:    ErrDanglingAddon,
			line:   4,
		},
		{
			name:   "missing reference",
			source: lines("```{javascript}", "x", "```", "```+id=missing", "```"),
			err:    ErrUnresolvedReference,
			line:   4,
			id:     "missing",
			msg:    `line 4: referenced cell not found: id="missing"`,
		},
		{
			name:   "forward reference",
			source: lines("```{javascript}", "x", "```", "```+id=b", "```", "```{css id=b}", "y", "```"),
			err:    ErrUnresolvedReference,
			line:   4,
			id:     "b",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cells, err := Parse(tc.source)
			require.Error(t, err)
			assert.Nil(t, cells)
			assert.True(t, errors.Is(err, tc.err))

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tc.line, parseErr.Line)
			assert.Equal(t, tc.id, parseErr.ID)
			if tc.msg != "" {
				assert.Equal(t, tc.msg, err.Error())
			}
		})
	}
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "DanglingAddon", ErrorKind(&ParseError{Err: ErrDanglingAddon}))
	assert.Equal(t, "UnresolvedReference", ErrorKind(&ParseError{Err: ErrUnresolvedReference}))
	assert.Equal(t, "UnknownBlockType", ErrorKind(ErrUnknownBlockType))
	assert.Equal(t, "", ErrorKind(errors.New("other")))
}

func TestParser_UnknownBlockType(t *testing.T) {
	p := newParser(lines("```{x}", "```"))
	err := p.codeBlock("", &Fence{Type: BlockType(42)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownBlockType))
}
