package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFence(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		line     string
		expected *Fence
	}{
		{line: "```{html}", expected: &Fence{Tag: "html", Type: UserCodeBlock}},
		{line: "```{html id=5}", expected: &Fence{Tag: "html", Type: UserCodeBlock, ID: "5"}},
		{line: "```{}", expected: &Fence{Tag: "", Type: UserCodeBlock}},
		{line: "```{python} trailing text", expected: &Fence{Tag: "python", Type: UserCodeBlock}},
		{line: "    ```{javascript id=abc}", expected: &Fence{Tag: "javascript", Indentation: "    ", Type: UserCodeBlock, ID: "abc"}},
		{line: "\t```{css}", expected: &Fence{Tag: "css", Indentation: "\t", Type: UserCodeBlock}},
		{line: "```+id=5", expected: &Fence{Type: AddonReferenceBlock, ID: "5"}},
		{line: "    ```+id=cell-1", expected: &Fence{Indentation: "    ", Type: AddonReferenceBlock, ID: "cell-1"}},
		{line: "```html id=5", expected: &Fence{Tag: "html", Type: CodeWithIDBlock, ID: "5"}},
		{line: "```html id = 5", expected: &Fence{Tag: "html", Type: CodeWithIDBlock, ID: "5"}},
		{line: "```+test", expected: &Fence{Tag: "test", Type: AddonCodeBlock}},
		{line: "```+css ignored", expected: &Fence{Tag: "css", Type: AddonCodeBlock}},
		{line: "\t```+test", expected: &Fence{Tag: "test", Indentation: "\t", Type: AddonCodeBlock}},
		{line: "```"},
		{line: "```js"},
		{line: "```js {name=foo}"},
		{line: "  ```{js}"},
		{line: "text ```{js}"},
		{line: "# Title"},
		{line: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			fence, ok := ParseFence(tc.line)
			if tc.expected == nil {
				assert.False(t, ok)
				assert.Nil(t, fence)
				assert.False(t, IsFenceOpener(tc.line))
				return
			}
			require.True(t, ok)
			assert.Equal(t, tc.expected, fence)
			assert.True(t, IsFenceOpener(tc.line))
		})
	}
}

func TestIsFenceCloser(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"```", "    ```", "\t```", "```js", "``` "} {
		assert.True(t, IsFenceCloser(line), "%q", line)
	}
	for _, line := range []string{"", "``", "text```", "# ```"} {
		assert.False(t, IsFenceCloser(line), "%q", line)
	}
}

func TestBlockType_String(t *testing.T) {
	assert.Equal(t, "user-code", UserCodeBlock.String())
	assert.Equal(t, "addon-reference", AddonReferenceBlock.String())
	assert.Equal(t, "code-with-id", CodeWithIDBlock.String())
	assert.Equal(t, "addon-code", AddonCodeBlock.String())
	assert.Equal(t, "unknown", BlockType(0).String())
}

func TestLanguage(t *testing.T) {
	for _, l := range Languages() {
		assert.Equal(t, l.ID, ResolveLanguage(l.Abbrev))
		assert.Equal(t, l.Abbrev, AbbrevLanguage(l.ID))
	}
	assert.Equal(t, "python", ResolveLanguage("python"))
	assert.Equal(t, "python", AbbrevLanguage("python"))
}
