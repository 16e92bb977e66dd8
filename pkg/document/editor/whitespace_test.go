package editor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every combination of blocks and blank-line runs must survive
// Deserialize followed by Serialize unchanged.
func TestWhitespaceRunsRoundTrip(t *testing.T) {
	blocks := []string{
		"para",
		"```{css}\np {}\n```",
		"```{css id=a}\np {}\n```\n```+test\nok\n```",
		"    ```{javascript}\n    1\n    ```",
	}
	runs := []int{0, 1, 2}

	var sequences [][]string
	var grow func(seq []string)
	grow = func(seq []string) {
		if len(seq) > 0 {
			sequences = append(sequences, seq)
		}
		if len(seq) == 3 {
			return
		}
		for _, b := range blocks {
			grow(append(append([]string{}, seq...), b))
		}
	}
	grow(nil)

	checked := 0
	for _, seq := range sequences {
		for _, source := range joinWithRuns(seq, runs) {
			for _, leading := range runs {
				for _, trailing := range runs {
					doc := strings.Repeat("\n", leading) + source + strings.Repeat("\n", trailing)

					notebook, err := Deserialize([]byte(doc), Options{})
					require.NoError(t, err, "%q", doc)

					if !assert.Equal(t, doc, string(Serialize(notebook, Options{})), "%q", doc) {
						return
					}
					checked++
				}
			}
		}
	}

	assert.Equal(t, 3*3*(4+16*3+64*9), checked)
}

// joinWithRuns joins blocks with every combination of blank-line runs.
func joinWithRuns(blocks []string, runs []int) []string {
	if len(blocks) == 1 {
		return []string{blocks[0]}
	}

	var result []string
	for _, rest := range joinWithRuns(blocks[1:], runs) {
		for _, n := range runs {
			result = append(result, blocks[0]+"\n"+strings.Repeat("\n", n)+rest)
		}
	}
	return result
}
