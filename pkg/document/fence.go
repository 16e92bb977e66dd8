package document

import (
	"regexp"
	"strings"
)

// BlockType describes what a fence opener starts.
type BlockType int

const (
	// UserCodeBlock is ```{lang} or ```{lang id=X}.
	UserCodeBlock BlockType = iota + 1
	// AddonReferenceBlock is ```+id=X.
	AddonReferenceBlock
	// CodeWithIDBlock is ```lang id=X, rendered as markdown.
	CodeWithIDBlock
	// AddonCodeBlock is ```+type.
	AddonCodeBlock
)

func (t BlockType) String() string {
	switch t {
	case UserCodeBlock:
		return "user-code"
	case AddonReferenceBlock:
		return "addon-reference"
	case CodeWithIDBlock:
		return "code-with-id"
	case AddonCodeBlock:
		return "addon-code"
	default:
		return "unknown"
	}
}

const fenceMarker = "```"

// Openers are tried in this order and the first match wins.
var (
	userCodeRe       = regexp.MustCompile("^(    |\t)?```\\{(\\S*)(\\s+id=(\\S+))?\\}")
	addonReferenceRe = regexp.MustCompile("^(    |\t)?```\\+id=(\\S+)")
	codeWithIDRe     = regexp.MustCompile("^(    |\t)?```(\\S+)(\\s+id\\s*=\\s*(\\S+))")
	addonCodeRe      = regexp.MustCompile("^(    |\t)?```\\+(\\S*)(\\s+(\\S*))?")
)

// Fence is a classified fence opener.
type Fence struct {
	// Tag is the language for code blocks and the addon type for addon blocks.
	// It is empty for references.
	Tag         string
	Indentation string
	Type        BlockType
	// ID is the cell id for user-code and code-with-id blocks,
	// and the target id for references.
	ID string
}

// ParseFence classifies a line as a fence opener. It returns false
// for anything else, including closers and plain markdown fences.
func ParseFence(line string) (*Fence, bool) {
	if m := userCodeRe.FindStringSubmatch(line); m != nil {
		return &Fence{Indentation: m[1], Tag: m[2], Type: UserCodeBlock, ID: m[4]}, true
	}
	if m := addonReferenceRe.FindStringSubmatch(line); m != nil {
		return &Fence{Indentation: m[1], Type: AddonReferenceBlock, ID: m[2]}, true
	}
	if m := codeWithIDRe.FindStringSubmatch(line); m != nil {
		return &Fence{Indentation: m[1], Tag: m[2], Type: CodeWithIDBlock, ID: m[4]}, true
	}
	if m := addonCodeRe.FindStringSubmatch(line); m != nil {
		return &Fence{Indentation: m[1], Tag: m[2], Type: AddonCodeBlock}, true
	}
	return nil, false
}

// IsFenceOpener reports whether ParseFence would accept the line.
func IsFenceOpener(line string) bool {
	_, ok := ParseFence(line)
	return ok
}

// IsFenceCloser reports whether the line ends a fenced block.
func IsFenceCloser(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t\v\f\r"), fenceMarker)
}
