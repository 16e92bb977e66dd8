package document

// CellKind matches VS Code's NotebookCellKind.
type CellKind int

const (
	MarkupKind CellKind = iota + 1
	CodeKind
)

func (k CellKind) String() string {
	switch k {
	case MarkupKind:
		return "markup"
	case CodeKind:
		return "code"
	default:
		return "unknown"
	}
}

// Addon is a side block attached to a code cell, for example a test script.
type Addon struct {
	Type    string `json:"type" yaml:"type"`
	Content string `json:"content" yaml:"content"`
	// ID is set only when the addon was copied from a referenced cell.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`
}

// Cell is a single parsed cell. Cells are produced by Parse
// and are not modified afterwards.
type Cell struct {
	Kind               CellKind
	Language           string
	Content            string
	LeadingWhitespace  string
	TrailingWhitespace string
	Indentation        string
	ID                 string
	Addons             []Addon

	// RawCode and RawCodeLanguage hold the fence content a reference
	// resolves to. They are empty for paragraphs.
	RawCode         string
	RawCodeLanguage string
}

// referenced returns the addon an addon-reference to this cell resolves to.
// Only cells opened by a fence carry an id, and all of them record raw code,
// so the raw fields are used even when empty.
func (c Cell) referenced(id string) Addon {
	return Addon{Type: c.RawCodeLanguage, Content: c.RawCode, ID: id}
}
