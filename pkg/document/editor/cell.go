package editor

import (
	"github.com/stateful/webnb/internal/ulid"
	"github.com/stateful/webnb/pkg/document"
)

type CellKind = document.CellKind

const (
	MarkupKind = document.MarkupKind
	CodeKind   = document.CodeKind
)

// Cell resembles NotebookCellData from VS Code.
// https://github.com/microsoft/vscode/blob/085c409898bbc89c83409f6a394e73130b932add/src/vscode-dts/vscode.d.ts#L13715
type Cell struct {
	Kind       CellKind      `json:"kind" yaml:"kind"`
	Value      string        `json:"value" yaml:"value"`
	LanguageID string        `json:"languageId" yaml:"languageId"`
	Metadata   *CellMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// CellMetadata carries what is needed to write a cell back byte for byte.
// Nil whitespace means the cell was created by an editor and has no
// recorded surroundings.
type CellMetadata struct {
	LeadingWhitespace  *string          `json:"leadingWhitespace,omitempty" yaml:"leadingWhitespace,omitempty"`
	TrailingWhitespace *string          `json:"trailingWhitespace,omitempty" yaml:"trailingWhitespace,omitempty"`
	Indentation        string           `json:"indentation,omitempty" yaml:"indentation,omitempty"`
	Addons             []document.Addon `json:"addons,omitempty" yaml:"addons,omitempty"`
	ID                 string           `json:"id,omitempty" yaml:"id,omitempty"`
}

var emptyMetadata = CellMetadata{}

func (c *Cell) metadata() *CellMetadata {
	if c.Metadata == nil {
		return &emptyMetadata
	}
	return c.Metadata
}

// ID returns the stable cell id or an empty string.
func (c *Cell) ID() string {
	return c.metadata().ID
}

// Addons returns the addons attached to a code cell.
func (c *Cell) Addons() []document.Addon {
	return c.metadata().Addons
}

// Notebook resembles NotebookData form VS Code.
// https://github.com/microsoft/vscode/blob/085c409898bbc89c83409f6a394e73130b932add/src/vscode-dts/vscode.d.ts#L13767
type Notebook struct {
	Cells []*Cell `json:"cells" yaml:"cells"`
}

// FindCell returns the first cell with the given id.
func (n *Notebook) FindCell(id string) (*Cell, bool) {
	if id == "" {
		return nil, false
	}
	for _, c := range n.Cells {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// AssignIDs gives every code cell without an id a fresh one.
// It returns the number of cells that were updated.
func (n *Notebook) AssignIDs() int {
	count := 0
	for _, c := range n.Cells {
		if c.Kind != CodeKind || c.ID() != "" {
			continue
		}
		if c.Metadata == nil {
			c.Metadata = &CellMetadata{}
		}
		c.Metadata.ID = ulid.GenerateID()
		count++
	}
	return count
}

// NewMarkupCell creates a cell as an editor would, without whitespace metadata.
func NewMarkupCell(value string) *Cell {
	return &Cell{
		Kind:       MarkupKind,
		Value:      value,
		LanguageID: document.MarkdownLanguage,
	}
}

// NewCodeCell creates a code cell as an editor would, without whitespace metadata.
func NewCodeCell(languageID, value string, addons ...document.Addon) *Cell {
	cell := &Cell{
		Kind:       CodeKind,
		Value:      value,
		LanguageID: languageID,
	}
	if len(addons) > 0 {
		cell.Metadata = &CellMetadata{Addons: addons}
	}
	return cell
}

func fromDocumentCell(c document.Cell) *Cell {
	leading, trailing := c.LeadingWhitespace, c.TrailingWhitespace
	return &Cell{
		Kind:       c.Kind,
		Value:      c.Content,
		LanguageID: c.Language,
		Metadata: &CellMetadata{
			LeadingWhitespace:  &leading,
			TrailingWhitespace: &trailing,
			Indentation:        c.Indentation,
			Addons:             c.Addons,
			ID:                 c.ID,
		},
	}
}
