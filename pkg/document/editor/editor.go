package editor

import (
	"bytes"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/stateful/webnb/pkg/document"
)

const fence = "```"

type Options struct {
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Deserialize decodes notebook source into cells. A structural error aborts
// the whole decode and is returned as a *document.ParseError.
func Deserialize(data []byte, opts Options) (*Notebook, error) {
	cells, err := document.Parse(data)
	if err != nil {
		opts.logger().Debug("failed to parse notebook", zap.Error(err))
		return nil, err
	}

	notebook := &Notebook{Cells: make([]*Cell, 0, len(cells))}
	for _, c := range cells {
		notebook.Cells = append(notebook.Cells, fromDocumentCell(c))
	}

	opts.logger().Debug("deserialized notebook", zap.Int("cells", len(notebook.Cells)))

	return notebook, nil
}

// Serialize writes cells back to notebook source. Cells decoded by
// Deserialize are reproduced exactly; cells without metadata get
// canonical spacing.
func Serialize(notebook *Notebook, opts Options) []byte {
	var buf bytes.Buffer

	cells := notebook.Cells
	for idx, cell := range cells {
		if idx == 0 {
			if ws := cell.metadata().LeadingWhitespace; ws != nil {
				_, _ = buf.WriteString(*ws)
			}
		}

		switch cell.Kind {
		case CodeKind:
			writeCodeCell(&buf, cell)
		default:
			writeMarkupCell(&buf, cell)
		}

		_, _ = buf.WriteString(whitespaceAfter(cells, idx))
	}

	opts.logger().Debug("serialized notebook", zap.Int("cells", len(cells)), zap.Int("bytes", buf.Len()))

	return buf.Bytes()
}

func writeCodeCell(buf *bytes.Buffer, cell *Cell) {
	md := cell.metadata()
	indent := md.Indentation

	_, _ = buf.WriteString(indent + fence + "{" + document.AbbrevLanguage(cell.LanguageID))
	if md.ID != "" {
		_, _ = buf.WriteString(" id=" + md.ID)
	}
	_, _ = buf.WriteString("}\n")
	writeIndented(buf, cell.Value, indent)
	_, _ = buf.WriteString("\n" + indent + fence)

	for _, addon := range md.Addons {
		if addon.ID != "" {
			// References are resolved again on the next parse.
			_, _ = buf.WriteString("\n" + indent + fence + "+id=" + addon.ID + "\n")
			_, _ = buf.WriteString("\n" + indent + fence)
			continue
		}
		_, _ = buf.WriteString("\n" + indent + fence + "+" + addon.Type + "\n")
		writeIndented(buf, addon.Content, indent)
		_, _ = buf.WriteString("\n" + indent + fence)
	}
}

var markupFenceRe = regexp.MustCompile("^([ \t]*)```(\\S+)([^\n]*)\n")

func writeMarkupCell(buf *bytes.Buffer, cell *Cell) {
	id := cell.metadata().ID
	if id == "" {
		_, _ = buf.WriteString(cell.Value)
		return
	}
	_, _ = buf.WriteString(injectFenceID(cell.Value, id))
}

// injectFenceID adds " id=<id>" after the language of the first fence line.
func injectFenceID(value, id string) string {
	m := markupFenceRe.FindStringSubmatch(value)
	if m == nil {
		return value
	}
	return m[1] + fence + m[2] + " id=" + id + m[3] + "\n" + value[len(m[0]):]
}

func writeIndented(buf *bytes.Buffer, value, indent string) {
	lines := strings.Split(strings.ReplaceAll(value, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if i > 0 {
			_ = buf.WriteByte('\n')
		}
		_, _ = buf.WriteString(indent + line)
	}
}

func whitespaceAfter(cells []*Cell, idx int) string {
	trailing := cells[idx].metadata().TrailingWhitespace

	if idx == len(cells)-1 {
		if trailing == nil {
			return "\n"
		}
		return *trailing
	}

	leading := cells[idx+1].metadata().LeadingWhitespace
	if trailing != nil && leading != nil {
		return *trailing + *leading
	}

	// One of the cells is new.
	var combined string
	if trailing != nil {
		combined += *trailing
	}
	if leading != nil {
		combined += *leading
	}
	if combined == "" || combined == "\n" {
		return "\n\n"
	}
	return combined
}
