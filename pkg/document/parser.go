package document

import (
	"strings"
)

// Parse splits a notebook source into cells in a single pass over its lines.
//
// It fails with a *ParseError when an addon block has no code cell to attach
// to or when an addon-reference names an id no earlier cell carries.
func Parse(source []byte) ([]Cell, error) {
	p := newParser(source)
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.finish(), nil
}

type parser struct {
	lines []string
	pos   int

	cells []Cell
	// ids maps a cell id to the index of the first cell carrying it.
	ids map[string]int
	// lastCode is the index of the most recent code cell or -1.
	lastCode int
	// addons collects addons of cells[lastCode] until the cell is frozen.
	addons []Addon
}

func newParser(source []byte) *parser {
	return &parser{
		lines:    splitLines(source),
		ids:      make(map[string]int),
		lastCode: -1,
	}
}

func splitLines(source []byte) []string {
	s := strings.ReplaceAll(string(source), "\r\n", "\n")
	return strings.Split(s, "\n")
}

func (p *parser) parse() error {
	leading := p.whitespace(true)
	for p.pos < len(p.lines) {
		if fence, ok := ParseFence(p.lines[p.pos]); ok {
			if err := p.codeBlock(leading, fence); err != nil {
				return err
			}
		} else {
			p.paragraph(leading)
		}
		leading = ""
	}
	return nil
}

func (p *parser) finish() []Cell {
	p.freeze()
	return p.cells
}

// whitespace consumes a run of blank lines and encodes it as line breaks.
// An interior run also owns the line break ending the previous content line,
// so it gets one extra "\n"; runs at the start or end of the source do not.
func (p *parser) whitespace(first bool) string {
	start := p.pos
	for p.pos < len(p.lines) && p.lines[p.pos] == "" {
		p.pos++
	}
	n := p.pos - start
	last := p.pos >= len(p.lines)
	if !first && !last {
		n++
	}
	return strings.Repeat("\n", n)
}

func (p *parser) paragraph(leading string) {
	start := p.pos
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if line == "" || IsFenceOpener(line) {
			break
		}
		p.pos++
	}
	content := strings.Join(p.lines[start:p.pos], "\n")

	p.emit(Cell{
		Kind:               MarkupKind,
		Language:           MarkdownLanguage,
		Content:            content,
		LeadingWhitespace:  leading,
		TrailingWhitespace: p.whitespace(false),
	})
}

func (p *parser) codeBlock(leading string, fence *Fence) error {
	openerLine := p.pos + 1

	p.pos++
	start, end := p.pos, len(p.lines)
	for ; p.pos < len(p.lines); p.pos++ {
		if IsFenceCloser(p.lines[p.pos]) {
			end = p.pos
			p.pos++
			break
		}
	}

	raw := p.lines[start:end]
	body := make([]string, 0, len(raw))
	for _, line := range raw {
		body = append(body, strings.TrimPrefix(line, fence.Indentation))
	}
	content := strings.Join(body, "\n")
	trailing := p.whitespace(false)

	switch fence.Type {
	case UserCodeBlock:
		p.freeze()

		language := ResolveLanguage(fence.Tag)
		p.emit(Cell{
			Kind:               CodeKind,
			Language:           language,
			Content:            content,
			LeadingWhitespace:  leading,
			TrailingWhitespace: trailing,
			Indentation:        fence.Indentation,
			ID:                 fence.ID,
			RawCode:            content,
			RawCodeLanguage:    language,
		})
		p.lastCode = len(p.cells) - 1

	case AddonCodeBlock, AddonReferenceBlock:
		if p.lastCode < 0 {
			return &ParseError{Line: openerLine, Err: ErrDanglingAddon}
		}

		addon := Addon{Type: fence.Tag, Content: content}
		if fence.Type == AddonReferenceBlock {
			idx, ok := p.ids[fence.ID]
			if !ok {
				return &ParseError{Line: openerLine, ID: fence.ID, Err: ErrUnresolvedReference}
			}
			addon = p.cells[idx].referenced(fence.ID)
		}
		p.addons = append(p.addons, addon)

		// The serializer writes addons right after their cell, so the blank
		// lines following the addon belong to the last emitted cell.
		p.cells[len(p.cells)-1].TrailingWhitespace = trailing

	case CodeWithIDBlock:
		language := ResolveLanguage(fence.Tag)

		var b strings.Builder
		_, _ = b.WriteString(fence.Indentation + fenceMarker + language + "\n")
		_, _ = b.WriteString(strings.Join(raw, "\n"))
		_, _ = b.WriteString("\n" + fence.Indentation + fenceMarker)

		p.emit(Cell{
			Kind:               MarkupKind,
			Language:           MarkdownLanguage,
			Content:            b.String(),
			LeadingWhitespace:  leading,
			TrailingWhitespace: trailing,
			ID:                 fence.ID,
			RawCode:            content,
			RawCodeLanguage:    language,
		})

	default:
		return &ParseError{Line: openerLine, Err: ErrUnknownBlockType}
	}

	return nil
}

func (p *parser) emit(c Cell) {
	p.cells = append(p.cells, c)
	if c.ID == "" {
		return
	}
	if _, ok := p.ids[c.ID]; !ok {
		p.ids[c.ID] = len(p.cells) - 1
	}
}

// freeze hands the collected addons over to the last code cell.
func (p *parser) freeze() {
	if p.lastCode < 0 || len(p.addons) == 0 {
		return
	}
	p.cells[p.lastCode].Addons = p.addons
	p.addons = nil
}
