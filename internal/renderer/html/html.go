// Package html renders a notebook as a standalone HTML preview page.
package html

import (
	"bytes"
	"html/template"
	"io"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/stateful/webnb/pkg/document"
	"github.com/stateful/webnb/pkg/document/editor"
)

type Option func(*Renderer)

// WithTitle sets the page title. Defaults to "Notebook".
func WithTitle(title string) Option {
	return func(r *Renderer) {
		r.title = title
	}
}

// WithUnsafe lets raw HTML in markup cells through to the page.
func WithUnsafe() Option {
	return func(r *Renderer) {
		r.unsafe = true
	}
}

type Renderer struct {
	title  string
	unsafe bool
	md     goldmark.Markdown
}

func New(opts ...Option) *Renderer {
	r := &Renderer{title: "Notebook"}
	for _, opt := range opts {
		opt(r)
	}

	rendererOpts := []goldmark.Option{
		goldmark.WithExtensions(extension.GFM),
	}
	if r.unsafe {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(gmhtml.WithUnsafe()))
	}
	r.md = goldmark.New(rendererOpts...)

	return r
}

type pageCell struct {
	Kind     string
	Language string
	ID       string
	HTML     template.HTML
	Code     string
	Addons   []pageAddon
}

type pageAddon struct {
	Type      string
	Content   string
	Reference string
}

type page struct {
	Title string
	Cells []pageCell
}

// Render writes the page for notebook to w.
func (r *Renderer) Render(w io.Writer, notebook *editor.Notebook) error {
	p := page{Title: r.title}

	for _, cell := range notebook.Cells {
		if cell.Kind == editor.CodeKind {
			p.Cells = append(p.Cells, codeCell(cell))
			continue
		}

		var buf bytes.Buffer
		if err := r.md.Convert([]byte(cell.Value), &buf); err != nil {
			return errors.Wrap(err, "failed to render markup cell")
		}
		p.Cells = append(p.Cells, pageCell{
			Kind: "markup",
			ID:   cell.ID(),
			// goldmark output is sanitized unless WithUnsafe is set.
			HTML: template.HTML(buf.String()),
		})
	}

	return errors.Wrap(pageTemplate.Execute(w, p), "failed to render page")
}

func codeCell(cell *editor.Cell) pageCell {
	pc := pageCell{
		Kind:     "code",
		Language: cell.LanguageID,
		ID:       cell.ID(),
		Code:     cell.Value,
	}
	for _, addon := range cell.Addons() {
		pc.Addons = append(pc.Addons, fromAddon(addon))
	}
	return pc
}

func fromAddon(a document.Addon) pageAddon {
	return pageAddon{Type: a.Type, Content: a.Content, Reference: a.ID}
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>
body { max-width: 860px; margin: 2rem auto; font-family: system-ui, sans-serif; }
.cell { margin: 1rem 0; }
.cell-code pre { background: #f6f8fa; padding: .75rem; overflow-x: auto; }
details.addon { margin-left: 1rem; }
</style>
</head>
<body>
{{- range .Cells }}
{{- if eq .Kind "code" }}
<section class="cell cell-code"{{ with .ID }} id="{{ . }}"{{ end }}>
<pre><code class="language-{{ .Language }}">{{ .Code }}</code></pre>
{{- range .Addons }}
<details class="addon">
<summary>{{ .Type }}{{ with .Reference }} (from #{{ . }}){{ end }}</summary>
<pre><code class="language-{{ .Type }}">{{ .Content }}</code></pre>
</details>
{{- end }}
</section>
{{- else }}
<section class="cell cell-markup"{{ with .ID }} id="{{ . }}"{{ end }}>
{{ .HTML }}</section>
{{- end }}
{{- end }}
</body>
</html>
`))
