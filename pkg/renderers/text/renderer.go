// Package text renders a walked page as indented plain text for terminals and
// logs.
package text

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formview/pkg/render"
	"github.com/goliatone/go-formview/pkg/view"
)

const (
	checkedBox   = "[x]"
	uncheckedBox = "[ ]"
	selected     = "(•)"
	unselected   = "( )"
)

// Option configures the text renderer.
type Option func(*Renderer)

// WithIndent overrides the string used for each nesting level.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		if indent != "" {
			r.indent = indent
		}
	}
}

// WithHiddenSummary appends the paths dropped by visibility conditions.
func WithHiddenSummary(enabled bool) Option {
	return func(r *Renderer) {
		r.hiddenSummary = enabled
	}
}

// Renderer implements render.Renderer producing text/plain output.
type Renderer struct {
	indent        string
	hiddenSummary bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a text renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{indent: "  "}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return "text"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page view.Page, opts render.RenderOptions) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("text renderer: %w", err)
		}
	}

	var b strings.Builder
	title := opts.PageTitle(page.Title)
	b.WriteString(title)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("=", len([]rune(title))))
	b.WriteByte('\n')

	w := writer{b: &b, indent: r.indent, opts: opts}
	for _, inst := range page.Sections {
		b.WriteByte('\n')
		w.instruction(inst, 0)
	}

	if r.hiddenSummary && len(page.Hidden) > 0 {
		b.WriteString("\nHidden:\n")
		for _, path := range page.Hidden {
			b.WriteString(r.indent)
			b.WriteString("- ")
			b.WriteString(path)
			b.WriteByte('\n')
		}
	}
	return []byte(b.String()), nil
}

type writer struct {
	b      *strings.Builder
	indent string
	opts   render.RenderOptions
}

func (w writer) line(depth int, parts ...string) {
	w.b.WriteString(strings.Repeat(w.indent, depth))
	for _, part := range parts {
		w.b.WriteString(part)
	}
	w.b.WriteByte('\n')
}

func (w writer) description(depth int, header view.Header) {
	if w.opts.HideDescriptions || strings.TrimSpace(header.Description) == "" {
		return
	}
	w.line(depth, header.Description)
}

func (w writer) instruction(inst view.Instruction, depth int) {
	switch v := inst.(type) {
	case view.Section:
		w.line(depth, "## ", v.Title)
		w.description(depth, v.Header)
		w.children(v.Children, depth+1)
	case view.Subsection:
		w.line(depth, v.Title)
		w.description(depth, v.Header)
		w.children(v.Children, depth+1)
	case view.RadioGroup:
		w.line(depth, v.Title)
		w.description(depth+1, v.Header)
		for _, opt := range v.Options {
			mark := unselected
			if opt.Selected {
				mark = selected
			}
			w.line(depth+1, mark, " ", opt.Value)
		}
	case view.Checkbox:
		mark := uncheckedBox
		if v.Checked {
			mark = checkedBox
		}
		w.line(depth, mark, " ", v.Title)
		w.description(depth+1, v.Header)
	case view.Field:
		w.line(depth, v.Title, ": ", v.Display())
		w.description(depth+1, v.Header)
	}
}

func (w writer) children(children []view.Instruction, depth int) {
	for _, child := range children {
		w.instruction(child, depth)
	}
}
