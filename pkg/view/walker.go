package view

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-formview/pkg/data"
	"github.com/goliatone/go-formview/pkg/schema"
	"github.com/goliatone/go-formview/pkg/visibility"
	"github.com/goliatone/go-formview/pkg/visibility/condition"
)

const pathSeparator = "."

// WalkerOption customises a Walker.
type WalkerOption func(*Walker)

// WithEvaluator replaces the default declarative condition evaluator.
func WithEvaluator(evaluator visibility.Evaluator) WalkerOption {
	return func(w *Walker) {
		if evaluator != nil {
			w.evaluator = evaluator
		}
	}
}

// WithConcurrency caps the number of top-level nodes walked at once by
// WalkParallel. Values below one mean no limit.
func WithConcurrency(limit int) WalkerOption {
	return func(w *Walker) {
		w.concurrency = limit
	}
}

// Walker maps schema nodes to display instructions. It holds no per-walk
// state and is safe for concurrent use.
type Walker struct {
	evaluator   visibility.Evaluator
	concurrency int
}

// NewWalker constructs a Walker using the condition evaluator unless another
// one is supplied.
func NewWalker(options ...WalkerOption) *Walker {
	w := &Walker{evaluator: condition.New()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w
}

// walk carries the per-pass inputs that never change during recursion.
type walk struct {
	full   data.Tree
	mode   Mode
	hidden []string
}

// Walk renders every top-level node of form in document order.
func (w *Walker) Walk(form *schema.Form, tree data.Tree, mode Mode) Page {
	page := Page{Title: pageTitle(form), Mode: mode}
	state := &walk{full: tree, mode: mode}
	for _, key := range form.Keys() {
		node, _ := form.Node(key)
		value, present := data.Get(tree, key)
		if inst := w.render(state, key, node, value, present, key+pathSeparator, 0); inst != nil {
			page.Sections = append(page.Sections, inst)
		}
	}
	page.Hidden = state.hidden
	return page
}

// WalkParallel is Walk with top-level nodes rendered concurrently. The result
// is identical to Walk; only ctx cancellation can make it fail.
func (w *Walker) WalkParallel(ctx context.Context, form *schema.Form, tree data.Tree, mode Mode) (Page, error) {
	keys := form.Keys()
	results := make([]Instruction, len(keys))
	hidden := make([][]string, len(keys))

	group, gctx := errgroup.WithContext(ctx)
	if w.concurrency > 0 {
		group.SetLimit(w.concurrency)
	}
	for idx, key := range keys {
		idx, key := idx, key
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			node, _ := form.Node(key)
			state := &walk{full: tree, mode: mode}
			value, present := data.Get(tree, key)
			results[idx] = w.render(state, key, node, value, present, key+pathSeparator, 0)
			hidden[idx] = state.hidden
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Page{}, err
	}

	page := Page{Title: pageTitle(form), Mode: mode}
	for idx, inst := range results {
		if inst != nil {
			page.Sections = append(page.Sections, inst)
		}
		page.Hidden = append(page.Hidden, hidden[idx]...)
	}
	return page, nil
}

// Render maps a single node, treating it as top level. path is the
// accumulated prefix ending in the separator, e.g. "plan." for a root key.
// It returns nil when the node is absent or hidden. A nil dataNode counts as
// missing.
func (w *Walker) Render(node *schema.Node, dataNode any, full data.Tree, mode Mode, path string) Instruction {
	key := lastSegment(strings.TrimSuffix(path, pathSeparator))
	return w.render(&walk{full: full, mode: mode}, key, node, dataNode, dataNode != nil, path, 0)
}

// render maps one node. present reports whether value was found under key.
func (w *Walker) render(state *walk, key string, node *schema.Node, value any, present bool, prefix string, depth int) Instruction {
	if node == nil {
		return nil
	}

	path := strings.TrimSuffix(prefix, pathSeparator)
	if state.mode.Conditional() && node.VisibleIf != nil {
		if !w.evaluator.Eval(node.VisibleIf, visibility.Context{Values: state.full}) {
			state.hidden = append(state.hidden, path)
			return nil
		}
	}

	header := Header{
		Key:         key,
		Path:        path,
		Title:       node.Title,
		Description: node.Description,
	}

	switch {
	case node.IsGroup():
		children := w.renderChildren(state, node, value, prefix, depth)
		if depth == 0 {
			return Section{Header: header, Children: children}
		}
		return Subsection{Header: header, Children: children}
	case node.IsRadio():
		return radioGroup(header, node, value)
	case node.IsCheckbox():
		return checkbox(header, node, value)
	default:
		return field(header, node, value, present)
	}
}

func (w *Walker) renderChildren(state *walk, node *schema.Node, value any, prefix string, depth int) []Instruction {
	keys := node.ChildKeys()
	children := make([]Instruction, 0, len(keys))
	for _, key := range keys {
		child, ok := node.Child(key)
		if !ok {
			continue
		}
		childValue, present := data.Get(value, key)
		inst := w.render(state, key, child, childValue, present, prefix+key+pathSeparator, depth+1)
		if inst != nil {
			children = append(children, inst)
		}
	}
	return children
}

func radioGroup(header Header, node *schema.Node, value any) RadioGroup {
	if header.Title == "" {
		header.Title = UntitledSelection
	}
	group := RadioGroup{
		Header:  header,
		Name:    header.Path,
		Options: make([]Option, 0, len(node.Enum)),
	}
	if value != nil {
		group.Selected = Stringify(value)
		group.HasSelection = true
	}
	for _, option := range node.Enum {
		group.Options = append(group.Options, Option{
			Value:    option,
			ID:       group.Name + "-" + option,
			Selected: group.HasSelection && option == group.Selected,
		})
	}
	return group
}

func checkbox(header Header, node *schema.Node, value any) Checkbox {
	if header.Title == "" {
		header.Title = UntitledCheckbox
	}
	box := Checkbox{Header: header}
	if value == nil {
		return box
	}
	if node.Type == schema.TypeBoolean {
		box.Checked = Truthy(value)
		return box
	}
	if text, ok := value.(string); ok {
		box.Checked = strings.TrimSpace(text) != ""
	}
	return box
}

// field shows "[Not specified]" for textboxes whose value is missing or
// blank. An explicit null keeps the generic "[N/A]" marker.
func field(header Header, node *schema.Node, value any, present bool) Field {
	if header.Title == "" {
		header.Title = UntitledField
	}
	out := Field{Header: header, State: ValueMissing}
	if value != nil {
		if text := Stringify(value); strings.TrimSpace(text) != "" {
			out.Value = text
			out.State = ValuePresent
			return out
		}
	}
	if node.Element == schema.ElementTextbox && (!present || value != nil) {
		out.State = ValueNotSpecified
	}
	return out
}

func pageTitle(form *schema.Form) string {
	if title := form.Title(); title != "" {
		return title
	}
	return UntitledForm
}

func lastSegment(path string) string {
	if idx := strings.LastIndex(path, pathSeparator); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
