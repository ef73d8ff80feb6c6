package render

import "github.com/goliatone/go-formview/pkg/view"

// Document is a serialisable snapshot of a page. Renderers that go through
// templates or encoders share it so the JSON output and the HTML template
// context use the same field names.
type Document struct {
	Title    string         `json:"title"`
	Mode     string         `json:"mode"`
	Sections []NodeView     `json:"sections"`
	Hidden   []string       `json:"hidden,omitempty"`
	Stats    map[string]int `json:"stats,omitempty"`
}

// NodeView flattens one instruction. Only the fields relevant to Kind are
// populated.
type NodeView struct {
	Kind        string       `json:"kind"`
	Key         string       `json:"key"`
	Path        string       `json:"path"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Children    []NodeView   `json:"children,omitempty"`
	Name        string       `json:"name,omitempty"`
	Options     []OptionView `json:"options,omitempty"`
	Selected    string       `json:"selected,omitempty"`
	Checked     bool         `json:"checked,omitempty"`
	Value       string       `json:"value,omitempty"`
	State       string       `json:"state,omitempty"`
	Display     string       `json:"display,omitempty"`
}

// OptionView is one radio option.
type OptionView struct {
	Value    string `json:"value"`
	ID       string `json:"id"`
	Selected bool   `json:"selected"`
}

// NewDocument converts page applying the presentation options.
func NewDocument(page view.Page, opts RenderOptions) Document {
	doc := Document{
		Title:    opts.PageTitle(page.Title),
		Mode:     string(page.Mode),
		Sections: make([]NodeView, 0, len(page.Sections)),
		Hidden:   page.Hidden,
	}
	for _, inst := range page.Sections {
		if inst == nil {
			continue
		}
		doc.Sections = append(doc.Sections, nodeView(inst, opts))
	}
	if counts := view.Stats(page); len(counts) > 0 {
		doc.Stats = make(map[string]int, len(counts))
		for kind, n := range counts {
			doc.Stats[string(kind)] = n
		}
	}
	return doc
}

func nodeView(inst view.Instruction, opts RenderOptions) NodeView {
	header := inst.Describe()
	out := NodeView{
		Kind:  string(inst.Kind()),
		Key:   header.Key,
		Path:  header.Path,
		Title: header.Title,
	}
	if !opts.HideDescriptions {
		out.Description = header.Description
	}

	switch v := inst.(type) {
	case view.Section, view.Subsection:
		for _, child := range view.Children(v) {
			out.Children = append(out.Children, nodeView(child, opts))
		}
	case view.RadioGroup:
		out.Name = v.Name
		out.Selected = v.Selected
		out.Options = make([]OptionView, 0, len(v.Options))
		for _, opt := range v.Options {
			out.Options = append(out.Options, OptionView(opt))
		}
	case view.Checkbox:
		out.Checked = v.Checked
	case view.Field:
		out.Value = v.Value
		out.State = string(v.State)
		out.Display = v.Display()
	}
	return out
}
