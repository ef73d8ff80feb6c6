package view

import "strings"

// Mode selects whether visibility conditions are honoured.
type Mode string

const (
	// ModeConditional evaluates x-ui-visible-if conditions.
	ModeConditional Mode = "conditional"
	// ModeAll renders every node. Any mode other than ModeConditional behaves
	// the same way.
	ModeAll Mode = "all"
)

// ParseMode normalises user input; the empty string maps to ModeConditional.
func ParseMode(raw string) Mode {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ModeConditional
	}
	return Mode(trimmed)
}

// Conditional reports whether the mode honours visibility conditions.
func (m Mode) Conditional() bool {
	return m == ModeConditional
}

// Kind tags the closed set of instruction variants.
type Kind string

const (
	KindSection    Kind = "section"
	KindSubsection Kind = "subsection"
	KindRadioGroup Kind = "radio"
	KindCheckbox   Kind = "checkbox"
	KindField      Kind = "field"
)

// Placeholder titles used when the schema omits one.
const (
	UntitledSelection = "Untitled Selection"
	UntitledCheckbox  = "Untitled Checkbox"
	UntitledField     = "Untitled Field"
	UntitledForm      = "Untitled Form"
)

// Instruction describes what to display for one schema node. The set of
// implementations is closed: Section, Subsection, RadioGroup, Checkbox and
// Field.
type Instruction interface {
	Kind() Kind
	Describe() Header
	instruction()
}

// Header carries the identity and labels shared by every instruction.
type Header struct {
	// Key is the property name of the node within its parent.
	Key string
	// Path is the full dotted path from the document root.
	Path        string
	Title       string
	Description string
}

// Section is a top-level object node.
type Section struct {
	Header
	Children []Instruction
}

// Subsection is an object node nested inside another object. It carries no
// section chrome of its own.
type Subsection struct {
	Header
	Children []Instruction
}

// RadioGroup is a single-choice list of options.
type RadioGroup struct {
	Header
	// Name identifies the group; it is the full dotted path so option IDs stay
	// unique across sibling and nested groups.
	Name    string
	Options []Option
	// Selected holds the data value coerced to a string. HasSelection is false
	// when the data carries no value.
	Selected     string
	HasSelection bool
}

// Option is one choice of a RadioGroup.
type Option struct {
	Value    string
	ID       string
	Selected bool
}

// Checkbox is a boolean-ish field shown as checked or unchecked.
type Checkbox struct {
	Header
	Checked bool
}

// ValueState classifies how a plain field value is displayed.
type ValueState string

const (
	ValuePresent      ValueState = "present"
	ValueMissing      ValueState = "missing"
	ValueNotSpecified ValueState = "not-specified"
)

// Markers shown instead of a value.
const (
	MarkerMissing      = "[N/A]"
	MarkerNotSpecified = "[Not specified]"
)

// Field is the fallback display of a value.
type Field struct {
	Header
	Value string
	State ValueState
}

// Display returns the value, or the marker matching State.
func (f Field) Display() string {
	switch f.State {
	case ValuePresent:
		return f.Value
	case ValueNotSpecified:
		return MarkerNotSpecified
	default:
		return MarkerMissing
	}
}

func (s Section) Kind() Kind    { return KindSection }
func (s Subsection) Kind() Kind { return KindSubsection }
func (r RadioGroup) Kind() Kind { return KindRadioGroup }
func (c Checkbox) Kind() Kind   { return KindCheckbox }
func (f Field) Kind() Kind      { return KindField }

func (s Section) Describe() Header    { return s.Header }
func (s Subsection) Describe() Header { return s.Header }
func (r RadioGroup) Describe() Header { return r.Header }
func (c Checkbox) Describe() Header   { return c.Header }
func (f Field) Describe() Header      { return f.Header }

func (Section) instruction()    {}
func (Subsection) instruction() {}
func (RadioGroup) instruction() {}
func (Checkbox) instruction()   {}
func (Field) instruction()      {}

// Children returns the nested instructions of groups, nil for leaves.
func Children(inst Instruction) []Instruction {
	switch v := inst.(type) {
	case Section:
		return v.Children
	case Subsection:
		return v.Children
	default:
		return nil
	}
}

// Page is the result of walking a whole form.
type Page struct {
	Title    string
	Mode     Mode
	Sections []Instruction
	// Hidden lists the dotted paths of nodes dropped by visibility conditions.
	// Descendants of a hidden node are not listed; they are never visited.
	Hidden []string
}

// Visit calls fn for every instruction depth-first, in display order. Depth 0
// is the top level. Returning false from fn skips the instruction's children.
func Visit(instructions []Instruction, fn func(inst Instruction, depth int) bool) {
	visit(instructions, 0, fn)
}

func visit(instructions []Instruction, depth int, fn func(Instruction, int) bool) {
	for _, inst := range instructions {
		if inst == nil {
			continue
		}
		if !fn(inst, depth) {
			continue
		}
		visit(Children(inst), depth+1, fn)
	}
}

// Stats counts instructions by kind.
func Stats(page Page) map[Kind]int {
	counts := make(map[Kind]int)
	Visit(page.Sections, func(inst Instruction, _ int) bool {
		counts[inst.Kind()]++
		return true
	})
	return counts
}
