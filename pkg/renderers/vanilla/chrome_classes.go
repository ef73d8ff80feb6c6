package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassPage       ChromeClass = "formview-page"
	ClassHeader     ChromeClass = "formview-header"
	ClassSection    ChromeClass = "formview-section"
	ClassSubsection ChromeClass = "formview-subsection"
	ClassRadio      ChromeClass = "formview-radio"
	ClassCheckbox   ChromeClass = "formview-checkbox"
	ClassField      ChromeClass = "formview-field"
	ClassMissing    ChromeClass = "formview-missing"
)

// ChromeClasses maps each chrome slot to the classes emitted for it.
type ChromeClasses struct {
	Page       string `json:"page"`
	Header     string `json:"header"`
	Section    string `json:"section"`
	Subsection string `json:"subsection"`
	Radio      string `json:"radio"`
	Checkbox   string `json:"checkbox"`
	Field      string `json:"field"`
	Missing    string `json:"missing"`
}

// DefaultChromeClasses returns the semantic class set.
func DefaultChromeClasses() ChromeClasses {
	return ChromeClasses{
		Page:       string(ClassPage),
		Header:     string(ClassHeader),
		Section:    string(ClassSection),
		Subsection: string(ClassSubsection),
		Radio:      string(ClassRadio),
		Checkbox:   string(ClassCheckbox),
		Field:      string(ClassField),
		Missing:    string(ClassMissing),
	}
}

// merge appends the extra classes of override to the defaults. The semantic
// formview-* classes always stay first so stylesheets can rely on them.
func (c ChromeClasses) merge(override ChromeClasses) ChromeClasses {
	return ChromeClasses{
		Page:       joinClasses(c.Page, override.Page),
		Header:     joinClasses(c.Header, override.Header),
		Section:    joinClasses(c.Section, override.Section),
		Subsection: joinClasses(c.Subsection, override.Subsection),
		Radio:      joinClasses(c.Radio, override.Radio),
		Checkbox:   joinClasses(c.Checkbox, override.Checkbox),
		Field:      joinClasses(c.Field, override.Field),
		Missing:    joinClasses(c.Missing, override.Missing),
	}
}
