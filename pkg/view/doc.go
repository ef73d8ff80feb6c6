// Package view turns a schema form plus a sample data tree into a read-only
// display tree.
//
// The Walker co-traverses the schema and the data, consults a
// visibility.Evaluator for nodes carrying an x-ui-visible-if condition (in
// ModeConditional only), and emits one Instruction per visible node:
//
//   - Section: a top-level object node
//   - Subsection: an object node nested inside another object
//   - RadioGroup: element or type "radio" with a non-empty enum
//   - Checkbox: element "checkbox" or type "boolean"
//   - Field: everything else
//
// A hidden node hides its whole subtree. Unresolvable references (missing
// data keys, order entries without a property) never fail the walk; they
// render as missing values or are skipped.
//
// Instructions are plain values with no shared state, so renderers can hold
// on to them and the walker can process top-level nodes in parallel.
package view
