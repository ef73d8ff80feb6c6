// Package visibility defines the contract used to decide whether a schema node
// is shown. Implementations live in sub-packages; see visibility/condition
// for the declarative x-ui-visible-if rules.
package visibility

import (
	"github.com/goliatone/go-formview/pkg/data"
	"github.com/goliatone/go-formview/pkg/schema"
)

// Evaluator determines whether a node gated by cond should be visible. A nil
// condition must always evaluate to true.
type Evaluator interface {
	Eval(cond *schema.Condition, ctx Context) bool
}

// Context provides inputs to an Evaluator. Values is always the full data
// tree: condition paths resolve from the root, never from the node being
// rendered.
type Context struct {
	Values data.Tree
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(cond *schema.Condition, ctx Context) bool

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(cond *schema.Condition, ctx Context) bool {
	return fn(cond, ctx)
}

// ShowAll is an Evaluator that ignores every condition.
var ShowAll Evaluator = EvaluatorFunc(func(*schema.Condition, Context) bool { return true })
