package condition

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/goliatone/go-formview/pkg/data"
	"github.com/goliatone/go-formview/pkg/schema"
	"github.com/goliatone/go-formview/pkg/visibility"
)

// Evaluator applies declarative conditions:
//
//	{"field": "a.b", "hasValue": true}
//	{"field": "a.b", "isNotEmpty": true}
//	{"field": "a.b", "isEmpty": false}
//
// It is stateless and safe for concurrent use.
type Evaluator struct{}

var _ visibility.Evaluator = (*Evaluator)(nil)

func New() *Evaluator { return &Evaluator{} }

func (e *Evaluator) Eval(cond *schema.Condition, ctx visibility.Context) bool {
	return Evaluate(cond, ctx.Values)
}

// Evaluate reports whether cond holds against the full data tree root.
// Unresolvable paths behave as an absent value; a condition without a
// recognised predicate is true.
func Evaluate(cond *schema.Condition, root data.Tree) bool {
	if cond == nil {
		return true
	}

	value, found := data.Resolve(root, cond.Field)
	if !found {
		value = nil
	}

	if _, ok := cond.HasValue.(schema.Null); ok {
		return found && value == nil
	}

	switch {
	case cond.HasValue != nil:
		return matchesValue(cond.HasValue, value)
	case cond.IsNotEmpty != nil:
		return NotEmpty(value) == *cond.IsNotEmpty
	case cond.IsEmpty != nil:
		return !NotEmpty(value) == *cond.IsEmpty
	default:
		return true
	}
}

// Truthy normalises a string flag: after lower-casing and trimming, "",
// "no" and "false" are false and everything else is true.
func Truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "no", "false":
		return false
	default:
		return true
	}
}

// NotEmpty dispatches on the value's shape: arrays compare their length to
// zero, strings are checked after trimming, booleans are their own answer and
// anything else is non-empty unless nil.
func NotEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	case string:
		return strings.TrimSpace(v) != ""
	case bool:
		return v
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len() > 0
	}
	return true
}

func matchesValue(want, got any) bool {
	if flag, ok := want.(bool); ok {
		switch v := got.(type) {
		case string:
			return Truthy(v) == flag
		case bool:
			return v == flag
		default:
			return false
		}
	}
	return equalScalar(want, got)
}

// equalScalar is strict equality: values of different kinds never match, so
// the string "1" differs from the number 1.
func equalScalar(want, got any) bool {
	switch w := want.(type) {
	case string:
		g, ok := got.(string)
		return ok && g == w
	}
	wn, ok := number(want)
	if !ok {
		return false
	}
	gn, ok := number(got)
	return ok && wn == gn
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	default:
		return 0, false
	}
}
