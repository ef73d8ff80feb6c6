package condition

import (
	"encoding/json"
	"testing"

	"github.com/goliatone/go-formview/pkg/data"
	"github.com/goliatone/go-formview/pkg/schema"
	"github.com/goliatone/go-formview/pkg/visibility"
)

func TestEvaluate_NilAndPredicateFreeConditionsAreTrue(t *testing.T) {
	t.Parallel()

	trees := []data.Tree{
		nil,
		{},
		{"a": "x"},
		{"a": map[string]any{"b": false}},
	}
	for _, tree := range trees {
		if !Evaluate(nil, tree) {
			t.Fatalf("nil condition must be true for %v", tree)
		}
		if !Evaluate(&schema.Condition{Field: "a"}, tree) {
			t.Fatalf("condition without predicate must be true for %v", tree)
		}
		if !Evaluate(&schema.Condition{Field: "a.b"}, tree) {
			t.Fatalf("condition without predicate must be true for %v", tree)
		}
	}
}

func TestEvaluate_HasValueNormalisesStrings(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value any
		want  bool // result of hasValue:false
	}{
		{value: "", want: true},
		{value: "no", want: true},
		{value: "false", want: true},
		{value: "  FALSE ", want: true},
		{value: " No", want: true},
		{value: "yes", want: false},
		{value: "0", want: false},
		{value: "anything", want: false},
		{value: false, want: true},
		{value: true, want: false},
	}

	for _, tc := range cases {
		tree := data.Tree{"a": map[string]any{"flag": tc.value}}
		got := Evaluate(&schema.Condition{Field: "a.flag", HasValue: false}, tree)
		if got != tc.want {
			t.Fatalf("hasValue:false with %#v = %v, want %v", tc.value, got, tc.want)
		}
		inverse := Evaluate(&schema.Condition{Field: "a.flag", HasValue: true}, tree)
		if inverse == got {
			t.Fatalf("hasValue:true with %#v should be the complement, got %v", tc.value, inverse)
		}
	}
}

func TestEvaluate_HasValueNonStringValuesNeverMatchBooleans(t *testing.T) {
	t.Parallel()

	for _, value := range []any{nil, json.Number("1"), []any{"x"}, map[string]any{}} {
		tree := data.Tree{"v": value}
		if Evaluate(&schema.Condition{Field: "v", HasValue: true}, tree) {
			t.Fatalf("hasValue:true must not match %#v", value)
		}
		if Evaluate(&schema.Condition{Field: "v", HasValue: false}, tree) {
			t.Fatalf("hasValue:false must not match %#v", value)
		}
	}
	if Evaluate(&schema.Condition{Field: "missing", HasValue: false}, data.Tree{}) {
		t.Fatalf("hasValue:false must not match an absent value")
	}
}

func TestEvaluate_HasValueScalarEquality(t *testing.T) {
	t.Parallel()

	tree := data.Tree{"choice": "Both", "count": json.Number("3")}

	if !Evaluate(&schema.Condition{Field: "choice", HasValue: "Both"}, tree) {
		t.Fatalf("expected string equality to match")
	}
	if Evaluate(&schema.Condition{Field: "choice", HasValue: "both"}, tree) {
		t.Fatalf("string equality is case-sensitive")
	}
	if !Evaluate(&schema.Condition{Field: "count", HasValue: 3}, tree) {
		t.Fatalf("expected numeric equality to match")
	}
	if Evaluate(&schema.Condition{Field: "count", HasValue: "3"}, tree) {
		t.Fatalf("string operand must not equal a number")
	}
}

func TestEvaluate_EmptinessPredicatesAreComplements(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		value    any
		notEmpty bool
	}{
		{name: "empty array", value: []any{}, notEmpty: false},
		{name: "array", value: []any{"x"}, notEmpty: true},
		{name: "typed array", value: []int{1}, notEmpty: true},
		{name: "blank string", value: "  ", notEmpty: false},
		{name: "string", value: "x", notEmpty: true},
		{name: "false", value: false, notEmpty: false},
		{name: "true", value: true, notEmpty: true},
		{name: "nil", value: nil, notEmpty: false},
		{name: "number zero", value: json.Number("0"), notEmpty: true},
		{name: "empty map", value: map[string]any{}, notEmpty: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tree := data.Tree{"p": map[string]any{"v": tc.value}}
			for _, flag := range []bool{true, false} {
				notEmpty := Evaluate(&schema.Condition{Field: "p.v", IsNotEmpty: schema.Bool(flag)}, tree)
				empty := Evaluate(&schema.Condition{Field: "p.v", IsEmpty: schema.Bool(flag)}, tree)
				if notEmpty != (tc.notEmpty == flag) {
					t.Fatalf("isNotEmpty:%v = %v", flag, notEmpty)
				}
				if empty == notEmpty {
					t.Fatalf("isEmpty:%v (%v) must complement isNotEmpty:%v (%v)", flag, empty, flag, notEmpty)
				}
			}
		})
	}
}

func TestEvaluate_MissingPathIsAbsent(t *testing.T) {
	t.Parallel()

	cond := &schema.Condition{Field: "a.b", IsNotEmpty: schema.Bool(true)}
	if !Evaluate(cond, data.Tree{"a": map[string]any{"b": "x"}}) {
		t.Fatalf("expected a.b=x to be non-empty")
	}
	if Evaluate(cond, data.Tree{"a": map[string]any{}}) {
		t.Fatalf("expected missing a.b to be empty")
	}
	if Evaluate(cond, data.Tree{"a": "scalar"}) {
		t.Fatalf("expected path through a scalar to be empty")
	}
	if !Evaluate(&schema.Condition{Field: "a.b", IsEmpty: schema.Bool(true)}, data.Tree{}) {
		t.Fatalf("expected missing a.b to satisfy isEmpty:true")
	}
}

func TestEvaluate_PathIndexesArrays(t *testing.T) {
	t.Parallel()

	tree := data.Tree{"a": map[string]any{"list": []any{"x", ""}}}
	if !Evaluate(&schema.Condition{Field: "a.list.0", IsNotEmpty: schema.Bool(true)}, tree) {
		t.Fatalf("expected a.list.0 to be non-empty")
	}
	if Evaluate(&schema.Condition{Field: "a.list.1", IsNotEmpty: schema.Bool(true)}, tree) {
		t.Fatalf("expected blank a.list.1 to be empty")
	}
	if Evaluate(&schema.Condition{Field: "a.list.5", IsNotEmpty: schema.Bool(true)}, tree) {
		t.Fatalf("expected out of range index to be absent")
	}
}

func TestEvaluate_PredicatePrecedence(t *testing.T) {
	t.Parallel()

	tree := data.Tree{"v": "yes"}
	cond := &schema.Condition{Field: "v", HasValue: false, IsNotEmpty: schema.Bool(true)}
	if Evaluate(cond, tree) {
		t.Fatalf("hasValue must win over isNotEmpty")
	}
	cond = &schema.Condition{Field: "v", IsNotEmpty: schema.Bool(true), IsEmpty: schema.Bool(false)}
	if !Evaluate(cond, tree) {
		t.Fatalf("isNotEmpty must be evaluated")
	}
	cond = &schema.Condition{Field: "v", IsNotEmpty: schema.Bool(false), IsEmpty: schema.Bool(false)}
	if Evaluate(cond, tree) {
		t.Fatalf("isNotEmpty must win over isEmpty")
	}
}

func TestEvaluator_UsesContextValues(t *testing.T) {
	t.Parallel()

	var evaluator visibility.Evaluator = New()
	cond := &schema.Condition{Field: "p.flag", IsNotEmpty: schema.Bool(true)}

	if evaluator.Eval(cond, visibility.Context{Values: data.Tree{"p": map[string]any{"flag": ""}}}) {
		t.Fatalf("expected empty flag to hide")
	}
	if !evaluator.Eval(cond, visibility.Context{Values: data.Tree{"p": map[string]any{"flag": "on"}}}) {
		t.Fatalf("expected flag to show")
	}
}

func TestEvaluate_HasValueNullMatchesOnlyExplicitNull(t *testing.T) {
	t.Parallel()

	cond := &schema.Condition{Field: "a.b", HasValue: schema.Null{}}
	if !Evaluate(cond, data.Tree{"a": map[string]any{"b": nil}}) {
		t.Fatalf("expected explicit null to match")
	}
	if Evaluate(cond, data.Tree{"a": map[string]any{}}) {
		t.Fatalf("expected missing path not to match")
	}
	if Evaluate(cond, data.Tree{"a": nil}) {
		t.Fatalf("expected path through null not to match")
	}
	if Evaluate(cond, data.Tree{"a": map[string]any{"b": ""}}) {
		t.Fatalf("expected empty string not to match")
	}
}
