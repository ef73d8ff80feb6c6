package schema_test

import (
	"testing"

	"github.com/goliatone/go-formview/pkg/schema"
	"github.com/goliatone/go-formview/pkg/testsupport"
)

func TestParseBytes_JSONKeepsDocumentOrder(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"root": {
			"type": "object",
			"properties": {
				"zeta":  {"type": "string"},
				"alpha": {"type": "string"},
				"mid":   {"type": "boolean"}
			}
		}
	}`)

	form, err := schema.ParseBytes(raw, schema.FormatJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	root, ok := form.Node("root")
	if !ok {
		t.Fatalf("expected root node")
	}
	want := []string{"zeta", "alpha", "mid"}
	if diff := testsupport.CompareGolden(want, root.ChildKeys()); diff != "" {
		t.Fatalf("child order mismatch (-want +got):\n%s", diff)
	}
	if root.Order != nil {
		t.Fatalf("expected undeclared order to stay nil, got %v", root.Order)
	}
}

func TestParseBytes_YAMLKeepsDocumentOrder(t *testing.T) {
	t.Parallel()

	form := testsupport.MustForm(t, testsupport.PlanSchemaYAML)

	if diff := testsupport.CompareGolden([]string{"profile", "settings"}, form.Keys()); diff != "" {
		t.Fatalf("root order mismatch (-want +got):\n%s", diff)
	}

	profile, _ := form.Node("profile")
	if diff := testsupport.CompareGolden([]string{"plan", "newsletter", "name", "extras"}, profile.Properties.Keys()); diff != "" {
		t.Fatalf("natural order mismatch (-want +got):\n%s", diff)
	}
	if diff := testsupport.CompareGolden([]string{"name", "newsletter", "plan", "extras"}, profile.ChildKeys()); diff != "" {
		t.Fatalf("explicit order mismatch (-want +got):\n%s", diff)
	}

	extras, _ := profile.Child("extras")
	if extras.VisibleIf == nil {
		t.Fatalf("expected visibility condition on extras")
	}
	if extras.VisibleIf.Field != "profile.newsletter" || extras.VisibleIf.HasValue != true {
		t.Fatalf("unexpected condition %+v", extras.VisibleIf)
	}
}

func TestParseBytes_ReadsNodeAttributes(t *testing.T) {
	t.Parallel()

	form := testsupport.MustForm(t, testsupport.PlanSchemaJSON)
	root, ok := form.Node("contributionsAndDeferrals")
	if !ok {
		t.Fatalf("missing root")
	}
	if root.Title != "Contributions & Deferrals" {
		t.Fatalf("unexpected title %q", root.Title)
	}
	if !root.IsGroup() {
		t.Fatalf("expected root to be a group")
	}

	election, _ := root.Child("participantContributionElectionOptions")
	if !election.IsRadio() {
		t.Fatalf("expected radio node")
	}
	if diff := testsupport.CompareGolden([]string{"Percentage", "FlatAmount", "Both"}, election.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}

	types, _ := root.Child("employeeContributionsTypes")
	nested, _ := types.Child("inPlanRothTransferContributionTypes")
	cond := nested.VisibleIf
	if cond == nil || cond.IsNotEmpty == nil || !*cond.IsNotEmpty {
		t.Fatalf("expected isNotEmpty condition, got %+v", cond)
	}
	if cond.HasValue != nil || cond.IsEmpty != nil {
		t.Fatalf("unexpected extra predicates %+v", cond)
	}
}

func TestParseBytes_NullHasValueIsAPredicate(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name   string
		raw    string
		format schema.Format
	}{
		{name: "json", raw: `{"x-ui-visible-if": {"field": "a", "hasValue": null}}`, format: schema.FormatJSON},
		{name: "yaml", raw: "x-ui-visible-if:\n  field: a\n  hasValue: ~\n", format: schema.FormatYAML},
	} {
		node, err := schema.ParseNode([]byte(tc.raw), tc.format)
		if err != nil {
			t.Fatalf("%s: parse node: %v", tc.name, err)
		}
		if node.VisibleIf.HasValue != (schema.Null{}) {
			t.Fatalf("%s: expected Null operand, got %#v", tc.name, node.VisibleIf.HasValue)
		}
		if !node.VisibleIf.HasPredicate() {
			t.Fatalf("%s: null hasValue should count as a predicate", tc.name)
		}
	}
}

func TestParseBytes_EmptyOrderIsDeclared(t *testing.T) {
	t.Parallel()

	node, err := schema.ParseNode([]byte(`{"type":"object","x-ui-order":[],"properties":{"a":{"type":"string"}}}`), schema.FormatJSON)
	if err != nil {
		t.Fatalf("parse node: %v", err)
	}
	if node.Order == nil {
		t.Fatalf("expected declared empty order")
	}
	if keys := node.ChildKeys(); len(keys) != 0 {
		t.Fatalf("expected no child keys, got %v", keys)
	}
}

func TestParseBytes_MalformedEntriesAreSkipped(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"title": "not a node",
		"root": {
			"type": "object",
			"enum": ["a", 2, true, null, {"x": 1}],
			"x-ui-visible-if": {"field": "x", "isEmpty": "yes"},
			"properties": {"bad": 3, "good": {"type": "string"}}
		}
	}`)

	form, err := schema.ParseBytes(raw, schema.FormatJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := testsupport.CompareGolden([]string{"root"}, form.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	root, _ := form.Node("root")
	if diff := testsupport.CompareGolden([]string{"good"}, root.Properties.Keys()); diff != "" {
		t.Fatalf("properties mismatch (-want +got):\n%s", diff)
	}
	if diff := testsupport.CompareGolden([]string{"a", "2", "true"}, root.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
	if root.VisibleIf.HasPredicate() {
		t.Fatalf("non-boolean isEmpty must not count as a predicate")
	}
}

func TestParseBytes_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		raw    string
		format schema.Format
	}{
		{name: "array root", raw: `[1,2]`, format: schema.FormatJSON},
		{name: "broken json", raw: `{"a": `, format: schema.FormatJSON},
		{name: "trailing json", raw: `{"a": {}} {}`, format: schema.FormatJSON},
		{name: "scalar yaml", raw: `hello`, format: schema.FormatYAML},
		{name: "unknown format", raw: `{}`, format: schema.Format("toml")},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := schema.ParseBytes([]byte(tc.raw), tc.format); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParse_UsesDocumentFormat(t *testing.T) {
	t.Parallel()

	doc := schema.MustNewDocument(schema.SourceFromFile("forms/plan.yml"), []byte("root:\n  type: string\n"))
	if doc.Format() != schema.FormatYAML {
		t.Fatalf("expected yaml format, got %s", doc.Format())
	}
	form, err := schema.Parse(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if node, ok := form.Node("root"); !ok || node.Type != schema.TypeString {
		t.Fatalf("unexpected node %+v", node)
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		location string
		raw      string
		want     schema.Format
	}{
		{location: "a.json", raw: "a: 1", want: schema.FormatJSON},
		{location: "a.YAML", raw: "{}", want: schema.FormatYAML},
		{location: "https://example.com/schema", raw: "  {\"a\": {}}", want: schema.FormatJSON},
		{location: "", raw: "a: 1", want: schema.FormatYAML},
	}
	for _, tc := range cases {
		if got := schema.DetectFormat(tc.location, []byte(tc.raw)); got != tc.want {
			t.Fatalf("DetectFormat(%q) = %s, want %s", tc.location, got, tc.want)
		}
	}
}

func TestParseSource(t *testing.T) {
	t.Parallel()

	src, err := schema.ParseSource("https://example.com/form.json")
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if src.Kind() != schema.SourceKindURL {
		t.Fatalf("expected url source, got %s", src.Kind())
	}

	src, err = schema.ParseSource(" ./forms/../forms/plan.json ")
	if err != nil {
		t.Fatalf("parse file: %v", err)
	}
	if src.Kind() != schema.SourceKindFile || src.Location() != "forms/plan.json" {
		t.Fatalf("unexpected file source %s %s", src.Kind(), src.Location())
	}

	if _, err := schema.ParseSource("  "); err == nil {
		t.Fatalf("expected error for empty location")
	}
}
