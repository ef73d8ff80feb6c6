package vanilla_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formview/pkg/render"
	"github.com/goliatone/go-formview/pkg/renderers/vanilla"
	"github.com/goliatone/go-formview/pkg/testsupport"
	"github.com/goliatone/go-formview/pkg/view"
)

func renderPlan(t *testing.T, mode view.Mode, opts render.RenderOptions, options ...vanilla.Option) string {
	t.Helper()

	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form := testsupport.MustForm(t, testsupport.PlanSchemaJSON)
	tree := testsupport.MustData(t, testsupport.PlanDataJSON)
	page := view.NewWalker().Walk(form, tree, mode)

	out, err := renderer.Render(context.Background(), page, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRenderer_PlanDocument(t *testing.T) {
	html := renderPlan(t, view.ModeConditional, render.RenderOptions{})

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Contributions &amp; Deferrals</title>",
		`<main class="formview-page" data-mode="conditional">`,
		`<section class="formview-section" id="contributionsAndDeferrals">`,
		`<div class="formview-subsection" id="contributionsAndDeferrals.employeeContributionsTypes">`,
		`<input type="checkbox" id="contributionsAndDeferrals.employeeContributionsTypes.preTaxRollover-input" disabled checked>`,
		`<input type="checkbox" id="contributionsAndDeferrals.employeeContributionsTypes.rothRollover-input" disabled>`,
		`id="contributionsAndDeferrals.participantContributionElectionOptions-Both" name="contributionsAndDeferrals.participantContributionElectionOptions" value="Both" disabled checked>`,
		`id="contributionsAndDeferrals.participantContributionElectionOptions-Percentage" name="contributionsAndDeferrals.participantContributionElectionOptions" value="Percentage" disabled>`,
		`<span class="value formview-missing">[Not specified]</span>`,
		`<p class="description">How participants can elect contributions.</p>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}
}

func TestRenderer_FragmentOmitsDocument(t *testing.T) {
	html := renderPlan(t, view.ModeAll, render.RenderOptions{Fragment: true, Title: "Preview"})
	if strings.Contains(html, "<!DOCTYPE html>") || strings.Contains(html, "<body>") {
		t.Fatalf("fragment should omit the document wrapper:\n%s", html)
	}
	if !strings.HasPrefix(html, `<main class="formview-page" data-mode="all">`) {
		t.Fatalf("fragment should start with main element:\n%s", html)
	}
	if !strings.Contains(html, "<h1>Preview</h1>") {
		t.Fatalf("expected title override:\n%s", html)
	}
}

func TestRenderer_SanitisesDescriptionsAndEscapesTitles(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	page := view.Page{
		Title: "T",
		Mode:  view.ModeConditional,
		Sections: []view.Instruction{
			view.Section{
				Header: view.Header{
					Key:         "s",
					Path:        "s",
					Title:       "<i>Title</i>",
					Description: `<b>ok</b><script>alert(1)</script>`,
				},
			},
		},
	}

	out, err := renderer.Render(context.Background(), page, render.RenderOptions{Fragment: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if strings.Contains(html, "<script>") || strings.Contains(html, "alert(1)") {
		t.Fatalf("script should be stripped:\n%s", html)
	}
	if !strings.Contains(html, "<b>ok</b>") {
		t.Fatalf("basic formatting should survive:\n%s", html)
	}
	if !strings.Contains(html, "<h2>&lt;i&gt;Title&lt;/i&gt;</h2>") {
		t.Fatalf("title should be escaped:\n%s", html)
	}
}

func TestRenderer_ChromeClasses(t *testing.T) {
	html := renderPlan(t, view.ModeConditional, render.RenderOptions{Fragment: true},
		vanilla.WithChromeClasses(vanilla.ChromeClasses{Section: "card formview-hijack", Missing: "italic"}))

	if !strings.Contains(html, `<section class="formview-section card" id="contributionsAndDeferrals">`) {
		t.Fatalf("expected extra section class:\n%s", html)
	}
	if !strings.Contains(html, `class="value formview-missing italic"`) {
		t.Fatalf("expected extra missing class:\n%s", html)
	}
}

func TestRenderer_HiddenGroupIsAbsent(t *testing.T) {
	form := testsupport.MustForm(t, testsupport.PlanSchemaYAML)
	tree := testsupport.MustData(t, testsupport.PlanDataYAML)

	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	conditional, err := renderer.Render(context.Background(), view.NewWalker().Walk(form, tree, view.ModeConditional), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(conditional), `id="profile.extras"`) {
		t.Fatalf("hidden group rendered in conditional mode")
	}

	all, err := renderer.Render(context.Background(), view.NewWalker().Walk(form, tree, view.ModeAll), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(all), `<div class="formview-subsection" id="profile.extras">`) {
		t.Fatalf("expected extras in all mode:\n%s", all)
	}
}

func TestRenderer_Metadata(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != "html" || renderer.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected metadata %s %s", renderer.Name(), renderer.ContentType())
	}
	if _, err := vanilla.TemplatesFS().Open("templates/page.tmpl"); err != nil {
		t.Fatalf("embedded page template missing: %v", err)
	}
}

func TestRenderer_NestedIncludesResolveBesidePageTemplate(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	page := view.Page{
		Title: "Nested",
		Mode:  view.ModeAll,
		Sections: []view.Instruction{
			view.Section{
				Header: view.Header{Key: "a", Path: "a", Title: "A"},
				Children: []view.Instruction{
					view.Subsection{
						Header: view.Header{Key: "b", Path: "a.b", Title: "B"},
						Children: []view.Instruction{
							view.Subsection{
								Header: view.Header{Key: "c", Path: "a.b.c", Title: "C"},
								Children: []view.Instruction{
									view.Field{Header: view.Header{Key: "d", Path: "a.b.c.d", Title: "D"}, Value: "deep", State: view.ValuePresent},
								},
							},
						},
					},
				},
			},
		},
	}

	out, err := renderer.Render(context.Background(), page, render.RenderOptions{Fragment: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		`<section class="formview-section" id="a">`,
		`<div class="formview-subsection" id="a.b">`,
		`<div class="formview-subsection" id="a.b.c">`,
		`<span class="value">deep</span>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}
}

func TestRenderer_CustomBundleIncludesNodeTemplate(t *testing.T) {
	bundle := fstest.MapFS{
		"templates/page.tmpl": {Data: []byte(`{% for node in page.sections %}{% include node_template with node=node %}{% endfor %}`)},
		"templates/node.tmpl": {Data: []byte(`[{{ node.title }}{% for child in node.children %}{% include node_template with node=child %}{% endfor %}]`)},
	}
	renderer, err := vanilla.New(vanilla.WithTemplatesFS(bundle))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	page := view.Page{
		Sections: []view.Instruction{
			view.Section{
				Header: view.Header{Key: "a", Path: "a", Title: "A"},
				Children: []view.Instruction{
					view.Checkbox{Header: view.Header{Key: "b", Path: "a.b", Title: "B"}},
				},
			},
		},
	}

	out, err := renderer.Render(context.Background(), page, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "[A[B]]" {
		t.Fatalf("unexpected output %q", got)
	}
}
