package text_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formview/pkg/render"
	"github.com/goliatone/go-formview/pkg/renderers/text"
	"github.com/goliatone/go-formview/pkg/view"
)

func samplePage() view.Page {
	return view.Page{
		Title: "Profile",
		Mode:  view.ModeConditional,
		Sections: []view.Instruction{
			view.Section{
				Header: view.Header{Key: "profile", Path: "profile", Title: "Profile", Description: "About you"},
				Children: []view.Instruction{
					view.Field{Header: view.Header{Key: "name", Path: "profile.name", Title: "Name"}, Value: "Ada", State: view.ValuePresent},
					view.Field{Header: view.Header{Key: "bio", Path: "profile.bio", Title: "Bio"}, State: view.ValueNotSpecified},
					view.Checkbox{Header: view.Header{Key: "news", Path: "profile.news", Title: "Newsletter"}, Checked: true},
					view.Subsection{
						Header: view.Header{Key: "plan", Path: "profile.plan", Title: "Plan"},
						Children: []view.Instruction{
							view.RadioGroup{
								Header: view.Header{Key: "tier", Path: "profile.plan.tier", Title: "Tier"},
								Name:   "profile.plan.tier",
								Options: []view.Option{
									{Value: "Free", ID: "profile.plan.tier-Free"},
									{Value: "Pro", ID: "profile.plan.tier-Pro", Selected: true},
								},
								Selected:     "Pro",
								HasSelection: true,
							},
							view.Checkbox{Header: view.Header{Key: "trial", Path: "profile.plan.trial", Title: "Trial"}},
						},
					},
				},
			},
		},
		Hidden: []string{"profile.extras"},
	}
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	out, err := text.New().Render(context.Background(), samplePage(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := strings.Join([]string{
		"Profile",
		"=======",
		"",
		"## Profile",
		"About you",
		"  Name: Ada",
		"  Bio: [Not specified]",
		"  [x] Newsletter",
		"  Plan",
		"    Tier",
		"      ( ) Free",
		"      (•) Pro",
		"    [ ] Trial",
		"",
	}, "\n")
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_Options(t *testing.T) {
	t.Parallel()

	renderer := text.New(text.WithIndent("\t"), text.WithHiddenSummary(true))
	out, err := renderer.Render(context.Background(), samplePage(), render.RenderOptions{
		Title:            "Override",
		HideDescriptions: true,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	got := string(out)
	if !strings.HasPrefix(got, "Override\n========\n") {
		t.Fatalf("expected title override, got:\n%s", got)
	}
	if strings.Contains(got, "About you") {
		t.Fatalf("descriptions should be hidden:\n%s", got)
	}
	if !strings.Contains(got, "\t\t(•) Pro") {
		t.Fatalf("expected tab indentation:\n%s", got)
	}
	if !strings.HasSuffix(got, "Hidden:\n\t- profile.extras\n") {
		t.Fatalf("expected hidden summary:\n%s", got)
	}
}

func TestRenderer_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := text.New().Render(ctx, samplePage(), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestRenderer_Metadata(t *testing.T) {
	t.Parallel()

	r := text.New()
	if r.Name() != "text" || !strings.HasPrefix(r.ContentType(), "text/plain") {
		t.Fatalf("unexpected metadata %s %s", r.Name(), r.ContentType())
	}
}
