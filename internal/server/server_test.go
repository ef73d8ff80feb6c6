package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formview/pkg/orchestrator"
	"github.com/goliatone/go-formview/pkg/schema"
)

const profileSchema = `{
  "profile": {
    "type": "object",
    "title": "Profile",
    "properties": {
      "name": {"type": "string", "title": "Name"},
      "newsletter": {"type": "boolean", "title": "Newsletter"},
      "extras": {
        "type": "object",
        "title": "Extras",
        "x-ui-visible-if": {"field": "profile.newsletter", "hasValue": true},
        "properties": {
          "topics": {"type": "string", "title": "Topics"}
        }
      }
    }
  }
}`

const profileData = `{"profile": {"name": "Ada", "newsletter": "no"}}`

func testServer(t *testing.T) (*Server, string) {
	t.Helper()

	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.json")
	dataPath := filepath.Join(dir, "data.json")
	if err := os.WriteFile(schemaPath, []byte(profileSchema), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dataPath, []byte(profileData), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := New(orchestrator.New(), orchestrator.Request{
		SchemaSource: schema.SourceFromFile(schemaPath),
		DataSource:   schema.SourceFromFile(dataPath),
	}, nil)
	return srv, schemaPath
}

func get(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv, _ := testServer(t)

	rec := get(t, srv.Router(), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestPage_HTMLAndModeToggle(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.Router()

	rec := get(t, router, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	if strings.Contains(rec.Body.String(), "Extras") {
		t.Fatalf("conditional page should hide Extras:\n%s", rec.Body.String())
	}
	if rec.Header().Get("X-Formview-Hidden") != "1" {
		t.Fatalf("hidden header = %q", rec.Header().Get("X-Formview-Hidden"))
	}

	rec = get(t, router, "/?mode=all")
	if !strings.Contains(rec.Body.String(), "Extras") {
		t.Fatalf("mode=all should show Extras:\n%s", rec.Body.String())
	}
}

func TestPage_RendererQuery(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.Router()

	rec := get(t, router, "/?renderer=text")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Name: Ada") {
		t.Fatalf("unexpected text output:\n%s", rec.Body.String())
	}

	rec = get(t, router, "/?renderer=pdf")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown renderer status = %d", rec.Code)
	}
}

func TestPageJSON(t *testing.T) {
	srv, _ := testServer(t)

	rec := get(t, srv.Router(), "/page.json?mode=all")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var doc struct {
		Title    string `json:"title"`
		Mode     string `json:"mode"`
		Sections []struct {
			Key string `json:"key"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v\n%s", err, rec.Body.String())
	}
	if doc.Title != "Profile" || doc.Mode != "all" || len(doc.Sections) != 1 {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestReload_KeepsPreviousInputsOnError(t *testing.T) {
	srv, schemaPath := testServer(t)
	router := srv.Router()

	if rec := get(t, router, "/?renderer=text"); !strings.Contains(rec.Body.String(), "Profile") {
		t.Fatalf("unexpected first render:\n%s", rec.Body.String())
	}

	if err := os.WriteFile(schemaPath, []byte(`{"profile": {`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := srv.Reload(context.Background()); err == nil {
		t.Fatal("expected reload error for broken schema")
	}
	if rec := get(t, router, "/?renderer=text"); !strings.Contains(rec.Body.String(), "Profile") {
		t.Fatalf("previous inputs should still render:\n%s", rec.Body.String())
	}

	updated := strings.Replace(profileSchema, `"title": "Profile"`, `"title": "Account"`, 1)
	if err := os.WriteFile(schemaPath, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := srv.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if rec := get(t, router, "/?renderer=text"); !strings.Contains(rec.Body.String(), "Account") {
		t.Fatalf("reloaded title missing:\n%s", rec.Body.String())
	}
}

func TestServe_ResolveError(t *testing.T) {
	srv := New(orchestrator.New(), orchestrator.Request{
		SchemaSource: schema.SourceFromFile(filepath.Join(t.TempDir(), "absent.json")),
	}, nil)

	rec := get(t, srv.Router(), "/")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}
