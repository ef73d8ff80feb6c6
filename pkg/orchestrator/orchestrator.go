package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/goliatone/go-formview/internal/loader"
	"github.com/goliatone/go-formview/pkg/data"
	"github.com/goliatone/go-formview/pkg/openapi"
	"github.com/goliatone/go-formview/pkg/render"
	"github.com/goliatone/go-formview/pkg/renderers/jsonview"
	"github.com/goliatone/go-formview/pkg/renderers/text"
	"github.com/goliatone/go-formview/pkg/renderers/vanilla"
	"github.com/goliatone/go-formview/pkg/schema"
	"github.com/goliatone/go-formview/pkg/view"
	"github.com/goliatone/go-formview/pkg/visibility"
)

const defaultRendererName = "html"

// ErrSourceRequired is returned when a request names neither a schema source
// nor a parsed form.
var ErrSourceRequired = errors.New("orchestrator: schema source or form is required")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(l schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = l
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithEvaluator replaces the declarative condition evaluator.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(o *Orchestrator) {
		o.evaluator = evaluator
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchemaTransformer registers a Transformer that can mutate forms after
// parsing but before walking.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithLogger receives debug output about each pipeline run.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithParallel walks top-level nodes concurrently, at most limit at a time.
// A limit below one means no cap.
func WithParallel(limit int) Option {
	return func(o *Orchestrator) {
		o.parallel = true
		o.parallelLimit = limit
	}
}

// Orchestrator coordinates the pipeline from schema and data documents to
// rendered output. It applies defaults (file loader, html/text/json renderers)
// while remaining open to dependency injection.
type Orchestrator struct {
	loader          schema.Loader
	registry        *render.Registry
	evaluator       visibility.Evaluator
	transformer     Transformer
	logger          *slog.Logger
	defaultRenderer string
	parallel        bool
	parallelLimit   int
	walker          *view.Walker
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs of one render.
type Request struct {
	// SchemaSource identifies the schema document. Optional when Form is set.
	SchemaSource schema.Source
	// Form bypasses loading and parsing.
	Form *schema.Form

	// DataSource identifies the data document. Optional; without it and
	// without Data every value renders as missing.
	DataSource schema.Source
	// Data bypasses loading the data document.
	Data data.Tree

	// Mode selects conditional or full rendering; empty means conditional.
	Mode view.Mode

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// OpenAPI treats the schema document as OpenAPI and reads its component
	// schemas. Documents with a top-level openapi key are detected anyway.
	OpenAPI bool
	// Components selects OpenAPI component schemas; empty means all.
	Components []string
	// ValidateOpenAPI runs document validation before reading components.
	ValidateOpenAPI bool

	RenderOptions render.RenderOptions
}

// Result is the outcome of Execute.
type Result struct {
	Page        view.Page
	Output      []byte
	ContentType string
	Renderer    string
}

// Generate executes the load → parse → walk → render sequence and returns the
// rendered bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	result, err := o.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}

// Execute is Generate returning the walked page and renderer metadata too.
func (o *Orchestrator) Execute(ctx context.Context, req Request) (Result, error) {
	page, err := o.Page(ctx, req)
	if err != nil {
		return Result{}, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	output, err := renderer.Render(ctx, page, req.RenderOptions)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.DebugContext(ctx, "page rendered",
		"renderer", renderer.Name(),
		"bytes", len(output),
		"duration", time.Since(start),
	)

	return Result{
		Page:        page,
		Output:      output,
		ContentType: renderer.ContentType(),
		Renderer:    renderer.Name(),
	}, nil
}

// Page resolves the form and data of req and walks them without rendering.
func (o *Orchestrator) Page(ctx context.Context, req Request) (view.Page, error) {
	if ctx == nil {
		return view.Page{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return view.Page{}, err
	}
	if err := o.initialiseErr; err != nil {
		return view.Page{}, err
	}

	form, err := o.resolveForm(ctx, req)
	if err != nil {
		return view.Page{}, err
	}
	if err := o.applyTransformer(ctx, form); err != nil {
		return view.Page{}, err
	}

	tree, err := o.resolveData(ctx, req)
	if err != nil {
		return view.Page{}, err
	}

	mode := req.Mode
	if mode == "" {
		mode = view.ModeConditional
	}

	start := time.Now()
	var page view.Page
	if o.parallel {
		page, err = o.walker.WalkParallel(ctx, form, tree, mode)
		if err != nil {
			return view.Page{}, fmt.Errorf("orchestrator: walk form: %w", err)
		}
	} else {
		page = o.walker.Walk(form, tree, mode)
	}

	o.logger.DebugContext(ctx, "form walked",
		"mode", string(mode),
		"sections", len(page.Sections),
		"hidden", len(page.Hidden),
		"duration", time.Since(start),
	)
	return page, nil
}

// Resolve loads the schema and data of req and returns a copy with Form and
// Data populated. Rendering the copy skips the loader.
func (o *Orchestrator) Resolve(ctx context.Context, req Request) (Request, error) {
	if err := o.initialiseErr; err != nil {
		return Request{}, err
	}
	form, err := o.resolveForm(ctx, req)
	if err != nil {
		return Request{}, err
	}
	tree, err := o.resolveData(ctx, req)
	if err != nil {
		return Request{}, err
	}
	req.Form = form
	req.Data = tree
	return req, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) resolveForm(ctx context.Context, req Request) (*schema.Form, error) {
	if req.Form != nil {
		return req.Form, nil
	}
	if req.SchemaSource == nil {
		return nil, ErrSourceRequired
	}

	doc, err := o.loader.Load(ctx, req.SchemaSource)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load schema: %w", err)
	}

	if req.OpenAPI || isOpenAPI(doc) {
		options := []openapi.Option{openapi.WithComponents(req.Components...)}
		if req.ValidateOpenAPI {
			options = append(options, openapi.WithValidation())
		}
		form, err := openapi.FormFromDocument(ctx, doc.Raw(), options...)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: read openapi components: %w", err)
		}
		return form, nil
	}

	form, err := schema.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse schema: %w", err)
	}
	return form, nil
}

func (o *Orchestrator) resolveData(ctx context.Context, req Request) (data.Tree, error) {
	if req.Data != nil {
		return req.Data, nil
	}
	if req.DataSource == nil {
		return data.Tree{}, nil
	}

	doc, err := o.loader.Load(ctx, req.DataSource)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load data: %w", err)
	}
	tree, err := data.DecodeDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: decode data: %w", err)
	}
	return tree, nil
}

// isOpenAPI reports whether the document declares a top-level openapi
// version. Undecodable payloads are left to the schema parser to report.
func isOpenAPI(doc schema.Document) bool {
	tree, err := data.DecodeDocument(doc)
	if err != nil {
		return false
	}
	_, ok := tree["openapi"].(string)
	return ok
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, form *schema.Form) error {
	if o.transformer == nil || form == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, form); err != nil {
		return fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = loader.New(schema.NewLoaderOptions())
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			o.initialiseErr = err
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	walkerOptions := []view.WalkerOption{view.WithConcurrency(o.parallelLimit)}
	if o.evaluator != nil {
		walkerOptions = append(walkerOptions, view.WithEvaluator(o.evaluator))
	}
	o.walker = view.NewWalker(walkerOptions...)
}

// DefaultRegistry returns a registry holding the built-in html, text and json
// renderers. On error the registry still holds the renderers that could be
// built.
func DefaultRegistry() (*render.Registry, error) {
	registry := render.NewRegistry(text.New(), jsonview.New())
	html, err := vanilla.New()
	if err != nil {
		return registry, fmt.Errorf("orchestrator: default renderer: %w", err)
	}
	registry.MustRegister(html)
	return registry, nil
}
