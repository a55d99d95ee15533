package layout

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bitsbytes/blog/pkg/render"
	"github.com/bitsbytes/blog/pkg/theme"
	"github.com/bitsbytes/blog/pkg/vdom"
)

const (
	// BlogTitle is the document title of every page.
	BlogTitle = "Bits & Bytes"

	// BlogDescription is the meta description of every page.
	BlogDescription = "A wonderful blog about JavaScript"

	// Lang is the html lang attribute.
	Lang = "en"

	// AttrColorTheme is the root attribute carrying the resolved theme.
	AttrColorTheme = "data-color-theme"
)

// Metadata is the page metadata surfaced in the document head.
type Metadata struct {
	Title       string
	Description string
}

// DefaultMetadata returns the blog's fixed metadata.
func DefaultMetadata() Metadata {
	return Metadata{
		Title:       BlogTitle,
		Description: BlogDescription,
	}
}

// Observer is notified of every theme resolution.
type Observer func(r *http.Request, res theme.Resolution)

// RootLayout renders the document shell. It holds only immutable
// configuration and is safe for concurrent use.
type RootLayout struct {
	renderer    *render.Renderer
	styleSheets []string
	scripts     []render.ScriptTag
	observers   []Observer
	logger      *slog.Logger
}

// Option configures a RootLayout.
type Option func(*RootLayout)

// WithRenderer sets the renderer used to write documents.
func WithRenderer(r *render.Renderer) Option {
	return func(l *RootLayout) {
		if r != nil {
			l.renderer = r
		}
	}
}

// WithStyleSheets links stylesheets from the document head.
func WithStyleSheets(hrefs ...string) Option {
	return func(l *RootLayout) {
		l.styleSheets = append(l.styleSheets, hrefs...)
	}
}

// WithScripts adds script tags to every page.
func WithScripts(scripts ...render.ScriptTag) Option {
	return func(l *RootLayout) {
		l.scripts = append(l.scripts, scripts...)
	}
}

// WithObserver registers a callback for theme resolutions.
func WithObserver(o Observer) Option {
	return func(l *RootLayout) {
		if o != nil {
			l.observers = append(l.observers, o)
		}
	}
}

// WithLogger sets the logger used by the page handler.
func WithLogger(logger *slog.Logger) Option {
	return func(l *RootLayout) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a RootLayout.
func New(opts ...Option) *RootLayout {
	l := &RootLayout{
		renderer: render.NewRenderer(render.RendererConfig{}),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Metadata returns the metadata applied to every page.
func (l *RootLayout) Metadata() Metadata {
	return DefaultMetadata()
}

// Page builds the document for r with children inside body > main.
func (l *RootLayout) Page(r *http.Request, children ...*vdom.VNode) render.PageData {
	res := theme.FromRequest(r)
	l.observe(r, res)

	meta := l.Metadata()
	tokens := theme.TokensFor(res.Theme)

	return render.PageData{
		Lang: Lang,
		RootAttrs: map[string]string{
			AttrColorTheme: res.Theme.String(),
			"style":        tokens.Style(),
		},
		Title:       meta.Title,
		Description: meta.Description,
		StyleSheets: append([]string(nil), l.styleSheets...),
		Scripts:     append([]render.ScriptTag(nil), l.scripts...),
		Body:        vdom.Main(children),
	}
}

// Render writes the document for r to w.
func (l *RootLayout) Render(w io.Writer, r *http.Request, children ...*vdom.VNode) error {
	return l.renderer.RenderPage(w, l.Page(r, children...))
}

// RenderBytes renders the document for r into memory.
func (l *RootLayout) RenderBytes(r *http.Request, children ...*vdom.VNode) ([]byte, error) {
	var buf bytes.Buffer
	if err := l.Render(&buf, r, children...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (l *RootLayout) observe(r *http.Request, res theme.Resolution) {
	if r != nil {
		span := trace.SpanFromContext(r.Context())
		if span.IsRecording() {
			span.SetAttributes(
				attribute.String("blog.color_theme", res.Theme.String()),
				attribute.String("blog.theme_source", string(res.Source)),
			)
		}
	}
	for _, o := range l.observers {
		o(r, res)
	}
}
