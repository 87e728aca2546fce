package markdown

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/logging"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/pkg/interfaces"
)

// TextCodeRenderFailed tags every rendering failure.
const TextCodeRenderFailed = "MARKDOWN_RENDER_FAILED"

type (
	Result  = interfaces.RenderResult
	Heading = interfaces.Heading
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger routes renderer diagnostics to logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer converts Markdown bodies to HTML. It holds no per-render state and
// is safe for concurrent use.
type Renderer struct {
	engine  goldmark.Markdown
	stages  []stage
	options interfaces.RenderOptions
	logger  interfaces.Logger
}

var _ interfaces.MarkdownRenderer = (*Renderer)(nil)

// NewRenderer builds a renderer. Empty theme names fall back to the GitHub
// light and dark palettes.
func NewRenderer(opts interfaces.RenderOptions, options ...Option) (*Renderer, error) {
	if strings.TrimSpace(opts.LightTheme) == "" {
		opts.LightTheme = DefaultLightTheme
	}
	if strings.TrimSpace(opts.DarkTheme) == "" {
		opts.DarkTheme = DefaultDarkTheme
	}
	light, err := resolveStyle(opts.LightTheme)
	if err != nil {
		return nil, err
	}
	if _, err := resolveStyle(opts.DarkTheme); err != nil {
		return nil, err
	}

	r := &Renderer{
		engine:  newEngine(opts, light.Name),
		stages:  defaultStages(),
		options: opts,
		logger:  logging.NoOp(),
	}
	for _, option := range options {
		option(r)
	}
	return r, nil
}

func newEngine(opts interfaces.RenderOptions, lightStyle string) goldmark.Markdown {
	rendererOptions := []renderer.Option{
		renderer.WithNodeRenderers(util.Prioritized(&anchorHTMLRenderer{}, 500)),
	}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			Math,
			highlighting.NewHighlighting(highlightingOptions(lightStyle)...),
		),
		goldmark.WithRendererOptions(rendererOptions...),
	)
}

// Render parses body, runs the stage chain and serialises the result. Raw
// HTML in the source is omitted from the output.
func (r *Renderer) Render(ctx context.Context, body string) (result *Result, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			r.logger.Error("markdown.render.panic", "panic", fmt.Sprint(recovered))
			result = nil
			err = renderFailure(fmt.Errorf("panic: %v", recovered), "render")
		}
	}()

	source := []byte(body)
	doc := &document{
		root:     r.engine.Parser().Parse(text.NewReader(source)),
		source:   source,
		ids:      newIDTable(),
		headings: []Heading{},
	}

	for _, st := range r.stages {
		if err := st.apply(doc); err != nil {
			return nil, renderFailure(err, st.name)
		}
	}

	var buf bytes.Buffer
	if err := r.engine.Renderer().Render(&buf, source, doc.root); err != nil {
		return nil, renderFailure(err, "serialise")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("markdown.render", "bytes", buf.Len(), "headings", len(doc.headings))
	return &Result{
		HTML:     buf.String(),
		Headings: doc.headings,
	}, nil
}

// Stylesheet returns the CSS for highlighted code in both themes.
func (r *Renderer) Stylesheet() (string, error) {
	return stylesheet(r.options.LightTheme, r.options.DarkTheme)
}

// IsRenderFailure reports whether err came from a failed render.
func IsRenderFailure(err error) bool {
	var richErr *goerrors.Error
	return goerrors.As(err, &richErr) && richErr.TextCode == TextCodeRenderFailed
}

func renderFailure(err error, stageName string) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("markdown stage %s failed", stageName)).
		WithTextCode(TextCodeRenderFailed).
		WithMetadata(map[string]any{"stage": stageName})
}
