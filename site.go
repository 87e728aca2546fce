// Package site reads the notes and demos of the personal site: it discovers
// Markdown and MDX documents, validates their frontmatter, applies the draft
// and ordering rules of the current build and renders bodies to HTML.
package site

import (
	"context"

	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/content"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/di"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/frontmatter"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/markdown"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/storage"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/pkg/interfaces"
)

// ContentService exports the read operations pages are built from.
type ContentService = content.Service

type (
	Kind             = frontmatter.Kind
	Entry            = content.Entry
	Summary          = content.Summary
	RenderedDocument = content.RenderedDocument
	ListReport       = content.ListReport
	SkippedDocument  = content.SkippedDocument
	Heading          = interfaces.Heading
)

const (
	KindNotes = frontmatter.KindNotes
	KindDemos = frontmatter.KindDemos
)

// ErrNotFound is the root cause of every missing or hidden document error.
var ErrNotFound = content.ErrNotFound

// Option overrides a collaborator of the module.
type Option = di.Option

var (
	WithLoggerProvider = di.WithLoggerProvider
	WithRepository     = di.WithRepository
	WithRenderer       = di.WithRenderer
	WithContentService = di.WithContentService
)

// Module is the top level façade over the content pipeline.
type Module struct {
	container *di.Container
}

// New builds a module from cfg.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying wiring for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Content returns the configured content service.
func (m *Module) Content() ContentService {
	return m.container.ContentService()
}

// List returns the visible entries of kind, newest first.
func (m *Module) List(ctx context.Context, kind Kind) ([]Summary, error) {
	return m.Content().List(ctx, kind)
}

// Latest returns the first n entries of List; n <= 0 uses the configured
// default.
func (m *Module) Latest(ctx context.Context, kind Kind, n int) ([]Summary, error) {
	return m.Content().Latest(ctx, kind, n)
}

// Get returns the rendered document kind/slug.
func (m *Module) Get(ctx context.Context, kind Kind, slug string) (*RenderedDocument, error) {
	return m.Content().Get(ctx, kind, slug)
}

// Slugs returns the slugs of List.
func (m *Module) Slugs(ctx context.Context, kind Kind) ([]string, error) {
	return m.Content().Slugs(ctx, kind)
}

// Stylesheet returns the light and dark code highlighting CSS.
func (m *Module) Stylesheet() (string, error) {
	return m.container.Stylesheet()
}

// Kinds lists the content collections.
func Kinds() []Kind {
	return frontmatter.Kinds()
}

// ParseKind resolves a collection name.
func ParseKind(value string) (Kind, error) {
	return frontmatter.ParseKind(value)
}

// IsNotFound reports whether err means the document is absent or hidden.
func IsNotFound(err error) bool {
	return content.IsNotFound(err)
}

// IsInvalid reports whether err is a frontmatter validation failure.
func IsInvalid(err error) bool {
	return frontmatter.IsInvalid(err)
}

// IsRenderFailure reports whether err came from the Markdown renderer.
func IsRenderFailure(err error) bool {
	return markdown.IsRenderFailure(err)
}

// FormatDate renders a document date for display.
func FormatDate(date string) string {
	return content.FormatDate(date)
}

// NewMemoryRepository returns an empty in-memory repository for tests and
// programmatic content.
func NewMemoryRepository() *storage.MemoryRepository {
	return storage.NewMemoryRepository()
}
