package content

import (
	"context"
	"fmt"
	"runtime"

	goslug "github.com/goliatone/go-slug"
	"golang.org/x/sync/errgroup"

	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/frontmatter"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/logging"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/storage"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/pkg/interfaces"
)

// DefaultLatestLimit is the number of entries Latest returns when asked for a
// non-positive count.
const DefaultLatestLimit = 3

// Service exposes the read operations pages are built from.
type Service interface {
	List(ctx context.Context, kind frontmatter.Kind) ([]Summary, error)
	Latest(ctx context.Context, kind frontmatter.Kind, n int) ([]Summary, error)
	Get(ctx context.Context, kind frontmatter.Kind, slug string) (*RenderedDocument, error)
	Slugs(ctx context.Context, kind frontmatter.Kind) ([]string, error)
	Entry(ctx context.Context, kind frontmatter.Kind, slug string) (*Entry, error)
	RenderAll(ctx context.Context, kind frontmatter.Kind) ([]*RenderedDocument, error)
	Scan(ctx context.Context, kind frontmatter.Kind) (*ListReport, error)
}

// Permalinker builds the public URL of a document.
type Permalinker interface {
	Permalink(kind, slug string) (string, error)
}

// ServiceOption configures the content service.
type ServiceOption func(*service)

// WithPolicy sets the visibility policy.
func WithPolicy(policy Policy) ServiceOption {
	return func(s *service) {
		s.policy = policy
	}
}

// WithStrict makes listings fail on the first invalid document instead of
// skipping it.
func WithStrict(strict bool) ServiceOption {
	return func(s *service) {
		s.strict = strict
	}
}

// WithLatestLimit overrides DefaultLatestLimit.
func WithLatestLimit(limit int) ServiceOption {
	return func(s *service) {
		if limit > 0 {
			s.latestLimit = limit
		}
	}
}

// WithConcurrency bounds the number of documents RenderAll renders at once.
func WithConcurrency(limit int) ServiceOption {
	return func(s *service) {
		if limit > 0 {
			s.concurrency = limit
		}
	}
}

// WithPermalinker attaches URLs to summaries.
func WithPermalinker(links Permalinker) ServiceOption {
	return func(s *service) {
		s.links = links
	}
}

// WithLogger sets the logger used for skipped and suspicious documents.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo        interfaces.ContentRepository
	renderer    interfaces.MarkdownRenderer
	policy      Policy
	strict      bool
	latestLimit int
	concurrency int
	links       Permalinker
	logger      interfaces.Logger
}

// NewService wires the repository and renderer into a Service.
func NewService(repo interfaces.ContentRepository, renderer interfaces.MarkdownRenderer, opts ...ServiceOption) Service {
	s := &service{
		repo:        repo,
		renderer:    renderer,
		latestLimit: DefaultLatestLimit,
		concurrency: runtime.NumCPU(),
		logger:      logging.ContentLogger(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan reads every document of kind once. Invalid documents are skipped and
// reported unless the service is strict; hidden drafts are counted.
func (s *service) Scan(ctx context.Context, kind frontmatter.Kind) (*ListReport, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", frontmatter.ErrUnknownKind, kind)
	}
	entries, skipped, err := s.load(ctx, kind)
	if err != nil {
		return nil, err
	}

	report := &ListReport{
		Kind:    kind,
		Entries: []Summary{},
		Skipped: skipped,
	}
	visible := s.policy.Apply(entries)
	report.Hidden = len(entries) - len(visible)
	for _, entry := range visible {
		report.Entries = append(report.Entries, s.summarize(entry))
	}
	return report, nil
}

func (s *service) List(ctx context.Context, kind frontmatter.Kind) ([]Summary, error) {
	report, err := s.Scan(ctx, kind)
	if err != nil {
		return nil, err
	}
	return report.Entries, nil
}

func (s *service) Latest(ctx context.Context, kind frontmatter.Kind, n int) ([]Summary, error) {
	if n <= 0 {
		n = s.latestLimit
	}
	list, err := s.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	if len(list) > n {
		list = list[:n]
	}
	return list, nil
}

func (s *service) Slugs(ctx context.Context, kind frontmatter.Kind) ([]string, error) {
	list, err := s.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(list))
	for _, item := range list {
		slugs = append(slugs, item.Slug)
	}
	return slugs, nil
}

// Entry returns the parsed, unrendered document. Drafts hidden by the policy
// are reported as not found.
func (s *service) Entry(ctx context.Context, kind frontmatter.Kind, slug string) (*Entry, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", frontmatter.ErrUnknownKind, kind)
	}
	entry, err := s.read(ctx, kind, slug)
	if err != nil {
		return nil, err
	}
	if !s.policy.IsVisible(entry.Draft) {
		return nil, storage.NotFound(kind.String(), slug)
	}
	return entry, nil
}

func (s *service) Get(ctx context.Context, kind frontmatter.Kind, slug string) (*RenderedDocument, error) {
	entry, err := s.Entry(ctx, kind, slug)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, entry)
}

// RenderAll renders every visible document of kind concurrently. Results keep
// the listing order; the first failure cancels the remaining renders.
func (s *service) RenderAll(ctx context.Context, kind frontmatter.Kind) ([]*RenderedDocument, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", frontmatter.ErrUnknownKind, kind)
	}
	entries, _, err := s.load(ctx, kind)
	if err != nil {
		return nil, err
	}
	visible := s.policy.Apply(entries)

	results := make([]*RenderedDocument, len(visible))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)
	for i, entry := range visible {
		group.Go(func() error {
			doc, err := s.render(groupCtx, entry)
			if err != nil {
				return err
			}
			results[i] = doc
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// load parses every document in the collection, one entry per slug.
func (s *service) load(ctx context.Context, kind frontmatter.Kind) ([]*Entry, []SkippedDocument, error) {
	names, err := s.repo.List(ctx, kind.String())
	if err != nil {
		return nil, nil, err
	}

	entries := make([]*Entry, 0, len(names))
	skipped := []SkippedDocument{}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		slug := SlugFromFileName(name)
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}

		entry, err := s.read(ctx, kind, slug)
		switch {
		case err == nil:
		case storage.IsNotFound(err):
			continue
		case frontmatter.IsInvalid(err) && !s.strict:
			logging.WithDocumentContext(s.logger, kind.String(), name, slug).
				Warn("content.document.skipped", "error", err.Error())
			skipped = append(skipped, SkippedDocument{FileName: name, Err: err})
			continue
		default:
			return nil, nil, err
		}

		if !goslug.IsValid(slug) {
			logging.WithDocumentContext(s.logger, kind.String(), entry.FileName, slug).
				Warn("content.slug.unconventional")
		}
		entries = append(entries, entry)
	}
	return entries, skipped, nil
}

func (s *service) read(ctx context.Context, kind frontmatter.Kind, slug string) (*Entry, error) {
	raw, err := s.repo.Read(ctx, kind.String(), slug)
	if err != nil {
		return nil, err
	}
	return Parse(kind, raw.Source, raw.Slug, raw.FileName)
}

func (s *service) render(ctx context.Context, entry *Entry) (*RenderedDocument, error) {
	result, err := s.renderer.Render(ctx, entry.Body)
	if err != nil {
		logging.WithDocumentContext(s.logger, entry.Kind.String(), entry.FileName, entry.Slug).
			Error("content.document.render_failed", "error", err.Error())
		return nil, err
	}
	return &RenderedDocument{
		Summary:  s.summarize(entry),
		HTML:     result.HTML,
		Headings: result.Headings,
	}, nil
}

func (s *service) summarize(entry *Entry) Summary {
	summary := entry.Summarize()
	if s.links == nil {
		return summary
	}
	url, err := s.links.Permalink(entry.Kind.String(), entry.Slug)
	if err != nil {
		s.logger.Warn("content.permalink.failed", "slug", entry.Slug, "error", err.Error())
		return summary
	}
	summary.URL = url
	return summary
}
