package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/logging"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/pkg/interfaces"
)

// DocumentPattern matches the file names a collection may contain.
const DocumentPattern = "*.{md,mdx}"

// Extensions lists document extensions in lookup priority order. When both
// files exist for a slug the first extension wins.
var Extensions = []string{".mdx", ".md"}

// RawDocument aliases the shared contract so callers can stay within this package.
type RawDocument = interfaces.RawDocument

// Option configures repositories at construction time.
type Option func(*options)

type options struct {
	logger interfaces.Logger
}

// WithLogger routes repository diagnostics to logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// FSRepository reads documents from one sub-directory per kind below a root
// directory. Nothing is cached; every call observes the current files.
type FSRepository struct {
	fsys   fs.FS
	logger interfaces.Logger
}

var _ interfaces.ContentRepository = (*FSRepository)(nil)

// NewFSRepository builds a repository rooted at dir on the local disk.
func NewFSRepository(dir string, opts ...Option) *FSRepository {
	return NewFSRepositoryFromFS(os.DirFS(dir), opts...)
}

// NewFSRepositoryFromFS builds a repository over an arbitrary filesystem, which
// lets tests and embedded builds supply fstest.MapFS or embed.FS values.
func NewFSRepositoryFromFS(fsys fs.FS, opts ...Option) *FSRepository {
	cfg := options{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FSRepository{
		fsys:   fsys,
		logger: cfg.logger,
	}
}

// List returns the document file names of kind sorted by name.
func (r *FSRepository) List(ctx context.Context, kind string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validSegment(kind) {
		return []string{}, nil
	}

	entries, err := fs.ReadDir(r.fsys, kind)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("storage.list.missing_collection", "kind", kind)
			return []string{}, nil
		}
		return nil, readFailure(err, kind, "")
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if MatchDocument(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	r.logger.Debug("storage.list", "kind", kind, "count", len(names))
	return names, nil
}

// Read returns the source of kind/slug, preferring .mdx over .md.
func (r *FSRepository) Read(ctx context.Context, kind, slug string) (*RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validSegment(kind) || !validSegment(slug) {
		return nil, NotFound(kind, slug)
	}

	for _, ext := range Extensions {
		name := slug + ext
		source, err := fs.ReadFile(r.fsys, path.Join(kind, name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, readFailure(err, kind, name)
		}
		return &RawDocument{
			Kind:     kind,
			Slug:     slug,
			FileName: name,
			Source:   source,
		}, nil
	}
	return nil, NotFound(kind, slug)
}

// MatchDocument reports whether a file name is a content document.
func MatchDocument(name string) bool {
	ok, err := doublestar.Match(DocumentPattern, name)
	return err == nil && ok
}

// validSegment rejects values that would escape the kind directory.
func validSegment(value string) bool {
	if value == "" || value == "." || strings.Contains(value, "..") {
		return false
	}
	if strings.ContainsAny(value, `/\`) {
		return false
	}
	return fs.ValidPath(value)
}
