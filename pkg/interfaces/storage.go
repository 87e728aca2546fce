package interfaces

import "context"

// ContentRepository gives read access to the raw source of content documents
// grouped by kind. Implementations hold no state between calls.
type ContentRepository interface {
	// List returns the file names available for kind, sorted by name. A
	// missing collection yields an empty list rather than an error.
	List(ctx context.Context, kind string) ([]string, error)
	// Read returns the source of the document identified by slug. Absent
	// documents surface a not-found error.
	Read(ctx context.Context, kind, slug string) (*RawDocument, error)
}

// RawDocument is the unparsed source of one content file.
type RawDocument struct {
	Kind     string
	Slug     string
	FileName string
	Source   []byte
}
