package frontmatter

// DefaultDate is assigned to documents whose date is missing or empty so they
// sort after every dated document.
const DefaultDate = "1970-01-01"

// Common holds the fields shared by every kind after normalisation.
type Common struct {
	// Title is nil when the document does not declare one; callers derive a
	// title from the slug in that case.
	Title   *string
	Date    string
	Summary string
	Draft   bool
}

// Note is the normalised frontmatter of a document in the notes collection.
type Note struct {
	Common
	Tags []string
}

// Demo is the normalised frontmatter of a document in the demos collection.
type Demo struct {
	Common
	Stack   []string
	LiveURL *string
	RepoURL *string
}

// Frontmatter is the closed union of the per-kind schemas. Only Note and Demo
// implement it.
type Frontmatter interface {
	Kind() Kind
	Base() Common
	sealed()
}

var (
	_ Frontmatter = Note{}
	_ Frontmatter = Demo{}
)

// Kind implements Frontmatter.
func (Note) Kind() Kind { return KindNotes }

// Base implements Frontmatter.
func (n Note) Base() Common { return n.Common }

func (Note) sealed() {}

// Kind implements Frontmatter.
func (Demo) Kind() Kind { return KindDemos }

// Base implements Frontmatter.
func (d Demo) Base() Common { return d.Common }

func (Demo) sealed() {}
