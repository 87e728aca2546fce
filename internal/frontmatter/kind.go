package frontmatter

import (
	"fmt"
	"strings"
)

// Kind identifies a content collection. Each kind maps to one directory under
// the content root and carries its own frontmatter schema.
type Kind string

const (
	KindNotes Kind = "notes"
	KindDemos Kind = "demos"
)

// Kinds returns every supported kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindNotes, KindDemos}
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindNotes, KindDemos:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind resolves user input (CLI flags, tool arguments) into a Kind.
func ParseKind(value string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(value)))
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, value)
	}
	return kind, nil
}
