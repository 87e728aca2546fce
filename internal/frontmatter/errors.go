package frontmatter

import "errors"

// ErrUnknownKind is returned when a kind outside the supported set is used.
var ErrUnknownKind = errors.New("frontmatter: unknown content kind")
