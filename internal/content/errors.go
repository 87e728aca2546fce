package content

import (
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/storage"
)

// ErrNotFound is returned, wrapped, when a document is absent or hidden by the
// visibility policy.
var ErrNotFound = storage.ErrNotFound

// IsNotFound reports whether err means the requested document is unavailable.
func IsNotFound(err error) bool {
	return storage.IsNotFound(err)
}
