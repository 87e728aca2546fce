package storage

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeNotFound  = "CONTENT_NOT_FOUND"
	TextCodeReadFault = "CONTENT_READ_FAILED"
)

// ErrNotFound is the root cause of every lookup miss. Use IsNotFound to test
// for it so wrapped and categorised variants match too.
var ErrNotFound = errors.New("storage: document not found")

// NotFound builds the categorised error returned for a missing document.
func NotFound(kind, slug string) error {
	return goerrors.Wrap(ErrNotFound, goerrors.CategoryNotFound, fmt.Sprintf("%s/%s not found", kind, slug)).
		WithTextCode(TextCodeNotFound).
		WithMetadata(map[string]any{
			"kind": kind,
			"slug": slug,
		})
}

// IsNotFound reports whether err describes a missing document.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrNotFound) || goerrors.IsNotFound(err)
}

func readFailure(err error, kind, name string) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("read %s/%s", kind, name)).
		WithTextCode(TextCodeReadFault)
}
