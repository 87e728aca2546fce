package frontmatter

import (
	"fmt"
	"net/url"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

// TextCodeInvalid tags every frontmatter validation failure.
const TextCodeInvalid = "FRONTMATTER_INVALID"

var (
	errNotText = validation.NewError("frontmatter.not_text", "must be a string")
	errNotURL  = validation.NewError("frontmatter.not_absolute_url", "must be an absolute URL")
)

// rawFields holds the values whose type is checked before coercion. Tags,
// stack, date and draft always coerce and never fail.
type rawFields struct {
	Title   any `json:"title"`
	Summary any `json:"summary"`
	LiveURL any `json:"liveUrl"`
	RepoURL any `json:"repoUrl"`
}

// Validate coerces and checks the metadata of one document against the schema
// of its kind. fileName only feeds the error message; failures are go-errors
// validation errors listing the offending fields.
func Validate(kind Kind, fileName string, raw map[string]any) (Frontmatter, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	fields := rawFields{
		Title:   raw["title"],
		Summary: raw["summary"],
		LiveURL: raw["liveUrl"],
		RepoURL: raw["repoUrl"],
	}
	isDemo := kind == KindDemos

	err := validation.ValidateStruct(&fields,
		validation.Field(&fields.Title, validation.By(textValue)),
		validation.Field(&fields.Summary, validation.By(textValue)),
		validation.Field(&fields.LiveURL, validation.When(isDemo, validation.By(textValue), validation.By(absoluteURL))),
		validation.Field(&fields.RepoURL, validation.When(isDemo, validation.By(textValue), validation.By(absoluteURL))),
	)
	if err != nil {
		return nil, invalidError(kind, fileName, err)
	}

	summary, _ := optionalText(fields.Summary)
	common := Common{
		Title:   optionalTextPtr(fields.Title),
		Date:    CoerceDate(raw["date"]),
		Summary: summary,
		Draft:   CoerceDraft(raw["draft"]),
	}

	if isDemo {
		return Demo{
			Common:  common,
			Stack:   CoerceList(raw["stack"]),
			LiveURL: optionalTextPtr(fields.LiveURL),
			RepoURL: optionalTextPtr(fields.RepoURL),
		}, nil
	}
	return Note{
		Common: common,
		Tags:   CoerceList(raw["tags"]),
	}, nil
}

// IsInvalid reports whether err is a frontmatter validation failure.
func IsInvalid(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.Category == goerrors.CategoryValidation && richErr.TextCode == TextCodeInvalid
}

func textValue(value any) error {
	if value == nil {
		return nil
	}
	if _, ok := value.(string); !ok {
		return errNotText
	}
	return nil
}

func absoluteURL(value any) error {
	text, ok := optionalText(value)
	if !ok {
		return nil
	}
	parsed, err := url.Parse(text)
	if err != nil || parsed.Scheme == "" {
		return errNotURL
	}
	if parsed.Host == "" && parsed.Opaque == "" {
		return errNotURL
	}
	return nil
}

func invalidError(kind Kind, fileName string, err error) error {
	message := fmt.Sprintf("invalid frontmatter in %s/%s", kind, fileName)
	richErr := goerrors.FromOzzoValidation(err, message)
	sort.Slice(richErr.ValidationErrors, func(i, j int) bool {
		return richErr.ValidationErrors[i].Field < richErr.ValidationErrors[j].Field
	})
	return richErr.
		WithTextCode(TextCodeInvalid).
		WithMetadata(map[string]any{
			"kind": kind.String(),
			"file": fileName,
		})
}
