package frontmatter

import (
	"fmt"
	"strings"
	"time"
)

// CoerceDate normalises a raw date value. Timestamps produced by the metadata
// decoder are converted to UTC and formatted as YYYY-MM-DD, except TOML local
// dates and datetimes, which carry no offset and keep their written day.
// Non-empty strings are kept verbatim after trimming, and anything else falls
// back to DefaultDate.
func CoerceDate(value any) string {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return DefaultDate
		}
		if !isLocalTimestamp(v) {
			v = v.UTC()
		}
		return v.Format("2006-01-02")
	case *time.Time:
		if v == nil {
			return DefaultDate
		}
		return CoerceDate(*v)
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return DefaultDate
}

// isLocalTimestamp reports whether t was decoded from a TOML value without an
// offset. The decoder places those in zones named after the TOML type.
func isLocalTimestamp(t time.Time) bool {
	switch name, _ := t.Zone(); name {
	case "date-local", "datetime-local":
		return true
	}
	return false
}

// CoerceList normalises tags and stack values. Lists keep their order with
// every item stringified and trimmed; a string is split on commas. Empty items
// are dropped and the result is never nil.
func CoerceList(value any) []string {
	out := []string{}
	switch v := value.(type) {
	case []string:
		for _, item := range v {
			out = appendTrimmed(out, item)
		}
	case []any:
		for _, item := range v {
			if item == nil {
				continue
			}
			out = appendTrimmed(out, fmt.Sprint(item))
		}
	case string:
		for _, item := range strings.Split(v, ",") {
			out = appendTrimmed(out, item)
		}
	}
	return out
}

// CoerceDraft reports whether a raw draft value marks the document as a
// draft. Only boolean true and the case-insensitive string "true" do.
func CoerceDraft(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}

func appendTrimmed(out []string, item string) []string {
	if trimmed := strings.TrimSpace(item); trimmed != "" {
		return append(out, trimmed)
	}
	return out
}

// optionalText returns the trimmed string value and whether it is non-empty.
// Callers validate the type before relying on the result.
func optionalText(value any) (string, bool) {
	text, ok := value.(string)
	if !ok {
		return "", false
	}
	text = strings.TrimSpace(text)
	return text, text != ""
}

func optionalTextPtr(value any) *string {
	text, ok := optionalText(value)
	if !ok {
		return nil
	}
	return &text
}
