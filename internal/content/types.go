package content

import (
	"fmt"
	"time"

	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/frontmatter"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/pkg/interfaces"
)

// Entry is a fully parsed document. Entries are built fresh on every read and
// never mutated afterwards.
type Entry struct {
	Kind     frontmatter.Kind
	Slug     string
	Title    string
	Date     string
	Summary  string
	Draft    bool
	Tags     []string
	Stack    []string
	LiveURL  *string
	RepoURL  *string
	Body     string
	FileName string
}

// Summary is the listing view of an entry: everything but the body, plus the
// permalink when one is configured.
type Summary struct {
	Kind    frontmatter.Kind `json:"kind"`
	Slug    string           `json:"slug"`
	Title   string           `json:"title"`
	Date    string           `json:"date"`
	Summary string           `json:"summary"`
	Draft   bool             `json:"draft"`
	Tags    []string         `json:"tags,omitempty"`
	Stack   []string         `json:"stack,omitempty"`
	LiveURL *string          `json:"liveUrl,omitempty"`
	RepoURL *string          `json:"repoUrl,omitempty"`
	URL     string           `json:"url,omitempty"`

	// FileName is the source file the entry was read from.
	FileName string `json:"-"`
}

// RenderedDocument is the detail view of an entry.
type RenderedDocument struct {
	Summary
	HTML     string               `json:"html"`
	Headings []interfaces.Heading `json:"headings"`
}

// SkippedDocument records a file left out of a listing because its
// frontmatter failed validation.
type SkippedDocument struct {
	FileName string `json:"file"`
	Err      error  `json:"-"`
}

// ListReport is the outcome of scanning one collection.
type ListReport struct {
	Kind    frontmatter.Kind
	Entries []Summary
	Skipped []SkippedDocument
	// Hidden counts valid drafts left out by the visibility policy.
	Hidden int
}

// Summarize drops the body of e.
func (e *Entry) Summarize() Summary {
	return Summary{
		Kind:    e.Kind,
		Slug:    e.Slug,
		Title:   e.Title,
		Date:    e.Date,
		Summary: e.Summary,
		Draft:   e.Draft,
		Tags:    e.Tags,
		Stack:   e.Stack,
		LiveURL: e.LiveURL,
		RepoURL: e.RepoURL,

		FileName: e.FileName,
	}
}

// FormatDate renders a document date in the zh-CN long form used on listing
// pages, e.g. 2024年1月2日. Dates that do not parse are returned unchanged.
func FormatDate(date string) string {
	parsed, ok := parseDate(date)
	if !ok {
		return date
	}
	return fmt.Sprintf("%d年%d月%d日", parsed.Year(), int(parsed.Month()), parsed.Day())
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
