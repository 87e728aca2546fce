package content

import "slices"

// Policy decides which entries a build may show and in which order.
type Policy struct {
	// Production hides drafts.
	Production bool
}

// IsVisible reports whether an entry with the given draft flag is shown.
func (p Policy) IsVisible(draft bool) bool {
	return !draft || !p.Production
}

// Apply filters entries by visibility and sorts the survivors by recency. The
// input slice is left untouched.
func (p Policy) Apply(entries []*Entry) []*Entry {
	visible := make([]*Entry, 0, len(entries))
	for _, entry := range entries {
		if entry != nil && p.IsVisible(entry.Draft) {
			visible = append(visible, entry)
		}
	}
	SortByRecency(visible, func(e *Entry) string { return e.Date })
	return visible
}

// SortByRecency orders items newest first, in place and stably. Dates that
// fail to parse sort after every parseable date and keep their input order.
func SortByRecency[T any](items []T, dateOf func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		left, leftOK := parseDate(dateOf(a))
		right, rightOK := parseDate(dateOf(b))
		switch {
		case leftOK && rightOK:
			return right.Compare(left)
		case leftOK:
			return -1
		case rightOK:
			return 1
		default:
			return 0
		}
	})
}
