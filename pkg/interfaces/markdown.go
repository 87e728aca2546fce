package interfaces

import "context"

// MarkdownRenderer converts a document body into HTML. Implementations must
// be safe for concurrent use and produce identical output for identical input
// so rendered pages stay byte-stable between builds.
type MarkdownRenderer interface {
	Render(ctx context.Context, body string) (*RenderResult, error)
}

// RenderResult carries the HTML produced for one body together with the
// heading outline collected while assigning anchors.
type RenderResult struct {
	HTML     string
	Headings []Heading
}

// Heading describes one heading of a rendered document. ID matches the id
// attribute written into the HTML so callers can build a table of contents.
type Heading struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Text  string `json:"text"`
}

// RenderOptions customises the renderer. Option names stay readable for
// configuration unmarshalling and CLI flags.
type RenderOptions struct {
	// LightTheme and DarkTheme name chroma styles used by the code stylesheet.
	LightTheme string
	DarkTheme  string
	// HardWraps renders soft line breaks as <br>.
	HardWraps bool
}
