package markdown

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// FallbackHeadingID is used for headings whose text normalises to nothing.
const FallbackHeadingID = "heading"

// AnchorText is the visible content of every heading self-link.
const AnchorText = "#"

// KindHeadingAnchor is the node kind of the self-link appended to headings.
var KindHeadingAnchor = ast.NewNodeKind("HeadingAnchor")

// HeadingAnchor links a heading to itself.
type HeadingAnchor struct {
	ast.BaseInline
	ID []byte
}

// Kind implements ast.Node.
func (n *HeadingAnchor) Kind() ast.NodeKind { return KindHeadingAnchor }

// Text implements ast.Node; anchors never contribute to heading text.
func (n *HeadingAnchor) Text(source []byte) []byte { return nil }

// Dump implements ast.Node.
func (n *HeadingAnchor) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"ID": string(n.ID)}, nil)
}

type anchorHTMLRenderer struct{}

func (r *anchorHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindHeadingAnchor, r.render)
}

func (r *anchorHTMLRenderer) render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*HeadingAnchor)
	_, _ = w.WriteString(`<a class="heading-anchor" aria-hidden="true" tabindex="-1" href="#`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.ID, true)))
	_, _ = w.WriteString(`">`)
	_, _ = w.WriteString(AnchorText)
	_, _ = w.WriteString(`</a>`)
	return ast.WalkSkipChildren, nil
}

// idTable hands out unique heading ids for one document. A fresh table per
// render keeps ids a pure function of the document.
type idTable struct {
	used    map[string]struct{}
	counter map[string]int
}

func newIDTable() *idTable {
	return &idTable{
		used:    map[string]struct{}{},
		counter: map[string]int{},
	}
}

// Generate returns a unique id for heading text. Repeated bases receive -1,
// -2, ... suffixes in document order.
func (t *idTable) Generate(value string) string {
	base := headingSlug(value)
	if base == "" {
		base = FallbackHeadingID
	}
	if _, taken := t.used[base]; !taken {
		t.used[base] = struct{}{}
		return base
	}
	for i := t.counter[base] + 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, taken := t.used[candidate]; taken {
			continue
		}
		t.used[candidate] = struct{}{}
		t.counter[base] = i
		return candidate
	}
}

// headingSlug lowercases value, keeps letters and digits of any script as well
// as '-' and '_', turns whitespace into '-' and drops everything else.
func headingSlug(value string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(value) {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), unicode.Is(unicode.M, r):
			b.WriteRune(unicode.ToLower(r))
		case r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('-')
		}
	}
	return b.String()
}
