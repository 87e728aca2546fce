package markdown

import (
	mathjax "github.com/litao91/goldmark-mathjax"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// dollarGuardPriority runs ahead of the mathjax inline parser (501).
const dollarGuardPriority = 500

// dollarGuard keeps single dollars that cannot open inline math as text. A
// single dollar opens math only when it is followed by a non-space and the
// first lone dollar after it on the same line is preceded by a non-space and
// not followed by a digit, so "$5 and $10" stays plain. Anything else is left
// to the mathjax parser.
type dollarGuard struct{}

func (g *dollarGuard) Trigger() []byte {
	return []byte{'$'}
}

func (g *dollarGuard) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, segment := block.PeekLine()
	if len(line) == 0 || line[0] != '$' || (len(line) > 1 && line[1] == '$') {
		return nil
	}
	if opensInlineMath(line) {
		return nil
	}
	block.Advance(1)
	return ast.NewTextSegment(segment.WithStop(segment.Start + 1))
}

func opensInlineMath(line []byte) bool {
	if len(line) < 2 || util.IsSpace(line[1]) {
		return false
	}
	for i := 1; i < len(line); i++ {
		if line[i] != '$' {
			continue
		}
		j := i
		for j < len(line) && line[j] == '$' {
			j++
		}
		if j-i != 1 {
			i = j - 1
			continue
		}
		if util.IsSpace(line[i-1]) {
			return false
		}
		return j >= len(line) || line[j] < '0' || line[j] > '9'
	}
	return false
}

type mathExtension struct{}

// Math adds $...$ inline math and $$ fenced blocks rendered as MathJax
// delimiters, with the dollar rules of dollarGuard applied first.
var Math goldmark.Extender = &mathExtension{}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&dollarGuard{}, dollarGuardPriority),
	))
	mathjax.MathJax.Extend(m)
}
