package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
)

var (
	attrID           = []byte("id")
	attrDataLanguage = []byte("data-language")
)

// document is the state threaded through the stages of one render.
type document struct {
	root     ast.Node
	source   []byte
	ids      *idTable
	headings []Heading
}

// stage is one named transformation of the parsed AST. Stages run in slice
// order after parsing and before serialisation.
type stage struct {
	name  string
	apply func(doc *document) error
}

func defaultStages() []stage {
	return []stage{
		{name: "heading-ids", apply: assignHeadingIDs},
		{name: "heading-anchors", apply: appendHeadingAnchors},
		{name: "code-languages", apply: annotateCodeLanguages},
	}
}

// assignHeadingIDs gives every heading a unique id derived from its text and
// records the outline.
func assignHeadingIDs(doc *document) error {
	return ast.Walk(doc.root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := node.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		text := strings.TrimSpace(string(heading.Text(doc.source)))
		id := doc.ids.Generate(text)
		heading.SetAttribute(attrID, []byte(id))
		doc.headings = append(doc.headings, Heading{
			Level: heading.Level,
			ID:    id,
			Text:  text,
		})
		return ast.WalkSkipChildren, nil
	})
}

// appendHeadingAnchors adds a self-link as the last child of every heading
// that carries an id.
func appendHeadingAnchors(doc *document) error {
	var headings []*ast.Heading
	err := ast.Walk(doc.root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := node.(*ast.Heading); ok {
			headings = append(headings, heading)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return err
	}

	for _, heading := range headings {
		value, ok := heading.Attribute(attrID)
		if !ok {
			continue
		}
		id, ok := value.([]byte)
		if !ok || len(id) == 0 {
			continue
		}
		heading.AppendChild(heading, &HeadingAnchor{ID: id})
	}
	return nil
}

// annotateCodeLanguages records the language of every fenced code block,
// using DefaultCodeLanguage for untagged blocks.
func annotateCodeLanguages(doc *document) error {
	return ast.Walk(doc.root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		lang := block.Language(doc.source)
		if len(lang) == 0 {
			lang = []byte(DefaultCodeLanguage)
		}
		block.SetAttribute(attrDataLanguage, append([]byte(nil), lang...))
		return ast.WalkSkipChildren, nil
	})
}
