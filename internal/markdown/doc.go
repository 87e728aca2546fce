// Package markdown renders document bodies to HTML with goldmark.
//
// Rendering runs as a fixed chain of named stages over the goldmark AST:
// parsing (GFM plus math spans), heading ids, heading self-links, code block
// languages and finally HTML serialisation, where chroma highlights code and
// goldmark-mathjax emits math as \( \) and \[ \] delimited spans for the
// client side typesetter.
package markdown
