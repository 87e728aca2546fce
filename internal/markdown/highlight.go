package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/util"
)

const (
	DefaultLightTheme   = "github"
	DefaultDarkTheme    = "github-dark"
	DefaultCodeLanguage = "text"
)

// Dark rules apply under an explicit data-theme="dark" on the root element, or
// under the system preference when no explicit light theme is set.
const (
	darkExplicitScope = `[data-theme="dark"]`
	darkSystemScope   = `:root:not([data-theme="light"])`
)

var themeAliases = map[string]string{
	"github-light": "github",
}

// resolveStyle looks up a chroma style by name, accepting a few aliases.
func resolveStyle(name string) (*chroma.Style, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := themeAliases[key]; ok {
		key = alias
	}
	style, ok := styles.Registry[key]
	if !ok {
		return nil, fmt.Errorf("markdown: unknown code theme %q", name)
	}
	return style, nil
}

func highlightingOptions(lightTheme string) []highlighting.Option {
	return []highlighting.Option{
		highlighting.WithStyle(lightTheme),
		highlighting.WithGuessLanguage(false),
		highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
		highlighting.WithWrapperRenderer(codeWrapper),
	}
}

// codeWrapper surrounds every fenced block with a container naming its
// language. Blocks chroma cannot highlight still get the themed pre element so
// they keep the code background.
func codeWrapper(w util.BufWriter, ctx highlighting.CodeBlockContext, entering bool) {
	if entering {
		_, _ = w.WriteString(`<div class="code-block" data-language="`)
		_, _ = w.Write(util.EscapeHTML(codeLanguage(ctx)))
		_, _ = w.WriteString(`">`)
		if !ctx.Highlighted() {
			_, _ = w.WriteString(`<pre class="chroma"><code>`)
		}
		return
	}
	if !ctx.Highlighted() {
		_, _ = w.WriteString(`</code></pre>`)
	}
	_, _ = w.WriteString("</div>\n")
}

func codeLanguage(ctx highlighting.CodeBlockContext) []byte {
	if attrs := ctx.Attributes(); attrs != nil {
		if value, ok := attrs.Get(attrDataLanguage); ok {
			if lang, ok := value.([]byte); ok && len(lang) > 0 {
				return lang
			}
		}
	}
	if lang, ok := ctx.Language(); ok && len(lang) > 0 {
		return lang
	}
	return []byte(DefaultCodeLanguage)
}

// stylesheet renders the chroma class rules for the light theme followed by
// the dark theme scoped to the dark selectors.
func stylesheet(lightTheme, darkTheme string) (string, error) {
	light, err := resolveStyle(lightTheme)
	if err != nil {
		return "", err
	}
	dark, err := resolveStyle(darkTheme)
	if err != nil {
		return "", err
	}

	formatter := chromahtml.New(chromahtml.WithClasses(true))

	var lightCSS, darkCSS bytes.Buffer
	if err := formatter.WriteCSS(&lightCSS, light); err != nil {
		return "", fmt.Errorf("markdown: write %s stylesheet: %w", light.Name, err)
	}
	if err := formatter.WriteCSS(&darkCSS, dark); err != nil {
		return "", fmt.Errorf("markdown: write %s stylesheet: %w", dark.Name, err)
	}

	var out strings.Builder
	fmt.Fprintf(&out, "/* theme: %s */\n", light.Name)
	out.Write(lightCSS.Bytes())
	fmt.Fprintf(&out, "/* theme: %s */\n", dark.Name)
	writeScoped(&out, darkCSS.String(), darkExplicitScope, "")
	out.WriteString("@media (prefers-color-scheme: dark) {\n")
	writeScoped(&out, darkCSS.String(), darkSystemScope, "  ")
	out.WriteString("}\n")
	return out.String(), nil
}

// writeScoped prefixes the selector of every "/* Token */ selector { ... }"
// line written by chroma with scope.
func writeScoped(out *strings.Builder, css, scope, indent string) {
	for _, line := range strings.Split(strings.TrimRight(css, "\n"), "\n") {
		if line == "" {
			continue
		}
		comment, rule := "", line
		if strings.HasPrefix(line, "/*") {
			if end := strings.Index(line, "*/"); end >= 0 {
				comment = line[:end+2] + " "
				rule = strings.TrimSpace(line[end+2:])
			}
		}
		out.WriteString(indent)
		out.WriteString(comment)
		out.WriteString(scope)
		out.WriteString(" ")
		out.WriteString(rule)
		out.WriteString("\n")
	}
}
