package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	adrg "github.com/adrg/frontmatter"
	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/frontmatter"
)

// metadataFormats lists the accepted metadata block delimiters.
var metadataFormats = []*adrg.Format{
	adrg.NewFormat("---", "---", yaml.Unmarshal),
	adrg.NewFormat("+++", "+++", toml.Unmarshal),
	adrg.NewFormat(";;;", ";;;", json.Unmarshal),
}

// Parse turns the raw source of one document into an Entry. fileName, when
// set, decides the slug and names the file in validation errors; slugHint is
// used otherwise.
func Parse(kind frontmatter.Kind, source []byte, slugHint, fileName string) (*Entry, error) {
	var slug string
	if fileName != "" {
		slug = SlugFromFileName(fileName)
	} else {
		slug = SlugFromFileName(slugHint)
		fileName = slug
	}

	raw := map[string]any{}
	body, err := adrg.Parse(bytes.NewReader(source), &raw, metadataFormats...)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, fmt.Sprintf("invalid frontmatter in %s/%s", kind, fileName)).
			WithTextCode(frontmatter.TextCodeInvalid).
			WithMetadata(map[string]any{
				"kind": kind.String(),
				"file": fileName,
			})
	}

	meta, err := frontmatter.Validate(kind, fileName, raw)
	if err != nil {
		return nil, err
	}

	base := meta.Base()
	entry := &Entry{
		Kind:     kind,
		Slug:     slug,
		Date:     base.Date,
		Summary:  base.Summary,
		Draft:    base.Draft,
		Body:     strings.TrimSpace(string(body)),
		FileName: fileName,
	}
	if base.Title != nil {
		entry.Title = *base.Title
	} else {
		entry.Title = TitleFromSlug(slug)
	}

	switch fm := meta.(type) {
	case frontmatter.Note:
		entry.Tags = fm.Tags
	case frontmatter.Demo:
		entry.Stack = fm.Stack
		entry.LiveURL = fm.LiveURL
		entry.RepoURL = fm.RepoURL
	}
	return entry, nil
}

// SlugFromFileName strips a trailing .md or .mdx extension.
func SlugFromFileName(fileName string) string {
	name := path.Base(strings.TrimSpace(fileName))
	if name == "." || name == "/" {
		return ""
	}
	for _, ext := range []string{".mdx", ".md"} {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// TitleFromSlug derives a display title: the slug is split on hyphens, the
// first rune of every part is upper-cased and the parts are joined with
// spaces. The rest of each part is left alone.
func TitleFromSlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		r, size := utf8.DecodeRuneInString(part)
		if size == 0 || r == utf8.RuneError {
			continue
		}
		parts[i] = string(unicode.ToUpper(r)) + part[size:]
	}
	return strings.Join(parts, " ")
}
