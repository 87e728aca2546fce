package runtimeconfig

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var schemaSource []byte

// ErrSchemaValidation is the root of every config file shape failure.
var ErrSchemaValidation = errors.New("site config: file does not match schema")

// SchemaIssue is one shape violation, located by JSON pointer.
type SchemaIssue struct {
	Location string
	Message  string
}

// SchemaError lists every shape violation found in a config file.
type SchemaError struct {
	File   string
	Issues []SchemaIssue
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return fmt.Sprintf("%s: %s: %s", ErrSchemaValidation, e.File, strings.Join(parts, "; "))
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaValidation
}

var (
	compiledSchema     *jsonschema.Schema
	compiledSchemaErr  error
	compiledSchemaOnce sync.Once
)

func configSchema() (*jsonschema.Schema, error) {
	compiledSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("config.schema.json", bytes.NewReader(schemaSource)); err != nil {
			compiledSchemaErr = err
			return
		}
		compiledSchema, compiledSchemaErr = compiler.Compile("config.schema.json")
	})
	return compiledSchema, compiledSchemaErr
}

// CheckFile decodes a YAML, TOML or JSON config file and checks its shape
// against the embedded schema. Keys are compared case-insensitively.
func CheckFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("site config: read %s: %w", path, err)
	}
	doc, err := decodeDocument(filepath.Ext(path), raw)
	if err != nil {
		return fmt.Errorf("site config: decode %s: %w", path, err)
	}
	return checkDocument(path, doc)
}

func checkDocument(name string, doc map[string]any) error {
	schema, err := configSchema()
	if err != nil {
		return fmt.Errorf("site config: compile schema: %w", err)
	}

	normalized, err := normalizeDocument(doc)
	if err != nil {
		return err
	}
	if err := schema.Validate(normalized); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &SchemaError{File: name, Issues: collectIssues(validationErr)}
		}
		return &SchemaError{File: name, Issues: []SchemaIssue{{Message: err.Error()}}}
	}
	return nil
}

func decodeDocument(ext string, raw []byte) (map[string]any, error) {
	doc := map[string]any{}
	var err error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &doc)
	case ".toml":
		err = toml.Unmarshal(raw, &doc)
	case ".json":
		err = json.Unmarshal(raw, &doc)
	default:
		return nil, fmt.Errorf("unsupported config extension %q", ext)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// normalizeDocument lower-cases keys the way viper does and round-trips the
// document through JSON so the validator sees plain JSON values.
func normalizeDocument(doc map[string]any) (any, error) {
	encoded, err := json.Marshal(lowerKeys(doc))
	if err != nil {
		return nil, fmt.Errorf("site config: normalise document: %w", err)
	}
	var out any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, fmt.Errorf("site config: normalise document: %w", err)
	}
	return out, nil
}

func lowerKeys(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[strings.ToLower(key)] = lowerKeys(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = lowerKeys(item)
		}
		return out
	default:
		return value
	}
}

func collectIssues(err *jsonschema.ValidationError) []SchemaIssue {
	issues := []SchemaIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, SchemaIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
