// Package schemas checks JSON documents against the JSON Schemas compiled
// into the binary: provider output before it is trusted, and submission
// results before they are written.
package schemas

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Name identifies an embedded schema.
type Name string

const (
	Recommendation Name = "recommendation"
	Submission     Name = "submission"
)

// FieldError is one violation. Rule is the gojsonschema error type, such
// as "required" or "enum".
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// ValidationError lists every violation of a document, ordered by field.
type ValidationError struct {
	Schema Name
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s schema: %d violation(s)", ve.Schema, len(ve.Errors))
	for _, fe := range ve.Errors {
		fmt.Fprintf(&sb, "; %s: %s", fe.Field, fe.Message)
	}
	return sb.String()
}

// Fields returns the distinct field paths that failed.
func (ve *ValidationError) Fields() []string {
	var out []string
	for _, fe := range ve.Errors {
		if len(out) == 0 || out[len(out)-1] != fe.Field {
			out = append(out, fe.Field)
		}
	}
	return out
}

// LoadError is returned when a schema is unknown or does not compile.
type LoadError struct {
	Schema Name
	Cause  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Schema, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

var (
	compiledMu sync.Mutex
	compiled   = map[Name]*gojsonschema.Schema{}
)

// Source returns the text of an embedded schema.
func Source(name Name) (string, error) {
	data, err := schemaFiles.ReadFile(string(name) + ".schema.json")
	if err != nil {
		return "", &LoadError{Schema: name, Cause: err}
	}
	return string(data), nil
}

func schema(name Name) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[name]; ok {
		return s, nil
	}
	src, err := Source(name)
	if err != nil {
		return nil, err
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		return nil, &LoadError{Schema: name, Cause: err}
	}
	compiled[name] = s
	return s, nil
}

// Validate checks a JSON document against the named schema. Violations are
// reported as a *ValidationError.
func Validate(name Name, document []byte) error {
	return check(name, gojsonschema.NewBytesLoader(document))
}

// ValidateValue checks an in-memory value, marshalled the way encoding/json
// would, against the named schema.
func ValidateValue(name Name, v any) error {
	return check(name, gojsonschema.NewGoLoader(v))
}

func check(name Name, doc gojsonschema.JSONLoader) error {
	s, err := schema(name)
	if err != nil {
		return err
	}
	result, err := s.Validate(doc)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Schema: name, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Rule: desc.Type(), Message: desc.Description()})
	}
	sort.SliceStable(ve.Errors, func(i, j int) bool { return ve.Errors[i].Field < ve.Errors[j].Field })
	return ve
}
