// Package prompts holds the counselor prompt templates sent to the
// recommendation provider. Templates live in an embedded JSON file and use
// {{.Name}} placeholders.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// Key names a template in recommendations.json.
type Key string

const (
	CareerRecommendation Key = "career-recommendation"
	CoursePlanReason     Key = "course-plan-reason"
)

//go:embed recommendations.json
var rawTemplates []byte

var (
	loadOnce  sync.Once
	templates map[Key]string
	loadErr   error
)

var placeholderRe = regexp.MustCompile(`\{\{\.([A-Za-z][A-Za-z0-9_]*)\}\}`)

// MissingDataError is returned by Render when data leaves placeholders unfilled.
type MissingDataError struct {
	Key     Key
	Missing []string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("prompt %q is missing values for %s", e.Key, strings.Join(e.Missing, ", "))
}

func load() (map[Key]string, error) {
	loadOnce.Do(func() {
		if err := json.Unmarshal(rawTemplates, &templates); err != nil {
			loadErr = fmt.Errorf("failed to parse prompt templates: %w", err)
		}
	})
	return templates, loadErr
}

// Get returns the raw template for key.
func Get(key Key) (string, error) {
	all, err := load()
	if err != nil {
		return "", err
	}
	tmpl, ok := all[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return tmpl, nil
}

// Keys lists the embedded template keys, sorted.
func Keys() ([]Key, error) {
	all, err := load()
	if err != nil {
		return nil, err
	}
	keys := make([]Key, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// Render fills every placeholder of key from data. Extra data entries are
// ignored; a placeholder without a value is a *MissingDataError.
func Render(key Key, data map[string]string) (string, error) {
	tmpl, err := Get(key)
	if err != nil {
		return "", err
	}
	var missing []string
	for _, name := range Placeholders(tmpl) {
		if _, ok := data[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", &MissingDataError{Key: key, Missing: missing}
	}
	return Format(tmpl, data), nil
}

// Format substitutes {{.Name}} placeholders that have a value in data and
// leaves the rest untouched.
func Format(tmpl string, data map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := data[m[3:len(m)-2]]; ok {
			return v
		}
		return m
	})
}

// Placeholders lists the distinct placeholder names in tmpl, sorted.
func Placeholders(tmpl string) []string {
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		names = append(names, m[1])
	}
	slices.Sort(names)
	return slices.Compact(names)
}
