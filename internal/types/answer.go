package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Answer holds a single question response. Exactly one of the fields is
// meaningful, depending on the question type.
type Answer struct {
	Text   string            `json:"text,omitempty"`
	Values []string          `json:"values,omitempty"`
	Rating *int              `json:"rating,omitempty"`
	Matrix map[string]string `json:"matrix,omitempty"`
}

// Responses maps question IDs to answers
type Responses map[string]Answer

// TextAnswer builds a free-text or single-choice answer.
func TextAnswer(s string) Answer { return Answer{Text: s} }

// ChoiceAnswer builds a multi-choice answer.
func ChoiceAnswer(values ...string) Answer { return Answer{Values: values} }

// RatingAnswer builds a rating answer.
func RatingAnswer(n int) Answer { return Answer{Rating: &n} }

// MatrixAnswer builds a matrix answer.
func MatrixAnswer(m map[string]string) Answer { return Answer{Matrix: m} }

// IsEmpty reports whether the answer carries no usable value.
func (a Answer) IsEmpty() bool {
	if strings.TrimSpace(a.Text) != "" || a.Rating != nil {
		return false
	}
	for _, v := range a.Values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return len(a.Matrix) == 0
}

// First returns the single value of the answer: the text if set, otherwise
// the first multi-choice value, otherwise the rating as text.
func (a Answer) First() string {
	if l := a.List(); len(l) > 0 {
		return l[0]
	}
	return ""
}

// List returns all values of the answer. A text or rating answer is a
// one-element list.
func (a Answer) List() []string {
	out := make([]string, 0, len(a.Values)+1)
	if t := strings.TrimSpace(a.Text); t != "" {
		out = append(out, t)
	}
	for _, v := range a.Values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 && a.Rating != nil {
		out = append(out, strconv.Itoa(*a.Rating))
	}
	return out
}

// UnmarshalJSON accepts the compact forms clients send: a string, an array
// of strings, a number, an object of strings, or the explicit struct form.
func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Answer{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Answer{Text: s}
		return nil
	case '[':
		var values []string
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("answer array must contain strings: %w", err)
		}
		*a = Answer{Values: values}
		return nil
	case '{':
		// Explicit form first; fall back to a plain matrix object.
		type explicit Answer
		var e explicit
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&e); err == nil {
			*a = Answer(e)
			return nil
		}
		var m map[string]string
		if err := json.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("answer object must map strings to strings: %w", err)
		}
		*a = Answer{Matrix: m}
		return nil
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("unsupported answer value %s", string(data))
		}
		if f != math.Trunc(f) {
			return fmt.Errorf("rating must be a whole number, got %v", f)
		}
		n := int(f)
		*a = Answer{Rating: &n}
		return nil
	}
}

// MarshalJSON writes the compact form matching UnmarshalJSON.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch {
	case a.Rating != nil:
		return json.Marshal(*a.Rating)
	case len(a.Matrix) > 0:
		return json.Marshal(a.Matrix)
	case len(a.Values) > 0:
		return json.Marshal(a.Values)
	default:
		return json.Marshal(a.Text)
	}
}

// SortedKeys returns the response question IDs in lexical order.
func (r Responses) SortedKeys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the answer.
func (a Answer) Clone() Answer {
	c := Answer{Text: a.Text}
	if a.Values != nil {
		c.Values = append([]string(nil), a.Values...)
	}
	if a.Rating != nil {
		n := *a.Rating
		c.Rating = &n
	}
	if a.Matrix != nil {
		c.Matrix = make(map[string]string, len(a.Matrix))
		for k, v := range a.Matrix {
			c.Matrix[k] = v
		}
	}
	return c
}

// Clone returns a deep copy of the responses.
func (r Responses) Clone() Responses {
	out := make(Responses, len(r))
	for k, v := range r {
		out[k] = v.Clone()
	}
	return out
}
