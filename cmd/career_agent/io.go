package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/career-compass/internal/types"
)

// readResponses loads an answers file. Both a bare question-to-answer object
// and a {"responses": ..., "path": ...} request body are accepted.
func readResponses(path string) (types.Responses, types.PathID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read answers file %s: %w", path, err)
	}

	var wrapped struct {
		Responses types.Responses `json:"responses"`
		Path      types.PathID    `json:"path"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Responses != nil {
		return wrapped.Responses, wrapped.Path, nil
	}

	var responses types.Responses
	if err := json.Unmarshal(data, &responses); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal answers JSON: %w", err)
	}
	return responses, "", nil
}

// writeJSON writes v as indented JSON to path, or to stdout when path is
// empty, and returns the encoded bytes.
func writeJSON(stdout io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output JSON: %w", err)
	}

	if path == "" {
		_, err = fmt.Fprintln(stdout, string(data))
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
