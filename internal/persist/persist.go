// Package persist writes and reads the JSON result files.
package persist

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/promptplay/internal/errors"
)

// Default output file names per workflow.
const (
	BrainstormFile = "brainstorm_result.json"
	ScoreFile      = "score_result.json"
	DecomposeFile  = "decomposed_task.json"
	DispatchFile   = "dispatched_task.json"
)

// Marshal encodes v with two-space indentation and without HTML escaping.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON overwrites path with v. Missing parent directories are created.
func WriteJSON(path string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return errors.NewFileWriteError(path, fmt.Errorf("marshal: %w", err))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.NewFileWriteError(path, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewFileWriteError(path, err)
	}
	return nil
}

// ReadJSON decodes the file at path into v.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return errors.NewFileNotFoundError(path)
		}
		return errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("failed to read %s", path), err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return errors.NewFileUnmarshalError(path, "JSON", err)
	}
	return nil
}
