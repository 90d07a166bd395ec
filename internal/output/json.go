package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var Writer io.Writer = os.Stdout

func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	_, err = fmt.Fprintln(Writer, string(data))
	return err
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func JSONError(msg string, details string) {
	_ = JSON(ErrorResponse{Error: msg, Details: details})
}

// WriteArtifact replaces the report artifact at path. The write goes through
// a temp file and rename so a crashed run never leaves a truncated artifact
// behind.
func WriteArtifact(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".fares-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
