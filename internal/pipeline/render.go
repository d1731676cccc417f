package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ppiankov/stepshape/internal/model"
)

// Renderer writes occurrence records as a JSON array
type Renderer struct {
	stdout io.Writer
}

// NewRenderer creates a renderer. Output path "-" writes to stdout.
func NewRenderer(stdout io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Renderer{stdout: stdout}
}

// Encode writes occurrences to w as an indented JSON array
func (r *Renderer) Encode(w io.Writer, occurrences []model.Occurrence) error {
	if occurrences == nil {
		occurrences = []model.Occurrence{}
	}

	data, err := json.MarshalIndent(occurrences, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal occurrences: %w", err)
	}
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write occurrences: %w", err)
	}
	return nil
}

// RenderJSON writes occurrences to path
func (r *Renderer) RenderJSON(occurrences []model.Occurrence, path string) (err error) {
	if path == "-" {
		return r.Encode(r.stdout, occurrences)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", closeErr)
		}
	}()

	return r.Encode(f, occurrences)
}
