package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/convset/internal/model"
	"github.com/ppiankov/convset/internal/split"
)

// Output file names
const (
	DatasetInfoFile    = "dataset_info.json"
	ConversionInfoFile = "conversion_info.json"
)

// Renderer writes dataset artifacts as indented JSON
type Renderer struct {
	indent string
}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{indent: "  "}
}

// RenderJSON writes v to path, creating parent directories as needed
func (r *Renderer) RenderJSON(v any, path string) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", r.indent)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// RenderSplits writes train.json, validation.json, test.json and the
// metadata document into dir. It returns the written paths in order.
func (r *Renderer) RenderSplits(result *split.Result, metadata model.DatasetMetadata, dir string) ([]string, error) {
	var written []string
	for _, name := range model.SplitNames {
		convs := result.Named(name)
		if convs == nil {
			convs = []model.Conversation{}
		}
		path := filepath.Join(dir, name+".json")
		if err := r.RenderJSON(convs, path); err != nil {
			return written, fmt.Errorf("write %s split: %w", name, err)
		}
		written = append(written, path)
	}

	path := filepath.Join(dir, DatasetInfoFile)
	if err := r.RenderJSON(metadata, path); err != nil {
		return written, fmt.Errorf("write metadata: %w", err)
	}
	return append(written, path), nil
}
