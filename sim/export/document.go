package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/pagesim/sim"
	"github.com/inference-sim/pagesim/sim/trace"
)

// Document is the JSON/YAML form of an exported run.
type Document struct {
	RunID   string              `json:"run_id" yaml:"run_id"`
	Result  *sim.Result         `json:"result" yaml:"result"`
	Summary *trace.TraceSummary `json:"summary" yaml:"summary"`
}

func newDocument(runID string, res *sim.Result) Document {
	return Document{RunID: runID, Result: res, Summary: res.Summary()}
}

// WriteJSON writes res and its summary as indented JSON.
func WriteJSON(w io.Writer, runID string, res *sim.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newDocument(runID, res))
}

// WriteYAML writes res and its summary as YAML.
func WriteYAML(w io.Writer, runID string, res *sim.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(runID, res)); err != nil {
		return err
	}
	return enc.Close()
}

// ReadDocumentFile reads a JSON or YAML export (optionally compressed) back.
func ReadDocumentFile(path string) (*Document, error) {
	format, comp, err := ForPath(path)
	if err != nil {
		return nil, err
	}
	if format != FormatJSON && format != FormatYAML {
		return nil, fmt.Errorf("cannot read %s exports as documents", format)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	defer func() { _ = f.Close() }()

	r, err := decompressReader(f, comp)
	if err != nil {
		return nil, err
	}
	var doc Document
	if format == FormatJSON {
		err = json.NewDecoder(r).Decode(&doc)
	} else {
		decoder := yaml.NewDecoder(r)
		decoder.KnownFields(true)
		err = decoder.Decode(&doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s export: %w", format, err)
	}
	return &doc, nil
}
