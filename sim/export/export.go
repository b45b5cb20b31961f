// Package export writes simulation results to files: CSV step tables, JSON and
// YAML documents, and SQLite databases. JSON, YAML and CSV outputs may be
// compressed with LZ4 or Snappy, chosen by file suffix.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/xid"

	"github.com/inference-sim/pagesim/sim"
)

// NewRunID returns a fresh, sortable identifier for labeling an exported run.
func NewRunID() string {
	return xid.New().String()
}

// Format is an export file format.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// validFormats maps accepted format strings.
var validFormats = map[Format]bool{
	FormatCSV:    true,
	FormatJSON:   true,
	FormatYAML:   true,
	FormatSQLite: true,
}

// IsValidFormat returns true if the given string is a recognized export format.
func IsValidFormat(format string) bool {
	return validFormats[Format(format)]
}

var extFormats = map[string]Format{
	".csv":     FormatCSV,
	".json":    FormatJSON,
	".yaml":    FormatYAML,
	".yml":     FormatYAML,
	".db":      FormatSQLite,
	".sqlite":  FormatSQLite,
	".sqlite3": FormatSQLite,
}

// ForPath infers the format and compression from a file name such as
// "trace.csv", "trace.json.lz4" or "trace.yaml.sz".
func ForPath(path string) (Format, Compression, error) {
	name := strings.ToLower(filepath.Base(path))
	comp := CompressionNone
	switch ext := filepath.Ext(name); ext {
	case ".lz4":
		comp = CompressionLZ4
		name = strings.TrimSuffix(name, ext)
	case ".sz", ".snappy":
		comp = CompressionSnappy
		name = strings.TrimSuffix(name, ext)
	}
	format, ok := extFormats[filepath.Ext(name)]
	if !ok {
		return "", comp, fmt.Errorf("cannot infer export format from %q; use .csv, .json, .yaml or .db", path)
	}
	if format == FormatSQLite && comp != CompressionNone {
		return "", comp, fmt.Errorf("sqlite exports cannot be compressed: %q", path)
	}
	return format, comp, nil
}

// Write encodes res to w in the given stream format. SQLite is file-only; use WriteFile.
func Write(w io.Writer, format Format, runID string, res *sim.Result) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, res)
	case FormatJSON:
		return WriteJSON(w, runID, res)
	case FormatYAML:
		return WriteYAML(w, runID, res)
	case FormatSQLite:
		return fmt.Errorf("sqlite export needs a file path")
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// WriteFile writes res to path, inferring format and compression from the name.
// Existing files are overwritten. runID labels the run in JSON, YAML and SQLite output.
func WriteFile(path, runID string, res *sim.Result) error {
	format, comp, err := ForPath(path)
	if err != nil {
		return err
	}
	if format == FormatSQLite {
		rec, err := NewSQLiteRecorder(path)
		if err != nil {
			return err
		}
		if err := rec.Record(runID, res); err != nil {
			_ = rec.Close()
			return err
		}
		return rec.Close()
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	w, err := compressWriter(f, comp)
	if err != nil {
		_ = f.Close()
		return err
	}
	if err := Write(w, format, runID, res); err != nil {
		_ = w.Close()
		_ = f.Close()
		return fmt.Errorf("writing %s export: %w", format, err)
	}
	if err := w.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flushing %s export: %w", comp, err)
	}
	return f.Close()
}
