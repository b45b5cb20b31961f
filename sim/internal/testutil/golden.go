// Package testutil provides shared test infrastructure for the pagesim engine.
// It loads the golden dataset used across sim/ and sim/export/ test packages.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"gopkg.in/yaml.v3"
)

// GoldenDataset represents the structure of testdata/golden.yaml.
type GoldenDataset struct {
	Cases []GoldenCase `yaml:"cases"`
}

// GoldenCase is the expected output of one policy on one reference string.
type GoldenCase struct {
	Name       string  `yaml:"name"`
	Policy     string  `yaml:"policy"`
	Frames     int     `yaml:"frames"`
	References []int   `yaml:"references"`
	Faults     int     `yaml:"faults"`
	Trace      [][]int `yaml:"trace"` // resident pages after each reference
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "golden.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Cases) == 0 {
		t.Fatal("golden dataset has no cases")
	}
	return &dataset
}

// CasesNamed returns the cases with the given name (one per policy).
func (d *GoldenDataset) CasesNamed(name string) []GoldenCase {
	var out []GoldenCase
	for _, c := range d.Cases {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}
