package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/pagesim/sim"
	"github.com/inference-sim/pagesim/sim/export"
	"github.com/inference-sim/pagesim/sim/reference"
)

// RunConfig describes one simulation run, loadable from a YAML file:
//
//	policy: LRU
//	frames: 3
//	references: [7, 0, 1, 2, 0, 3]
//	outputs: [trace.csv, run.json.lz4]
//
// Exactly one of references, reference_string and references_file may be set.
type RunConfig struct {
	Policy          *string  `yaml:"policy"` // nil when the key is absent
	Frames          *int     `yaml:"frames"` // nil when the key is absent
	References      []int    `yaml:"references"`
	ReferenceString string   `yaml:"reference_string"`
	ReferencesFile  string   `yaml:"references_file"` // relative paths resolve against the config file
	Outputs         []string `yaml:"outputs"`

	dir string // directory of the file this config came from
}

// LoadRunConfig reads and parses a YAML run configuration file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	cfg.dir = filepath.Dir(path)
	return &cfg, nil
}

// Validate checks the policy name, frame count, reference sources and output paths.
func (c *RunConfig) Validate() error {
	if c.Policy == nil {
		return fmt.Errorf("%w: no policy given", sim.ErrUnknownPolicy)
	}
	if _, err := sim.ParsePolicy(*c.Policy); err != nil {
		return err
	}
	if c.Frames == nil {
		return fmt.Errorf("%w: no frame count given", sim.ErrInvalidInput)
	}
	if *c.Frames < 1 {
		return fmt.Errorf("%w: frames must be >= 1, got %d", sim.ErrInvalidInput, *c.Frames)
	}
	sources := 0
	if len(c.References) > 0 {
		sources++
	}
	if c.ReferenceString != "" {
		sources++
	}
	if c.ReferencesFile != "" {
		sources++
	}
	switch sources {
	case 0:
		return fmt.Errorf("%w: no references given; set references, reference_string or references_file", sim.ErrInvalidInput)
	case 1:
	default:
		return fmt.Errorf("%w: only one of references, reference_string and references_file may be set", sim.ErrInvalidInput)
	}
	for _, out := range c.Outputs {
		if _, _, err := export.ForPath(out); err != nil {
			return err
		}
	}
	return nil
}

// PolicyName returns the configured policy, or "" if none is set.
func (c *RunConfig) PolicyName() string {
	if c.Policy == nil {
		return ""
	}
	return *c.Policy
}

// FrameCount returns the configured frame count, or 0 if none is set.
func (c *RunConfig) FrameCount() int {
	if c.Frames == nil {
		return 0
	}
	return *c.Frames
}

// ResolveReferences returns the reference sequence from whichever source is set.
func (c *RunConfig) ResolveReferences() ([]sim.PageID, error) {
	switch {
	case len(c.References) > 0:
		refs := make([]sim.PageID, len(c.References))
		for i, p := range c.References {
			refs[i] = sim.PageID(p)
		}
		return refs, nil
	case c.ReferenceString != "":
		return reference.Parse(c.ReferenceString)
	case c.ReferencesFile != "":
		path := c.ReferencesFile
		if !filepath.IsAbs(path) && c.dir != "" {
			path = filepath.Join(c.dir, path)
		}
		return reference.Load(path)
	default:
		return nil, fmt.Errorf("%w: no references given", sim.ErrInvalidInput)
	}
}
