package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/pagesim/sim"
)

func ptr[T any](v T) *T { return &v }

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRunConfig_ValidYAML(t *testing.T) {
	path := writeTempYAML(t, `
policy: LRU
frames: 4
references: [1, 2, 3, 4, 1, 2, 5]
outputs: [trace.csv, run.json.lz4]
`)
	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "LRU", cfg.PolicyName())
	assert.Equal(t, 4, cfg.FrameCount())
	assert.Equal(t, []string{"trace.csv", "run.json.lz4"}, cfg.Outputs)

	refs, err := cfg.ResolveReferences()
	require.NoError(t, err)
	assert.Equal(t, []sim.PageID{1, 2, 3, 4, 1, 2, 5}, refs)
}

func TestLoadRunConfig_UnknownFieldRejected(t *testing.T) {
	path := writeTempYAML(t, "policy: FIFO\nframe: 3\n")
	_, err := LoadRunConfig(path)
	assert.Error(t, err, "typo 'frame' must be rejected by strict parsing")
}

func TestLoadRunConfig_MissingFile(t *testing.T) {
	_, err := LoadRunConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestRunConfig_ReferencesFileRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "refs.txt"), []byte("# refs\n7 0 1\n"), 0o644))
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("policy: Optimal\nframes: 2\nreferences_file: refs.txt\n"), 0o644))

	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	refs, err := cfg.ResolveReferences()
	require.NoError(t, err)
	assert.Equal(t, []sim.PageID{7, 0, 1}, refs)
}

func TestRunConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RunConfig
		wantErr error
	}{
		{"unknown policy", RunConfig{Policy: ptr("clock"), Frames: ptr(3), ReferenceString: "1"}, sim.ErrUnknownPolicy},
		{"missing policy", RunConfig{Frames: ptr(3), ReferenceString: "1"}, sim.ErrUnknownPolicy},
		{"zero frames", RunConfig{Policy: ptr("FIFO"), Frames: ptr(0), ReferenceString: "1"}, sim.ErrInvalidInput},
		{"missing frames", RunConfig{Policy: ptr("FIFO"), ReferenceString: "1"}, sim.ErrInvalidInput},
		{"no references", RunConfig{Policy: ptr("FIFO"), Frames: ptr(3)}, sim.ErrInvalidInput},
		{"two sources", RunConfig{Policy: ptr("FIFO"), Frames: ptr(3), References: []int{1}, ReferenceString: "1"}, sim.ErrInvalidInput},
		{"bad output", RunConfig{Policy: ptr("FIFO"), Frames: ptr(3), ReferenceString: "1", Outputs: []string{"x.txt"}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestApplyRunFlags_KeepsExplicitConfigValues(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{"explicit zero frames", "policy: LRU\nframes: 0\nreferences: [1, 2, 3]\n", sim.ErrInvalidInput},
		{"explicit negative frames", "policy: LRU\nframes: -2\nreferences: [1, 2, 3]\n", sim.ErrInvalidInput},
		{"explicit empty policy", "policy: \"\"\nframes: 3\nreferences: [1, 2, 3]\n", sim.ErrUnknownPolicy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN a config file that sets the key to an invalid zero value
			cfg, err := LoadRunConfig(writeTempYAML(t, tt.yaml))
			require.NoError(t, err)

			// WHEN flags left at their defaults are overlaid
			applyRunFlags(&cobra.Command{}, cfg)

			// THEN the file's value survives and is rejected
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestApplyRunFlags_FillsMissingKeysFromFlags(t *testing.T) {
	// GIVEN a config file without policy or frames
	cfg, err := LoadRunConfig(writeTempYAML(t, "references: [1, 2, 3]\n"))
	require.NoError(t, err)

	// WHEN flags left at their defaults are overlaid
	applyRunFlags(&cobra.Command{}, cfg)

	// THEN the flag values fill the gaps
	require.NoError(t, cfg.Validate())
	assert.Equal(t, policyName, cfg.PolicyName())
	assert.Equal(t, frames, cfg.FrameCount())
}

func TestApplyRunFlags_ChangedFlagOverridesConfig(t *testing.T) {
	saved := frames
	t.Cleanup(func() { frames = saved })

	// GIVEN a config with frames: 0 and an explicit --frames 5
	cfg, err := LoadRunConfig(writeTempYAML(t, "policy: FIFO\nframes: 0\nreferences: [1, 2]\n"))
	require.NoError(t, err)
	c := &cobra.Command{}
	c.Flags().IntVar(&frames, "frames", 3, "")
	require.NoError(t, c.Flags().Set("frames", "5"))

	// WHEN the flags are overlaid
	applyRunFlags(c, cfg)

	// THEN the command line wins
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.FrameCount())
	assert.Equal(t, "FIFO", cfg.PolicyName())
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("PAGESIM_FRAMES", "5")
	t.Setenv("PAGESIM_POLICY", "")
	t.Setenv("PAGESIM_BAD", "five")

	assert.Equal(t, 5, envInt("PAGESIM_FRAMES", 3))
	assert.Equal(t, 3, envInt("PAGESIM_BAD", 3))
	assert.Equal(t, 3, envInt("PAGESIM_UNSET_FOR_TEST", 3))
	assert.Equal(t, "FIFO", envString("PAGESIM_POLICY", "FIFO"))
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PAGESIM_TEST_A=from-file\nPAGESIM_TEST_B=from-file\n"), 0o644))
	t.Setenv("PAGESIM_TEST_A", "from-env")
	t.Setenv("PAGESIM_TEST_B", "")
	require.NoError(t, os.Unsetenv("PAGESIM_TEST_B"))

	loadDotEnv(path, filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "from-env", os.Getenv("PAGESIM_TEST_A"))
	assert.Equal(t, "from-file", os.Getenv("PAGESIM_TEST_B"))
}
