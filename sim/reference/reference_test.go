package reference

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/pagesim/sim"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []sim.PageID
	}{
		{"spaces", "7 0 1 2 0 3", []sim.PageID{7, 0, 1, 2, 0, 3}},
		{"commas", "7,0,1", []sim.PageID{7, 0, 1}},
		{"mixed whitespace", " 1\t2\n3 ,4 ", []sim.PageID{1, 2, 3, 4}},
		{"negative ids", "-1 2", []sim.PageID{-1, 2}},
		{"single", "42", []sim.PageID{42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, input := range []string{"", "   ", ",,", "1 two 3", "1.5"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.ErrorIs(t, err, sim.ErrInvalidInput)
		})
	}
}

func TestParse_ErrorNamesToken(t *testing.T) {
	_, err := Parse("1 2 x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `token 3 ("x")`)
}

func TestRead_SkipsComments(t *testing.T) {
	input := "# reference string\n7 0 1\n\n# second line\n2 0\n"
	got, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []sim.PageID{7, 0, 1, 2, 0}, got)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2 3\n4\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []sim.PageID{1, 2, 3, 4}, got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestFormat_RoundTrip(t *testing.T) {
	refs := []sim.PageID{7, 0, 1, 2}
	assert.Equal(t, "7 0 1 2", Format(refs))

	back, err := Parse(Format(refs))
	require.NoError(t, err)
	assert.Equal(t, refs, back)
}
