package cmd

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/atexit"

	"github.com/inference-sim/pagesim/sim"
)

func TestPrintSummary_ReportsTotalFaults(t *testing.T) {
	// GIVEN the LRU run of 7 0 1 2 0 3 4 2 3 0 3 2 with three frames
	refs := []sim.PageID{7, 0, 1, 2, 0, 3, 4, 2, 3, 0, 3, 2}
	res, err := sim.Run(sim.PolicyLRU, refs, 3)
	require.NoError(t, err)

	// WHEN the summary is printed
	var buf bytes.Buffer
	PrintSummary(&buf, res)

	// THEN it names the policy and the fault count
	out := buf.String()
	assert.Contains(t, out, "Simulation Summary")
	assert.Contains(t, out, "Policy               : LRU")
	assert.Contains(t, out, "Total Page Faults    : 8")
	assert.Contains(t, out, "References           : 12 (6 distinct)")
}

func TestPrintSteps_OneLinePerReference(t *testing.T) {
	res, err := sim.Run(sim.PolicyFIFO, []sim.PageID{1, 2, 1, 3}, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSteps(&buf, res)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Step"))
	assert.Contains(t, lines[3], "hit")
	assert.Contains(t, lines[4], "FAULT")
	assert.True(t, strings.HasSuffix(lines[4], "2  3"), "got %q", lines[4])
}

func TestPoliciesCommand_ListsAllPolicies(t *testing.T) {
	var buf bytes.Buffer
	policiesCmd.SetOut(&buf)
	policiesCmd.Run(policiesCmd, nil)

	assert.Equal(t, "FIFO\nLRU\nOptimal\n", buf.String())
}

func TestRunCommand_WritesExports(t *testing.T) {
	// GIVEN a run with a CSV export
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "trace.csv")
	rootCmd.SetArgs([]string{
		"run", "--policy", "optimal", "--frames", "3",
		"--refs", "7 0 1 2 0 3 4 2 3 0 3 2", "--quiet", "--out", csvPath,
	})

	// Capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	// WHEN the command runs
	err := rootCmd.Execute()

	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)

	// THEN the summary is on stdout and the export has one row per reference
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Total Page Faults    : 7")
	assert.NotContains(t, buf.String(), "Memory Frames", "--quiet hides the step table")

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 13)
	assert.Equal(t, []string{"12", "2 0 3"}, rows[12])
}

func TestFatalLogsRunExitHooks(t *testing.T) {
	// logrus.Fatalf must leave through atexit.Exit so exporters get closed.
	want := reflect.ValueOf(atexit.Exit).Pointer()
	got := reflect.ValueOf(logrus.StandardLogger().ExitFunc).Pointer()
	assert.Equal(t, want, got)
}
