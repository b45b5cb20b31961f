package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/inference-sim/pagesim/sim"
)

// PrintSteps writes the per-step table: step, referenced page, fault/hit,
// evicted page and resident frames.
func PrintSteps(w io.Writer, res *sim.Result) {
	fmt.Fprintf(w, "%-6s %-6s %-6s %-8s %s\n", "Step", "Page", "Result", "Evicted", "Memory Frames")
	for _, s := range res.Steps() {
		outcome := "hit"
		if s.Fault {
			outcome = "FAULT"
		}
		evicted := "-"
		if s.Evicted != nil {
			evicted = strconv.Itoa(*s.Evicted)
		}
		fmt.Fprintf(w, "%-6d %-6d %-6s %-8s %s\n", s.Index, s.Page, outcome, evicted, s.FramesString("  "))
	}
}

// PrintSummary writes the aggregated metrics of a run.
func PrintSummary(w io.Writer, res *sim.Result) {
	s := res.Summary()
	fmt.Fprintln(w, "=== Simulation Summary ===")
	fmt.Fprintf(w, "Policy               : %s\n", res.Policy)
	fmt.Fprintf(w, "Frames               : %d\n", res.Frames)
	fmt.Fprintf(w, "References           : %d (%d distinct)\n", s.TotalSteps, s.DistinctPages)
	fmt.Fprintf(w, "Total Page Faults    : %d\n", res.Faults)
	fmt.Fprintf(w, "Hits                 : %d\n", s.Hits)
	fmt.Fprintf(w, "Evictions            : %d\n", s.Evictions)
	fmt.Fprintf(w, "Fault Ratio          : %.2f%%\n", 100*s.FaultRatio)
}
