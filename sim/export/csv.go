package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/inference-sim/pagesim/sim"
)

// CSVHeader is the header row of CSV step exports.
var CSVHeader = []string{"Step", "Memory Frames"}

// WriteCSV writes one row per step: the 1-based step index and the resident
// pages space-joined in engine order.
func WriteCSV(w io.Writer, res *sim.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, step := range res.Steps() {
		if err := cw.Write([]string{strconv.Itoa(step.Index), step.FramesString(" ")}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
