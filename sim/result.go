package sim

import "github.com/inference-sim/pagesim/sim/trace"

// Result is the outcome of one Run. It is built once and never mutated by the engine.
type Result struct {
	Policy     Policy                 `json:"policy" yaml:"policy"`
	Frames     int                    `json:"frames" yaml:"frames"`
	References []PageID               `json:"references" yaml:"references"`
	Faults     int                    `json:"faults" yaml:"faults"`
	Trace      *trace.SimulationTrace `json:"trace" yaml:"trace"`
}

// Steps returns the recorded trace steps, one per reference.
func (r *Result) Steps() []trace.Step {
	if r == nil || r.Trace == nil {
		return nil
	}
	return r.Trace.Steps
}

// Summary aggregates the trace.
func (r *Result) Summary() *trace.TraceSummary {
	if r == nil {
		return trace.Summarize(nil)
	}
	return trace.Summarize(r.Trace)
}

// ResidentAt returns the resident pages after the given 1-based step.
func (r *Result) ResidentAt(step int) ([]PageID, bool) {
	steps := r.Steps()
	if step < 1 || step > len(steps) {
		return nil, false
	}
	frames := steps[step-1].Frames
	out := make([]PageID, len(frames))
	for i, p := range frames {
		out[i] = PageID(p)
	}
	return out, true
}
