package trace

// SimulationTrace collects the per-reference steps of one replacement run.
type SimulationTrace struct {
	Policy string `json:"policy" yaml:"policy"`
	Frames int    `json:"frames" yaml:"frames"`
	Steps  []Step `json:"steps" yaml:"steps"`
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
// expectedSteps pre-sizes the step slice; it may be zero.
func NewSimulationTrace(policy string, frames, expectedSteps int) *SimulationTrace {
	return &SimulationTrace{
		Policy: policy,
		Frames: frames,
		Steps:  make([]Step, 0, expectedSteps),
	}
}

// RecordStep appends a step. Index is assigned from the current length (1-based).
func (st *SimulationTrace) RecordStep(step Step) {
	step.Index = len(st.Steps) + 1
	st.Steps = append(st.Steps, step)
}

// Len returns the number of recorded steps.
func (st *SimulationTrace) Len() int {
	if st == nil {
		return 0
	}
	return len(st.Steps)
}

// Faults counts the steps flagged as faults.
func (st *SimulationTrace) Faults() int {
	if st == nil {
		return 0
	}
	n := 0
	for _, s := range st.Steps {
		if s.Fault {
			n++
		}
	}
	return n
}
