// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/pagesim/sim/trace"
)

// run is the per-call state shared by the policy procedures. It is created by
// Run and dropped when Run returns; nothing outlives the call.
type run struct {
	refs     []PageID
	resident *ResidentSet
	trace    *trace.SimulationTrace
	faults   int
	log      *logrus.Entry
}

// Run simulates policy over references with frames resident frames and
// returns the fault count and one trace step per reference.
//
// Errors wrap ErrInvalidInput (empty references, frames < 1) or
// ErrUnknownPolicy. Run does not modify references and keeps no state
// between calls, so concurrent calls are safe and identical inputs always
// produce identical results.
func Run(policy Policy, references []PageID, frames int) (*Result, error) {
	if frames < 1 {
		return nil, fmt.Errorf("%w: frame capacity must be >= 1, got %d", ErrInvalidInput, frames)
	}
	if len(references) == 0 {
		return nil, fmt.Errorf("%w: reference sequence is empty", ErrInvalidInput)
	}
	if !IsValidPolicy(policy) {
		return nil, fmt.Errorf("%w %q; valid policies: [FIFO, LRU, Optimal]", ErrUnknownPolicy, policy)
	}

	refs := make([]PageID, len(references))
	copy(refs, references)

	r := &run{
		refs:     refs,
		resident: newResidentSet(frames, len(refs)),
		trace:    trace.NewSimulationTrace(string(policy), frames, len(refs)),
		log: logrus.WithFields(logrus.Fields{
			"policy": string(policy),
			"frames": frames,
		}),
	}

	switch policy {
	case PolicyFIFO:
		simulateFIFO(r)
	case PolicyLRU:
		simulateLRU(r)
	case PolicyOptimal:
		simulateOptimal(r)
	default:
		panic(fmt.Sprintf("unhandled policy %q", policy))
	}

	r.log.WithFields(logrus.Fields{
		"references": len(refs),
		"faults":     r.faults,
	}).Debug("simulation complete")

	return &Result{
		Policy:     policy,
		Frames:     frames,
		References: refs,
		Faults:     r.faults,
		Trace:      r.trace,
	}, nil
}

// RunNamed parses name with ParsePolicy and calls Run.
func RunNamed(name string, references []PageID, frames int) (*Result, error) {
	policy, err := ParsePolicy(name)
	if err != nil {
		return nil, err
	}
	return Run(policy, references, frames)
}

// hit records a step where page was already resident.
func (r *run) hit(page PageID) {
	r.record(page, false, nil)
}

// fault records a step where page had to be loaded, evicting victim if non-nil.
func (r *run) fault(page PageID, victim *PageID) {
	r.faults++
	if victim != nil {
		r.log.WithFields(logrus.Fields{
			"step":    r.trace.Len() + 1,
			"page":    int(page),
			"evicted": int(*victim),
		}).Trace("evicted page")
	}
	r.record(page, true, victim)
}

func (r *run) record(page PageID, isFault bool, victim *PageID) {
	step := trace.Step{
		Page:   int(page),
		Fault:  isFault,
		Frames: make([]int, 0, r.resident.Size()),
	}
	if victim != nil {
		v := int(*victim)
		step.Evicted = &v
	}
	for _, p := range r.resident.pages {
		step.Frames = append(step.Frames, int(p))
	}
	r.trace.RecordStep(step)
}

// mustInsert inserts page into the resident set. The policies evict before
// inserting, so an error here is a bug in the policy.
func (r *run) mustInsert(page PageID) {
	if err := r.resident.Insert(page); err != nil {
		panic(fmt.Sprintf("policy invariant violated: %v", err))
	}
}
