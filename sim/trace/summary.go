package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalSteps    int     `json:"total_steps" yaml:"total_steps"`
	Faults        int     `json:"faults" yaml:"faults"`
	Hits          int     `json:"hits" yaml:"hits"`
	Evictions     int     `json:"evictions" yaml:"evictions"`
	DistinctPages int     `json:"distinct_pages" yaml:"distinct_pages"`
	PeakResident  int     `json:"peak_resident" yaml:"peak_resident"`
	FaultRatio    float64 `json:"fault_ratio" yaml:"fault_ratio"`
	HitRatio      float64 `json:"hit_ratio" yaml:"hit_ratio"`
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil || len(st.Steps) == 0 {
		return summary
	}

	seen := make(map[int]struct{})
	for _, s := range st.Steps {
		seen[s.Page] = struct{}{}
		if s.Fault {
			summary.Faults++
		} else {
			summary.Hits++
		}
		if s.Evicted != nil {
			summary.Evictions++
		}
		if len(s.Frames) > summary.PeakResident {
			summary.PeakResident = len(s.Frames)
		}
	}

	summary.TotalSteps = len(st.Steps)
	summary.DistinctPages = len(seen)
	summary.FaultRatio = float64(summary.Faults) / float64(summary.TotalSteps)
	summary.HitRatio = float64(summary.Hits) / float64(summary.TotalSteps)
	return summary
}
