// Package trace holds the step records produced by a page-replacement run.
// This package has no dependencies on sim/; it stores pure data types.
package trace

import (
	"strconv"
	"strings"
)

// Step is the resident set right after one reference was processed.
type Step struct {
	Index   int   `json:"step" yaml:"step"` // 1-based position in the reference sequence
	Page    int   `json:"page" yaml:"page"` // page referenced at this step
	Fault   bool  `json:"fault" yaml:"fault"`
	Evicted *int  `json:"evicted,omitempty" yaml:"evicted,omitempty"` // nil unless a page was evicted
	Frames  []int `json:"frames" yaml:"frames"`                       // resident pages in engine order
}

// FramesString joins the resident pages with sep.
func (s Step) FramesString(sep string) string {
	parts := make([]string, len(s.Frames))
	for i, p := range s.Frames {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, sep)
}
