package sim

import (
	"fmt"
	"strings"
)

// Policy names an eviction policy. The set is closed: FIFO, LRU and Optimal.
type Policy string

const (
	// PolicyFIFO evicts the page that has been resident longest.
	PolicyFIFO Policy = "FIFO"
	// PolicyLRU evicts the page whose last reference is oldest.
	PolicyLRU Policy = "LRU"
	// PolicyOptimal evicts the page whose next reference is farthest away (Belady).
	PolicyOptimal Policy = "Optimal"
)

// ValidPolicies is the set of recognized policies.
// Shared by IsValidPolicy() and Run() to avoid duplication.
var ValidPolicies = map[Policy]bool{
	PolicyFIFO:    true,
	PolicyLRU:     true,
	PolicyOptimal: true,
}

// policyAliases maps lower-cased accepted names to their policy.
var policyAliases = map[string]Policy{
	"fifo":    PolicyFIFO,
	"lru":     PolicyLRU,
	"optimal": PolicyOptimal,
	"opt":     PolicyOptimal,
	"belady":  PolicyOptimal,
}

// Policies returns the recognized policies in display order.
func Policies() []Policy {
	return []Policy{PolicyFIFO, PolicyLRU, PolicyOptimal}
}

// IsValidPolicy returns true if p is one of the three canonical policies.
func IsValidPolicy(p Policy) bool {
	return ValidPolicies[p]
}

// ParsePolicy maps a user-supplied name to a Policy. Matching is case-insensitive.
func ParsePolicy(name string) (Policy, error) {
	if p, ok := policyAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w %q; valid policies: [FIFO, LRU, Optimal]", ErrUnknownPolicy, name)
}

func (p Policy) String() string { return string(p) }
