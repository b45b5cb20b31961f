// Package sim provides the page-replacement simulation engine for pagesim.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - resident_set.go: the bounded, ordered set of pages held in frames
//   - simulator.go: Run, input validation and policy dispatch
//   - fifo.go, lru.go, optimal.go: one procedure per eviction policy
//
// # Architecture
//
// The engine is a pure function of (policy, references, frames). Each call to
// Run owns its resident set, recency list and future-use index, and returns a
// Result holding the fault count and one trace step per reference. No state
// survives between calls.
//
// Sub-packages:
//   - sim/trace/: step records and trace summaries (pure data, no sim imports)
//   - sim/reference/: parsing reference strings and files
//   - sim/export/: CSV, JSON, YAML and SQLite trace exporters
//
// # Policies
//
// The policy set is closed: FIFO, LRU and Optimal. Optimal breaks ties between
// equally distant (or never reused) pages by picking the first one in current
// resident order, and the incoming page reuses the victim's slot.
package sim
