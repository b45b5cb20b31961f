package sim

import (
	"fmt"

	"github.com/hashicorp/golang-lru/simplelru"
)

// simulateLRU evicts the least recently used resident page.
//
// Recency is tracked separately from the resident set: the resident set keeps
// arrival order for the trace, while the recency list (oldest first) decides
// the victim. Both always hold exactly the same pages.
func simulateLRU(r *run) {
	recency, err := simplelru.NewLRU(r.resident.Capacity(), nil)
	if err != nil {
		panic(fmt.Sprintf("creating recency list: %v", err))
	}

	for _, page := range r.refs {
		if r.resident.Contains(page) {
			// Get promotes the page to most recently used.
			recency.Get(page)
			r.hit(page)
			continue
		}
		var victim *PageID
		if r.resident.Full() {
			key, _, ok := recency.RemoveOldest()
			if !ok {
				panic("recency list empty while resident set is full")
			}
			lru := key.(PageID)
			if !r.resident.Remove(lru) {
				panic(fmt.Sprintf("recency list holds page %d that is not resident", lru))
			}
			victim = &lru
		}
		r.mustInsert(page)
		recency.Add(page, struct{}{})
		r.fault(page, victim)

		if recency.Len() != r.resident.Size() {
			panic(fmt.Sprintf("recency list size %d != resident size %d", recency.Len(), r.resident.Size()))
		}
	}
}
