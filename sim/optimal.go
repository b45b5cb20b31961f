package sim

import "fmt"

// simulateOptimal evicts the resident page whose next reference is farthest in
// the future, treating pages never referenced again as infinitely far.
//
// Ties (including several never-used pages) go to the page in the earliest
// slot of the current resident order. The incoming page takes over the
// victim's slot rather than being appended.
func simulateOptimal(r *run) {
	future := newFutureIndex(r.refs)

	for i, page := range r.refs {
		if r.resident.Contains(page) {
			r.hit(page)
			continue
		}
		if !r.resident.Full() {
			r.mustInsert(page)
			r.fault(page, nil)
			continue
		}

		victim := farthestNextUse(r.resident.pages, future, i)
		if err := r.resident.Replace(victim, page); err != nil {
			panic(fmt.Sprintf("policy invariant violated: %v", err))
		}
		r.fault(page, &victim)
	}
}

// farthestNextUse picks the victim among resident (in slot order) for a miss at
// position at. Strict comparison keeps the first maximum.
func farthestNextUse(resident []PageID, future *futureIndex, at int) PageID {
	victim := resident[0]
	farthest := -1
	for _, p := range resident {
		next := future.nextUse(p, at)
		if next > farthest {
			farthest = next
			victim = p
		}
	}
	return victim
}
