package sim

// simulateFIFO evicts the page inserted earliest among the resident pages.
// New pages are appended, so the earliest insertion is always the first slot.
func simulateFIFO(r *run) {
	for _, page := range r.refs {
		if r.resident.Contains(page) {
			r.hit(page)
			continue
		}
		var victim *PageID
		if r.resident.Full() {
			oldest, _ := r.resident.Oldest()
			r.resident.Remove(oldest)
			victim = &oldest
		}
		r.mustInsert(page)
		r.fault(page, victim)
	}
}
