package sim

import (
	"fmt"
	"strconv"
	"strings"
)

// PageID identifies a page. Only equality is meaningful.
type PageID int

// ResidentSet is the bounded, ordered set of pages currently held in frames.
// Slot order is maintained by the policy driving it (insertion order for FIFO
// and LRU, slot reuse for Optimal). A ResidentSet never holds duplicates and
// never grows past its capacity.
//
// Not safe for concurrent use; every run owns its own set.
type ResidentSet struct {
	capacity int
	pages    []PageID
	slots    map[PageID]int // page -> index into pages
}

// maxPreallocSlots bounds the storage reserved up front when no better size
// hint is known. Capacity is caller-controlled and may be far larger.
const maxPreallocSlots = 1024

// NewResidentSet creates an empty set holding at most capacity pages.
// Panics if capacity < 1; Run validates capacity before getting here.
func NewResidentSet(capacity int) *ResidentSet {
	return newResidentSet(capacity, maxPreallocSlots)
}

// newResidentSet reserves room for min(capacity, sizeHint) pages. Run passes
// the reference count: a set never holds more pages than were referenced.
func newResidentSet(capacity, sizeHint int) *ResidentSet {
	if capacity < 1 {
		panic(fmt.Sprintf("resident set capacity must be >= 1, got %d", capacity))
	}
	reserve := max(min(capacity, sizeHint), 0)
	return &ResidentSet{
		capacity: capacity,
		pages:    make([]PageID, 0, reserve),
		slots:    make(map[PageID]int, reserve),
	}
}

// Contains reports whether page is resident.
func (rs *ResidentSet) Contains(page PageID) bool {
	_, ok := rs.slots[page]
	return ok
}

// Size returns the number of resident pages.
func (rs *ResidentSet) Size() int { return len(rs.pages) }

// Capacity returns the frame capacity.
func (rs *ResidentSet) Capacity() int { return rs.capacity }

// Full reports whether an insert would need an eviction first.
func (rs *ResidentSet) Full() bool { return len(rs.pages) >= rs.capacity }

// Insert appends page to the end of the slot order.
func (rs *ResidentSet) Insert(page PageID) error {
	if rs.Contains(page) {
		return fmt.Errorf("inserting page %d: %w", page, ErrDuplicatePage)
	}
	if rs.Full() {
		return fmt.Errorf("inserting page %d into %d frames: %w", page, rs.capacity, ErrCapacity)
	}
	rs.slots[page] = len(rs.pages)
	rs.pages = append(rs.pages, page)
	return nil
}

// Remove deletes page, shifting later pages down one slot.
// Returns false if page was not resident.
func (rs *ResidentSet) Remove(page PageID) bool {
	idx, ok := rs.slots[page]
	if !ok {
		return false
	}
	delete(rs.slots, page)
	copy(rs.pages[idx:], rs.pages[idx+1:])
	rs.pages = rs.pages[:len(rs.pages)-1]
	for i := idx; i < len(rs.pages); i++ {
		rs.slots[rs.pages[i]] = i
	}
	return true
}

// Replace puts next into the slot held by old. The set size is unchanged.
func (rs *ResidentSet) Replace(old, next PageID) error {
	idx, ok := rs.slots[old]
	if !ok {
		return fmt.Errorf("replacing page %d: not resident", old)
	}
	if rs.Contains(next) {
		return fmt.Errorf("replacing page %d with %d: %w", old, next, ErrDuplicatePage)
	}
	delete(rs.slots, old)
	rs.pages[idx] = next
	rs.slots[next] = idx
	return nil
}

// Oldest returns the page in the first slot.
func (rs *ResidentSet) Oldest() (PageID, bool) {
	if len(rs.pages) == 0 {
		return 0, false
	}
	return rs.pages[0], true
}

// Pages returns a copy of the resident pages in slot order.
func (rs *ResidentSet) Pages() []PageID {
	out := make([]PageID, len(rs.pages))
	copy(out, rs.pages)
	return out
}

// String renders the pages space-separated in slot order.
func (rs *ResidentSet) String() string {
	parts := make([]string, len(rs.pages))
	for i, p := range rs.pages {
		parts[i] = strconv.Itoa(int(p))
	}
	return strings.Join(parts, " ")
}
