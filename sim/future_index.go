package sim

import (
	"math"
	"sort"
)

// neverUsed is the next-use position of a page with no future reference.
const neverUsed = math.MaxInt

// futureIndex maps every page to the sorted positions at which it is referenced,
// so the next use after any position is one binary search away.
type futureIndex struct {
	positions map[PageID][]int
}

func newFutureIndex(refs []PageID) *futureIndex {
	fi := &futureIndex{positions: make(map[PageID][]int)}
	for i, p := range refs {
		fi.positions[p] = append(fi.positions[p], i)
	}
	return fi
}

// nextUse returns the first position > after at which page is referenced,
// or neverUsed.
func (fi *futureIndex) nextUse(page PageID, after int) int {
	pos := fi.positions[page]
	i := sort.SearchInts(pos, after+1)
	if i == len(pos) {
		return neverUsed
	}
	return pos[i]
}
