package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_HitRefreshesRecency(t *testing.T) {
	// GIVEN frames holding 1 2 3 where 1 is then touched again
	refs := pages(1, 2, 3, 1, 4)

	// WHEN 4 misses
	res, err := Run(PolicyLRU, refs, 3)
	require.NoError(t, err)

	// THEN 2 (least recently used) is evicted, not 1 (inserted first)
	last := res.Steps()[4]
	require.NotNil(t, last.Evicted)
	assert.Equal(t, 2, *last.Evicted)
	assert.Equal(t, []int{1, 3, 4}, last.Frames, "remaining pages keep arrival order, new page appended")
}

func TestLRU_RepeatedHitsDoNotDuplicate(t *testing.T) {
	refs := pages(1, 1, 1, 2, 2, 1, 3, 4)
	res, err := Run(PolicyLRU, refs, 2)
	require.NoError(t, err)

	// 1 F, 1 H, 1 H, 2 F, 2 H, 1 H, 3 F (evict 2), 4 F (evict 1)
	assert.Equal(t, 4, res.Faults)
	assert.Equal(t, 2, *res.Steps()[6].Evicted)
	assert.Equal(t, 1, *res.Steps()[7].Evicted)
	assert.Equal(t, []int{3, 4}, res.Steps()[7].Frames)
}

func TestFIFO_HitDoesNotRefresh(t *testing.T) {
	refs := pages(1, 2, 3, 1, 4)
	res, err := Run(PolicyFIFO, refs, 3)
	require.NoError(t, err)

	last := res.Steps()[4]
	require.NotNil(t, last.Evicted)
	assert.Equal(t, 1, *last.Evicted)
	assert.Equal(t, []int{2, 3, 4}, last.Frames)
}
