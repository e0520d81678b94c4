package replacement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testFrame is a minimal Frame implementation for exercising policies
// without pulling in bufferpool.
type testFrame struct {
	pageNum  int
	fixCount int
	stamp    uint64
}

func (f *testFrame) PageNum() int            { return f.pageNum }
func (f *testFrame) FixCount() int           { return f.fixCount }
func (f *testFrame) AccessStamp() uint64     { return f.stamp }
func (f *testFrame) SetAccessStamp(v uint64) { f.stamp = v }

func emptyFrames(n int) []Frame {
	out := make([]Frame, n)
	for i := range out {
		out[i] = &testFrame{pageNum: NoPage}
	}
	return out
}

func pin(frames []Frame, i int) { frames[i].(*testFrame).fixCount++ }
func unpin(frames []Frame, i int) {
	tf := frames[i].(*testFrame)
	if tf.fixCount > 0 {
		tf.fixCount--
	}
}
func install(frames []Frame, i, pageNum int) { frames[i].(*testFrame).pageNum = pageNum }

// TestFIFOScenarioA reproduces the three-frame arrival-order scenario:
// pin 0,1,2; unpin all; pin 3,4,0 should evict 0, then 1, then 2.
func TestFIFOScenarioA(t *testing.T) {
	frames := emptyFrames(3)
	p := NewFIFO()

	for i, pg := range []int{0, 1, 2} {
		idx, ok := p.ChooseVictim(frames)
		require.True(t, ok)
		assert.Equal(t, i, idx)
		install(frames, idx, pg)
		pin(frames, idx)
		p.OnInstall(frames, idx)
	}
	for i := range frames {
		unpin(frames, i)
	}

	wantEvicted := []int{0, 1, 2} // frame indices holding pages 0,1,2, evicted in that order
	for i, pg := range []int{3, 4, 0} {
		idx, ok := p.ChooseVictim(frames)
		require.True(t, ok)
		assert.Equal(t, wantEvicted[i], idx)
		install(frames, idx, pg)
		pin(frames, idx)
		p.OnInstall(frames, idx)
	}

	contents := make([]int, len(frames))
	for i, f := range frames {
		contents[i] = f.PageNum()
	}
	assert.Equal(t, []int{3, 4, 0}, contents)
}

func TestFIFOSkipsPinnedFrames(t *testing.T) {
	frames := emptyFrames(2)
	p := NewFIFO()

	install(frames, 0, 10)
	pin(frames, 0)
	p.OnInstall(frames, 0)

	install(frames, 1, 11)
	pin(frames, 1)
	p.OnInstall(frames, 1)

	_, ok := p.ChooseVictim(frames)
	assert.False(t, ok, "all frames pinned: no victim available")
}

func TestFIFOSingleFrameNeverYieldsVictim(t *testing.T) {
	frames := emptyFrames(1)
	p := NewFIFO()
	install(frames, 0, 1)
	p.OnInstall(frames, 0)

	_, ok := p.ChooseVictim(frames)
	assert.False(t, ok)
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	frames := emptyFrames(3)
	p := NewLRU()

	for _, pg := range []int{0, 1, 2} {
		idx, ok := p.ChooseVictim(frames)
		require.True(t, ok)
		install(frames, idx, pg)
		p.OnInstall(frames, idx)
	}

	// Touch frame holding page 0 again: it becomes most-recently-used.
	p.OnHit(frames, 0)

	idx, ok := p.ChooseVictim(frames)
	require.True(t, ok)
	assert.Equal(t, 1, idx, "page 1 is now least recently used")
}

func TestLRUIgnoresPinnedFrames(t *testing.T) {
	frames := emptyFrames(2)
	p := NewLRU()

	install(frames, 0, 0)
	p.OnInstall(frames, 0)
	pin(frames, 0)

	install(frames, 1, 1)
	p.OnInstall(frames, 1)
	pin(frames, 1)

	_, ok := p.ChooseVictim(frames)
	assert.False(t, ok)

	unpin(frames, 0)
	idx, ok := p.ChooseVictim(frames)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestLRUKDefaultAliasesLRU(t *testing.T) {
	frames := emptyFrames(3)
	p := NewLRUK(1)

	for _, pg := range []int{0, 1, 2} {
		idx, ok := p.ChooseVictim(frames)
		require.True(t, ok)
		install(frames, idx, pg)
		p.OnInstall(frames, idx)
	}

	p.OnHit(frames, 0)

	idx, ok := p.ChooseVictim(frames)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestLRUKPrefersFramesWithFewerThanKAccesses(t *testing.T) {
	frames := emptyFrames(2)
	p := NewLRUK(2)

	install(frames, 0, 0)
	p.OnInstall(frames, 0)
	p.OnHit(frames, 0) // frame 0 now has 2 recorded accesses

	install(frames, 1, 1)
	p.OnInstall(frames, 1) // frame 1 has only 1 recorded access

	idx, ok := p.ChooseVictim(frames)
	require.True(t, ok)
	assert.Equal(t, 1, idx, "frame with fewer than K accesses has infinite backward distance")
}
