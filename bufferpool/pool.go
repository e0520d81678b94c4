// Package bufferpool implements the Buffer Manager: a fixed-capacity
// in-memory cache of page frames sitting on top of pagefile, with
// pin/unpin reference counting, dirty tracking, forced flush and
// pluggable replacement-policy dispatch on miss.
package bufferpool

import (
	"encoding/binary"

	"github.com/OneOfOne/xxhash"

	"github.com/zhukovaskychina/pagestore/internal/logging"
	"github.com/zhukovaskychina/pagestore/pagefile"
	"github.com/zhukovaskychina/pagestore/replacement"
)

// BufferPool is a fixed-capacity cache of page frames over one page file.
type BufferPool struct {
	file     *pagefile.PageFile
	numPages int

	strategyTag  StrategyTag
	strategy     replacement.Strategy
	strategyData interface{}

	frames      []*Frame
	frameIfaces []replacement.Frame
	index       map[uint64]int // xxhash(pageNum) -> frame index, for O(1) resident lookup

	numReadIO  int
	numWriteIO int

	closed bool
}

// InitBufferPool allocates numPages empty frames over the page file
// named fileName, which must already exist. It does not read any page
// eagerly.
func InitBufferPool(fileName string, numPages int, tag StrategyTag, strategyData interface{}) (*BufferPool, error) {
	f, err := pagefile.OpenPageFile(fileName)
	if err != nil {
		return nil, opErr("InitBufferPool", ErrFileNotFound)
	}

	bp := &BufferPool{
		file:         f,
		numPages:     numPages,
		strategyTag:  tag,
		strategyData: strategyData,
		strategy:     buildStrategy(tag, strategyData),
		frames:       make([]*Frame, numPages),
		frameIfaces:  make([]replacement.Frame, numPages),
		index:        make(map[uint64]int, numPages),
	}

	for i := 0; i < numPages; i++ {
		fr := newFrame(pagefile.PageSize)
		bp.frames[i] = fr
		bp.frameIfaces[i] = fr
	}

	return bp, nil
}

func pageKey(pageNum int) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(int64(pageNum)))
	h := xxhash.New64()
	h.Write(b[:])
	return h.Sum64()
}

// findResident returns the frame index holding pageNum, or (-1, false).
func (bp *BufferPool) findResident(pageNum int) (int, bool) {
	if idx, ok := bp.index[pageKey(pageNum)]; ok && bp.frames[idx].pageNum == pageNum {
		return idx, true
	}
	// Hash collision (or a stale entry): fall back to a linear scan.
	for i, fr := range bp.frames {
		if fr.pageNum == pageNum {
			return i, true
		}
	}
	return -1, false
}

// ShutdownBufferPool flushes every dirty unpinned frame, then releases
// all frame buffers and the underlying file handle. Per spec.md §9's
// recommended option, pinned frames block shutdown with
// ErrPoolHasPinnedPages rather than leaking silently.
func (bp *BufferPool) ShutdownBufferPool() error {
	if bp == nil || bp.closed {
		return opErr("ShutdownBufferPool", ErrBufferPoolNotExisting)
	}

	if err := bp.flushEligible(); err != nil {
		return opErr("ShutdownBufferPool", err)
	}

	for _, fr := range bp.frames {
		if fr.fixCount > 0 {
			return opErr("ShutdownBufferPool", ErrPoolHasPinnedPages)
		}
	}

	bp.frames = nil
	bp.frameIfaces = nil
	bp.index = nil
	bp.closed = true

	return bp.file.Close()
}

// ForceFlushPool writes every dirty, unpinned frame back to disk.
func (bp *BufferPool) ForceFlushPool() error {
	if bp == nil || bp.closed {
		return opErr("ForceFlushPool", ErrBufferPoolNotExisting)
	}
	return bp.flushEligible()
}

func (bp *BufferPool) flushEligible() error {
	for _, fr := range bp.frames {
		if fr.dirty && fr.fixCount == 0 {
			if err := bp.file.WriteBlock(fr.pageNum, fr.data); err != nil {
				return err
			}
			bp.numWriteIO++
			fr.dirty = false
		}
	}
	return nil
}

// MarkDirty flags the resident frame holding handle.PageNum as dirty.
func (bp *BufferPool) MarkDirty(handle *PageHandle) error {
	if bp == nil || bp.closed {
		return opErr("MarkDirty", ErrBufferPoolNotExisting)
	}
	idx, ok := bp.findResident(handle.PageNum)
	if !ok {
		return opErr("MarkDirty", ErrReadNonExistingPage)
	}
	bp.frames[idx].dirty = true
	return nil
}

// UnpinPage decrements the fix count of the resident frame holding
// handle.PageNum. It never writes to disk. Double-unpin is a no-op:
// fix count saturates at zero.
func (bp *BufferPool) UnpinPage(handle *PageHandle) error {
	if bp == nil || bp.closed {
		return opErr("UnpinPage", ErrBufferPoolNotExisting)
	}
	idx, ok := bp.findResident(handle.PageNum)
	if !ok {
		return opErr("UnpinPage", ErrReadNonExistingPage)
	}
	if bp.frames[idx].fixCount > 0 {
		bp.frames[idx].fixCount--
	}
	return nil
}

// ForcePage writes the resident frame holding handle.PageNum to disk
// regardless of its dirty flag, and clears the dirty flag on success.
func (bp *BufferPool) ForcePage(handle *PageHandle) error {
	if bp == nil || bp.closed {
		return opErr("ForcePage", ErrBufferPoolNotExisting)
	}
	idx, ok := bp.findResident(handle.PageNum)
	if !ok {
		return opErr("ForcePage", ErrReadNonExistingPage)
	}
	fr := bp.frames[idx]
	if err := bp.file.WriteBlock(fr.pageNum, fr.data); err != nil {
		return opErr("ForcePage", ErrWriteFailed)
	}
	bp.numWriteIO++
	fr.dirty = false
	return nil
}

// PinPage resolves pageNum to a frame, installing it on a miss via the
// active replacement strategy. See spec.md §4.3 for the exact protocol.
func (bp *BufferPool) PinPage(pageNum int) (*PageHandle, error) {
	if bp == nil || bp.closed {
		return nil, opErr("PinPage", ErrBufferPoolNotExisting)
	}
	if pageNum < 0 {
		return nil, opErr("PinPage", ErrReadNonExistingPage)
	}
	if bp.strategy == nil {
		return nil, opErr("PinPage", ErrInvalidReplacementStrategy)
	}

	if idx, ok := bp.findResident(pageNum); ok {
		fr := bp.frames[idx]
		fr.fixCount++
		bp.strategy.OnHit(bp.frameIfaces, idx)
		return &PageHandle{PageNum: pageNum, Data: fr.data}, nil
	}

	idx, ok := bp.strategy.ChooseVictim(bp.frameIfaces)
	if !ok {
		return nil, opErr("PinPage", ErrNoAvailableFrame)
	}
	victim := bp.frames[idx]

	if victim.dirty {
		if err := bp.file.WriteBlock(victim.pageNum, victim.data); err != nil {
			// Victim stays dirty and resident; the pin fails with the
			// storage error and numWriteIO is not incremented.
			return nil, opErr("PinPage", ErrWriteFailed)
		}
		bp.numWriteIO++
	}

	if victim.pageNum != NoPage {
		delete(bp.index, pageKey(victim.pageNum))
	}

	if err := bp.file.ReadBlock(pageNum, victim.data); err != nil {
		victim.empty()
		logging.Debugf("pagestore: failed loading page %d: %v", pageNum, err)
		return nil, opErr("PinPage", ErrReadNonExistingPage)
	}
	bp.numReadIO++

	victim.reset(pageNum)
	bp.index[pageKey(pageNum)] = idx
	bp.strategy.OnInstall(bp.frameIfaces, idx)

	return &PageHandle{PageNum: pageNum, Data: victim.data}, nil
}

// GetFrameContents returns, for each frame, its resident page number
// (or NoPage).
func (bp *BufferPool) GetFrameContents() []int {
	out := make([]int, len(bp.frames))
	for i, fr := range bp.frames {
		out[i] = fr.pageNum
	}
	return out
}

// GetDirtyFlags returns, for each frame, whether it is dirty.
func (bp *BufferPool) GetDirtyFlags() []bool {
	out := make([]bool, len(bp.frames))
	for i, fr := range bp.frames {
		out[i] = fr.dirty
	}
	return out
}

// GetFixCounts returns, for each frame, its current fix count.
func (bp *BufferPool) GetFixCounts() []int {
	out := make([]int, len(bp.frames))
	for i, fr := range bp.frames {
		out[i] = fr.fixCount
	}
	return out
}

// GetNumReadIO returns the cumulative number of disk reads (misses only).
func (bp *BufferPool) GetNumReadIO() int { return bp.numReadIO }

// GetNumWriteIO returns the cumulative number of disk writes.
func (bp *BufferPool) GetNumWriteIO() int { return bp.numWriteIO }
