// Package pagefile implements the Storage Manager: block-addressed I/O
// over a flat page file of PageSize-aligned pages. It has no knowledge
// of caching or replacement — that is the bufferpool package's job.
package pagefile

import (
	"os"
	"sync"

	"github.com/pkg/errors"
)

// PageSize is the compile-time page size (spec.md §3). It is a package
// constant, not a per-file parameter, matching the "fixed at compile
// time" invariant.
const PageSize = 4096

// Init is a process-wide initialization hook; the storage manager has no
// required side effects beyond making subsequent operations legal.
func Init() {}

// PageFile is bound to one page file on disk.
type PageFile struct {
	mu            sync.Mutex
	fileName      string
	totalNumPages int
	curPagePos    int // see ReadBlock/WriteBlock for the two conventions this field carries
	backing       *os.File
}

// CreatePageFile creates a new file of exactly one zero-filled page.
func CreatePageFile(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return opErr("CreatePageFile", combine(ErrFileNotFound, err))
	}
	defer f.Close()

	zero := make([]byte, PageSize)
	n, err := f.Write(zero)
	if err != nil || n != PageSize {
		return opErr("CreatePageFile", combine(ErrWriteFailed, err))
	}
	return nil
}

// OpenPageFile opens an existing file for read+write, populating
// totalNumPages from the file length and resetting curPagePos to 0.
func OpenPageFile(name string) (*PageFile, error) {
	f, err := os.OpenFile(name, os.O_RDWR, 0o644)
	if err != nil {
		return nil, opErr("OpenPageFile", combine(ErrFileNotFound, err))
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, opErr("OpenPageFile", errors.Wrap(err, "stat"))
	}

	pf := &PageFile{
		fileName:      name,
		backing:       f,
		totalNumPages: int(stat.Size() / PageSize),
		curPagePos:    0,
	}
	return pf, nil
}

// Close releases the OS resource bound to the handle.
func (pf *PageFile) Close() error {
	pf.mu.Lock()
	defer pf.mu.Unlock()

	if pf.backing == nil {
		return opErr("ClosePageFile", ErrFileHandleNotInit)
	}
	err := pf.backing.Close()
	pf.backing = nil
	if err != nil {
		return opErr("ClosePageFile", err)
	}
	return nil
}

// DestroyPageFile unlinks the page file from disk.
func DestroyPageFile(name string) error {
	if err := os.Remove(name); err != nil {
		return opErr("DestroyPageFile", combine(ErrFileNotFound, err))
	}
	return nil
}

// FileName returns the file's immutable identity.
func (pf *PageFile) FileName() string { return pf.fileName }

// TotalNumPages returns the number of PageSize-aligned pages on disk.
func (pf *PageFile) TotalNumPages() int {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	return pf.totalNumPages
}

// CurrentPagePosition returns the raw cursor value (see ReadBlock and
// WriteBlock for what it holds). Supplements the C source's getBlockPos.
func (pf *PageFile) CurrentPagePosition() int {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	return pf.curPagePos
}

func (pf *PageFile) currentPageNum() int {
	return pf.curPagePos / PageSize
}

// ReadBlock reads exactly PageSize bytes from page pageNum into buf, then
// sets curPagePos to the byte offset just past the read.
func (pf *PageFile) ReadBlock(pageNum int, buf []byte) error {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	return pf.readBlockLocked(pageNum, buf)
}

func (pf *PageFile) readBlockLocked(pageNum int, buf []byte) error {
	if pf.backing == nil {
		return opErr("ReadBlock", ErrFileHandleNotInit)
	}
	if pageNum < 0 || pageNum >= pf.totalNumPages {
		return opErr("ReadBlock", ErrReadNonExisting)
	}
	if len(buf) < PageSize {
		return opErr("ReadBlock", errors.New("buffer shorter than PageSize"))
	}

	n, err := pf.backing.ReadAt(buf[:PageSize], int64(pageNum)*PageSize)
	if err != nil || n != PageSize {
		return opErr("ReadBlock", combine(ErrReadNonExisting, err))
	}

	pf.curPagePos = (pageNum + 1) * PageSize
	return nil
}

// ReadFirstBlock reads page 0.
func (pf *PageFile) ReadFirstBlock(buf []byte) error {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	return pf.readBlockLocked(0, buf)
}

// ReadCurrentBlock reads the page containing curPagePos.
func (pf *PageFile) ReadCurrentBlock(buf []byte) error {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	return pf.readBlockLocked(pf.currentPageNum(), buf)
}

// ReadPreviousBlock reads the page immediately before the current one.
func (pf *PageFile) ReadPreviousBlock(buf []byte) error {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	return pf.readBlockLocked(pf.currentPageNum()-1, buf)
}

// ReadNextBlock reads the page immediately after the current one.
func (pf *PageFile) ReadNextBlock(buf []byte) error {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	return pf.readBlockLocked(pf.currentPageNum()+1, buf)
}

// ReadLastBlock reads the last page on disk.
func (pf *PageFile) ReadLastBlock(buf []byte) error {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	return pf.readBlockLocked(pf.totalNumPages-1, buf)
}

// WriteBlock writes exactly PageSize bytes at page pageNum. Following
// the original source's curPagePos bookkeeping (preserved per spec.md
// §4.1), this sets curPagePos to the raw page number rather than a byte
// offset — the two read/write paths intentionally disagree on what
// curPagePos holds, matching the original storage manager's behavior.
func (pf *PageFile) WriteBlock(pageNum int, buf []byte) error {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	return pf.writeBlockLocked(pageNum, buf)
}

func (pf *PageFile) writeBlockLocked(pageNum int, buf []byte) error {
	if pf.backing == nil {
		return opErr("WriteBlock", ErrFileHandleNotInit)
	}
	if pageNum < 0 || pageNum > pf.totalNumPages {
		return opErr("WriteBlock", ErrWriteFailed)
	}
	if len(buf) < PageSize {
		return opErr("WriteBlock", errors.New("buffer shorter than PageSize"))
	}

	n, err := pf.backing.WriteAt(buf[:PageSize], int64(pageNum)*PageSize)
	if err != nil || n != PageSize {
		return opErr("WriteBlock", combine(ErrWriteFailed, err))
	}

	pf.curPagePos = pageNum
	return nil
}

// WriteCurrentBlock writes at curPagePos, treated as a page number.
func (pf *PageFile) WriteCurrentBlock(buf []byte) error {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	return pf.writeBlockLocked(pf.curPagePos, buf)
}

// AppendEmptyBlock appends one zero-filled page and bumps totalNumPages.
func (pf *PageFile) AppendEmptyBlock() error {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	return pf.appendEmptyBlockLocked()
}

func (pf *PageFile) appendEmptyBlockLocked() error {
	if pf.backing == nil {
		return opErr("AppendEmptyBlock", ErrFileHandleNotInit)
	}

	zero := make([]byte, PageSize)
	n, err := pf.backing.WriteAt(zero, int64(pf.totalNumPages)*PageSize)
	if err != nil || n != PageSize {
		return opErr("AppendEmptyBlock", combine(ErrWriteFailed, err))
	}

	pf.totalNumPages++
	return nil
}

// EnsureCapacity appends empty pages until totalNumPages >= n.
func (pf *PageFile) EnsureCapacity(n int) error {
	pf.mu.Lock()
	defer pf.mu.Unlock()

	for pf.totalNumPages < n {
		if err := pf.appendEmptyBlockLocked(); err != nil {
			return err
		}
	}
	return nil
}

func combine(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return errors.Wrap(sentinel, cause.Error())
}
