// Package recordmgr names the interface the record/table manager would
// consume from bufferpool. Per spec.md §1, the record/table manager
// (tuple layout, schemas, scans, expression evaluation) is out of scope
// for this storage core — only its consumption contract is declared
// here, grounded on _examples/original_source/record_mgr.c's access
// pattern (pin a page, read/write a tuple, mark the page dirty, unpin).
package recordmgr

import "github.com/zhukovaskychina/pagestore/bufferpool"

// PageAccessor is the subset of *bufferpool.BufferPool a record manager
// would call to read and mutate tuples stored on pages it does not own.
type PageAccessor interface {
	PinPage(pageNum int) (*bufferpool.PageHandle, error)
	MarkDirty(handle *bufferpool.PageHandle) error
	UnpinPage(handle *bufferpool.PageHandle) error
	ForcePage(handle *bufferpool.PageHandle) error
}

var _ PageAccessor = (*bufferpool.BufferPool)(nil)
