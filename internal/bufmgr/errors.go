package bufmgr

import (
	"fmt"

	"github.com/tuannm99/pagebuf/internal/storage"
)

// BufferExceededError reports that every frame in the pool is pinned, so no
// victim can be selected.
type BufferExceededError struct{}

func (e *BufferExceededError) Error() string {
	return "bufmgr: buffer pool exceeded, all frames pinned"
}

// PageNotPinnedError reports an unpin of a resident page whose pin count is
// already zero.
type PageNotPinnedError struct {
	Filename string
	PageNo   storage.PageID
	Frame    int
}

func (e *PageNotPinnedError) Error() string {
	return fmt.Sprintf("bufmgr: page %d of %s in frame %d is not pinned",
		e.PageNo, e.Filename, e.Frame)
}

// PagePinnedError reports an operation that requires a page to be unpinned
// (flush, dispose) finding it pinned.
type PagePinnedError struct {
	Filename string
	PageNo   storage.PageID
	Frame    int
}

func (e *PagePinnedError) Error() string {
	return fmt.Sprintf("bufmgr: page %d of %s in frame %d is still pinned",
		e.PageNo, e.Filename, e.Frame)
}

// BadBufferError reports a frame that belongs to a file but is not valid:
// a structural invariant of the pool has been broken.
type BadBufferError struct {
	Frame  int
	Dirty  bool
	Valid  bool
	Refbit bool
}

func (e *BadBufferError) Error() string {
	return fmt.Sprintf("bufmgr: bad buffer in frame %d (dirty=%v valid=%v refbit=%v)",
		e.Frame, e.Dirty, e.Valid, e.Refbit)
}

// HashNotFoundError reports an absent key in the frame directory. It only
// surfaces where the pool's own bookkeeping is broken, never from caller
// misuse.
type HashNotFoundError struct {
	Filename string
	PageNo   storage.PageID
}

func (e *HashNotFoundError) Error() string {
	return fmt.Sprintf("bufmgr: page %d of %s not in frame directory",
		e.PageNo, e.Filename)
}
