package bufmgr

import (
	"fmt"

	"github.com/tuannm99/pagebuf/internal/storage"
)

// frameKey identifies a resident page: file identity plus page id.
// storage.File values compare by the identity of the underlying handle.
type frameKey struct {
	file   storage.File
	pageNo storage.PageID
}

// frameTable is the frame directory: (file, pageNo) -> frame index.
// Membership is exactly the set of resident pages.
type frameTable struct {
	table map[frameKey]int
}

func newFrameTable(numBufs int) *frameTable {
	// Sized a little over the frame count so the map never rehashes.
	return &frameTable{
		table: make(map[frameKey]int, numBufs+numBufs/5),
	}
}

func (t *frameTable) lookup(file storage.File, pageNo storage.PageID) (int, bool) {
	frameNo, ok := t.table[frameKey{file, pageNo}]
	return frameNo, ok
}

// insert registers a resident page. A duplicate key means the pool's
// bookkeeping is broken.
func (t *frameTable) insert(file storage.File, pageNo storage.PageID, frameNo int) error {
	key := frameKey{file, pageNo}
	if old, ok := t.table[key]; ok {
		return fmt.Errorf("bufmgr: page %d of %s already in frame %d",
			pageNo, file.Filename(), old)
	}
	t.table[key] = frameNo
	return nil
}

// remove drops a directory entry, failing with HashNotFoundError if absent.
func (t *frameTable) remove(file storage.File, pageNo storage.PageID) error {
	key := frameKey{file, pageNo}
	if _, ok := t.table[key]; !ok {
		return &HashNotFoundError{Filename: file.Filename(), PageNo: pageNo}
	}
	delete(t.table, key)
	return nil
}

func (t *frameTable) size() int {
	return len(t.table)
}
