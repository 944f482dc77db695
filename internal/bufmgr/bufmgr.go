// Package bufmgr implements a fixed-size buffer pool with CLOCK
// (second-chance) replacement over the storage page-file layer.
//
// The pool is single-threaded: no operation blocks except for synchronous
// page I/O, and callers that want concurrent access must serialize entry
// themselves.
package bufmgr

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tuannm99/pagebuf/internal/storage"
)

var logDebugPrefix = "bufmgr: "

// DefaultPoolSize is used when a caller passes a non-positive frame count.
const DefaultPoolSize = 64

// BufMgr is the buffer pool manager. It owns numBufs page-sized frames, a
// descriptor per frame, and the frame directory; external files are
// referenced but never owned.
type BufMgr struct {
	numBufs   int
	pool      []storage.Page
	descTable []bufDesc
	dir       *frameTable

	// clockHand is the replacement cursor; it starts at numBufs-1 so the
	// first advance lands on frame 0.
	clockHand int
}

// NewBufMgr creates a pool with numBufs frames, all invalid.
func NewBufMgr(numBufs int) *BufMgr {
	if numBufs <= 0 {
		numBufs = DefaultPoolSize
	}

	m := &BufMgr{
		numBufs:   numBufs,
		pool:      make([]storage.Page, numBufs),
		descTable: make([]bufDesc, numBufs),
		dir:       newFrameTable(numBufs),
		clockHand: numBufs - 1,
	}
	for i := range m.descTable {
		m.descTable[i].frameNo = i
		m.descTable[i].clear()
		m.pool[i] = storage.Page{Buf: make([]byte, storage.PageSize)}
	}
	return m
}

func (m *BufMgr) advanceClock() {
	m.clockHand = (m.clockHand + 1) % m.numBufs
}

// allocBuf selects a free frame using the CLOCK algorithm, evicting an
// unpinned resident page if it has to. The victim's directory entry is
// removed here; registering the new tenant is the caller's job.
func (m *BufMgr) allocBuf() (int, error) {
	pinned := 0
	for i := range m.descTable {
		if m.descTable[i].pinCount > 0 {
			pinned++
		}
	}
	if pinned >= m.numBufs {
		return -1, &BufferExceededError{}
	}

	// At least one unpinned frame exists, so at most two sweeps: the first
	// clears ref bits, the second finds a cleared unpinned frame.
	for {
		m.advanceClock()
		d := &m.descTable[m.clockHand]

		if !d.valid {
			break
		}
		if d.refbit {
			// Second chance.
			d.refbit = false
			continue
		}
		if d.pinCount > 0 {
			continue
		}

		// Evict. Only the victim's own page is written back; its file may
		// have other dirty resident pages that stay put.
		slog.Debug(logDebugPrefix+"evicting victim frame",
			"frame", d.frameNo,
			"file", d.file.Filename(),
			"pageNo", d.pageNo,
			"dirty", d.dirty)
		if d.dirty {
			if err := d.file.WritePage(m.pool[d.frameNo]); err != nil {
				return -1, err
			}
			d.dirty = false
		}
		if err := m.dir.remove(d.file, d.pageNo); err != nil {
			// A valid frame without a directory entry is a broken pool.
			return -1, err
		}
		break
	}

	m.descTable[m.clockHand].clear()
	return m.clockHand, nil
}

// ReadPage returns a borrow of the frame holding (file, pageNo), reading the
// page in if it is not resident. The caller holds exactly one new pin and
// must release it with UnpinPage.
func (m *BufMgr) ReadPage(file storage.File, pageNo storage.PageID) (*storage.Page, error) {
	if frameNo, ok := m.dir.lookup(file, pageNo); ok {
		d := &m.descTable[frameNo]
		d.refbit = true
		d.pinCount++
		slog.Debug(logDebugPrefix+"read hit",
			"file", file.Filename(), "pageNo", pageNo,
			"frame", frameNo, "pin", d.pinCount)
		return &m.pool[frameNo], nil
	}

	frameNo, err := m.allocBuf()
	if err != nil {
		return nil, err
	}

	p, err := file.ReadPage(pageNo)
	if err != nil {
		return nil, err
	}
	copy(m.pool[frameNo].Buf, p.Buf)

	m.descTable[frameNo].set(file, pageNo)
	if err := m.dir.insert(file, pageNo, frameNo); err != nil {
		return nil, err
	}
	slog.Debug(logDebugPrefix+"read miss, page admitted",
		"file", file.Filename(), "pageNo", pageNo, "frame", frameNo)
	return &m.pool[frameNo], nil
}

// AllocPage allocates a fresh page in file and admits it into the pool,
// returning its id and a borrow carrying one pin.
func (m *BufMgr) AllocPage(file storage.File) (storage.PageID, *storage.Page, error) {
	p, err := file.AllocatePage()
	if err != nil {
		return 0, nil, err
	}
	pageNo := p.PageID()

	frameNo, err := m.allocBuf()
	if err != nil {
		return 0, nil, err
	}

	if err := m.dir.insert(file, pageNo, frameNo); err != nil {
		return 0, nil, err
	}
	m.descTable[frameNo].set(file, pageNo)
	copy(m.pool[frameNo].Buf, p.Buf)

	slog.Debug(logDebugPrefix+"allocated page",
		"file", file.Filename(), "pageNo", pageNo, "frame", frameNo)
	return pageNo, &m.pool[frameNo], nil
}

// UnpinPage releases one pin on (file, pageNo). If dirty is set the frame is
// marked dirty; the flag is never cleared here. Unpinning a page that is not
// resident is a no-op: teardown paths may unpin pages already disposed.
func (m *BufMgr) UnpinPage(file storage.File, pageNo storage.PageID, dirty bool) error {
	frameNo, ok := m.dir.lookup(file, pageNo)
	if !ok {
		slog.Debug(logDebugPrefix+"unpin ignored, page not resident",
			"file", file.Filename(), "pageNo", pageNo)
		return nil
	}

	d := &m.descTable[frameNo]
	if d.pinCount == 0 {
		return &PageNotPinnedError{
			Filename: file.Filename(),
			PageNo:   pageNo,
			Frame:    frameNo,
		}
	}
	d.pinCount--
	if dirty {
		d.dirty = true
	}
	slog.Debug(logDebugPrefix+"unpin",
		"file", file.Filename(), "pageNo", pageNo,
		"frame", frameNo, "pin", d.pinCount, "dirty", d.dirty)
	return nil
}

// DisposePage evicts (file, pageNo) from the pool if resident and deletes it
// from the file. A pinned page cannot be disposed.
func (m *BufMgr) DisposePage(file storage.File, pageNo storage.PageID) error {
	if frameNo, ok := m.dir.lookup(file, pageNo); ok {
		d := &m.descTable[frameNo]
		if d.pinCount > 0 {
			return &PagePinnedError{
				Filename: file.Filename(),
				PageNo:   pageNo,
				Frame:    frameNo,
			}
		}
		d.clear()
		if err := m.dir.remove(file, pageNo); err != nil {
			return err
		}
		slog.Debug(logDebugPrefix+"disposed resident page",
			"file", file.Filename(), "pageNo", pageNo, "frame", frameNo)
	}
	return file.DeletePage(pageNo)
}

// FlushFile writes back every dirty resident page of file and evicts all of
// the file's pages from the pool. It is the fence a caller runs before
// closing a file at quiescence; a pinned page aborts the scan mid-way.
func (m *BufMgr) FlushFile(file storage.File) error {
	for i := range m.descTable {
		d := &m.descTable[i]
		if d.file != file {
			continue
		}

		if d.pinCount > 0 {
			return &PagePinnedError{
				Filename: file.Filename(),
				PageNo:   d.pageNo,
				Frame:    d.frameNo,
			}
		}
		if !d.valid {
			e := &BadBufferError{
				Frame:  d.frameNo,
				Dirty:  d.dirty,
				Valid:  d.valid,
				Refbit: d.refbit,
			}
			d.clear()
			return e
		}
		if d.dirty {
			if err := file.WritePage(m.pool[i]); err != nil {
				return err
			}
			d.dirty = false
		}
		if err := m.dir.remove(d.file, d.pageNo); err != nil {
			return err
		}
		d.clear()
	}
	slog.Debug(logDebugPrefix+"flushed file", "file", file.Filename())
	return nil
}

// Close flushes every valid dirty frame and clears the pool. Pinned frames do
// not stop teardown. The sweep runs to completion; the first write error is
// returned after it finishes.
func (m *BufMgr) Close() error {
	var firstErr error
	for i := range m.descTable {
		d := &m.descTable[i]
		if !d.valid {
			continue
		}
		if d.dirty {
			if err := d.file.WritePage(m.pool[i]); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		d.clear()
	}
	m.dir = newFrameTable(m.numBufs)
	return firstErr
}

// ResidentCount returns the number of valid frames.
func (m *BufMgr) ResidentCount() int {
	n := 0
	for i := range m.descTable {
		if m.descTable[i].valid {
			n++
		}
	}
	return n
}

// String renders the frame table for diagnostics.
func (m *BufMgr) String() string {
	var b strings.Builder
	for i := range m.descTable {
		fmt.Fprintf(&b, "%s\n", m.descTable[i].String())
	}
	fmt.Fprintf(&b, "total valid frames: %d\n", m.ResidentCount())
	return b.String()
}
