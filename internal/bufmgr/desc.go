package bufmgr

import (
	"fmt"

	"github.com/tuannm99/pagebuf/internal/storage"
)

// bufDesc holds the bookkeeping state of one frame.
//
// A descriptor is valid while its frame holds a registered resident page.
// An invalid descriptor always has pin count 0, dirty and refbit cleared,
// and no owning file.
type bufDesc struct {
	frameNo  int
	file     storage.File
	pageNo   storage.PageID
	pinCount int
	dirty    bool
	valid    bool
	refbit   bool
}

// set populates the descriptor for a newly admitted page: valid, one pin,
// clean, recently used.
func (d *bufDesc) set(file storage.File, pageNo storage.PageID) {
	d.file = file
	d.pageNo = pageNo
	d.pinCount = 1
	d.dirty = false
	d.valid = true
	d.refbit = true
}

// clear resets the descriptor to the invalid state. It does not touch the
// frame directory.
func (d *bufDesc) clear() {
	d.file = nil
	d.pageNo = 0
	d.pinCount = 0
	d.dirty = false
	d.valid = false
	d.refbit = false
}

func (d *bufDesc) String() string {
	name := "<none>"
	if d.file != nil {
		name = d.file.Filename()
	}
	return fmt.Sprintf("frame=%d file=%s pageNo=%d pin=%d dirty=%v valid=%v refbit=%v",
		d.frameNo, name, d.pageNo, d.pinCount, d.dirty, d.valid, d.refbit)
}
