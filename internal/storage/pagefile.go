package storage

import (
	"fmt"
	"io"
	"os"
)

// File is the page-granular file abstraction the buffer pool consumes.
// Implementations must have stable identity: the pool keys its directory on
// the interface value, so a *DiskFile must never be copied or re-wrapped
// while any of its pages are resident.
type File interface {
	// ReadPage reads page pageNo into a freshly allocated Page.
	ReadPage(pageNo PageID) (Page, error)

	// WritePage writes p back to the offset derived from its header id.
	WritePage(p Page) error

	// AllocatePage extends the file (or reuses a deleted id) and returns a
	// zeroed page with its id assigned.
	AllocatePage() (Page, error)

	// DeletePage zeroes page pageNo on disk and makes its id reusable.
	DeletePage(pageNo PageID) error

	// Filename reports the file's path, used in error messages.
	Filename() string
}

var _ File = (*DiskFile)(nil)

// DiskFile stores pages back to back in a single OS file.
//
// Deleted page ids are kept on an in-memory free list and handed back out by
// AllocatePage; the list is not persisted, so reopening a file forgets which
// ids were freed and allocation continues past the old end.
type DiskFile struct {
	file      *os.File
	name      string
	pageCount int
	freeList  []PageID
	deleted   map[PageID]bool
}

// Open opens or creates the page file at path.
func Open(path string) (*DiskFile, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, FileMode0664)
	if err != nil {
		return nil, fmt.Errorf("open page file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat page file: %w", err)
	}

	return &DiskFile{
		file:      f,
		name:      path,
		pageCount: int(info.Size() / PageSize),
		deleted:   make(map[PageID]bool),
	}, nil
}

func (d *DiskFile) Filename() string {
	return d.name
}

// PageCount returns the number of pages ever allocated, deleted ones included.
func (d *DiskFile) PageCount() int {
	return d.pageCount
}

func (d *DiskFile) ReadPage(pageNo PageID) (Page, error) {
	if int(pageNo) >= d.pageCount || d.deleted[pageNo] {
		return Page{}, fmt.Errorf("%s: read page %d: %w", d.name, pageNo, ErrPageNotFound)
	}

	p := Page{Buf: make([]byte, PageSize)}
	n, err := d.file.ReadAt(p.Buf, int64(pageNo)*PageSize)
	if err != nil && err != io.EOF {
		return Page{}, fmt.Errorf("%s: read page %d: %w", d.name, pageNo, err)
	}
	// Zero-fill the rest of the page on a short read near EOF.
	for i := n; i < PageSize; i++ {
		p.Buf[i] = 0
	}
	if p.IsUninitialized() {
		p.Init(pageNo)
	}
	return p, nil
}

func (d *DiskFile) WritePage(p Page) error {
	if len(p.Buf) != PageSize {
		return ErrPageSize
	}
	pageNo := p.PageID()
	if int(pageNo) >= d.pageCount || d.deleted[pageNo] {
		return fmt.Errorf("%s: write page %d: %w", d.name, pageNo, ErrPageNotFound)
	}

	n, err := d.file.WriteAt(p.Buf, int64(pageNo)*PageSize)
	if err != nil {
		return fmt.Errorf("%s: write page %d: %w", d.name, pageNo, err)
	}
	if n != PageSize {
		return io.ErrShortWrite
	}
	return nil
}

func (d *DiskFile) AllocatePage() (Page, error) {
	var pageNo PageID
	if n := len(d.freeList); n > 0 {
		pageNo = d.freeList[n-1]
		d.freeList = d.freeList[:n-1]
		delete(d.deleted, pageNo)
	} else {
		pageNo = PageID(d.pageCount)
		d.pageCount++
	}

	p := NewPage(pageNo)
	if _, err := d.file.WriteAt(p.Buf, int64(pageNo)*PageSize); err != nil {
		return Page{}, fmt.Errorf("%s: allocate page %d: %w", d.name, pageNo, err)
	}
	return p, nil
}

func (d *DiskFile) DeletePage(pageNo PageID) error {
	if int(pageNo) >= d.pageCount || d.deleted[pageNo] {
		return fmt.Errorf("%s: delete page %d: %w", d.name, pageNo, ErrPageNotFound)
	}

	zero := make([]byte, PageSize)
	if _, err := d.file.WriteAt(zero, int64(pageNo)*PageSize); err != nil {
		return fmt.Errorf("%s: delete page %d: %w", d.name, pageNo, err)
	}
	d.deleted[pageNo] = true
	d.freeList = append(d.freeList, pageNo)
	return nil
}

// Close closes the underlying OS file.
func (d *DiskFile) Close() error {
	return d.file.Close()
}
