package storage

// PageID identifies a page inside one file.
type PageID = uint32

const (
	_256   = 256
	_256_2 = 256 * 256
	_256_3 = 256 * 256 * 256
)

func GetU16(b []byte, offset int) uint16 {
	return uint16(b[offset]) + uint16(b[offset+1])*_256
}

func PutU16(b []byte, offset int, v uint16) {
	b[offset], b[offset+1] = byte(v%_256), byte(v/_256)
}

func GetU32(b []byte, offset int) uint32 {
	return uint32(b[offset]) +
		uint32(b[offset+1])*_256 +
		uint32(b[offset+2])*_256_2 +
		uint32(b[offset+3])*_256_3
}

func PutU32(b []byte, offset int, v uint32) {
	b[offset] = byte(v % _256)
	b[offset+1] = byte((v / _256) % _256)
	b[offset+2] = byte((v / (_256 * _256)) % _256)
	b[offset+3] = byte((v / (_256 * _256 * _256)) % _256)
}

// +------------------+ 0
// | PageHeaderData   |
// | LinePointers[]   | <-- pd_lower
// +------------------+
// |                  |
// |   Free space     |
// |                  |
// +------------------+ <-- pd_upper
// |  Tuple Data      |
// |  (grows down)    |
// +------------------+ Block/Page Size (8192)
type Page struct {
	Buf []byte
}

// NewPage allocates a fresh page buffer initialized with the given id.
func NewPage(pageID PageID) Page {
	p := Page{Buf: make([]byte, PageSize)}
	p.Init(pageID)
	return p
}

// Init zeroes the page and writes a fresh header for pageID.
func (p Page) Init(pageID PageID) {
	for i := range p.Buf {
		p.Buf[i] = 0
	}
	PutU16(p.Buf, 0, 0)          // flags
	PutU32(p.Buf, 2, pageID)     // page_id
	PutU16(p.Buf, 6, HeaderSize) // pd_lower
	PutU16(p.Buf, 8, PageSize)   // pd_upper
}

// PageID returns the id embedded in the page header.
func (p Page) PageID() PageID {
	return GetU32(p.Buf, 2)
}

func (p Page) Lower() int {
	return int(GetU16(p.Buf, 6))
}

func (p Page) SetLower(v int) {
	PutU16(p.Buf, 6, uint16(v))
}

func (p Page) Upper() int {
	return int(GetU16(p.Buf, 8))
}

func (p Page) SetUpper(v int) {
	PutU16(p.Buf, 8, uint16(v))
}

func (p Page) NumSlots() int {
	return (p.Lower() - HeaderSize) / SlotSize
}

// IsUninitialized reports whether the buffer holds no page header at all
// (all-zero bytes read from a hole in the file).
func (p Page) IsUninitialized() bool {
	return GetU16(p.Buf, 6) == 0 && GetU16(p.Buf, 8) == 0
}

func (p Page) slotOff(idx int) int {
	return HeaderSize + idx*SlotSize
}

func (p Page) GetSlot(i int) (offset, length, flags int) {
	o := p.slotOff(i)
	return int(GetU16(p.Buf, o)),
		int(GetU16(p.Buf, o+2)),
		int(GetU16(p.Buf, o+4))
}

func (p Page) PutSlot(idx, offset, length, flags int) {
	o := p.slotOff(idx)
	PutU16(p.Buf, o, uint16(offset))
	PutU16(p.Buf, o+2, uint16(length))
	PutU16(p.Buf, o+4, uint16(flags))
}

func (p Page) appendSlot(offset, length, flags int) int {
	i := p.NumSlots()
	p.PutSlot(i, offset, length, flags)
	p.SetLower(p.Lower() + SlotSize)
	return i
}

// InsertTuple copies tup into the free space and appends a slot for it.
func (p Page) InsertTuple(tup []byte) (slot int, ok bool) {
	need := len(tup) + SlotSize
	if p.Upper()-p.Lower() < need {
		return -1, false
	}
	u := p.Upper() - len(tup)
	copy(p.Buf[u:], tup)
	p.SetUpper(u)
	return p.appendSlot(u, len(tup), 0), true
}

// ReadTuple returns the bytes stored at slot, or false if the slot is
// out of range or has been deleted.
func (p Page) ReadTuple(slot int) ([]byte, bool) {
	if slot < 0 || slot >= p.NumSlots() {
		return nil, false
	}
	offset, length, flags := p.GetSlot(slot)
	if flags != 0 || offset == 0 || length == 0 {
		return nil, false
	}
	return p.Buf[offset : offset+length], true
}

func (p Page) DeleteTuple(slot int) {
	p.PutSlot(slot, 0, 0, 1)
}
