package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPageHeader(t *testing.T) {
	p := NewPage(7)
	require.Equal(t, PageID(7), p.PageID())
	require.Equal(t, HeaderSize, p.Lower())
	require.Equal(t, PageSize, p.Upper())
	require.Equal(t, 0, p.NumSlots())
	require.False(t, p.IsUninitialized())
}

func TestUninitializedDetection(t *testing.T) {
	p := Page{Buf: make([]byte, PageSize)}
	require.True(t, p.IsUninitialized())
}

func TestInsertAndReadTuple(t *testing.T) {
	p := NewPage(0)

	s0, ok := p.InsertTuple([]byte("first"))
	require.True(t, ok)
	s1, ok := p.InsertTuple([]byte("second"))
	require.True(t, ok)
	require.Equal(t, 2, p.NumSlots())

	got, ok := p.ReadTuple(s0)
	require.True(t, ok)
	require.Equal(t, []byte("first"), got)
	got, ok = p.ReadTuple(s1)
	require.True(t, ok)
	require.Equal(t, []byte("second"), got)
}

func TestDeleteTuple(t *testing.T) {
	p := NewPage(0)
	slot, ok := p.InsertTuple([]byte("gone"))
	require.True(t, ok)

	p.DeleteTuple(slot)
	_, ok = p.ReadTuple(slot)
	require.False(t, ok)
}

func TestReadTupleOutOfRange(t *testing.T) {
	p := NewPage(0)
	_, ok := p.ReadTuple(-1)
	require.False(t, ok)
	_, ok = p.ReadTuple(0)
	require.False(t, ok)
}

func TestInsertTupleFullPage(t *testing.T) {
	p := NewPage(0)

	big := make([]byte, PageSize-HeaderSize-SlotSize)
	_, ok := p.InsertTuple(big)
	require.True(t, ok)

	_, ok = p.InsertTuple([]byte("x"))
	require.False(t, ok)
}

func TestU16U32RoundTrip(t *testing.T) {
	b := make([]byte, 8)
	PutU16(b, 0, 0xBEEF)
	require.Equal(t, uint16(0xBEEF), GetU16(b, 0))
	PutU32(b, 2, 0xDEADBEEF)
	require.Equal(t, uint32(0xDEADBEEF), GetU32(b, 2))
}
