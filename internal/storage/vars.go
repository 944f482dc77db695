package storage

import "errors"

const (
	OneB  = 1
	OneKB = 1024
	OneMB = OneKB * 1024
	OneGB = OneMB * 1024

	// 8KB page size, similar to PostgreSQL
	PageSize = OneKB * 8

	HeaderSize = 24
	SlotSize   = 6
)

const (
	FileMode0644 = 0o644 // rw-r--r--
	FileMode0664 = 0o664 // rw-rw-r--
	FileMode0755 = 0o755 // rwxr-xr-x
)

var (
	// ErrPageNotFound is returned when a page id was never allocated by the
	// file or has already been deleted.
	ErrPageNotFound = errors.New("storage: page not found")

	// ErrPageSize is returned when a page buffer is not exactly PageSize bytes.
	ErrPageSize = errors.New("storage: page buffer must be exactly one page")
)
