// Package snapshot copies quiesced page files into zstd-compressed archives.
//
// A snapshot is only consistent if the pool has flushed the file first
// (BufMgr.FlushFile); snapshotting a file with resident dirty pages captures
// whatever is on disk, not what callers last wrote through the pool.
package snapshot

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// Write compresses the page file at src into dst.
func Write(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("snapshot: open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("snapshot: create archive: %w", err)
	}
	defer out.Close()

	enc, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("snapshot: new encoder: %w", err)
	}

	if _, err := io.Copy(enc, in); err != nil {
		enc.Close()
		return fmt.Errorf("snapshot: compress: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("snapshot: flush encoder: %w", err)
	}
	return out.Close()
}

// Restore decompresses the archive at src into a page file at dst.
func Restore(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("snapshot: open archive: %w", err)
	}
	defer in.Close()

	dec, err := zstd.NewReader(in)
	if err != nil {
		return fmt.Errorf("snapshot: new decoder: %w", err)
	}
	defer dec.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("snapshot: create page file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, dec.IOReadCloser()); err != nil {
		return fmt.Errorf("snapshot: decompress: %w", err)
	}
	return out.Close()
}
