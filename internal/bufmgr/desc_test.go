package bufmgr

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/pagebuf/internal/storage"
)

func TestDescSetAndClear(t *testing.T) {
	f, err := storage.Open(filepath.Join(t.TempDir(), "desc.pgf"))
	require.NoError(t, err)
	defer f.Close()

	d := bufDesc{frameNo: 7}
	d.set(f, 3)
	require.Equal(t, 7, d.frameNo)
	require.Equal(t, storage.PageID(3), d.pageNo)
	require.Equal(t, 1, d.pinCount)
	require.True(t, d.valid)
	require.True(t, d.refbit)
	require.False(t, d.dirty)

	d.dirty = true
	d.clear()
	require.Equal(t, 7, d.frameNo)
	require.Nil(t, d.file)
	require.Equal(t, 0, d.pinCount)
	require.False(t, d.valid)
	require.False(t, d.refbit)
	require.False(t, d.dirty)
}

func TestDescStringInvalid(t *testing.T) {
	d := bufDesc{frameNo: 2}
	d.clear()
	require.Contains(t, d.String(), "frame=2")
	require.Contains(t, d.String(), "<none>")
}
