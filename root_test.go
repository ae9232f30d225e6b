package inflate

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/32bitkid/inflate/decompression"
)

func writeGzip(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestFileWriteTo(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789abcdef"), 10000)
	path := writeGzip(t, t.TempDir(), "data.gz", data)

	var out bytes.Buffer
	n, err := Open(path).WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)
	assert.Equal(t, data, out.Bytes())

	var _ io.WriterTo = Open(path)
}

func TestFileBlocks(t *testing.T) {
	path := writeGzip(t, t.TempDir(), "blocks.gz", []byte("some text"))

	var blocks []decompression.BlockInfo
	f := File{Path: path, OnBlock: func(member int, info decompression.BlockInfo) {
		assert.Equal(t, 0, member)
		blocks = append(blocks, info)
	}}

	summary, err := f.Decompress(io.Discard)
	require.NoError(t, err)
	assert.Equal(t, int64(9), summary.Size)
	require.NotEmpty(t, blocks)
	assert.True(t, blocks[len(blocks)-1].Final)
}

func TestFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.gz")).WriteTo(io.Discard)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))

	path := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("not compressed at all"), 0o644))
	_, err = Open(path).WriteTo(io.Discard)
	assert.Error(t, err)
}
