// Package inflate decompresses gzip files.
//
// DEFLATE, described in RFC 1951, combines LZ77 back-references over a
// 32 KiB window with Huffman coding, and is organised as a sequence of
// stored, fixed-Huffman and dynamic-Huffman blocks. The decoder lives in
// the decompression package; the gzip package handles the RFC 1952
// container around it. This package ties them to files on disk.
package inflate

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/32bitkid/inflate/decompression"
	"github.com/32bitkid/inflate/gzip"
)

// File is a reference to a gzip file on disk.
type File struct {
	Decompressors decompression.LUT
	Path          string

	// OnBlock, if set, is called for every decoded DEFLATE block.
	OnBlock func(member int, info decompression.BlockInfo)
}

func Open(path string) File {
	return File{
		Path:          path,
		Decompressors: decompression.Decompressors.Gzip,
	}
}

// Decompress reads the file and writes the decoded contents of every
// member to w.
func (f File) Decompress(w io.Writer) (gzip.Summary, error) {
	src, err := os.ReadFile(f.Path)
	if err != nil {
		return gzip.Summary{}, errors.Wrap(err, "unable to read file")
	}

	// Default to the gzip decompressors
	decompressors := f.Decompressors
	if decompressors == nil {
		decompressors = decompression.Decompressors.Gzip
	}

	r := &gzip.Reader{
		Decompressors: decompressors,
		OnBlock:       f.OnBlock,
	}
	summary, err := r.Decompress(src, w)
	if err != nil {
		return summary, errors.Wrapf(err, "unable to decompress %s", f.Path)
	}
	return summary, nil
}

// WriteTo implements io.WriterTo.
func (f File) WriteTo(w io.Writer) (int64, error) {
	summary, err := f.Decompress(w)
	return summary.Size, err
}
