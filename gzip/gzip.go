// Package gzip reads gzip files (RFC 1952), handing each member's payload to
// a decompressor chosen by the member's method byte and validating the
// CRC-32 and size recorded in its trailer.
package gzip

import (
	"bytes"
	"encoding/binary"
	"hash"
	"hash/crc32"
	"io"

	"github.com/pkg/errors"

	"github.com/32bitkid/inflate/decompression"
)

var (
	ErrHeader            = errors.New("gzip: invalid header")
	ErrHeaderChecksum    = errors.New("gzip: invalid header checksum")
	ErrChecksum          = errors.New("gzip: invalid checksum")
	ErrSize              = errors.New("gzip: invalid size")
	ErrTruncated         = errors.New("gzip: unexpected end of data")
	ErrUnsupportedMethod = errors.New("gzip: unsupported compression method")
	ErrTrailingData      = errors.New("gzip: trailing data after last member")
)

// Summary describes a decoded gzip file.
type Summary struct {
	Members        []Header
	CompressedSize int64
	Size           int64
}

// Reader decodes whole gzip files held in memory.
type Reader struct {
	Decompressors decompression.LUT

	// OnBlock, if set, is called for every block decoded from member.
	OnBlock func(member int, info decompression.BlockInfo)
}

func NewReader() *Reader {
	return &Reader{
		Decompressors: decompression.Decompressors.Gzip,
	}
}

type checksumWriter struct {
	w    io.Writer
	crc  hash.Hash32
	size int64
}

func (cw *checksumWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.crc.Write(p[:n])
	cw.size += int64(n)
	return n, err
}

// Decompress decodes every member of src into dst in order.
func (r *Reader) Decompress(src []byte, dst io.Writer) (Summary, error) {
	var summary Summary

	decompressors := r.Decompressors
	if decompressors == nil {
		decompressors = decompression.Decompressors.Gzip
	}

	pos := 0
	for {
		member := len(summary.Members)

		hdr, n, err := ParseHeader(src[pos:])
		if err != nil {
			return summary, errors.Wrapf(err, "member %d", member)
		}
		pos += n

		decompressor, ok := decompressors[hdr.Method]
		if !ok {
			return summary, errors.Wrapf(ErrUnsupportedMethod, "member %d: method %d", member, hdr.Method)
		}

		var options decompression.Options
		if r.OnBlock != nil {
			options.OnBlock = func(info decompression.BlockInfo) {
				r.OnBlock(member, info)
			}
		}

		cw := &checksumWriter{w: dst, crc: crc32.NewIEEE()}
		n, err = decompressor(src[pos:], cw, options)
		if err != nil {
			return summary, errors.Wrapf(err, "member %d", member)
		}
		pos += n

		if len(src)-pos < trailerSize {
			return summary, errors.Wrapf(ErrTruncated, "member %d: reading trailer", member)
		}
		if crc := binary.LittleEndian.Uint32(src[pos:]); crc != cw.crc.Sum32() {
			return summary, errors.Wrapf(ErrChecksum, "member %d: expected(%#08x) != actual(%#08x)", member, crc, cw.crc.Sum32())
		}
		if size := binary.LittleEndian.Uint32(src[pos+4:]); size != uint32(cw.size) {
			return summary, errors.Wrapf(ErrSize, "member %d: expected(%d) != actual(%d)", member, size, uint32(cw.size))
		}
		pos += trailerSize

		summary.Members = append(summary.Members, hdr)
		summary.Size += cw.size
		summary.CompressedSize = int64(pos)

		rest := src[pos:]
		if len(bytes.Trim(rest, "\x00")) == 0 {
			return summary, nil
		}
		if len(rest) < 2 || rest[0] != gzipID1 || rest[1] != gzipID2 {
			return summary, errors.Wrapf(ErrTrailingData, "%d bytes at offset %d", len(rest), pos)
		}
	}
}

// Gunzip decodes a complete gzip file held in memory.
func Gunzip(src []byte) ([]byte, error) {
	var out bytes.Buffer
	if _, err := NewReader().Decompress(src, &out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
