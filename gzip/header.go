package gzip

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"time"

	"github.com/32bitkid/bitreader"
	"github.com/pkg/errors"

	"github.com/32bitkid/inflate/decompression"
)

const (
	gzipID1 = 0x1f
	gzipID2 = 0x8b

	fixedHeaderSize = 10
	trailerSize     = 8
)

// Header is the metadata recorded at the start of a gzip member.
type Header struct {
	Method     decompression.Method
	Text       bool      // content is probably text
	ModTime    time.Time // zero if unset
	ExtraFlags uint8
	OS         uint8
	Extra      []byte
	Name       string
	Comment    string
	HeaderCRC  bool // header carried a CRC-16
}

type headerFlags struct {
	reserved                         uint8
	comment, name, extra, hcrc, text bool
}

// ParseHeader reads a member header from the start of b and returns it
// with the number of bytes it occupied.
func ParseHeader(b []byte) (Header, int, error) {
	var hdr Header
	if len(b) < fixedHeaderSize {
		return hdr, 0, errors.Wrap(ErrTruncated, "reading header")
	}

	// The fixed part: ID1 ID2 CM FLG MTIME(4) XFL OS
	br := bitreader.NewReader(bytes.NewReader(b[:fixedHeaderSize]))

	var err error
	read8 := func() uint8 {
		if err != nil {
			return 0
		}
		var v uint8
		v, err = br.Read8(8)
		return v
	}
	read1 := func() bool {
		if err != nil {
			return false
		}
		var v bool
		v, err = br.Read1()
		return v
	}

	id1, id2 := read8(), read8()
	hdr.Method = decompression.Method(read8())

	// FLG, most significant bit first
	var flags headerFlags
	for i := 0; i < 3; i++ {
		flags.reserved <<= 1
		if read1() {
			flags.reserved |= 1
		}
	}
	flags.comment = read1()
	flags.name = read1()
	flags.extra = read1()
	flags.hcrc = read1()
	flags.text = read1()

	var mtime uint32
	for i := 0; i < 4; i++ {
		mtime |= uint32(read8()) << (8 * uint(i))
	}
	hdr.ExtraFlags = read8()
	hdr.OS = read8()
	if err != nil {
		return hdr, 0, errors.Wrap(err, "reading fixed header")
	}

	if id1 != gzipID1 || id2 != gzipID2 {
		return hdr, 0, errors.Wrapf(ErrHeader, "bad magic %#02x %#02x", id1, id2)
	}
	if flags.reserved != 0 {
		return hdr, 0, errors.Wrapf(ErrHeader, "reserved flags %#x set", flags.reserved)
	}

	hdr.Text = flags.text
	hdr.HeaderCRC = flags.hcrc
	if mtime > 0 {
		hdr.ModTime = time.Unix(int64(mtime), 0)
	}

	pos := fixedHeaderSize
	if flags.extra {
		if len(b)-pos < 2 {
			return hdr, 0, errors.Wrap(ErrTruncated, "reading extra field length")
		}
		n := int(binary.LittleEndian.Uint16(b[pos:]))
		pos += 2
		if len(b)-pos < n {
			return hdr, 0, errors.Wrap(ErrTruncated, "reading extra field")
		}
		hdr.Extra = append([]byte(nil), b[pos:pos+n]...)
		pos += n
	}

	if flags.name {
		s, n, err := readString(b[pos:])
		if err != nil {
			return hdr, 0, errors.Wrap(err, "reading file name")
		}
		hdr.Name = s
		pos += n
	}

	if flags.comment {
		s, n, err := readString(b[pos:])
		if err != nil {
			return hdr, 0, errors.Wrap(err, "reading comment")
		}
		hdr.Comment = s
		pos += n
	}

	if flags.hcrc {
		if len(b)-pos < 2 {
			return hdr, 0, errors.Wrap(ErrTruncated, "reading header checksum")
		}
		expected := binary.LittleEndian.Uint16(b[pos:])
		if actual := uint16(crc32.ChecksumIEEE(b[:pos])); actual != expected {
			return hdr, 0, errors.Wrapf(ErrHeaderChecksum, "expected(%#04x) != actual(%#04x)", expected, actual)
		}
		pos += 2
	}

	return hdr, pos, nil
}

// readString reads a zero-terminated ISO 8859-1 string.
func readString(b []byte) (string, int, error) {
	end := bytes.IndexByte(b, 0)
	if end < 0 {
		return "", 0, ErrTruncated
	}

	runes := make([]rune, end)
	for i, c := range b[:end] {
		runes[i] = rune(c)
	}
	return string(runes), end + 1, nil
}
