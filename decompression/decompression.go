// Package decompression implements a decoder for the DEFLATE compressed
// data format described in RFC 1951, along with a table of decompressors
// keyed by the method byte of the containers that carry it.
package decompression

import "io"

// Method identifies a compression method as recorded by a container
// format, such as the CM byte of a gzip member.
type Method uint8

const MethodDeflate Method = 8

// Decompressor decodes the payload at the start of src into dst and
// returns how many bytes of src it consumed.
type Decompressor = func(src []byte, dst io.Writer, options ...Options) (int, error)

type LUT map[Method]Decompressor

var Decompressors = struct {
	Gzip LUT
}{
	Gzip: LUT{
		MethodDeflate: Inflate,
	},
}
