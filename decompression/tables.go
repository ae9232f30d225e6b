package decompression

import "sync"

const (
	windowSize = 1 << 15

	maxCodeLen     = 15
	maxLitLenCodes = 286
	maxDistCodes   = 30
	numCodeLengths = 19

	endOfBlock = 256
)

// Order in which code length code lengths are transmitted.
var codeLengthOrder = [numCodeLengths]uint8{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// Base match length and extra bits for symbols 257..285.
var (
	lengthBase = [...]uint16{
		3, 4, 5, 6, 7, 8, 9, 10, 11, 13,
		15, 17, 19, 23, 27, 31, 35, 43, 51, 59,
		67, 83, 99, 115, 131, 163, 195, 227, 258,
	}
	lengthExtra = [...]uint8{
		0, 0, 0, 0, 0, 0, 0, 0, 1, 1,
		1, 1, 2, 2, 2, 2, 3, 3, 3, 3,
		4, 4, 4, 4, 5, 5, 5, 5, 0,
	}
)

// Base distance and extra bits for symbols 0..29.
var (
	distBase = [...]uint16{
		1, 2, 3, 4, 5, 7, 9, 13, 17, 25,
		33, 49, 65, 97, 129, 193, 257, 385, 513, 769,
		1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
	}
	distExtra = [...]uint8{
		0, 0, 0, 0, 1, 1, 2, 2, 3, 3,
		4, 4, 5, 5, 6, 6, 7, 7, 8, 8,
		9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
	}
)

// An alphabet describes how decoded symbols map onto table leaves.
type alphabet struct {
	simple int // symbols below simple decode to themselves
	eob    int // end-of-block symbol, or -1
	first  int // first symbol described by base and extra
	base   []uint16
	extra  []uint8

	rootBits uint8
	limit    int  // upper bound on table entries
	single   bool // whether a lone code of length 1 is acceptable
}

var (
	litLenAlphabet = alphabet{
		simple:   256,
		eob:      endOfBlock,
		first:    257,
		base:     lengthBase[:],
		extra:    lengthExtra[:],
		rootBits: 9,
		limit:    852,
		single:   true,
	}
	distAlphabet = alphabet{
		simple:   0,
		eob:      -1,
		first:    0,
		base:     distBase[:],
		extra:    distExtra[:],
		rootBits: 6,
		limit:    592,
		single:   true,
	}
	codeLengthAlphabet = alphabet{
		simple:   numCodeLengths,
		eob:      -1,
		first:    numCodeLengths,
		rootBits: 7,
		limit:    128,
	}
)

func (a *alphabet) leaf(sym int) entry {
	switch {
	case sym < a.simple:
		return entry{op: opLiteral, value: uint16(sym)}
	case sym == a.eob:
		return entry{op: opEndOfBlock, value: uint16(sym)}
	case sym >= a.first && sym-a.first < len(a.base):
		i := sym - a.first
		return entry{op: opBase, extra: a.extra[i], value: a.base[i]}
	}
	return entry{op: opInvalid}
}

var (
	fixedOnce sync.Once
	fixedLit  *huffmanTable
	fixedDist *huffmanTable
)

// fixedTables returns the decode tables of fixed Huffman blocks. They are
// built on first use and only read afterwards.
func fixedTables() (*huffmanTable, *huffmanTable) {
	fixedOnce.Do(func() {
		var lit [288]uint8
		for i := range lit {
			switch {
			case i < 144:
				lit[i] = 8
			case i < 256:
				lit[i] = 9
			case i < 280:
				lit[i] = 7
			default:
				lit[i] = 8
			}
		}

		// Symbols 30 and 31 take part in the code but never appear
		// in valid data.
		var dist [32]uint8
		for i := range dist {
			dist[i] = 5
		}

		var err error
		if fixedLit, err = buildTable(lit[:], &litLenAlphabet); err != nil {
			panic(err)
		}
		if fixedDist, err = buildTable(dist[:], &distAlphabet); err != nil {
			panic(err)
		}
	})
	return fixedLit, fixedDist
}
