package decompression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTableRejects(t *testing.T) {
	for _, tc := range []struct {
		name    string
		lengths []uint8
		alpha   *alphabet
		err     error
	}{
		{"three one-bit codes", []uint8{1, 1, 1}, &litLenAlphabet, ErrOversubscribedCodeSet},
		{"too many short codes", []uint8{2, 2, 2, 2, 2, 3}, &distAlphabet, ErrOversubscribedCodeSet},
		{"gap in code space", []uint8{1, 2}, &litLenAlphabet, ErrIncompleteCodeSet},
		{"three two-bit codes", []uint8{2, 2, 2}, &distAlphabet, ErrIncompleteCodeSet},
		{"lone code length code", []uint8{0, 1, 0}, &codeLengthAlphabet, ErrIncompleteCodeSet},
		{"length above fifteen", []uint8{1, 16}, &litLenAlphabet, ErrOversubscribedCodeSet},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tbl, err := buildTable(tc.lengths, tc.alpha)
			assert.Nil(t, tbl)
			assert.Equal(t, tc.err, err)
		})
	}
}

func TestBuildTableEmpty(t *testing.T) {
	tbl, err := buildTable(make([]uint8, 30), &distAlphabet)
	require.NoError(t, err)

	_, err = newBitCursor([]byte{0x00}).decode(tbl)
	assert.Equal(t, ErrInvalidSymbol, err)
}

func TestBuildTableSingleCode(t *testing.T) {
	lengths := make([]uint8, 30)
	lengths[3] = 1
	tbl, err := buildTable(lengths, &distAlphabet)
	require.NoError(t, err)

	// code 0 decodes, code 1 is unused
	e, err := newBitCursor([]byte{0x00}).decode(tbl)
	require.NoError(t, err)
	assert.Equal(t, opBase, e.op)
	assert.Equal(t, distBase[3], e.value)

	_, err = newBitCursor([]byte{0x01}).decode(tbl)
	assert.Equal(t, ErrInvalidSymbol, err)
}

func TestBuildTableOverflow(t *testing.T) {
	small := alphabet{simple: 16, eob: -1, first: 16, rootBits: 2, limit: 4}
	_, err := buildTable([]uint8{1, 2, 3, 3}, &small)
	assert.Equal(t, ErrTableOverflow, err)

	small.limit = 6
	_, err = buildTable([]uint8{1, 2, 3, 3}, &small)
	assert.NoError(t, err)
}

// The example code of RFC 1951 section 3.2.2: ABCDEFGH with lengths
// (3, 3, 3, 3, 3, 2, 4, 4).
func TestCanonicalCodes(t *testing.T) {
	lengths := []uint8{3, 3, 3, 3, 3, 2, 4, 4}
	codes := []struct {
		code uint32
		len  uint
	}{
		{0x2, 3}, {0x3, 3}, {0x4, 3}, {0x5, 3}, {0x6, 3},
		{0x0, 2},
		{0xe, 4}, {0xf, 4},
	}

	tbl, err := buildTable(lengths, &codeLengthAlphabet)
	require.NoError(t, err)

	w := &bitWriter{}
	for _, c := range codes {
		w.code(c.code, c.len)
	}
	br := newBitCursor(w.bytes())

	consumed := uint(0)
	for sym, c := range codes {
		e, err := br.decode(tbl)
		require.NoError(t, err)
		assert.Equal(t, opLiteral, e.op)
		assert.Equal(t, uint16(sym), e.value)

		consumed += c.len
		assert.Equal(t, consumed, uint(br.pos)*8-br.remaining)
	}
}

func TestLongCodesUseSubTables(t *testing.T) {
	// 1, 2, ..., 14 bit codes plus two 15 bit codes form a complete code.
	lengths := make([]uint8, 286)
	for i := 0; i < 14; i++ {
		lengths[i] = uint8(i + 1)
	}
	lengths[14] = 15
	lengths[15] = 15

	tbl, err := buildTable(lengths, &litLenAlphabet)
	require.NoError(t, err)
	require.Len(t, tbl.subs, 1)
	assert.Equal(t, uint8(6), tbl.subs[0].bits)
	assert.Equal(t, 512+64, tbl.size())

	// code for length l is l-1 ones followed by a zero; the last two codes
	// are all ones with a trailing zero or one.
	w := &bitWriter{}
	for l := uint(1); l <= 14; l++ {
		w.code(1<<l-2, l)
	}
	w.code(1<<15-2, 15)
	w.code(1<<15-1, 15)
	br := newBitCursor(w.bytes())

	for sym := 0; sym < 16; sym++ {
		e, err := br.decode(tbl)
		require.NoError(t, err, "symbol %d", sym)
		assert.Equal(t, opLiteral, e.op)
		assert.Equal(t, uint16(sym), e.value)
	}
}

func TestBuildTableDeterministic(t *testing.T) {
	lit, _ := fixedTables()

	a, err := buildTable(fixedLitLengths(), &litLenAlphabet)
	require.NoError(t, err)
	b, err := buildTable(fixedLitLengths(), &litLenAlphabet)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, lit, a)
}

func TestFixedTables(t *testing.T) {
	lit, dist := fixedTables()
	assert.Empty(t, lit.subs)
	assert.Equal(t, uint8(9), lit.root.bits)
	assert.Equal(t, uint8(5), dist.root.bits)

	for _, tc := range []struct {
		code uint32
		len  uint
		op   op
		val  uint16
	}{
		{0x30, 8, opLiteral, 0},
		{0x30 + 'A', 8, opLiteral, 'A'},
		{0x190, 9, opLiteral, 144},
		{0x1ff, 9, opLiteral, 255},
		{0x00, 7, opEndOfBlock, 256},
		{0x01, 7, opBase, 3},
		{0xc5, 8, opBase, 258},
	} {
		w := &bitWriter{}
		w.code(tc.code, tc.len)
		e, err := newBitCursor(w.bytes()).decode(lit)
		require.NoError(t, err)
		assert.Equal(t, tc.op, e.op, "code %#x", tc.code)
		assert.Equal(t, tc.val, e.value, "code %#x", tc.code)
		assert.Equal(t, uint8(tc.len), e.bits, "code %#x", tc.code)
	}

	for _, code := range []uint32{0xc6, 0xc7} {
		w := &bitWriter{}
		w.code(code, 8)
		_, err := newBitCursor(w.bytes()).decode(lit)
		assert.Equal(t, ErrInvalidSymbol, err)
	}

	for _, code := range []uint32{30, 31} {
		w := &bitWriter{}
		w.code(code, 5)
		_, err := newBitCursor(w.bytes()).decode(dist)
		assert.Equal(t, ErrInvalidSymbol, err)
	}
}

func TestDecodeTruncatedCode(t *testing.T) {
	lit, _ := fixedTables()

	// the first eight bits of the nine bit code for 255
	w := &bitWriter{}
	w.code(0xff, 8)

	_, err := newBitCursor(w.bytes()).decode(lit)
	assert.Equal(t, ErrTruncatedStream, err)
}

func fixedLitLengths() []uint8 {
	lengths := make([]uint8, 288)
	for i := range lengths {
		switch {
		case i < 144:
			lengths[i] = 8
		case i < 256:
			lengths[i] = 9
		case i < 280:
			lengths[i] = 7
		default:
			lengths[i] = 8
		}
	}
	return lengths
}
