package decompression

// bitCursor reads DEFLATE's LSB-first bit groups out of an in-memory
// payload. Bytes enter the buffer at the high end and bits leave from
// the low end.
type bitCursor struct {
	src       []byte
	pos       int
	buffer    uint64
	remaining uint
}

func newBitCursor(src []byte) *bitCursor {
	return &bitCursor{src: src}
}

// fill tops up the buffer one byte at a time until it holds n bits or the
// input is exhausted. n must not exceed 56.
func (br *bitCursor) fill(n uint) {
	for br.remaining < n && br.pos < len(br.src) {
		br.buffer |= uint64(br.src[br.pos]) << br.remaining
		br.pos++
		br.remaining += 8
	}
}

func (br *bitCursor) need(n uint) error {
	br.fill(n)
	if br.remaining < n {
		return ErrTruncatedStream
	}
	return nil
}

// take returns the low n bits of the buffer and discards them. The caller
// must have established n valid bits with need.
func (br *bitCursor) take(n uint) uint32 {
	val := uint32(br.buffer & (1<<n - 1))
	br.buffer >>= n
	br.remaining -= n
	return val
}

func (br *bitCursor) bits(n uint) (uint32, error) {
	if err := br.need(n); err != nil {
		return 0, err
	}
	return br.take(n), nil
}

// alignToByte drops the rest of a partially consumed byte. Whole bytes still
// sitting in the buffer are handed back to the input so that byte-oriented
// reads continue from the right place.
func (br *bitCursor) alignToByte() {
	br.pos -= int(br.remaining >> 3)
	br.buffer = 0
	br.remaining = 0
}

// readBytes returns the next n input bytes. Only valid after alignToByte.
func (br *bitCursor) readBytes(n int) ([]byte, error) {
	if n > len(br.src)-br.pos {
		br.pos = len(br.src)
		return nil, ErrTruncatedStream
	}
	b := br.src[br.pos : br.pos+n]
	br.pos += n
	return b, nil
}

// decode reads one symbol using t. It peeks as many bits as the input can
// supply and fails only when the matched code is longer than what remains.
func (br *bitCursor) decode(t *huffmanTable) (entry, error) {
	br.fill(uint(t.root.bits))
	e := t.root.entries[br.buffer&t.root.mask()]
	n := uint(e.bits)
	if e.op == opLink {
		sub := &t.subs[e.value]
		br.fill(n + uint(sub.bits))
		e = sub.entries[(br.buffer>>n)&sub.mask()]
		n += uint(e.bits)
	}
	if n > br.remaining {
		return entry{}, ErrTruncatedStream
	}
	br.buffer >>= n
	br.remaining -= n
	if e.op == opInvalid {
		return entry{}, ErrInvalidSymbol
	}
	return e, nil
}

// offset reports how many input bytes have been consumed, counting a
// partially consumed byte as consumed.
func (br *bitCursor) offset() int64 {
	return int64(br.pos) - int64(br.remaining>>3)
}
