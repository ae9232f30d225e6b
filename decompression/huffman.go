package decompression

import "math/bits"

// Canonical Huffman decoding
//
// A table is a root level indexed by the next rootBits input bits
// (least significant first, so codes are stored bit-reversed) plus one
// second-level table per root prefix whose codes are longer than the
// root. Second-level tables live in an arena owned by the table and are
// addressed by index from link entries.

type op uint8

const (
	opInvalid    op = iota // unused code space
	opLiteral              // value is the symbol itself
	opEndOfBlock           // value is the end-of-block symbol
	opBase                 // value is a base, extra bits follow the code
	opLink                 // value indexes subs, extra is the sub-table width
)

type entry struct {
	op    op
	bits  uint8 // bits consumed at this level
	extra uint8
	value uint16
}

type level struct {
	bits    uint8
	entries []entry
}

func (l *level) mask() uint64 {
	return 1<<l.bits - 1
}

type huffmanTable struct {
	root level
	subs []level
}

// size reports the total number of entries across all levels.
func (t *huffmanTable) size() int {
	n := len(t.root.entries)
	for i := range t.subs {
		n += len(t.subs[i].entries)
	}
	return n
}

// emptyTable decodes nothing; any lookup is an invalid symbol.
func emptyTable() *huffmanTable {
	return &huffmanTable{
		root: level{
			bits:    1,
			entries: []entry{{op: opInvalid, bits: 1}, {op: opInvalid, bits: 1}},
		},
	}
}

// buildTable constructs a decode table for the code lengths in lengths,
// which are indexed by symbol. A length of zero means the symbol is unused.
func buildTable(lengths []uint8, a *alphabet) (*huffmanTable, error) {
	var count [maxCodeLen + 1]int
	for _, l := range lengths {
		if l > maxCodeLen {
			return nil, ErrOversubscribedCodeSet
		}
		count[l]++
	}
	count[0] = 0

	var min, max uint8
	for l := uint8(1); l <= maxCodeLen; l++ {
		if count[l] == 0 {
			continue
		}
		if min == 0 {
			min = l
		}
		max = l
	}
	if max == 0 {
		return emptyTable(), nil
	}

	left := 1
	for l := 1; l <= maxCodeLen; l++ {
		left <<= 1
		left -= count[l]
		if left < 0 {
			return nil, ErrOversubscribedCodeSet
		}
	}
	if left > 0 && !(a.single && max == 1) {
		return nil, ErrIncompleteCodeSet
	}

	var next [maxCodeLen + 1]int
	code := 0
	for l := 1; l <= maxCodeLen; l++ {
		code = (code + count[l-1]) << 1
		next[l] = code
	}

	root := a.rootBits
	if root > max {
		root = max
	}
	if root < min {
		root = min
	}
	rootMask := 1<<root - 1

	// Assign canonical codes in symbol order; within a length this is
	// also code order.
	codes := make([]int, len(lengths))
	widths := make([]uint8, 1<<root)
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		rev := int(bits.Reverse16(uint16(next[l])) >> (16 - l))
		next[l]++
		codes[sym] = rev
		if l > root {
			prefix := rev & rootMask
			if w := l - root; w > widths[prefix] {
				widths[prefix] = w
			}
		}
	}

	t := &huffmanTable{
		root: level{bits: root, entries: make([]entry, 1<<root)},
	}
	for i := range t.root.entries {
		t.root.entries[i] = entry{op: opInvalid, bits: 1}
	}

	total := len(t.root.entries)
	for prefix, w := range widths {
		if w == 0 {
			continue
		}
		total += 1 << w
		if total > a.limit {
			return nil, ErrTableOverflow
		}
		t.root.entries[prefix] = entry{op: opLink, bits: root, extra: w, value: uint16(len(t.subs))}
		t.subs = append(t.subs, level{bits: w, entries: make([]entry, 1<<w)})
	}

	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		e := a.leaf(sym)
		rev := codes[sym]
		if l <= root {
			e.bits = l
			for i := rev; i < len(t.root.entries); i += 1 << l {
				t.root.entries[i] = e
			}
			continue
		}

		sub := &t.subs[t.root.entries[rev&rootMask].value]
		e.bits = l - root
		for i := rev >> root; i < len(sub.entries); i += 1 << e.bits {
			sub.entries[i] = e
		}
	}

	return t, nil
}
