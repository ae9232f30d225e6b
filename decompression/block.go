package decompression

import "fmt"

type BlockType uint8

const (
	BlockStored BlockType = iota
	BlockFixed
	BlockDynamic
	BlockReserved
)

func (t BlockType) String() string {
	switch t {
	case BlockStored:
		return "BlockType(Stored)"
	case BlockFixed:
		return "BlockType(Fixed)"
	case BlockDynamic:
		return "BlockType(Dynamic)"
	case BlockReserved:
		return "BlockType(Reserved)"
	}
	return "BlockType(UNKNOWN)"
}

// BlockHeader is the 3-bit header that starts every block.
type BlockHeader struct {
	Final bool
	Type  BlockType
}

// DynamicHeader holds the code counts declared by a dynamic block.
type DynamicHeader struct {
	Literals    int // 257..286
	Distances   int // 1..30
	CodeLengths int // 4..19
}

// BlockInfo describes a block once it has been decoded.
type BlockInfo struct {
	BlockHeader
	Dynamic DynamicHeader // only set for dynamic blocks

	InputOffset int64 // input byte offset of the block header
	InputSize   int64 // input bytes spanned by the block
	Size        int64 // bytes produced by the block
}

func (info BlockInfo) String() string {
	return fmt.Sprintf("block(final=%v, type=%s, in=%d@%d, out=%d)",
		info.Final, info.Type, info.InputSize, info.InputOffset, info.Size)
}

func (d *Decoder) readHeader() (BlockHeader, error) {
	v, err := d.br.bits(3)
	if err != nil {
		return BlockHeader{}, err
	}
	return BlockHeader{
		Final: v&1 == 1,
		Type:  BlockType(v >> 1),
	}, nil
}

// stored copies an uncompressed block straight from the input.
func (d *Decoder) stored() error {
	d.br.alignToByte()

	v, err := d.br.bits(32)
	if err != nil {
		return err
	}
	n := uint16(v)
	if nn := uint16(v >> 16); nn != ^n {
		return ErrCorruptStoredBlockLength
	}
	d.br.alignToByte()

	data, err := d.br.readBytes(int(n))
	if err != nil {
		return err
	}
	for _, b := range data {
		if err := d.window.Literal(b); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) fixed() error {
	lit, dist := fixedTables()
	return d.tokens(lit, dist)
}

func (d *Decoder) dynamic() (DynamicHeader, error) {
	var hdr DynamicHeader

	v, err := d.br.bits(5 + 5 + 4)
	if err != nil {
		return hdr, err
	}
	hdr.Literals = int(v&0x1f) + 257
	hdr.Distances = int(v>>5&0x1f) + 1
	hdr.CodeLengths = int(v>>10&0xf) + 4
	if hdr.Literals > maxLitLenCodes || hdr.Distances > maxDistCodes {
		return hdr, ErrDynamicHeaderOverflow
	}

	var clens [numCodeLengths]uint8
	for i := 0; i < hdr.CodeLengths; i++ {
		l, err := d.br.bits(3)
		if err != nil {
			return hdr, err
		}
		clens[codeLengthOrder[i]] = uint8(l)
	}
	cl, err := buildTable(clens[:], &codeLengthAlphabet)
	if err != nil {
		return hdr, err
	}

	lengths := d.lengths[:hdr.Literals+hdr.Distances]
	for i := 0; i < len(lengths); {
		e, err := d.br.decode(cl)
		if err != nil {
			return hdr, err
		}

		sym := e.value
		if sym < 16 {
			lengths[i] = uint8(sym)
			i++
			continue
		}

		var (
			rep  int
			nb   uint
			fill uint8
		)
		switch sym {
		case 16:
			if i == 0 {
				return hdr, ErrInvalidLengthRepeat
			}
			rep, nb, fill = 3, 2, lengths[i-1]
		case 17:
			rep, nb = 3, 3
		case 18:
			rep, nb = 11, 7
		default:
			return hdr, ErrInvalidSymbol
		}

		x, err := d.br.bits(nb)
		if err != nil {
			return hdr, err
		}
		rep += int(x)
		if i+rep > len(lengths) {
			return hdr, ErrInvalidLengthRepeat
		}
		for ; rep > 0; rep-- {
			lengths[i] = fill
			i++
		}
	}

	if lengths[endOfBlock] == 0 {
		return hdr, ErrInvalidSymbol
	}

	lit, err := buildTable(lengths[:hdr.Literals], &litLenAlphabet)
	if err != nil {
		return hdr, err
	}
	dist, err := buildTable(lengths[hdr.Literals:], &distAlphabet)
	if err != nil {
		return hdr, err
	}
	return hdr, d.tokens(lit, dist)
}

// tokens runs the literal/length/distance loop of a Huffman block until
// the end-of-block symbol.
func (d *Decoder) tokens(lit, dist *huffmanTable) error {
	for {
		e, err := d.br.decode(lit)
		if err != nil {
			return err
		}

		switch e.op {
		case opLiteral:
			if err := d.window.Literal(byte(e.value)); err != nil {
				return err
			}
			continue
		case opEndOfBlock:
			return nil
		case opBase:
		default:
			return ErrInvalidSymbol
		}

		length := int(e.value)
		if e.extra > 0 {
			x, err := d.br.bits(uint(e.extra))
			if err != nil {
				return err
			}
			length += int(x)
		}

		e, err = d.br.decode(dist)
		if err != nil {
			return err
		}
		if e.op != opBase {
			return ErrInvalidSymbol
		}
		distance := int(e.value)
		if e.extra > 0 {
			x, err := d.br.bits(uint(e.extra))
			if err != nil {
				return err
			}
			distance += int(x)
		}

		if err := d.window.Copy(length, distance); err != nil {
			return err
		}
	}
}
