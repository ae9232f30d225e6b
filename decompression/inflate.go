package decompression

import (
	"bytes"
	"context"
	"io"
)

// Options tune a decompression run.
type Options struct {
	// OnBlock, if set, is called after every successfully decoded block.
	OnBlock func(BlockInfo)
}

// A Decoder turns one DEFLATE payload into its uncompressed bytes. It
// decodes a block at a time; the state between blocks is the only point at
// which a run may be abandoned.
type Decoder struct {
	br      *bitCursor
	window  *Window
	lengths [maxLitLenCodes + maxDistCodes]uint8

	onBlock func(BlockInfo)
	done    bool
	err     error
}

func NewDecoder(src []byte, dst io.Writer, options ...Options) *Decoder {
	d := &Decoder{
		br:     newBitCursor(src),
		window: NewWindow(dst),
	}
	for _, opts := range options {
		if opts.OnBlock != nil {
			d.onBlock = opts.OnBlock
		}
	}
	return d
}

// Done reports whether the final block has been decoded.
func (d *Decoder) Done() bool { return d.done }

// InputOffset reports how many input bytes the decoder has consumed. Once
// Done, it is the exact length of the DEFLATE payload.
func (d *Decoder) InputOffset() int64 { return d.br.offset() }

// Produced reports how many bytes have been decoded so far.
func (d *Decoder) Produced() int64 { return d.window.Produced() }

// Next decodes a single block. After the final block the window is flushed
// and Next returns io.EOF. Any error is sticky.
func (d *Decoder) Next() (BlockInfo, error) {
	if d.err != nil {
		return BlockInfo{}, d.err
	}
	if d.done {
		return BlockInfo{}, io.EOF
	}

	info := BlockInfo{InputOffset: d.br.offset()}
	start := d.window.Produced()

	hdr, err := d.readHeader()
	if err != nil {
		return info, d.fail(err)
	}
	info.BlockHeader = hdr

	switch hdr.Type {
	case BlockStored:
		err = d.stored()
	case BlockFixed:
		err = d.fixed()
	case BlockDynamic:
		info.Dynamic, err = d.dynamic()
	default:
		err = ErrInvalidBlockType
	}
	if err != nil {
		return info, d.fail(err)
	}

	if hdr.Final {
		d.br.alignToByte()
		if err := d.window.Flush(); err != nil {
			return info, d.fail(err)
		}
		d.done = true
	}

	info.InputSize = d.br.offset() - info.InputOffset
	info.Size = d.window.Produced() - start
	if d.onBlock != nil {
		d.onBlock(info)
	}
	return info, nil
}

// Run decodes blocks until the final one, checking ctx between blocks.
func (d *Decoder) Run(ctx context.Context) error {
	for !d.done {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := d.Next(); err != nil {
			return err
		}
	}
	return d.err
}

func (d *Decoder) fail(err error) error {
	if k, ok := err.(Kind); ok {
		err = &DecodeError{Kind: k, Offset: d.br.offset()}
	}
	d.err = err
	return err
}

// Inflate decodes the DEFLATE payload at the start of src into dst and
// returns the number of input bytes it occupied.
func Inflate(src []byte, dst io.Writer, options ...Options) (int, error) {
	d := NewDecoder(src, dst, options...)
	if err := d.Run(context.Background()); err != nil {
		return int(d.InputOffset()), err
	}
	return int(d.InputOffset()), nil
}

// Decompress decodes a complete DEFLATE payload held in memory.
func Decompress(src []byte) ([]byte, error) {
	var out bytes.Buffer
	if _, err := Inflate(src, &out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
