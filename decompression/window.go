package decompression

import (
	"io"

	"github.com/pkg/errors"
)

// Window is the 32 KiB history of a decompression run. Bytes written to it
// are handed to the sink whenever the buffer fills and on Flush; they stay
// available as back-reference history until overwritten.
type Window struct {
	hist    [windowSize]byte
	pos     int   // next write position
	flushed int   // start of bytes not yet handed to sink
	total   int64 // bytes produced over the whole stream

	sink io.Writer
}

func NewWindow(sink io.Writer) *Window {
	return &Window{sink: sink}
}

// Produced reports how many bytes have been written over the whole run.
func (w *Window) Produced() int64 { return w.total }

func (w *Window) Literal(b byte) error {
	w.hist[w.pos] = b
	w.pos++
	w.total++
	if w.pos == windowSize {
		return w.Flush()
	}
	return nil
}

// Copy repeats length bytes starting distance bytes behind the cursor.
// Overlapping copies replicate the bytes they have just written.
func (w *Window) Copy(length, distance int) error {
	if distance < 1 || distance > windowSize || int64(distance) > w.total {
		return ErrInvalidBackReference
	}

	src := w.pos - distance
	if src < 0 {
		src += windowSize
	}

	for length > 0 {
		n := length
		if x := windowSize - w.pos; n > x {
			n = x
		}
		if x := windowSize - src; n > x {
			n = x
		}

		if src+n <= w.pos || w.pos+n <= src {
			copy(w.hist[w.pos:w.pos+n], w.hist[src:src+n])
		} else {
			for i := 0; i < n; i++ {
				w.hist[w.pos+i] = w.hist[src+i]
			}
		}

		w.pos += n
		w.total += int64(n)
		length -= n

		src += n
		if src == windowSize {
			src = 0
		}
		if w.pos == windowSize {
			if err := w.Flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush writes all unflushed bytes to the sink.
func (w *Window) Flush() error {
	if w.pos > w.flushed {
		if _, err := w.sink.Write(w.hist[w.flushed:w.pos]); err != nil {
			return errors.Wrap(err, "unable to write decompressed data")
		}
	}
	if w.pos == windowSize {
		w.pos = 0
	}
	w.flushed = w.pos
	return nil
}
