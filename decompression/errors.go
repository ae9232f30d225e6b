package decompression

import "strconv"

// Kind classifies a decoding failure. Each Kind is itself an error so that
// callers can match with errors.Is regardless of where it was raised.
type Kind uint8

const (
	ErrTruncatedStream Kind = iota + 1
	ErrIncompleteCodeSet
	ErrOversubscribedCodeSet
	ErrTableOverflow
	ErrInvalidBlockType
	ErrCorruptStoredBlockLength
	ErrInvalidSymbol
	ErrInvalidBackReference
	ErrDynamicHeaderOverflow
	ErrInvalidLengthRepeat
)

func (k Kind) Error() string {
	switch k {
	case ErrTruncatedStream:
		return "inflate: truncated stream"
	case ErrIncompleteCodeSet:
		return "inflate: incomplete code set"
	case ErrOversubscribedCodeSet:
		return "inflate: oversubscribed code set"
	case ErrTableOverflow:
		return "inflate: decode table too large"
	case ErrInvalidBlockType:
		return "inflate: invalid block type"
	case ErrCorruptStoredBlockLength:
		return "inflate: stored block length mismatch"
	case ErrInvalidSymbol:
		return "inflate: invalid symbol"
	case ErrInvalidBackReference:
		return "inflate: back-reference beyond produced output"
	case ErrDynamicHeaderOverflow:
		return "inflate: too many length or distance codes"
	case ErrInvalidLengthRepeat:
		return "inflate: invalid code length repeat"
	}
	return "inflate: unknown error " + strconv.Itoa(int(k))
}

// A DecodeError reports a failure detected at a given input byte offset.
type DecodeError struct {
	Kind   Kind
	Offset int64
}

func (e *DecodeError) Error() string {
	return e.Kind.Error() + " at offset " + strconv.FormatInt(e.Offset, 10)
}

func (e *DecodeError) Unwrap() error { return e.Kind }
