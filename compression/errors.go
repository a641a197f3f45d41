package compression

import (
	"errors"
	"fmt"
	"io"
)

// Codec error codes, numbered like the LZMA SDK SZ_ERROR_* values.
const (
	CodeData        = 1
	CodeMem         = 2
	CodeUnsupported = 4
	CodeParam       = 5
	CodeInputEOF    = 6
	CodeOutputEOF   = 7
)

var (
	// ErrVariantDisabled is reported by a decoder that refuses to run at all.
	ErrVariantDisabled = errors.New("lzma variant disabled")
	// ErrOutOfSpace means the compressed block did not fit the destination;
	// callers store the block uncompressed instead.
	ErrOutOfSpace = errors.New("compressed block does not fit in destination")
	// ErrSqlzmaInit is returned when a sqlzma context cannot be set up.
	ErrSqlzmaInit = errors.New("sqlzma: context initialisation failed")

	errOutputFull = errors.New("decoded block exceeds destination capacity")
	errShortBlock = errors.New("block shorter than its header")
)

// CodecError is a variant-specific decode or encode failure.
type CodecError struct {
	Variant Variant
	Code    int
	Err     error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("%s: error code %d: %v", e.Variant, e.Code, e.Err)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func codecError(v Variant, err error) error {
	return &CodecError{Variant: v, Code: errorCode(err), Err: err}
}

func errorCode(err error) int {
	switch {
	case errors.Is(err, ErrVariantDisabled):
		return CodeUnsupported
	case errors.Is(err, errOutputFull), errors.Is(err, ErrOutOfSpace):
		return CodeOutputEOF
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF), errors.Is(err, errShortBlock):
		return CodeInputEOF
	default:
		return CodeData
	}
}
