package compression

import (
	"encoding/binary"
	"errors"

	"github.com/ulikunitz/xz/lzma"
)

var errNoSpace = errors.New("destination full")

// fixedWriter writes into a fixed slice and fails once it is full.
type fixedWriter struct {
	buf  []byte
	n    int
	full bool
}

func (w *fixedWriter) Write(p []byte) (int, error) {
	if len(p) > len(w.buf)-w.n {
		m := copy(w.buf[w.n:], p)
		w.n += m
		w.full = true
		return m, errNoSpace
	}
	w.n += copy(w.buf[w.n:], p)
	return len(p), nil
}

// EncodeStandard compresses src into dst using the standard framing
// [props][8 byte little-endian size][payload], with lc=3, lp=0, pb=2 and a
// dictionary of blockSize bytes. ErrOutOfSpace is returned when the result does
// not fit dst.
func EncodeStandard(dst, src []byte, blockSize int) (int, error) {
	if len(dst) < HeaderSize {
		return 0, ErrOutOfSpace
	}

	cfg := lzma.WriterConfig{
		Properties:   &lzma.Properties{LC: 3, LP: 0, PB: 2},
		DictCap:      max(blockSize, lzma.MinDictCap),
		SizeInHeader: true,
		Size:         int64(len(src)),
		EOSMarker:    false,
	}
	if err := cfg.Verify(); err != nil {
		return 0, codecError(VariantStandard, err)
	}

	fw := &fixedWriter{buf: dst}
	w, err := cfg.NewWriter(fw)
	if err != nil {
		return 0, encodeError(fw, err)
	}
	if _, err := w.Write(src); err != nil {
		return 0, encodeError(fw, err)
	}
	if err := w.Close(); err != nil {
		return 0, encodeError(fw, err)
	}
	// The writer marks an empty stream as having no size.
	binary.LittleEndian.PutUint64(dst[PropsSize:HeaderSize], uint64(len(src)))
	return fw.n, nil
}

func encodeError(fw *fixedWriter, err error) error {
	if fw.full || errors.Is(err, errNoSpace) {
		return ErrOutOfSpace
	}
	return codecError(VariantStandard, err)
}
