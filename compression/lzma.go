package compression

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

const (
	// PropsSize is the length of the lc/lp/pb byte plus the 32-bit dictionary size.
	PropsSize = 5
	// HeaderSize is the standard header: properties and a 64-bit uncompressed length.
	HeaderSize = PropsSize + 8

	unknownSize = ^uint64(0)
)

// decodeLZMA decodes an LZMA1 payload whose properties are stored apart from it.
// A known size must fit dst and is decoded exactly; unknownSize decodes until the
// end marker or until dst is full.
func decodeLZMA(dst, props []byte, size uint64, payload []byte) (int, error) {
	if len(props) < PropsSize {
		return 0, errShortBlock
	}

	limit := len(dst)
	if size != unknownSize {
		if size > uint64(len(dst)) {
			return 0, errOutputFull
		}
		limit = int(size)
	}

	dictCap := clampDictCap(binary.LittleEndian.Uint32(props[1:PropsSize]), limit)
	h := bytes.NewBuffer(make([]byte, 0, HeaderSize))
	h.WriteByte(props[0])
	_ = binary.Write(h, binary.LittleEndian, dictCap)
	_ = binary.Write(h, binary.LittleEndian, size)

	// The reader refuses headers declaring more than DictCap.
	cfg := lzma.ReaderConfig{DictCap: max(int(dictCap), lzma.MinDictCap)}
	r, err := cfg.NewReader(io.MultiReader(h, bytes.NewReader(payload)))
	if err != nil {
		return 0, err
	}
	n, err := readBlock(dst[:limit], r)
	if err == nil && size != unknownSize && n != limit {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}

// clampDictCap limits the dictionary to what the output can ever reference.
func clampDictCap(declared uint32, limit int) uint32 {
	c := max(limit, lzma.MinDictCap)
	if uint64(declared) > uint64(c) {
		return uint32(c)
	}
	return declared
}

// readBlock fills dst from r. io.EOF before dst is full ends the block cleanly.
func readBlock(dst []byte, r io.Reader) (int, error) {
	n := 0
	for n < len(dst) {
		m, err := r.Read(dst[n:])
		n += m
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
