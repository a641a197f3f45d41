package compression

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
	"github.com/ulikunitz/xz/lzma"
)

// DefaultSqlzmaDictCap matches the dictionary size of the sqlzma userspace tools.
const DefaultSqlzmaDictCap = 8 << 20

// SqlzmaContext is the shared state of the sqlzma decoder. Build it once per
// process or image and hand it to NewSqlzmaDecoder.
type SqlzmaContext struct {
	dictCap int

	mu sync.Mutex
	zr io.ReadCloser
}

// NewSqlzmaContext validates the dictionary limit the sqlzma decoder may use.
// A zero dictCap selects DefaultSqlzmaDictCap.
func NewSqlzmaContext(dictCap int) (*SqlzmaContext, error) {
	if dictCap == 0 {
		dictCap = DefaultSqlzmaDictCap
	}
	if dictCap < lzma.MinDictCap || int64(dictCap) > lzma.MaxDictCap {
		return nil, fmt.Errorf("%w: dictionary capacity %d out of range [%d, %d]",
			ErrSqlzmaInit, dictCap, lzma.MinDictCap, int64(lzma.MaxDictCap))
	}
	return &SqlzmaContext{dictCap: dictCap}, nil
}

// inflate decodes a zlib block, reusing the context's reader between calls.
func (c *SqlzmaContext) inflate(dst, src []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.zr == nil {
		zr, err := zlib.NewReader(bytes.NewReader(src))
		if err != nil {
			return 0, err
		}
		c.zr = zr
	} else if err := c.zr.(zlib.Resetter).Reset(bytes.NewReader(src), nil); err != nil {
		return 0, err
	}

	n, err := readBlock(dst, c.zr)
	if err != nil {
		return 0, err
	}
	// A full destination with data left over is an overflow, not a success.
	if n == len(dst) {
		var probe [1]byte
		if m, _ := c.zr.Read(probe[:]); m > 0 {
			return 0, errOutputFull
		}
	}
	return n, nil
}

// SqlzmaDecoder decodes blocks written by the sqlzma kernel patches, which mix
// zlib blocks and standard LZMA blocks in one image.
type SqlzmaDecoder struct {
	ctx *SqlzmaContext
}

// NewSqlzmaDecoder creates a new sqlzma decoder. With a nil context every call
// fails with ErrVariantDisabled.
func NewSqlzmaDecoder(ctx *SqlzmaContext) Decoder {
	return &SqlzmaDecoder{ctx: ctx}
}

func (d *SqlzmaDecoder) Decode(dst, src []byte) (int, error) {
	if d.ctx == nil {
		return 0, codecError(VariantSqlzma, ErrVariantDisabled)
	}

	var (
		n   int
		err error
	)
	if isZlib(src) {
		n, err = d.ctx.inflate(dst, src)
	} else if len(src) < HeaderSize {
		err = errShortBlock
	} else {
		props := src[:PropsSize]
		size := binary.LittleEndian.Uint64(src[PropsSize:HeaderSize])
		capped := make([]byte, PropsSize)
		copy(capped, props)
		binary.LittleEndian.PutUint32(capped[1:], clampDictCap(binary.LittleEndian.Uint32(props[1:]), d.ctx.dictCap))
		n, err = decodeLZMA(dst, capped, size, src[HeaderSize:])
	}
	if err != nil {
		return 0, codecError(VariantSqlzma, err)
	}
	return n, nil
}

func (d *SqlzmaDecoder) Variant() Variant {
	return VariantSqlzma
}

func (d *SqlzmaDecoder) Implementation() string {
	return "Pure Go (klauspost/compress/zlib, ulikunitz/xz/lzma)"
}

// isZlib checks the RFC 1950 header: deflate method and a valid FCHECK.
func isZlib(src []byte) bool {
	if len(src) < 2 {
		return false
	}
	return src[0]&0x0f == 8 && src[0]>>4 <= 7 && (uint16(src[0])<<8|uint16(src[1]))%31 == 0
}
