package compression

import (
	"bytes"
	"errors"

	"github.com/ulikunitz/xz/lzma"
)

var errDictProp = errors.New("lzmalib: invalid dictionary property")

// LzmaLibDecoder decodes the vendor lzmalib framing: one dictionary property
// byte, as used by xz filter headers, followed by a raw LZMA2 chunk stream.
type LzmaLibDecoder struct{}

// NewLzmaLibDecoder creates a new lzmalib decoder
func NewLzmaLibDecoder() Decoder {
	return &LzmaLibDecoder{}
}

func (d *LzmaLibDecoder) Decode(dst, src []byte) (int, error) {
	if len(src) < 2 {
		return 0, codecError(VariantLzmaLib, errShortBlock)
	}

	dictCap, err := decodeDictProp(src[0])
	if err != nil {
		return 0, codecError(VariantLzmaLib, err)
	}

	cfg := lzma.Reader2Config{DictCap: int(clampDictCap(dictCap, len(dst)))}
	r, err := cfg.NewReader2(bytes.NewReader(src[1:]))
	if err != nil {
		return 0, codecError(VariantLzmaLib, err)
	}

	n, err := readBlock(dst, r)
	if err == nil && n == len(dst) {
		// The stream must end here; more output means dst was too small.
		var probe [1]byte
		if m, _ := r.Read(probe[:]); m > 0 {
			err = errOutputFull
		}
	}
	if err != nil {
		return 0, codecError(VariantLzmaLib, err)
	}
	return n, nil
}

func (d *LzmaLibDecoder) Variant() Variant {
	return VariantLzmaLib
}

func (d *LzmaLibDecoder) Implementation() string {
	return "Pure Go (ulikunitz/xz/lzma, LZMA2)"
}

// decodeDictProp expands the LZMA2 dictionary size byte.
func decodeDictProp(b byte) (uint32, error) {
	switch {
	case b > 40:
		return 0, errDictProp
	case b == 40:
		return 0xffffffff, nil
	default:
		return uint32(2|b&1) << (b/2 + 11), nil
	}
}

// EncodeDictProp returns the smallest dictionary property byte covering n bytes.
func EncodeDictProp(n int) byte {
	for b := byte(0); b < 40; b++ {
		c, _ := decodeDictProp(b)
		if uint64(c) >= uint64(n) {
			return b
		}
	}
	return 40
}
