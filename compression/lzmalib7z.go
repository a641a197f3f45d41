package compression

import "encoding/binary"

// LzmaLib7zHeaderSize is the properties followed by a 32-bit uncompressed size.
const LzmaLib7zHeaderSize = PropsSize + 4

// LzmaLib7zDecoder decodes the vendor lzma7z framing:
// [props][4 byte little-endian size][payload].
type LzmaLib7zDecoder struct{}

// NewLzmaLib7zDecoder creates a new lzmalib 7z decoder
func NewLzmaLib7zDecoder() Decoder {
	return &LzmaLib7zDecoder{}
}

func (d *LzmaLib7zDecoder) Decode(dst, src []byte) (int, error) {
	if len(src) < LzmaLib7zHeaderSize {
		return 0, codecError(VariantLzmaLib7z, errShortBlock)
	}

	size := binary.LittleEndian.Uint32(src[PropsSize:LzmaLib7zHeaderSize])
	n, err := decodeLZMA(dst, src[:PropsSize], uint64(size), src[LzmaLib7zHeaderSize:])
	if err != nil {
		return 0, codecError(VariantLzmaLib7z, err)
	}
	return n, nil
}

func (d *LzmaLib7zDecoder) Variant() Variant {
	return VariantLzmaLib7z
}

func (d *LzmaLib7zDecoder) Implementation() string {
	return "Pure Go (ulikunitz/xz/lzma)"
}
