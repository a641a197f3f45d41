package compression

import "encoding/binary"

// LzmaWRTHeaderSize is the 32-bit uncompressed size followed by the properties.
const LzmaWRTHeaderSize = 4 + PropsSize

// LzmaWRTDecoder decodes the DD-WRT lzma framing: [4 byte little-endian
// size][props][payload]. The vendor decoder is known to crash or never return on
// data of another framing, so it only runs when the image was identified as a
// DD-WRT image.
type LzmaWRTDecoder struct {
	enabled bool
	decode  func(dst, src []byte) (int, error)
}

// NewLzmaWRTDecoder creates a new lzma-wrt decoder. A disabled decoder fails
// every call with ErrVariantDisabled.
func NewLzmaWRTDecoder(enabled bool) Decoder {
	return &LzmaWRTDecoder{enabled: enabled, decode: decodeWRT}
}

func (d *LzmaWRTDecoder) Decode(dst, src []byte) (int, error) {
	if !d.enabled {
		return 0, codecError(VariantLzmaWRT, ErrVariantDisabled)
	}

	n, err := d.decode(dst, src)
	if err != nil {
		return 0, codecError(VariantLzmaWRT, err)
	}
	return n, nil
}

func (d *LzmaWRTDecoder) Variant() Variant {
	return VariantLzmaWRT
}

func (d *LzmaWRTDecoder) Implementation() string {
	return "Pure Go (ulikunitz/xz/lzma)"
}

func decodeWRT(dst, src []byte) (int, error) {
	if len(src) < LzmaWRTHeaderSize {
		return 0, errShortBlock
	}
	size := binary.LittleEndian.Uint32(src[:4])
	return decodeLZMA(dst, src[4:LzmaWRTHeaderSize], uint64(size), src[LzmaWRTHeaderSize:])
}
