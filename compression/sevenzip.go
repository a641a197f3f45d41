package compression

// SevenZipDecoder decodes the 7-Zip coder framing: [props][payload]. As with a
// 7z folder, the unpacked size comes from outside the stream and is the full
// destination capacity.
type SevenZipDecoder struct{}

// NewSevenZipDecoder creates a new 7z-framed LZMA decoder
func NewSevenZipDecoder() Decoder {
	return &SevenZipDecoder{}
}

func (d *SevenZipDecoder) Decode(dst, src []byte) (int, error) {
	if len(src) < PropsSize {
		return 0, codecError(VariantSevenZip, errShortBlock)
	}

	n, err := decodeLZMA(dst, src[:PropsSize], uint64(len(dst)), src[PropsSize:])
	if err != nil {
		return 0, codecError(VariantSevenZip, err)
	}
	return n, nil
}

func (d *SevenZipDecoder) Variant() Variant {
	return VariantSevenZip
}

func (d *SevenZipDecoder) Implementation() string {
	return "Pure Go (ulikunitz/xz/lzma)"
}
