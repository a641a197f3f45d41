package compression

import "log/slog"

// StandardDecoder decodes the LZMA1 "alone" framing written by the squashfs tools:
// [props][8 byte little-endian size][payload].
type StandardDecoder struct {
	logger *slog.Logger
}

// NewStandardDecoder creates a new standard LZMA decoder using ulikunitz/xz/lzma
func NewStandardDecoder(logger *slog.Logger) Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &StandardDecoder{logger: logger}
}

func (d *StandardDecoder) Decode(dst, src []byte) (int, error) {
	if len(src) < PropsSize {
		return 0, codecError(VariantStandard, errShortBlock)
	}

	h := InspectHeader(src, len(dst))
	size := unknownSize
	if h.SizeValid {
		size = uint64(h.Size)
	} else {
		d.logger.Debug("lzma block does not appear to contain a valid size field",
			"block_len", len(src), "capacity", len(dst))
	}

	n, err := decodeLZMA(dst[:h.OutLen], h.Props, size, src[h.PayloadOffset:])
	if err != nil {
		return 0, codecError(VariantStandard, err)
	}
	return n, nil
}

func (d *StandardDecoder) Variant() Variant {
	return VariantStandard
}

func (d *StandardDecoder) Implementation() string {
	return "Pure Go (ulikunitz/xz/lzma)"
}
