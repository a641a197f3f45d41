package compression

import "encoding/binary"

// Header is the interpretation of a standard-variant block header.
type Header struct {
	Props []byte
	// SizeValid is false when the length field was missing or larger than the
	// output capacity and the block is read as [props][payload].
	SizeValid bool
	Size      uint32
	// PayloadOffset is where the compressed stream starts within the block.
	PayloadOffset int
	// OutLen is the number of bytes the codec is asked to produce.
	OutLen int
}

// InspectHeader reads the little-endian length field that follows the codec
// properties. Several encoders omit that field; a value beyond capacity is taken
// as a sign of that and the header shrinks to the properties alone. src must hold
// at least PropsSize bytes.
//
// Only the low 32 bits of the field are considered, as written by the squashfs
// tools.
func InspectHeader(src []byte, capacity int) Header {
	h := Header{Props: src[:PropsSize]}

	if len(src) >= HeaderSize {
		size := binary.LittleEndian.Uint32(src[PropsSize:HeaderSize])
		if capacity >= 0 && uint64(size) <= uint64(capacity) {
			h.SizeValid = true
			h.Size = size
			h.PayloadOffset = HeaderSize
			h.OutLen = int(size)
			return h
		}
	}

	h.PayloadOffset = PropsSize
	h.OutLen = capacity
	return h
}
