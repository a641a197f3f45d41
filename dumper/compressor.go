package dumper

import "github.com/xishang0128/lzma-dumper/compression"

// LZMACompressionID is the squashfs superblock id of the lzma compressor.
const LZMACompressionID = 2

// Compressor is the lzma compressor handed to the image reader. Compression
// always writes the standard variant; decompression goes through the
// dispatcher's variant detection.
type Compressor struct {
	dispatcher *Dispatcher
	blockSize  int
}

// NewCompressor creates a compressor for images with the given block size.
func NewCompressor(d *Dispatcher, blockSize int) *Compressor {
	return &Compressor{dispatcher: d, blockSize: blockSize}
}

func (c *Compressor) Name() string {
	return "lzma"
}

func (c *Compressor) ID() int {
	return LZMACompressionID
}

func (c *Compressor) BlockSize() int {
	return c.blockSize
}

func (c *Compressor) Dispatcher() *Dispatcher {
	return c.dispatcher
}

// Compress writes src into dst and returns the compressed length.
// compression.ErrOutOfSpace tells the caller to store the block uncompressed.
func (c *Compressor) Compress(dst, src []byte) (int, error) {
	return compression.EncodeStandard(dst, src, c.blockSize)
}

// Uncompress decodes src into dst and returns the decompressed length.
func (c *Compressor) Uncompress(dst, src []byte) (int, error) {
	return c.dispatcher.Uncompress(dst, src)
}
