package dumper

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/xishang0128/lzma-dumper/compression"
)

const testBlockSize = 16 << 10

// sampleData returns compressible data that differs per seed.
func sampleData(n, seed int) []byte {
	var buf bytes.Buffer
	for i := 0; buf.Len() < n; i++ {
		fmt.Fprintf(&buf, "inode %d seed %d offset %08x\n", i%97, seed, i*seed)
	}
	return buf.Bytes()[:n]
}

func newTestCompressor() *Compressor {
	d := NewDefaultDispatcher(NewDetectionContext(false), nil, discardLogger())
	return NewCompressor(d, testBlockSize)
}

func TestCompressorIdentity(t *testing.T) {
	c := newTestCompressor()
	if c.Name() != "lzma" || c.ID() != LZMACompressionID || c.BlockSize() != testBlockSize {
		t.Fatalf("name=%s id=%d block=%d", c.Name(), c.ID(), c.BlockSize())
	}
}

func TestCompressorRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"one byte", []byte{0x42}},
		{"one block", sampleData(testBlockSize, 1)},
		{"short block", sampleData(testBlockSize/3, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCompressor()
			dst := make([]byte, testBlockSize+64)
			n, err := c.Compress(dst, tt.data)
			if err != nil {
				t.Fatalf("compress: %v", err)
			}

			out := make([]byte, testBlockSize)
			m, err := c.Uncompress(out, dst[:n])
			if err != nil {
				t.Fatalf("uncompress: %v", err)
			}
			if !bytes.Equal(out[:m], tt.data) {
				t.Fatalf("round trip mismatch: %d bytes, want %d", m, len(tt.data))
			}

			v, ok := c.Dispatcher().Detection().Confirmed()
			if len(tt.data) == 0 {
				if ok {
					t.Fatal("empty block confirmed a variant")
				}
				return
			}
			if !ok || v != compression.VariantStandard {
				t.Fatalf("confirmed %v %v", v, ok)
			}
		})
	}
}

func TestCompressorMultipleBlocks(t *testing.T) {
	c := newTestCompressor()
	data := sampleData(3*testBlockSize+100, 3)

	var blocks [][]byte
	for off := 0; off < len(data); off += testBlockSize {
		end := min(off+testBlockSize, len(data))
		dst := make([]byte, testBlockSize)
		n, err := c.Compress(dst, data[off:end])
		if err != nil {
			t.Fatalf("block at %d: %v", off, err)
		}
		blocks = append(blocks, dst[:n])
	}

	var got []byte
	out := make([]byte, testBlockSize)
	for i, b := range blocks {
		n, err := c.Uncompress(out, b)
		if err != nil {
			t.Fatalf("block %d: %v", i, err)
		}
		got = append(got, out[:n]...)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("multi-block round trip mismatch")
	}
}

func TestCompressorOutOfSpace(t *testing.T) {
	c := newTestCompressor()
	_, err := c.Compress(make([]byte, 8), []byte("does not fit"))
	if !errors.Is(err, compression.ErrOutOfSpace) {
		t.Fatalf("expected ErrOutOfSpace, got %v", err)
	}
}
