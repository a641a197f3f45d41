package dumper

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/xishang0128/lzma-dumper/common/blockmap"
	"github.com/xishang0128/lzma-dumper/common/file"
	"github.com/xishang0128/lzma-dumper/compression"
)

// buildImage compresses data into an image file and returns its path and map.
func buildImage(t *testing.T, data []byte) (string, *blockmap.Map) {
	t.Helper()
	var image bytes.Buffer
	m, err := CompressImage(bytes.NewReader(data), &image, newTestCompressor(), testBlockSize)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "image.lzma")
	if err := os.WriteFile(path, image.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path, m
}

func openDumper(t *testing.T, path string, m *blockmap.Map) *Dumper {
	t.Helper()
	f, err := file.NewLocalFile(path)
	if err != nil {
		t.Fatal(err)
	}
	d, err := New(f, m, newTestCompressor())
	if err != nil {
		f.Close()
		t.Fatal(err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

// mixedData has an incompressible first block followed by compressible ones.
func mixedData() []byte {
	noise := make([]byte, testBlockSize)
	rand.New(rand.NewSource(7)).Read(noise)
	return append(noise, sampleData(4*testBlockSize+1234, 5)...)
}

func TestCompressImage(t *testing.T) {
	data := mixedData()
	_, m := buildImage(t, data)

	if len(m.Blocks) != 6 {
		t.Fatalf("%d blocks", len(m.Blocks))
	}
	if m.Blocks[0].Compressed {
		t.Fatal("random block should be stored")
	}
	for i, b := range m.Blocks[1:] {
		if !b.Compressed {
			t.Fatalf("block %d stored", i+1)
		}
	}
	if m.UncompressedSize() != int64(len(data)) {
		t.Fatalf("uncompressed size %d, want %d", m.UncompressedSize(), len(data))
	}
	if m.Variant != compression.VariantStandard.String() {
		t.Fatalf("variant %q", m.Variant)
	}
}

func TestCompressImageRejectsBadBlockSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := CompressImage(bytes.NewReader([]byte("data")), io.Discard, newTestCompressor(), size)
		if !errors.Is(err, blockmap.ErrBadBlockSize) {
			t.Fatalf("block size %d: got %v", size, err)
		}
	}
}

func TestCompressorEmptyBlockSizeField(t *testing.T) {
	c := newTestCompressor()
	dst := make([]byte, compression.HeaderSize+16)
	n, err := c.Compress(dst, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := binary.LittleEndian.Uint64(dst[compression.PropsSize:compression.HeaderSize]); got != 0 {
		t.Fatalf("size field %#x", got)
	}
	m, err := c.Uncompress(make([]byte, testBlockSize), dst[:n])
	if err != nil || m != 0 {
		t.Fatalf("m=%d err=%v", m, err)
	}
}

func TestExtract(t *testing.T) {
	data := mixedData()
	path, m := buildImage(t, data)
	d := openDumper(t, path, m)

	out, err := os.Create(filepath.Join(t.TempDir(), "out.img"))
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	var calls int
	var last ProgressInfo
	n, err := d.Extract(out, 4, func(p ProgressInfo) {
		calls++
		last = p
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len(data)) {
		t.Fatalf("wrote %d bytes, want %d", n, len(data))
	}
	if calls != len(m.Blocks) || last.CompletedBlocks != len(m.Blocks) || last.ProgressPercent != 100 {
		t.Fatalf("progress calls=%d last=%+v", calls, last)
	}
	if last.Variant != compression.VariantStandard.String() {
		t.Fatalf("progress variant %q", last.Variant)
	}

	got, err := os.ReadFile(out.Name())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("extracted image differs")
	}
}

func TestExtractWholeBlock(t *testing.T) {
	data := sampleData(5000, 9)
	dst := make([]byte, len(data)+64)
	n, err := compression.EncodeStandard(dst, data, testBlockSize)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "block.lzma")
	if err := os.WriteFile(path, dst[:n], 0644); err != nil {
		t.Fatal(err)
	}

	d := openDumper(t, path, blockmap.Whole(int64(n), testBlockSize))
	out, err := os.Create(filepath.Join(t.TempDir(), "out.bin"))
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	written, err := d.Extract(out, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if written != int64(len(data)) {
		t.Fatalf("wrote %d", written)
	}
	got, _ := os.ReadFile(out.Name())
	if !bytes.Equal(got, data) {
		t.Fatal("extracted block differs")
	}
}

func TestExtractCorruptBlock(t *testing.T) {
	data := sampleData(3*testBlockSize, 11)
	path, m := buildImage(t, data)

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	b := m.Blocks[2]
	for i := b.Offset; i < b.Offset+int64(b.Length); i++ {
		raw[i] = 0xff
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatal(err)
	}

	d := openDumper(t, path, m)
	out, err := os.Create(filepath.Join(t.TempDir(), "out.img"))
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	if _, err := d.Extract(out, 2, nil); err == nil {
		t.Fatal("expected an error for the corrupt block")
	}
	if v, _ := d.compressor.Dispatcher().Detection().Confirmed(); v != compression.VariantStandard {
		t.Fatalf("confirmed %v", v)
	}
}

func TestProbe(t *testing.T) {
	path, m := buildImage(t, mixedData())
	d := openDumper(t, path, m)

	res, err := d.Probe()
	if err != nil {
		t.Fatal(err)
	}
	if res.Block != 1 || !res.Confirmed || res.Variant != "standard" {
		t.Fatalf("probe %+v", res)
	}
	if res.OutputLength != testBlockSize {
		t.Fatalf("output length %d", res.OutputLength)
	}
	if res.CandidateOrder[0] != "standard" || res.CandidateOrder[len(res.CandidateOrder)-1] != "lzma-wrt" {
		t.Fatalf("candidate order %v", res.CandidateOrder)
	}
	if res.MapVariant != "standard" || !res.MapVariantMatches {
		t.Fatalf("map variant %q matches=%v", res.MapVariant, res.MapVariantMatches)
	}
}

func TestProbeMapVariantHint(t *testing.T) {
	path, m := buildImage(t, mixedData())

	m.Variant = "lzmalib"
	res, err := openDumper(t, path, m).Probe()
	if err != nil {
		t.Fatal(err)
	}
	if res.MapVariant != "lzmalib" || res.MapVariantMatches {
		t.Fatalf("mismatched hint %q matches=%v", res.MapVariant, res.MapVariantMatches)
	}

	m.Variant = "lzma2"
	res, err = openDumper(t, path, m).Probe()
	if err != nil {
		t.Fatal(err)
	}
	if res.MapVariant != "" || res.Variant != "standard" {
		t.Fatalf("unknown hint reported as %q, variant %q", res.MapVariant, res.Variant)
	}
}

func TestProbeNoCompressedBlocks(t *testing.T) {
	noise := make([]byte, 1000)
	rand.New(rand.NewSource(3)).Read(noise)
	path, m := buildImage(t, noise)
	d := openDumper(t, path, m)

	if _, err := d.Probe(); err == nil {
		t.Fatal("expected an error")
	}
}

func TestNewRejectsBadMap(t *testing.T) {
	path, m := buildImage(t, sampleData(testBlockSize, 1))
	m.Blocks[0].Length += 10

	f, err := file.NewLocalFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := New(f, m, newTestCompressor()); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestBlockPool(t *testing.T) {
	buf := blockPool.Get(5000)
	if len(buf) != 5000 || cap(buf) != 8192 {
		t.Fatalf("len=%d cap=%d", len(buf), cap(buf))
	}
	blockPool.Put(buf)
	if bucket(1) != 4096 || bucket(4097) != 8192 || bucket(128<<10) != 128<<10 {
		t.Fatal("unexpected bucket sizes")
	}
}

func TestVerify(t *testing.T) {
	data := mixedData()
	path, m := buildImage(t, data)
	if m.SHA256 == "" {
		t.Fatal("block map has no digest")
	}
	d := openDumper(t, path, m)

	outPath := filepath.Join(t.TempDir(), "out.img")
	out, err := os.Create(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Extract(out, 2, nil); err != nil {
		t.Fatal(err)
	}
	out.Close()

	if err := d.Verify(outPath); err != nil {
		t.Fatalf("verify: %v", err)
	}

	if err := os.WriteFile(outPath, data[:len(data)-1], 0644); err != nil {
		t.Fatal(err)
	}
	if err := d.Verify(outPath); err == nil {
		t.Fatal("truncated image verified")
	}

	m.SHA256 = ""
	if err := d.Verify(outPath); err == nil {
		t.Fatal("verify without digest succeeded")
	}
}
