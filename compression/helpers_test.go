package compression

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/ulikunitz/xz/lzma"
)

// sample returns deterministic data that compresses reasonably well.
func sample(n int) []byte {
	rng := rand.New(rand.NewSource(int64(n) + 1))
	words := [][]byte{[]byte("squashfs "), []byte("firmware "), []byte("block "), []byte("lzma "), []byte("\x00\x00\x00\x00")}
	out := make([]byte, 0, n)
	for len(out) < n {
		if rng.Intn(4) == 0 {
			out = append(out, byte(rng.Intn(256)))
			continue
		}
		out = append(out, words[rng.Intn(len(words))]...)
	}
	return out[:n]
}

// encodeAlone produces a 13 byte header stream. Without a size the header holds
// the unknown-size marker and the payload ends with an end marker.
func encodeAlone(t *testing.T, data []byte, withSize bool) []byte {
	t.Helper()

	cfg := lzma.WriterConfig{DictCap: 1 << 16}
	if withSize {
		cfg.SizeInHeader = true
		cfg.Size = int64(len(data))
	} else {
		cfg.EOSMarker = true
	}

	var buf bytes.Buffer
	w, err := cfg.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	out := buf.Bytes()
	if withSize {
		// The writer stores the unknown-size marker for empty input.
		binary.LittleEndian.PutUint64(out[PropsSize:HeaderSize], uint64(len(data)))
	}
	return out
}

func propsAndPayload(t *testing.T, data []byte, withSize bool) (props, payload []byte) {
	t.Helper()
	s := encodeAlone(t, data, withSize)
	return s[:PropsSize], s[HeaderSize:]
}

func encodeLzmaLib(t *testing.T, data []byte) []byte {
	t.Helper()

	const dictCap = 1 << 16
	var buf bytes.Buffer
	buf.WriteByte(EncodeDictProp(dictCap))
	w, err := lzma.Writer2Config{DictCap: dictCap}.NewWriter2(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func encodeLzmaLib7z(t *testing.T, data []byte) []byte {
	t.Helper()
	props, payload := propsAndPayload(t, data, true)
	out := append([]byte{}, props...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(data)))
	return append(out, payload...)
}

func encodeWRT(t *testing.T, data []byte) []byte {
	t.Helper()
	props, payload := propsAndPayload(t, data, true)
	out := binary.LittleEndian.AppendUint32(nil, uint32(len(data)))
	out = append(out, props...)
	return append(out, payload...)
}

func encodeZlib(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
