package dumper

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/xishang0128/lzma-dumper/compression"
)

// fakeDecoder succeeds for the inputs listed in accept and fails with code
// otherwise. Every call is appended to the shared trace.
type fakeDecoder struct {
	variant compression.Variant
	accept  map[string][]byte
	code    int
	trace   *[]compression.Variant
}

func (f *fakeDecoder) Decode(dst, src []byte) (int, error) {
	*f.trace = append(*f.trace, f.variant)
	if out, ok := f.accept[string(src)]; ok {
		return copy(dst, out), nil
	}
	return 0, &compression.CodecError{Variant: f.variant, Code: f.code, Err: fmt.Errorf("%s rejects input", f.variant)}
}

func (f *fakeDecoder) Variant() compression.Variant { return f.variant }
func (f *fakeDecoder) Implementation() string { return "fake" }

type fakeSet struct {
	trace    []compression.Variant
	decoders map[compression.Variant]*fakeDecoder
}

func newFakeDispatcher(t *testing.T, allowFragile bool, logger *slog.Logger) (*Dispatcher, *fakeSet) {
	t.Helper()
	set := &fakeSet{decoders: make(map[compression.Variant]*fakeDecoder)}
	m := compression.NewDecoderManager(compression.ManagerConfig{})
	for i, v := range compression.Variants {
		fd := &fakeDecoder{variant: v, accept: map[string][]byte{}, code: i + 1, trace: &set.trace}
		set.decoders[v] = fd
		m.Register(fd)
	}
	return NewDispatcher(NewDetectionContext(allowFragile), m, logger), set
}

func (s *fakeSet) accept(v compression.Variant, src, out string) {
	s.decoders[v].accept[src] = []byte(out)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestUncompressTriesVariantsInOrder(t *testing.T) {
	d, set := newFakeDispatcher(t, true, discardLogger())

	_, err := d.Uncompress(make([]byte, 16), []byte("garbage"))
	if err == nil {
		t.Fatal("expected exhaustion")
	}
	if !reflect.DeepEqual(set.trace, compression.Variants) {
		t.Fatalf("trial order %v, want %v", set.trace, compression.Variants)
	}
}

func TestUncompressStickyConfirmation(t *testing.T) {
	d, set := newFakeDispatcher(t, false, discardLogger())
	set.accept(compression.VariantLzmaLib, "block0", "hello")
	set.accept(compression.VariantSevenZip, "block1", "world")
	set.accept(compression.VariantLzmaLib, "block1", "other")

	dst := make([]byte, 16)
	n, err := d.Uncompress(dst, []byte("block0"))
	if err != nil {
		t.Fatal(err)
	}
	if string(dst[:n]) != "hello" {
		t.Fatalf("got %q", dst[:n])
	}
	if v, ok := d.Detection().Confirmed(); !ok || v != compression.VariantLzmaLib {
		t.Fatalf("confirmed %v %v", v, ok)
	}

	// The confirmed variant goes first even though another one also accepts.
	set.trace = nil
	n, err = d.Uncompress(dst, []byte("block1"))
	if err != nil {
		t.Fatal(err)
	}
	if string(dst[:n]) != "other" {
		t.Fatalf("got %q", dst[:n])
	}
	if len(set.trace) != 1 || set.trace[0] != compression.VariantLzmaLib {
		t.Fatalf("trace %v", set.trace)
	}
}

func TestUncompressConfirmedVariantNotReplaced(t *testing.T) {
	d, set := newFakeDispatcher(t, false, discardLogger())
	set.accept(compression.VariantSqlzma, "first", "a")
	set.accept(compression.VariantSevenZip, "second", "b")

	dst := make([]byte, 8)
	if _, err := d.Uncompress(dst, []byte("first")); err != nil {
		t.Fatal(err)
	}

	set.trace = nil
	n, err := d.Uncompress(dst, []byte("second"))
	if err != nil {
		t.Fatal(err)
	}
	if string(dst[:n]) != "b" {
		t.Fatalf("got %q", dst[:n])
	}
	want := []compression.Variant{compression.VariantSqlzma, compression.VariantStandard, compression.VariantSevenZip}
	if !reflect.DeepEqual(set.trace, want) {
		t.Fatalf("trace %v, want %v", set.trace, want)
	}
	if v, _ := d.Detection().Confirmed(); v != compression.VariantSqlzma {
		t.Fatalf("confirmed variant changed to %v", v)
	}
}

func TestUncompressExhaustion(t *testing.T) {
	d, _ := newFakeDispatcher(t, true, discardLogger())

	_, err := d.Uncompress(make([]byte, 8), []byte("nothing"))
	var ee *ExhaustionError
	if !errors.As(err, &ee) {
		t.Fatalf("expected ExhaustionError, got %v", err)
	}
	// The fake codes are the 1-based position in the trial order.
	if ee.Code != len(compression.Variants) {
		t.Fatalf("code %d, want the code of the last variant", ee.Code)
	}
	if _, ok := d.Detection().Confirmed(); ok {
		t.Fatal("detection confirmed after exhaustion")
	}
}

func TestUncompressEmptyOutputDoesNotConfirm(t *testing.T) {
	d, set := newFakeDispatcher(t, false, discardLogger())
	set.accept(compression.VariantSevenZip, "empty", "")

	n, err := d.Uncompress(make([]byte, 8), []byte("empty"))
	if err != nil || n != 0 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	if _, ok := d.Detection().Confirmed(); ok {
		t.Fatal("empty result confirmed a variant")
	}
}

func TestUncompressFragileGate(t *testing.T) {
	d := NewDefaultDispatcher(NewDetectionContext(false), nil, discardLogger())

	src := bytes.Repeat([]byte{0xff}, 64)
	_, err := d.Uncompress(make([]byte, 256), src)
	var ee *ExhaustionError
	if !errors.As(err, &ee) {
		t.Fatalf("expected ExhaustionError, got %v", err)
	}
	// Neither the disabled sqlzma nor lzma-wrt decoder may supply the final code.
	if ee.Code == compression.CodeUnsupported {
		t.Fatalf("exhaustion reported the disabled decoder: %v", err)
	}
	if errors.Is(err, compression.ErrVariantDisabled) {
		t.Fatalf("exhaustion wraps ErrVariantDisabled: %v", err)
	}
}

func TestUncompressLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	d, set := newFakeDispatcher(t, false, logger)
	set.accept(compression.VariantSevenZip, "x", "decoded")

	dst := make([]byte, 16)
	for k := 0; k < 3; k++ {
		if _, err := d.Uncompress(dst, []byte("x")); err != nil {
			t.Fatal(err)
		}
	}

	out := buf.String()
	if got := strings.Count(out, "detected lzma variant"); got != 1 {
		t.Fatalf("detection logged %d times:\n%s", got, out)
	}
	if got := strings.Count(out, "trying lzma variant"); got != 2 {
		t.Fatalf("attempts logged %d times:\n%s", got, out)
	}
}
