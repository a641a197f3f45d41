// Package compression provides the LZMA variant decoders used when reading firmware images.
package compression

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

type Variant int

const (
	VariantStandard Variant = iota + 1
	VariantSevenZip
	VariantSqlzma
	VariantLzmaLib
	VariantLzmaLib7z
	// VariantLzmaWRT is known to crash or loop on unrelated input and must stay last.
	VariantLzmaWRT
)

// Variants lists every variant in default trial order.
var Variants = []Variant{
	VariantStandard,
	VariantSevenZip,
	VariantSqlzma,
	VariantLzmaLib,
	VariantLzmaLib7z,
	VariantLzmaWRT,
}

// String returns the string representation of the variant
func (v Variant) String() string {
	switch v {
	case VariantStandard:
		return "standard"
	case VariantSevenZip:
		return "7z"
	case VariantSqlzma:
		return "sqlzma"
	case VariantLzmaLib:
		return "lzmalib"
	case VariantLzmaLib7z:
		return "lzmalib-7z"
	case VariantLzmaWRT:
		return "lzma-wrt"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// Fragile reports whether the variant may only be tried as a last resort.
func (v Variant) Fragile() bool {
	return v == VariantLzmaWRT
}

// ParseVariant parses the name produced by String.
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, v := range Variants {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown lzma variant: %q", s)
}

// Decoder is the interface for decoding one block of a single LZMA variant.
// len(dst) is the caller-declared output capacity.
type Decoder interface {
	Decode(dst, src []byte) (int, error)
	Variant() Variant
	Implementation() string
}

// ManagerConfig carries the handles and flags the decoders are built from.
type ManagerConfig struct {
	Logger *slog.Logger
	// Sqlzma is the shared sqlzma context. Nil disables the sqlzma variant.
	Sqlzma *SqlzmaContext
	// AllowFragile opens the gate of the lzma-wrt decoder.
	AllowFragile bool
}

type DecoderManager struct {
	decoders map[Variant]Decoder
}

// NewDecoderManager creates a new decoder manager with all variant decoders
func NewDecoderManager(cfg ManagerConfig) *DecoderManager {
	manager := &DecoderManager{
		decoders: make(map[Variant]Decoder),
	}

	manager.Register(NewStandardDecoder(cfg.Logger))
	manager.Register(NewSevenZipDecoder())
	manager.Register(NewSqlzmaDecoder(cfg.Sqlzma))
	manager.Register(NewLzmaLibDecoder())
	manager.Register(NewLzmaLib7zDecoder())
	manager.Register(NewLzmaWRTDecoder(cfg.AllowFragile))

	return manager
}

// Register installs d for its variant, replacing any previous decoder.
func (m *DecoderManager) Register(d Decoder) {
	m.decoders[d.Variant()] = d
}

// GetDecoder returns the decoder for the specified variant
func (m *DecoderManager) GetDecoder(v Variant) (Decoder, error) {
	decoder, exists := m.decoders[v]
	if !exists {
		return nil, fmt.Errorf("unsupported lzma variant: %s", v.String())
	}
	return decoder, nil
}

// GetImplementationInfo returns information about the implementation of each decoder
func (m *DecoderManager) GetImplementationInfo() map[Variant]string {
	info := make(map[Variant]string)
	for v, d := range m.decoders {
		info[v] = d.Implementation()
	}
	return info
}

// GetBuildInfo returns build information about compression support
func GetBuildInfo() map[string]interface{} {
	return map[string]interface{}{
		"go_version": runtime.Version(),
		"goos":       runtime.GOOS,
		"goarch":     runtime.GOARCH,
	}
}
