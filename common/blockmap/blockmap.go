// Package blockmap describes where the compressed blocks of an image live.
//
// A block map is a YAML document:
//
//	block_size: 131072
//	variant: standard
//	sha256: 9f86d08...
//	blocks:
//	  - offset: 0
//	    length: 40211
//	    size: 131072
//	    compressed: true
//
// variant is informational only; readers always detect the variant themselves.
package blockmap

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Block is one block of an image.
type Block struct {
	// Offset of the block within the image.
	Offset int64 `yaml:"offset"`
	// Length of the stored block in bytes.
	Length int `yaml:"length"`
	// Size is the uncompressed size declared by the container.
	Size int `yaml:"size"`
	// Compressed is false for blocks stored as-is because compressing them did
	// not save space.
	Compressed bool `yaml:"compressed"`
}

// Map is the block layout of an image.
type Map struct {
	BlockSize int    `yaml:"block_size"`
	Variant   string `yaml:"variant,omitempty"`

	// SHA256 is the hex digest of the decoded image, if known.
	SHA256 string  `yaml:"sha256,omitempty"`
	Blocks []Block `yaml:"blocks"`
}

var (
	ErrNoBlocks     = errors.New("block map has no blocks")
	ErrBadBlockSize = errors.New("block map has no valid block size")
)

// Whole describes an image that is a single compressed block decoding to at
// most capacity bytes.
func Whole(imageSize int64, capacity int) *Map {
	return &Map{
		BlockSize: capacity,
		Blocks: []Block{{
			Offset:     0,
			Length:     int(imageSize),
			Size:       capacity,
			Compressed: true,
		}},
	}
}

// Load reads a block map from path.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading block map: %w", err)
	}

	var m Map
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing block map %s: %w", path, err)
	}
	return &m, nil
}

// Save writes the block map to path.
func (m *Map) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding block map: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks that every block lies inside an image of imageSize bytes and
// fits the block size.
func (m *Map) Validate(imageSize int64) error {
	if m.BlockSize <= 0 {
		return ErrBadBlockSize
	}
	if len(m.Blocks) == 0 {
		return ErrNoBlocks
	}

	for i, b := range m.Blocks {
		if b.Offset < 0 || b.Length < 0 || b.Offset+int64(b.Length) > imageSize {
			return fmt.Errorf("block %d [%d, +%d) outside image of %d bytes", i, b.Offset, b.Length, imageSize)
		}
		if b.Size < 0 || b.Size > m.BlockSize {
			return fmt.Errorf("block %d size %d exceeds block size %d", i, b.Size, m.BlockSize)
		}
		if !b.Compressed && b.Length != b.Size {
			return fmt.Errorf("stored block %d has length %d but size %d", i, b.Length, b.Size)
		}
	}
	return nil
}

// UncompressedSize is the total size of the decoded image.
func (m *Map) UncompressedSize() int64 {
	var n int64
	for _, b := range m.Blocks {
		n += int64(b.Size)
	}
	return n
}

// OutputOffsets returns where each block starts in the decoded image.
func (m *Map) OutputOffsets() []int64 {
	offsets := make([]int64, len(m.Blocks))
	for i := 1; i < len(m.Blocks); i++ {
		offsets[i] = offsets[i-1] + int64(m.Blocks[i-1].Size)
	}
	return offsets
}
