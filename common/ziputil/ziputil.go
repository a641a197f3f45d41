// Package ziputil locates firmware images stored uncompressed inside zip archives,
// so they can be read in place without extracting the archive.
package ziputil

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/xishang0128/lzma-dumper/common/file"
)

const (
	eocdMagic      = 0x06054b50
	eocd64Magic    = 0x06064b50
	locator64Magic = 0x07064b50
	cdfhMagic      = 0x02014b50
	lfhMagic       = 0x04034b50

	eocdSize      = 22
	eocd64Size    = 56
	locator64Size = 20
	cdfhSize      = 46
	lfhSize       = 30
	maxComment    = 65535

	methodStored = 0
	zip64ExtraID = 0x0001
	sentinel16   = 0xffff
	sentinel32   = 0xffffffff
)

var (
	ErrNotZip      = errors.New("not a zip archive")
	ErrNotFound    = errors.New("entry not found")
	ErrCompressed  = errors.New("entry is not stored")
	errBadDirEntry = errors.New("corrupt central directory")
)

// Entry is the location of a stored entry's data within the archive.
type Entry struct {
	Name   string
	Offset int64
	Size   int64
}

type directory struct {
	records uint64
	size    uint64
	offset  uint64
}

// FindStoredEntry returns where the data of the stored entry name starts and
// how long it is.
func FindStoredEntry(r file.Reader, name string) (Entry, error) {
	eocdOff, eocd, err := findEOCD(r)
	if err != nil {
		return Entry{}, err
	}

	dir := directory{
		records: uint64(binary.LittleEndian.Uint16(eocd[10:12])),
		size:    uint64(binary.LittleEndian.Uint32(eocd[12:16])),
		offset:  uint64(binary.LittleEndian.Uint32(eocd[16:20])),
	}
	if dir.records == sentinel16 || dir.size == sentinel32 || dir.offset == sentinel32 {
		if dir, err = readDirectory64(r, eocdOff); err != nil {
			return Entry{}, err
		}
	}

	cd, err := r.Read(int64(dir.offset), int(dir.size))
	if err != nil {
		return Entry{}, err
	}

	lfhOff, size, err := lookup(cd, dir.records, name)
	if err != nil {
		return Entry{}, err
	}

	lfh, err := r.Read(lfhOff, lfhSize)
	if err != nil {
		return Entry{}, err
	}
	if len(lfh) < lfhSize || binary.LittleEndian.Uint32(lfh[0:4]) != lfhMagic {
		return Entry{}, fmt.Errorf("%s: bad local file header", name)
	}
	nameLen := int64(binary.LittleEndian.Uint16(lfh[26:28]))
	extraLen := int64(binary.LittleEndian.Uint16(lfh[28:30]))

	return Entry{
		Name:   name,
		Offset: lfhOff + lfhSize + nameLen + extraLen,
		Size:   size,
	}, nil
}

// Open returns a reader over the stored entry name of r. When r is not a zip
// archive, r itself is returned.
func Open(r file.Reader, name string) (file.Reader, error) {
	e, err := FindStoredEntry(r, name)
	if errors.Is(err, ErrNotZip) {
		return r, nil
	}
	if err != nil {
		return nil, err
	}
	return file.NewSection(r, e.Offset, e.Size), nil
}

func findEOCD(r file.Reader) (int64, []byte, error) {
	size := r.Size()
	if size < eocdSize {
		return 0, nil, ErrNotZip
	}

	tail, err := r.Read(size-eocdSize, eocdSize)
	if err != nil {
		return 0, nil, err
	}
	if len(tail) == eocdSize && binary.LittleEndian.Uint32(tail) == eocdMagic &&
		binary.LittleEndian.Uint16(tail[20:22]) == 0 {
		return size - eocdSize, tail, nil
	}

	// The archive has a comment; scan back for a record whose comment length
	// reaches exactly to the end of the file.
	window := min(int64(maxComment+eocdSize), size)
	start := size - window
	buf, err := r.Read(start, int(window))
	if err != nil {
		return 0, nil, err
	}
	for pos := len(buf) - eocdSize - 1; pos >= 0; pos-- {
		if binary.LittleEndian.Uint32(buf[pos:]) != eocdMagic {
			continue
		}
		comment := int(binary.LittleEndian.Uint16(buf[pos+20:]))
		if pos+eocdSize+comment == len(buf) {
			return start + int64(pos), buf[pos : pos+eocdSize], nil
		}
	}
	return 0, nil, ErrNotZip
}

func readDirectory64(r file.Reader, eocdOff int64) (directory, error) {
	if eocdOff < locator64Size {
		return directory{}, fmt.Errorf("zip64 locator out of range")
	}
	loc, err := r.Read(eocdOff-locator64Size, locator64Size)
	if err != nil {
		return directory{}, err
	}
	if len(loc) < locator64Size || binary.LittleEndian.Uint32(loc) != locator64Magic {
		return directory{}, fmt.Errorf("bad zip64 locator")
	}

	rec, err := r.Read(int64(binary.LittleEndian.Uint64(loc[8:16])), eocd64Size)
	if err != nil {
		return directory{}, err
	}
	if len(rec) < eocd64Size || binary.LittleEndian.Uint32(rec) != eocd64Magic {
		return directory{}, fmt.Errorf("bad zip64 end of central directory")
	}
	return directory{
		records: binary.LittleEndian.Uint64(rec[32:40]),
		size:    binary.LittleEndian.Uint64(rec[40:48]),
		offset:  binary.LittleEndian.Uint64(rec[48:56]),
	}, nil
}

// lookup walks the central directory for name and returns its local header
// offset and uncompressed size.
func lookup(cd []byte, records uint64, name string) (int64, int64, error) {
	want := []byte(name)
	pos := 0
	for i := uint64(0); i < records; i++ {
		if pos+cdfhSize > len(cd) || binary.LittleEndian.Uint32(cd[pos:]) != cdfhMagic {
			return 0, 0, errBadDirEntry
		}
		h := cd[pos : pos+cdfhSize]
		method := binary.LittleEndian.Uint16(h[10:12])
		compSize := uint64(binary.LittleEndian.Uint32(h[20:24]))
		size := uint64(binary.LittleEndian.Uint32(h[24:28]))
		nameLen := int(binary.LittleEndian.Uint16(h[28:30]))
		extraLen := int(binary.LittleEndian.Uint16(h[30:32]))
		commentLen := int(binary.LittleEndian.Uint16(h[32:34]))
		lfhOff := uint64(binary.LittleEndian.Uint32(h[42:46]))

		end := pos + cdfhSize + nameLen + extraLen + commentLen
		if end > len(cd) {
			return 0, 0, errBadDirEntry
		}
		entryName := cd[pos+cdfhSize : pos+cdfhSize+nameLen]
		if !bytes.Equal(entryName, want) {
			pos = end
			continue
		}

		if method != methodStored {
			return 0, 0, fmt.Errorf("%s: %w (method %d)", name, ErrCompressed, method)
		}
		extra := cd[pos+cdfhSize+nameLen : pos+cdfhSize+nameLen+extraLen]
		size, _, lfhOff = applyZip64(extra, size, compSize, lfhOff)
		return int64(lfhOff), int64(size), nil
	}
	return 0, 0, fmt.Errorf("%s: %w", name, ErrNotFound)
}

// applyZip64 replaces saturated 32-bit fields with their zip64 extra values,
// which appear in the order size, compressed size, offset.
func applyZip64(extra []byte, size, compSize, offset uint64) (uint64, uint64, uint64) {
	for len(extra) >= 4 {
		id := binary.LittleEndian.Uint16(extra[0:2])
		n := int(binary.LittleEndian.Uint16(extra[2:4]))
		if 4+n > len(extra) {
			break
		}
		if id == zip64ExtraID {
			field := extra[4 : 4+n]
			next := func(v uint64) uint64 {
				if v != sentinel32 || len(field) < 8 {
					return v
				}
				out := binary.LittleEndian.Uint64(field)
				field = field[8:]
				return out
			}
			size = next(size)
			compSize = next(compSize)
			offset = next(offset)
			break
		}
		extra = extra[4+n:]
	}
	return size, compSize, offset
}
