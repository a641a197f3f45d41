package dumper

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/xishang0128/lzma-dumper/common/blockmap"
	"github.com/xishang0128/lzma-dumper/common/file"
	"github.com/xishang0128/lzma-dumper/common/i18n"
	"github.com/xishang0128/lzma-dumper/compression"
)

// Dumper decodes the blocks of an LZMA compressed firmware image
type Dumper struct {
	reader     file.Reader
	blocks     *blockmap.Map
	compressor *Compressor
	logger     *slog.Logger
}

// New creates a Dumper for the image read by reader with the block layout m.
func New(reader file.Reader, m *blockmap.Map, c *Compressor) (*Dumper, error) {
	if err := m.Validate(reader.Size()); err != nil {
		return nil, fmt.Errorf(i18n.I18nMsg.Dumper.ErrorInvalidBlockMap, err)
	}
	return &Dumper{
		reader:     reader,
		blocks:     m,
		compressor: c,
		logger:     c.Dispatcher().logger,
	}, nil
}

func (d *Dumper) Close() error {
	if d == nil || d.reader == nil {
		return nil
	}
	return d.reader.Close()
}

func (d *Dumper) Blocks() *blockmap.Map {
	return d.blocks
}

func (d *Dumper) Detection() *DetectionContext {
	return d.compressor.Dispatcher().Detection()
}

// Extract decodes every block into w at its position in the decoded image and
// returns the number of bytes written.
//
// Blocks are decoded one at a time until the variant is detected. The rest are
// then spread over workers goroutines; workers <= 0 uses one per CPU.
func (d *Dumper) Extract(w io.WriterAt, workers int, cb ProgressCallback) (int64, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	blocks := d.blocks.Blocks
	offsets := d.blocks.OutputOffsets()

	detect := d.compressor.Dispatcher().Detection()
	p := newProgress(len(blocks), d.blocks.UncompressedSize(), detect, cb)

	var written int64
	next := 0
	for ; next < len(blocks); next++ {
		if _, ok := detect.Confirmed(); ok {
			break
		}
		n, err := d.extractBlock(next, offsets[next], w)
		if err != nil {
			return written, err
		}
		written += int64(n)
		p.done()
	}

	if next == len(blocks) {
		return written, nil
	}

	n, err := d.extractParallel(next, offsets, w, workers, p)
	return written + n, err
}

func (d *Dumper) extractParallel(first int, offsets []int64, w io.WriterAt, workers int, p *progress) (int64, error) {
	remaining := len(offsets) - first
	workerCount := min(workers, remaining)

	workChan := make(chan int, workerCount*2)
	resultChan := make(chan error, remaining)

	var written atomic.Int64
	var failed atomic.Bool
	var wg sync.WaitGroup
	wg.Add(workerCount)

	for k := 0; k < workerCount; k++ {
		go func() {
			defer wg.Done()
			for i := range workChan {
				if failed.Load() {
					continue
				}
				n, err := d.extractBlock(i, offsets[i], w)
				if err != nil {
					failed.Store(true)
					resultChan <- err
					continue
				}
				written.Add(int64(n))
				p.done()
			}
		}()
	}

	go func() {
		defer close(workChan)
		for i := first; i < len(offsets); i++ {
			workChan <- i
		}
	}()

	wg.Wait()
	close(resultChan)

	var errs []error
	for err := range resultChan {
		errs = append(errs, err)
	}
	return written.Load(), errors.Join(errs...)
}

// extractBlock decodes block i and writes it at off.
func (d *Dumper) extractBlock(i int, off int64, w io.WriterAt) (int, error) {
	b := d.blocks.Blocks[i]

	src, err := d.reader.Read(b.Offset, b.Length)
	if err != nil {
		return 0, fmt.Errorf(i18n.I18nMsg.Dumper.ErrorFailedToReadBlock, i, err)
	}
	if len(src) != b.Length {
		return 0, fmt.Errorf(i18n.I18nMsg.Dumper.ErrorShortBlockRead, i, len(src), b.Length)
	}

	out := src
	if b.Compressed {
		buf := blockPool.Get(b.Size)
		defer blockPool.Put(buf)

		n, err := d.compressor.Uncompress(buf, src)
		if err != nil {
			return 0, fmt.Errorf(i18n.I18nMsg.Dumper.ErrorFailedToDecodeBlock, i, err)
		}
		// Only the final block of an image may come up short.
		if n != b.Size && i != len(d.blocks.Blocks)-1 {
			return 0, fmt.Errorf(i18n.I18nMsg.Dumper.ErrorBlockSizeMismatch, i, n, b.Size)
		}
		out = buf[:n]
	}

	if _, err := w.WriteAt(out, off); err != nil {
		return 0, fmt.Errorf(i18n.I18nMsg.Dumper.ErrorFailedToWriteBlock, i, err)
	}
	d.logger.Debug("block extracted", "block", i, "compressed", b.Compressed, "in", b.Length, "out", len(out))
	return len(out), nil
}

// Probe decodes the first compressed block and reports the detected variant.
func (d *Dumper) Probe() (ProbeResult, error) {
	for i, b := range d.blocks.Blocks {
		if !b.Compressed {
			continue
		}

		src, err := d.reader.Read(b.Offset, b.Length)
		if err != nil {
			return ProbeResult{}, fmt.Errorf(i18n.I18nMsg.Dumper.ErrorFailedToReadBlock, i, err)
		}

		buf := blockPool.Get(b.Size)
		defer blockPool.Put(buf)

		n, err := d.compressor.Uncompress(buf, src)
		if err != nil {
			return ProbeResult{}, fmt.Errorf(i18n.I18nMsg.Dumper.ErrorFailedToDecodeBlock, i, err)
		}

		detect := d.compressor.Dispatcher().Detection()
		res := ProbeResult{
			Block:        i,
			InputLength:  len(src),
			OutputLength: n,
		}
		if v, ok := detect.Confirmed(); ok {
			res.Variant = v.String()
			res.Confirmed = true
		}
		for _, v := range detect.CandidateOrder() {
			res.CandidateOrder = append(res.CandidateOrder, v.String())
		}
		if d.blocks.Variant != "" {
			hint, err := compression.ParseVariant(d.blocks.Variant)
			if err != nil {
				d.logger.Warn("ignoring block map variant", "error", err)
			} else {
				res.MapVariant = hint.String()
				res.MapVariantMatches = res.Confirmed && res.Variant == res.MapVariant
			}
		}
		return res, nil
	}
	return ProbeResult{}, errors.New(i18n.I18nMsg.Dumper.ErrorNoCompressedBlocks)
}

// CompressImage splits r into blockSize blocks, compresses each with c and
// writes them to image. Blocks that do not shrink are stored uncompressed. The
// returned map records the sha256 of the input.
func CompressImage(r io.Reader, image io.Writer, c *Compressor, blockSize int) (*blockmap.Map, error) {
	if blockSize <= 0 {
		return nil, blockmap.ErrBadBlockSize
	}
	m := &blockmap.Map{
		BlockSize: blockSize,
		Variant:   compression.VariantStandard.String(),
	}
	h := sha256.New()
	r = io.TeeReader(r, h)

	src := make([]byte, blockSize)
	dst := make([]byte, blockSize)
	var off int64

	for i := 0; ; i++ {
		n, err := io.ReadFull(r, src)
		if err == io.EOF {
			break
		}
		if err != nil && err != io.ErrUnexpectedEOF {
			return nil, fmt.Errorf(i18n.I18nMsg.Dumper.ErrorFailedToReadInput, err)
		}
		block := src[:n]

		out := block
		compressed := false
		// A compressed block must be strictly smaller than the raw data.
		cn, cerr := c.Compress(dst[:n-1], block)
		switch {
		case cerr == nil:
			out = dst[:cn]
			compressed = true
		case errors.Is(cerr, compression.ErrOutOfSpace):
		default:
			return nil, fmt.Errorf(i18n.I18nMsg.Dumper.ErrorFailedToCompressBlock, i, cerr)
		}

		if _, err := image.Write(out); err != nil {
			return nil, fmt.Errorf(i18n.I18nMsg.Dumper.ErrorFailedToWriteBlock, i, err)
		}
		m.Blocks = append(m.Blocks, blockmap.Block{
			Offset:     off,
			Length:     len(out),
			Size:       n,
			Compressed: compressed,
		})
		off += int64(len(out))

		if n < blockSize {
			break
		}
	}
	m.SHA256 = hex.EncodeToString(h.Sum(nil))
	return m, nil
}

// progress aggregates per-block completion for a ProgressCallback.
type progress struct {
	mu        sync.Mutex
	total     int
	completed int
	readable  string
	detect    *DetectionContext
	cb        ProgressCallback
}

func newProgress(total int, size int64, detect *DetectionContext, cb ProgressCallback) *progress {
	return &progress{
		total:    total,
		readable: formatSize(uint64(size)),
		detect:   detect,
		cb:       cb,
	}
}

func (p *progress) done() {
	if p.cb == nil {
		return
	}

	p.mu.Lock()
	p.completed++
	info := ProgressInfo{
		TotalBlocks:     p.total,
		CompletedBlocks: p.completed,
		ProgressPercent: float64(p.completed) / float64(p.total) * 100,
		SizeReadable:    p.readable,
	}
	if v, ok := p.detect.Confirmed(); ok {
		info.Variant = v.String()
	}
	p.cb(info)
	p.mu.Unlock()
}
