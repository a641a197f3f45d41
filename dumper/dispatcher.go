package dumper

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/xishang0128/lzma-dumper/compression"
)

// ExhaustionError is returned when every candidate variant failed on a block.
// Code is the codec error code of the last variant that actually ran.
type ExhaustionError struct {
	Code int
	Err  error
}

func (e *ExhaustionError) Error() string {
	return fmt.Sprintf("no lzma variant could decode the block (last error code %d): %v", e.Code, e.Err)
}

func (e *ExhaustionError) Unwrap() error {
	return e.Err
}

// Dispatcher tries the LZMA variants against a block in the order given by its
// DetectionContext.
type Dispatcher struct {
	detect   *DetectionContext
	decoders *compression.DecoderManager
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher. A nil logger uses slog.Default.
func NewDispatcher(detect *DetectionContext, decoders *compression.DecoderManager, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		detect:   detect,
		decoders: decoders,
		logger:   logger,
	}
}

// NewDefaultDispatcher wires every built-in variant decoder to detect. sqlzma may
// be nil, which disables that variant.
func NewDefaultDispatcher(detect *DetectionContext, sqlzma *compression.SqlzmaContext, logger *slog.Logger) *Dispatcher {
	m := compression.NewDecoderManager(compression.ManagerConfig{
		Logger:       logger,
		Sqlzma:       sqlzma,
		AllowFragile: detect.AllowFragile(),
	})
	return NewDispatcher(detect, m, logger)
}

func (d *Dispatcher) Detection() *DetectionContext {
	return d.detect
}

// Uncompress decodes src into dst, whose length is the output capacity, and
// returns the number of bytes written.
//
// Attempts are logged while no variant is confirmed; afterwards only failures
// are. An empty result is returned but does not confirm a variant.
func (d *Dispatcher) Uncompress(dst, src []byte) (int, error) {
	_, confirmed := d.detect.Confirmed()

	var last error
	for _, v := range d.detect.CandidateOrder() {
		decoder, err := d.decoders.GetDecoder(v)
		if err != nil {
			return 0, err
		}

		if !confirmed {
			d.logger.Info("trying lzma variant", "variant", v.String())
		}

		n, err := decoder.Decode(dst, src)
		if err == nil {
			if n > 0 && d.detect.confirm(v) {
				d.logger.Info("detected lzma variant", "variant", v.String())
			}
			return n, nil
		}

		if confirmed {
			d.logger.Warn("lzma variant failed", "variant", v.String(), "error", err)
		} else {
			d.logger.Debug("lzma variant failed", "variant", v.String(), "error", err)
		}

		if errors.Is(err, compression.ErrVariantDisabled) && last != nil {
			continue
		}
		last = err
	}

	return 0, &ExhaustionError{Code: errorCode(last), Err: last}
}

func errorCode(err error) int {
	var ce *compression.CodecError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return 0
}
