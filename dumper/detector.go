package dumper

import (
	"sync/atomic"

	"github.com/xishang0128/lzma-dumper/compression"
)

// DetectionContext remembers which LZMA variant an image uses. Create one per
// image: a firmware image is assumed to use a single variant throughout.
//
// The confirmed variant is set at most once and never replaced afterwards.
// Blocks must be decoded sequentially until Confirmed reports true; after that
// the context is read-only and may be shared between goroutines.
type DetectionContext struct {
	confirmed    atomic.Int32
	allowFragile bool
}

// NewDetectionContext returns an unconfirmed context. allowFragile permits the
// lzma-wrt variant to be tried and is normally set only for DD-WRT images.
func NewDetectionContext(allowFragile bool) *DetectionContext {
	return &DetectionContext{allowFragile: allowFragile}
}

// Confirmed returns the variant that decoded the first successful block.
func (c *DetectionContext) Confirmed() (compression.Variant, bool) {
	v := compression.Variant(c.confirmed.Load())
	return v, v != 0
}

func (c *DetectionContext) AllowFragile() bool {
	return c.allowFragile
}

// CandidateOrder returns the variants to try for the next block: the confirmed
// variant first, then the others in their fixed order with the fragile variant
// last.
func (c *DetectionContext) CandidateOrder() []compression.Variant {
	order := make([]compression.Variant, 0, len(compression.Variants))

	confirmed, ok := c.Confirmed()
	if ok {
		order = append(order, confirmed)
	}
	var fragile []compression.Variant
	for _, v := range compression.Variants {
		switch {
		case ok && v == confirmed:
		case v.Fragile():
			fragile = append(fragile, v)
		default:
			order = append(order, v)
		}
	}
	return append(order, fragile...)
}

// confirm records v unless a variant is already confirmed. It reports whether
// this call made the transition.
func (c *DetectionContext) confirm(v compression.Variant) bool {
	return c.confirmed.CompareAndSwap(0, int32(v))
}
