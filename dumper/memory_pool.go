package dumper

import (
	"sync"
)

// BlockPool hands out block-sized buffers for decoding. Buffers are grouped in
// power-of-two buckets so that images with a fixed block size hit one bucket.
type BlockPool struct {
	pools map[int]*sync.Pool
	mu    sync.RWMutex
}

func newBlockPool() *BlockPool {
	return &BlockPool{
		pools: make(map[int]*sync.Pool),
	}
}

// Get returns a buffer of length size. Its contents are undefined.
func (bp *BlockPool) Get(size int) []byte {
	bkt := bucket(size)

	bp.mu.RLock()
	pool, exists := bp.pools[bkt]
	bp.mu.RUnlock()

	if !exists {
		bp.mu.Lock()
		pool, exists = bp.pools[bkt]
		if !exists {
			pool = &sync.Pool{
				New: func() any {
					buf := make([]byte, bkt)
					return &buf
				},
			}
			bp.pools[bkt] = pool
		}
		bp.mu.Unlock()
	}

	bufPtr := pool.Get().(*[]byte)
	return (*bufPtr)[:size]
}

// Put returns a buffer obtained from Get.
func (bp *BlockPool) Put(buf []byte) {
	c := cap(buf)
	if c == 0 || bucket(c) != c {
		return
	}

	bp.mu.RLock()
	pool, exists := bp.pools[c]
	bp.mu.RUnlock()

	if exists {
		buf = buf[:c]
		pool.Put(&buf)
	}
}

// bucket rounds size up to a power of two, at least 4K.
func bucket(size int) int {
	bkt := 4 * 1024
	for bkt < size {
		bkt <<= 1
	}
	return bkt
}

var blockPool = newBlockPool()
