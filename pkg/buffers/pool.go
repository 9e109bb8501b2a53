package buffers

import (
	"sync"
)

const (
	// BlockBufferSize is large enough for the widest dump block.
	BlockBufferSize = 32
)

// BufferPool maintains a pool of byte slices so consecutive dumps reuse their
// block buffers.
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool with the specified buffer size
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buf := make([]byte, size)
				return &buf
			},
		},
		size: size,
	}
}

// Get retrieves a buffer from the pool
func (p *BufferPool) Get() []byte {
	buffer := *(p.pool.Get().(*[]byte))

	if cap(buffer) < p.size {
		buffer = make([]byte, p.size)
	} else {
		// Contents are stale; callers only read what they filled.
		buffer = buffer[:p.size]
	}

	return buffer
}

// Put returns a buffer to the pool
func (p *BufferPool) Put(buffer []byte) {
	if buffer == nil || cap(buffer) < p.size {
		return // Don't keep undersized buffers
	}

	buffer = buffer[:p.size]
	p.pool.Put(&buffer)
}

// BlockPool hands out the read buffers used by the dump engine.
var BlockPool = NewBufferPool(BlockBufferSize)
