// Package pool provides reusable byte buffers for JSON rendering and frame
// assembly.
package pool

import "sync"

// Buffer size classes. Buffers that grew beyond the max threshold of their
// class are dropped instead of pooled.
const (
	TextBufferDefaultSize   = 4 << 10   // 4KiB
	TextBufferMaxThreshold  = 256 << 10 // 256KiB
	FrameBufferDefaultSize  = 16 << 10  // 16KiB
	FrameBufferMaxThreshold = 4 << 20   // 4MiB
)

// ByteBuffer is a growable byte slice. Callers may append to B directly.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates an empty ByteBuffer with the given capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the buffered bytes. The slice is only valid until the buffer is
// modified or returned to its pool.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer and keeps its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// MustWrite appends data to the buffer.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow makes room for n more bytes in a single allocation.
//
// Buffers up to four times TextBufferDefaultSize grow by TextBufferDefaultSize,
// larger ones by a quarter of their capacity, and always by at least n.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	step := TextBufferDefaultSize
	if cap(bb.B) > 4*TextBufferDefaultSize {
		step = cap(bb.B) / 4
	}
	step = max(step, n)

	grown := make([]byte, len(bb.B), len(bb.B)+step)
	copy(grown, bb.B)
	bb.B = grown
}

// Clone returns an exactly-sized copy of the buffered bytes that stays valid
// after the buffer is reused.
func (bb *ByteBuffer) Clone() []byte {
	out := make([]byte, len(bb.B))
	copy(out, bb.B)

	return out
}

// ByteBufferPool recycles ByteBuffers of one size class.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose new buffers have defaultSize capacity
// and which drops buffers larger than maxThreshold. A zero maxThreshold keeps
// every buffer.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get returns an empty buffer.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool. bb must not be used afterwards.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil || (p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold) {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var (
	textPool  = NewByteBufferPool(TextBufferDefaultSize, TextBufferMaxThreshold)
	framePool = NewByteBufferPool(FrameBufferDefaultSize, FrameBufferMaxThreshold)
)

// GetTextBuffer returns a buffer for rendering JSON text.
func GetTextBuffer() *ByteBuffer { return textPool.Get() }

// PutTextBuffer recycles a buffer obtained from GetTextBuffer.
func PutTextBuffer(bb *ByteBuffer) { textPool.Put(bb) }

// GetFrameBuffer returns a buffer for assembling storage frames.
func GetFrameBuffer() *ByteBuffer { return framePool.Get() }

// PutFrameBuffer recycles a buffer obtained from GetFrameBuffer.
func PutFrameBuffer(bb *ByteBuffer) { framePool.Put(bb) }
